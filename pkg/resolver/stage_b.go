package resolver

import (
	"github.com/convreg/semconv-resolver/pkg/diag"
	"github.com/convreg/semconv-resolver/pkg/semconv"
)

// groupInProgress is a group as it exists between Stage B and Stage D:
// Stage A's extends clause is gone, Stage B has replaced its attribute
// list with catalog references, and its constraints are whatever Stage C
// hasn't yet consumed.
type groupInProgress struct {
	Unresolved  *unresolvedGroup
	Attributes  []AttributeRef
	Lineage     GroupLineage
	Constraints []semconv.Constraint
}

// pendingRef names one ref-form attribute occurrence Stage B couldn't
// resolve on the current fixed-point pass.
type pendingRef struct {
	groupID string
	index   int
}

// resolveAttributeRefs runs Stage B to a fixed point: every attribute
// occurrence across every group — id-form or ref-form — contributes
// into one shared catalog slot per attribute id.
// An id-form occurrence always resolves immediately; a ref-form
// occurrence resolves once an id-form occurrence has created that id's
// slot. A pass that resolves nothing
// while ref-form occurrences remain pending means their targets are
// undefined anywhere in the registry.
func resolveAttributeRefs(reg *unresolvedRegistry, catalog *attributeCatalog) (map[string][]AttributeRef, map[string]GroupLineage, *diag.Compound) {
	result := &diag.Compound{}

	refs := make(map[string][]AttributeRef, len(reg.groups))
	done := make(map[string][]bool, len(reg.groups))
	for _, id := range reg.order {
		n := len(reg.groups[id].Attributes)
		refs[id] = make([]AttributeRef, n)
		done[id] = make([]bool, n)
	}

	for {
		progressed := 0
		var stuck []pendingRef

		for _, id := range reg.order {
			g := reg.groups[id]
			for i, a := range g.Attributes {
				if done[id][i] {
					continue
				}
				if !a.Spec.IsRef() {
					refs[id][i] = catalog.define(a, id)
					done[id][i] = true
					progressed++
					continue
				}
				ref, ok := catalog.resolveRef(a.Spec.Ref, a, id)
				if !ok {
					stuck = append(stuck, pendingRef{id, i})
					continue
				}
				refs[id][i] = ref
				done[id][i] = true
				progressed++
			}
		}

		if len(stuck) == 0 {
			break
		}
		if progressed == 0 {
			for _, p := range stuck {
				g := reg.groups[p.groupID]
				a := g.Attributes[p.index]
				result.Add(diag.New(diag.KindUnresolvedRef, toDiagProvenance(g.Provenance, p.groupID, a.Spec.Ref),
					"attribute ref %q in group %q does not resolve to any definition", a.Spec.Ref, p.groupID))
			}
			break
		}
	}

	if result.HasErrors() {
		return nil, nil, result
	}

	groupRefs := make(map[string][]AttributeRef, len(reg.groups))
	groupLineage := make(map[string]GroupLineage, len(reg.groups))
	for _, id := range reg.order {
		n := len(refs[id])
		grefs := make([]AttributeRef, 0, n)
		glineage := make(GroupLineage, 0, n)
		for i := 0; i < n; i++ {
			grefs = append(grefs, refs[id][i])
			glineage = append(glineage, catalog.lineageFor(refs[id][i]))
		}
		grefs, glineage = sortRefsWithLineage(grefs, glineage)
		groupRefs[id] = grefs
		groupLineage[id] = glineage
	}

	return groupRefs, groupLineage, result
}
