package resolver

import (
	"github.com/convreg/semconv-resolver/pkg/diag"
	"github.com/convreg/semconv-resolver/pkg/semconv"
)

// Resolve runs the four-stage pipeline over every group
// contributed by specs, producing a ResolvedRegistry tagged with
// registryURL.
//
// On success it returns (registry, warnings, nil) — warnings may be
// non-empty even on success, since warnings never abort resolution. The
// first time a stage's errors would leave a later stage's inputs
// undefined, Resolve stops and returns (nil, diagnostics, diagnostics):
// later stages are skipped entirely rather than run against partial
// input.
func Resolve(registryURL string, specs []semconv.SpecWithProvenance) (*ResolvedRegistry, *diag.Compound, error) {
	reg := buildUnresolvedRegistry(specs)
	warnings := &diag.Compound{}

	if errs := resolveExtends(reg); errs.HasErrors() {
		return nil, errs, errs.AsError()
	} else {
		warnings.Merge(errs)
	}

	catalog := newAttributeCatalog()
	groupRefs, groupLineage, errs := resolveAttributeRefs(reg, catalog)
	if errs.HasErrors() {
		return nil, errs, errs.AsError()
	}
	warnings.Merge(errs)

	groups := make(map[string]*groupInProgress, len(reg.groups))
	for _, id := range reg.order {
		u := reg.groups[id]
		groups[id] = &groupInProgress{
			Unresolved:  u,
			Attributes:  groupRefs[id],
			Lineage:     groupLineage[id],
			Constraints: u.Constraints,
		}
	}

	if errs := resolveIncludes(groups, reg.order); errs.HasErrors() {
		return nil, errs, errs.AsError()
	} else {
		warnings.Merge(errs)
	}

	if errs := checkAnyOf(groups, reg.order, catalog); errs.HasErrors() {
		return nil, errs, errs.AsError()
	} else {
		warnings.Merge(errs)
	}

	registry := &ResolvedRegistry{
		RegistryURL: registryURL,
		Catalog:     catalog.entries,
		Groups:      assembleResolvedGroups(groups, reg.order),
	}

	return registry, warnings, nil
}

// assembleResolvedGroups builds the final ResolvedGroup slice, in
// deterministic group-id order, once every stage has succeeded.
func assembleResolvedGroups(groups map[string]*groupInProgress, order []string) []ResolvedGroup {
	out := make([]ResolvedGroup, 0, len(order))
	for _, id := range order {
		g := groups[id]
		u := g.Unresolved
		out = append(out, ResolvedGroup{
			ID: u.ID, Type: u.Type, Brief: u.Brief, Note: u.Note, Prefix: u.Prefix,
			Stability: u.Stability, Deprecated: u.Deprecated, SpanKind: u.SpanKind,
			MetricName: u.MetricName, Instrument: u.Instrument, Unit: u.Unit, Name: u.Name,
			Events: u.Events, EntityAssociations: u.EntityAssociations,
			Attributes: g.Attributes, Lineage: g.Lineage,
		})
	}
	return out
}
