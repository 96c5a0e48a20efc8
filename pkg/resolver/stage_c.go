package resolver

import (
	"github.com/convreg/semconv-resolver/pkg/diag"
	"github.com/convreg/semconv-resolver/pkg/semconv"
)

// resolveIncludes runs Stage C to a fixed point: a
// constraint's include target must itself have no unresolved include
// before it can be pulled in, the same fixed-point shape Stage A uses for
// extends. A pass that makes no progress while unresolved includes remain
// means those targets are undefined or participate in a cycle.
func resolveIncludes(groups map[string]*groupInProgress, order []string) *diag.Compound {
	result := &diag.Compound{}

	for {
		progressed := false
		anyPending := false

		for _, id := range order {
			g := groups[id]
			var kept []semconv.Constraint

			for _, c := range g.Constraints {
				if c.Include == "" {
					kept = append(kept, c)
					continue
				}
				target, ok := groups[c.Include]
				if !ok || hasUnresolvedInclude(target) {
					kept = append(kept, c)
					anyPending = true
					continue
				}
				mergeAttributesOnly(g, target)
				for _, tc := range target.Constraints {
					if tc.Include == "" {
						kept = append(kept, tc)
					}
				}
				progressed = true
			}
			g.Constraints = kept
		}

		if !anyPending {
			break
		}
		if !progressed {
			for _, id := range order {
				g := groups[id]
				for _, c := range g.Constraints {
					if c.Include == "" {
						continue
					}
					result.Add(diag.New(diag.KindUnresolvedInclude, toDiagProvenance(g.Unresolved.Provenance, id, ""),
						"group %q includes %q, which is undefined or participates in a cycle", id, c.Include))
				}
			}
			break
		}
	}

	for _, id := range order {
		g := groups[id]
		g.Attributes, g.Lineage = sortRefsWithLineage(g.Attributes, g.Lineage)
	}

	return result
}

// hasUnresolvedInclude reports whether target still has any constraint
// whose include hasn't been consumed.
func hasUnresolvedInclude(target *groupInProgress) bool {
	for _, c := range target.Constraints {
		if c.Include != "" {
			return true
		}
	}
	return false
}

// mergeAttributesOnly appends target's attribute references into g,
// deduplicating by AttributeRef, and carries over the original
// AttributeLineage entry unchanged — lineage must keep pointing at
// whatever group actually contributed the value, not at the group that
// merely re-exported it via include.
func mergeAttributesOnly(g, target *groupInProgress) {
	existing := make(map[AttributeRef]bool, len(g.Attributes))
	for _, r := range g.Attributes {
		existing[r] = true
	}
	for i, r := range target.Attributes {
		if existing[r] {
			continue
		}
		g.Attributes = append(g.Attributes, r)
		g.Lineage = append(g.Lineage, target.Lineage[i])
		existing[r] = true
	}
}
