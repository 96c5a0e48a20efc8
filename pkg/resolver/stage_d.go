package resolver

import "github.com/convreg/semconv-resolver/pkg/diag"

// checkAnyOf runs Stage D: for each group, every
// remaining any_of constraint must have at least one of its named
// attributes present on the group. A satisfied constraint is simply
// dropped — it does not survive into the resolved registry. An
// unsatisfied one is reported with every attribute named in it, since by
// definition none of them were found.
func checkAnyOf(groups map[string]*groupInProgress, order []string, catalog *attributeCatalog) *diag.Compound {
	result := &diag.Compound{}

	for _, id := range order {
		g := groups[id]
		names := make(map[string]bool, len(g.Attributes))
		for _, r := range g.Attributes {
			names[catalog.entries[r].ID] = true
		}

		for _, c := range g.Constraints {
			if len(c.AnyOf) == 0 {
				continue
			}
			satisfied := false
			for _, name := range c.AnyOf {
				if names[name] {
					satisfied = true
					break
				}
			}
			if !satisfied {
				result.Add(diag.New(diag.KindUnsatisfiedAnyOf, toDiagProvenance(g.Unresolved.Provenance, id, ""),
					"group %q's any_of constraint is not satisfied: missing %v", id, c.AnyOf))
			}
		}
	}

	return result
}
