package resolver

import "github.com/convreg/semconv-resolver/pkg/diag"

// resolveExtends runs Stage A to a fixed point: on
// each pass, every group whose extends target is itself already fully
// resolved (no pending extends of its own) is spliced and cleared. A pass
// that makes no progress while unresolved extends clauses remain means
// those clauses form a cycle or name an undefined group; every one of them
// is reported together, with no partial resolution performed.
func resolveExtends(reg *unresolvedRegistry) *diag.Compound {
	result := &diag.Compound{}

	for {
		var pending []string
		for _, id := range reg.order {
			if reg.groups[id].Extends != "" {
				pending = append(pending, id)
			}
		}
		if len(pending) == 0 {
			break
		}

		progressed := false
		for _, id := range pending {
			g := reg.groups[id]
			parent, ok := reg.groups[g.Extends]
			if !ok || parent.Extends != "" {
				continue
			}
			spliceExtends(g, parent)
			g.Extends = ""
			progressed = true
		}

		if !progressed {
			for _, id := range pending {
				g := reg.groups[id]
				result.Add(diag.New(diag.KindUnresolvedExtends, toDiagProvenance(g.Provenance, id, ""),
					"group %q extends %q, which is undefined or participates in a cycle", id, g.Extends))
			}
			break
		}
	}

	return result
}

// spliceExtends merges parent's attributes into child under Stage A's
// merge rules: a parent attribute is inherited unchanged unless child
// already carries a same-key attribute, in which case the two are
// merged field by field.
func spliceExtends(child, parent *unresolvedGroup) {
	childByKey := make(map[string]int, len(child.Attributes))
	for i, a := range child.Attributes {
		childByKey[a.Spec.Key()] = i
	}

	for _, pa := range parent.Attributes {
		key := pa.Spec.Key()
		if i, ok := childByKey[key]; ok {
			child.Attributes[i] = mergeAttribute(child.Attributes[i], pa)
			continue
		}
		child.Attributes = append(child.Attributes, pa)
	}
}

// mergeAttribute merges parent into child: fields the child explicitly set
// win; fields the child left unset inherit the parent's value and the
// parent's recorded origin for that field, so deep extends chains keep
// pointing at the group that actually contributed the value. When the
// child is ref-form and the parent is id-form, the result is id-form —
// "the reference is promoted to a definition".
func mergeAttribute(child, parent unresolvedAttribute) unresolvedAttribute {
	merged := child
	cs, ps := child.Spec, parent.Spec

	if !cs.IsRef() {
		merged.Spec.ID = cs.ID
		merged.Spec.Ref = ""
	} else if !ps.IsRef() {
		merged.Spec.ID = ps.ID
		merged.Spec.Ref = ""
	}

	if !cs.TypeSet && ps.TypeSet {
		merged.Spec.Type = ps.Type
		merged.Spec.TypeSet = true
		merged.Origin.Type = parent.Origin.Type
	}
	if !cs.BriefSet && ps.BriefSet {
		merged.Spec.Brief = ps.Brief
		merged.Spec.BriefSet = true
		merged.Origin.Brief = parent.Origin.Brief
	}
	if !cs.ExamplesSet && ps.ExamplesSet {
		merged.Spec.Examples = ps.Examples
		merged.Spec.ExamplesSet = true
		merged.Origin.Examples = parent.Origin.Examples
	}
	if !cs.RequirementSet && ps.RequirementSet {
		merged.Spec.Requirement = ps.Requirement
		merged.Spec.RequirementSet = true
		merged.Origin.Requirement = parent.Origin.Requirement
	}
	if !cs.NoteSet && ps.NoteSet {
		merged.Spec.Note = ps.Note
		merged.Spec.NoteSet = true
		merged.Origin.Note = parent.Origin.Note
	}
	if !cs.StabilitySet && ps.StabilitySet {
		merged.Spec.Stability = ps.Stability
		merged.Spec.StabilitySet = true
		merged.Origin.Stability = parent.Origin.Stability
	}
	if !cs.DeprecatedSet && ps.DeprecatedSet {
		merged.Spec.Deprecated = ps.Deprecated
		merged.Spec.DeprecatedSet = true
		merged.Origin.Deprecated = parent.Origin.Deprecated
	}
	if !cs.SamplingSet && ps.SamplingSet {
		merged.Spec.SamplingRelevant = ps.SamplingRelevant
		merged.Spec.SamplingSet = true
		merged.Origin.SamplingRelevant = parent.Origin.SamplingRelevant
	}
	if !cs.TagSet && ps.TagSet {
		merged.Spec.Tag = ps.Tag
		merged.Spec.TagSet = true
		merged.Origin.Tag = parent.Origin.Tag
	}
	if merged.Spec.Annotations == nil {
		merged.Spec.Annotations = ps.Annotations
	}

	return merged
}
