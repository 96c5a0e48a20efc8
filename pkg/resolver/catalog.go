package resolver

// attributeCatalog accumulates one canonical entry per attribute id across
// Stage B's fixed-point iteration: every
// occurrence of a given id — whether the id-form definition itself or any
// ref-form reference to it — contributes whichever fields it sets. The
// first contributor to set a given field wins, and that field's lineage
// records the group the contributor's value came from; later contributors
// may still fill in fields the earlier ones left unset.
type attributeCatalog struct {
	entries []Attribute
	origins []fieldOrigin
	index   map[string]AttributeRef
}

func newAttributeCatalog() *attributeCatalog {
	return &attributeCatalog{index: make(map[string]AttributeRef)}
}

// define resolves an id-form attribute: get-or-create its slot, then merge
// in whichever fields the definition sets that the slot doesn't have yet.
func (c *attributeCatalog) define(a unresolvedAttribute, groupID string) AttributeRef {
	ref, ok := c.index[a.Spec.ID]
	if !ok {
		ref = AttributeRef(len(c.entries))
		c.entries = append(c.entries, Attribute{ID: a.Spec.ID})
		c.origins = append(c.origins, fieldOrigin{})
		c.index[a.Spec.ID] = ref
	}
	c.mergeFields(ref, a, groupID)
	return ref
}

// resolveRef resolves a ref-form attribute against target's catalog slot.
// ok is false when no id-form occurrence has created that slot yet — the
// caller retries on a later fixed-point pass.
func (c *attributeCatalog) resolveRef(target string, a unresolvedAttribute, groupID string) (AttributeRef, bool) {
	ref, ok := c.index[target]
	if !ok {
		return 0, false
	}
	c.mergeFields(ref, a, groupID)
	return ref, true
}

// mergeFields fills in whichever fields a sets that entry ref doesn't
// already have. Each such field's origin is the group a carries for it
// (the extends ancestor it was inherited from, or the group that set it
// locally), or groupID when a carries none.
func (c *attributeCatalog) mergeFields(ref AttributeRef, a unresolvedAttribute, groupID string) {
	entry := &c.entries[ref]
	origin := &c.origins[ref]
	s := a.Spec
	from := func(o string) string {
		if o != "" {
			return o
		}
		return groupID
	}

	if s.TypeSet && origin.Type == "" {
		entry.Type = s.Type
		origin.Type = from(a.Origin.Type)
	}
	if s.BriefSet && origin.Brief == "" {
		entry.Brief = s.Brief
		origin.Brief = from(a.Origin.Brief)
	}
	if s.ExamplesSet && origin.Examples == "" {
		entry.Examples = s.Examples
		origin.Examples = from(a.Origin.Examples)
	}
	if s.RequirementSet && origin.Requirement == "" {
		entry.Requirement = s.Requirement
		origin.Requirement = from(a.Origin.Requirement)
	}
	if s.NoteSet && origin.Note == "" {
		entry.Note = s.Note
		origin.Note = from(a.Origin.Note)
	}
	if s.StabilitySet && origin.Stability == "" {
		entry.Stability = s.Stability
		origin.Stability = from(a.Origin.Stability)
	}
	if s.DeprecatedSet && origin.Deprecated == "" {
		entry.Deprecated = s.Deprecated
		origin.Deprecated = from(a.Origin.Deprecated)
	}
	if s.SamplingSet && origin.SamplingRelevant == "" {
		entry.SamplingRelevant = s.SamplingRelevant
		origin.SamplingRelevant = from(a.Origin.SamplingRelevant)
	}
	if s.TagSet && origin.Tag == "" {
		entry.Tag = s.Tag
		origin.Tag = from(a.Origin.Tag)
	}
	if entry.Annotations == nil && s.Annotations != nil {
		entry.Annotations = s.Annotations
	}
}

// lineageFor builds the AttributeLineage a group sees when it references
// ref: the shared, accumulated field-origin record for that catalog slot.
func (c *attributeCatalog) lineageFor(ref AttributeRef) AttributeLineage {
	o := c.origins[ref]
	return AttributeLineage{
		AttributeID:      c.entries[ref].ID,
		Type:             o.Type,
		Brief:            o.Brief,
		Examples:         o.Examples,
		Tag:              o.Tag,
		RequirementLevel: o.Requirement,
		SamplingRelevant: o.SamplingRelevant,
		Note:             o.Note,
		Stability:        o.Stability,
		Deprecated:       o.Deprecated,
	}
}
