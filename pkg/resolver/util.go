package resolver

import (
	"sort"

	"github.com/convreg/semconv-resolver/pkg/diag"
	"github.com/convreg/semconv-resolver/pkg/semconv"
)

// toDiagProvenance builds a diag.Provenance from a group's source
// provenance plus whichever group/attribute id a diagnostic concerns.
func toDiagProvenance(p semconv.Provenance, groupID, attrID string) diag.Provenance {
	return diag.Provenance{
		RegistryID: p.RegistryID,
		Path:       p.Path,
		Line:       p.Line,
		Column:     p.Column,
		GroupID:    groupID,
		AttrID:     attrID,
	}
}

// refLineagePair keeps an AttributeRef and its AttributeLineage together
// while sorting, so both end up ordered by catalog index together.
type refLineagePair struct {
	Ref     AttributeRef
	Lineage AttributeLineage
}

// sortRefsWithLineage orders refs (and the parallel lineage slice) by
// catalog index, the determinism rule every resolved group's attribute
// list must satisfy.
func sortRefsWithLineage(refs []AttributeRef, lineage GroupLineage) ([]AttributeRef, GroupLineage) {
	pairs := make([]refLineagePair, len(refs))
	for i := range refs {
		pairs[i] = refLineagePair{Ref: refs[i], Lineage: lineage[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Ref < pairs[j].Ref })

	outRefs := make([]AttributeRef, len(pairs))
	outLineage := make(GroupLineage, len(pairs))
	for i, p := range pairs {
		outRefs[i] = p.Ref
		outLineage[i] = p.Lineage
	}
	return outRefs, outLineage
}
