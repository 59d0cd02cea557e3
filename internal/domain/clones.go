package domain

import (
	m "github.com/mouse-blink/blockscan/internal/model"
)

// CloneGrouper finds groups of structurally identical scripts.
type CloneGrouper interface {
	DetectClones(scripts []m.Script, variant m.CloneVariant) []m.CloneGroupRecord
}

type cloneGrouper struct{}

// NewCloneGrouper constructs a CloneGrouper.
func NewCloneGrouper() CloneGrouper {
	return &cloneGrouper{}
}

type cloneGroup struct {
	code    string
	members []m.Script
}

// DetectClones groups scripts by their serialized code and returns one record
// per group of two or more. Groups and their per-scope breakdown keep
// first-seen order.
func (c *cloneGrouper) DetectClones(scripts []m.Script, variant m.CloneVariant) []m.CloneGroupRecord {
	buckets := make(map[uint64][]*cloneGroup)

	var groups []*cloneGroup

	for _, script := range scripts {
		code := m.Serialize(script.Code)
		fp := Fingerprint([]byte(code))

		group := findGroup(buckets[fp], code)
		if group == nil {
			group = &cloneGroup{code: code}
			buckets[fp] = append(buckets[fp], group)
			groups = append(groups, group)
		}

		group.members = append(group.members, script)
	}

	var records []m.CloneGroupRecord

	for _, group := range groups {
		if len(group.members) < 2 {
			continue
		}

		records = append(records, group.record(variant))
	}

	return records
}

func findGroup(candidates []*cloneGroup, code string) *cloneGroup {
	for _, g := range candidates {
		if g.code == code {
			return g
		}
	}

	return nil
}

func (g *cloneGroup) record(variant m.CloneVariant) m.CloneGroupRecord {
	index := make(map[string]int)

	var scopes []m.ScopeCount

	for _, member := range g.members {
		i, ok := index[member.Scope.Name]
		if !ok {
			i = len(scopes)
			index[member.Scope.Name] = i
			scopes = append(scopes, m.ScopeCount{ScopeName: member.Scope.QuotedName()})
		}

		scopes[i].Count++
	}

	first := g.members[0]
	record := m.CloneGroupRecord{
		Variant:                 variant,
		ProgramID:               first.ProgramID,
		OccurrenceCount:         len(g.members),
		DistinctScopeCount:      len(scopes),
		RepresentativeScopeName: first.Scope.QuotedName(),
		RepresentativeLocation:  first.Location,
		Scopes:                  scopes,
	}

	if variant == m.CloneWaitBlocks {
		record.Code = g.code
	}

	return record
}
