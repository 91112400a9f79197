package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/linkrank/internal/entity"
)

const (
	homeURL = "https://example.com/"
	dupURL  = "https://example.com/dup.html"
	leafURL = "https://example.com/leaf.html"
)

func inbound(n int, target, fromTitle string) []entity.LinkRelationship {
	calls := make([]entity.LinkRelationship, 0, n)
	for i := 0; i < n; i++ {
		calls = append(calls, entity.LinkRelationship{SourcePage: leafURL, TargetHref: target, SourceTitle: fromTitle})
	}
	return calls
}

func TestRank_WorkedExample(t *testing.T) {
	stats := []entity.PageStatistics{
		{Title: "Home", InboundCalls: inbound(3, homeURL, "Leaf"), CallCount: 3},
		{Title: "Dup", InboundCalls: inbound(2, dupURL, "Leaf"), CallCount: 2},
	}
	relationships := []entity.LinkRelationship{
		{SourcePage: dupURL, TargetHref: dupURL, IsSelfLink: true, SourceTitle: "Dup"},
		{SourcePage: homeURL, TargetHref: "dup.html", IsSelfLink: false, SourceTitle: "Home"},
	}
	records := []entity.KeywordRecord{
		{PageTitle: "Home", OccurrenceCount: 2, WeightedScore: 10},
		{PageTitle: "Dup", OccurrenceCount: 0, WeightedScore: 0},
	}

	entries, missing := DefaultPolicy().Rank(stats, relationships, records)

	require.Len(t, entries, 2)
	assert.Zero(t, missing)

	home := entries[0]
	assert.Equal(t, "Home", home.Term)
	assert.Equal(t, 40, home.Score)
	assert.Equal(t, 3, home.Calls)
	assert.Equal(t, 2, home.QueryOccurrences)
	assert.Empty(t, home.SelfReferenceFlags)
	assert.Equal(t, []string{"Leaf", "Leaf", "Leaf"}, home.ReferencedFrom)

	dup := entries[1]
	assert.Equal(t, "Dup", dup.Term)
	assert.Equal(t, -5, dup.Score)
	assert.Equal(t, 1, dup.Calls)
	assert.Equal(t, []bool{true}, dup.SelfReferenceFlags)
}

func TestAddAuthorityPoints_PenaltyPerSelfLink(t *testing.T) {
	stats := []entity.PageStatistics{{Title: "Loop", CallCount: 3}}
	relationships := []entity.LinkRelationship{
		{SourceTitle: "Loop", IsSelfLink: true},
		{SourceTitle: "Loop", IsSelfLink: true},
		{SourceTitle: "Loop", IsSelfLink: false},
		{SourceTitle: "Other", IsSelfLink: true},
	}

	r := New(DefaultPolicy())
	r.AddAuthorityPoints(stats, relationships)

	entries := r.Entries()
	require.Len(t, entries, 1)
	// 3*10 - 2*(10 + 15)
	assert.Equal(t, -20, entries[0].Score)
	assert.Equal(t, 3, entries[0].Calls)
	assert.Zero(t, entries[0].QueryOccurrences)
	assert.Empty(t, entries[0].SelfReferenceFlags)
}

func TestAddQueryPoints_MissingRecordDefaultsToZero(t *testing.T) {
	r := New(DefaultPolicy())
	r.AddAuthorityPoints([]entity.PageStatistics{
		{Title: "Known", CallCount: 1},
		{Title: "Unknown", CallCount: 1},
	}, nil)

	missing := r.AddQueryPoints([]entity.KeywordRecord{{PageTitle: "Known", OccurrenceCount: 4, WeightedScore: 20}})

	assert.Equal(t, 1, missing)
	entries := r.Entries()
	assert.Equal(t, 30, entries[0].Score)
	assert.Equal(t, 4, entries[0].QueryOccurrences)
	assert.Equal(t, 10, entries[1].Score)
	assert.Zero(t, entries[1].QueryOccurrences)
}

func TestAddQueryPoints_MatchesTrimmedTitles(t *testing.T) {
	r := New(DefaultPolicy())
	r.AddAuthorityPoints([]entity.PageStatistics{{Title: "  Padded Title \n"}}, nil)

	missing := r.AddQueryPoints([]entity.KeywordRecord{{PageTitle: "Padded Title", OccurrenceCount: 1, WeightedScore: 5}})

	assert.Zero(t, missing)
	assert.Equal(t, 5, r.Entries()[0].Score)
	assert.Equal(t, 1, r.Entries()[0].QueryOccurrences)
}

func TestAddQueryPoints_MatchesMultiLineTitles(t *testing.T) {
	r := New(DefaultPolicy())
	r.AddAuthorityPoints([]entity.PageStatistics{{Title: "Blade\r\nRunner", CallCount: 1}}, nil)

	missing := r.AddQueryPoints([]entity.KeywordRecord{{PageTitle: "Blade Runner", OccurrenceCount: 2, WeightedScore: 10}})

	assert.Zero(t, missing)
	assert.Equal(t, 20, r.Entries()[0].Score)
	assert.Equal(t, 2, r.Entries()[0].QueryOccurrences)
}

func TestAddQueryPoints_NoRecordsAtAll(t *testing.T) {
	r := New(DefaultPolicy())
	r.AddAuthorityPoints([]entity.PageStatistics{{Title: "A"}, {Title: "B"}}, nil)

	assert.Equal(t, 2, r.AddQueryPoints(nil))
}

func TestReduceCallsFromSelfReference_PolicyToggle(t *testing.T) {
	stats := []entity.PageStatistics{{Title: "Self", CallCount: 2}}
	relationships := []entity.LinkRelationship{{SourceTitle: "Self", IsSelfLink: true}}

	policy := DefaultPolicy()
	policy.SelfReferencePenaltyAppliesToScoreAndCount = false

	entries, _ := policy.Rank(stats, relationships, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Calls, "calls untouched when only the score is penalised")
	assert.Equal(t, -5, entries[0].Score)
	assert.Len(t, entries[0].SelfReferenceFlags, 1)

	entries, _ = DefaultPolicy().Rank(stats, relationships, nil)
	assert.Equal(t, 1, entries[0].Calls)
}

func TestSort_TieBreakers(t *testing.T) {
	r := &Ranking{policy: DefaultPolicy(), entries: []entity.RankEntry{
		{Term: "low-query", Score: 10, Calls: 1, QueryOccurrences: 1},
		{Term: "more-self", Score: 10, Calls: 1, QueryOccurrences: 3, SelfReferenceFlags: []bool{true, true}},
		{Term: "high-query", Score: 10, Calls: 1, QueryOccurrences: 3, SelfReferenceFlags: []bool{true}},
		{Term: "more-calls", Score: 10, Calls: 2},
		{Term: "top", Score: 50},
	}}

	r.Sort()

	var terms []string
	for _, e := range r.Entries() {
		terms = append(terms, e.Term)
	}
	assert.Equal(t, []string{"top", "more-calls", "high-query", "more-self", "low-query"}, terms)
}

func TestLess(t *testing.T) {
	a := entity.RankEntry{Score: 10, Calls: 1, QueryOccurrences: 3}
	b := entity.RankEntry{Score: 10, Calls: 1, QueryOccurrences: 1}
	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))

	c := entity.RankEntry{Score: 10, Calls: 1, QueryOccurrences: 1}
	assert.False(t, Less(b, c), "fully tied entries are not ordered")
}

func TestEntries_ReturnsCopy(t *testing.T) {
	r := New(DefaultPolicy())
	r.AddAuthorityPoints([]entity.PageStatistics{{Title: "A", CallCount: 1}}, nil)

	entries := r.Entries()
	entries[0].Score = 999

	assert.Equal(t, 10, r.Entries()[0].Score)
}
