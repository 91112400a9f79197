package ranking

import (
	"sort"

	"github.com/user/linkrank/internal/entity"
)

// Ranking is the in-memory rank list of one crawl cycle. Each step is a
// transformation over the list and the steps are meant to run in order:
// AddAuthorityPoints, AddQueryPoints, AddSelfReferenceFlags,
// ReduceCallsFromSelfReference, Sort.
type Ranking struct {
	policy  Policy
	entries []entity.RankEntry
}

// New creates an empty ranking governed by p.
func New(p Policy) *Ranking {
	return &Ranking{policy: p}
}

// Entries returns a copy of the current rank list.
func (r *Ranking) Entries() []entity.RankEntry {
	out := make([]entity.RankEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// AddAuthorityPoints creates one entry per statistic. The base score is the
// call count times the authority weight; every self-link whose source title
// is the entry's term takes one authority weight back and adds the penalty.
func (r *Ranking) AddAuthorityPoints(stats []entity.PageStatistics, relationships []entity.LinkRelationship) {
	for _, st := range stats {
		referencedFrom := make([]string, 0, len(st.InboundCalls))
		for _, call := range st.InboundCalls {
			referencedFrom = append(referencedFrom, call.SourceTitle)
		}

		r.entries = append(r.entries, entity.RankEntry{
			Term:               st.Title,
			Calls:              st.CallCount,
			Score:              r.authority(st, relationships),
			ReferencedFrom:     referencedFrom,
			SelfReferenceFlags: []bool{},
		})
	}
}

func (r *Ranking) authority(st entity.PageStatistics, relationships []entity.LinkRelationship) int {
	score := st.CallCount * r.policy.AuthorityWeight
	for _, rel := range relationships {
		if rel.SourceTitle == st.Title && rel.IsSelfLink {
			score -= r.policy.AuthorityWeight
			score += r.policy.SelfReferencePenalty
		}
	}
	return score
}

// AddQueryPoints adds the weighted score of the keyword record matching each
// term, comparing normalized titles. A term without a record keeps its score and
// gets zero occurrences; the number of such terms is returned.
func (r *Ranking) AddQueryPoints(records []entity.KeywordRecord) (missing int) {
	byTitle := make(map[string]entity.KeywordRecord, len(records))
	for _, rec := range records {
		key := entity.NormalizeTitle(rec.PageTitle)
		if _, seen := byTitle[key]; !seen {
			byTitle[key] = rec
		}
	}

	for i := range r.entries {
		rec, ok := byTitle[entity.NormalizeTitle(r.entries[i].Term)]
		if !ok {
			missing++
			r.entries[i].QueryOccurrences = 0
			continue
		}
		r.entries[i].Score += rec.WeightedScore
		r.entries[i].QueryOccurrences = rec.OccurrenceCount
	}
	return missing
}

// AddSelfReferenceFlags records, for each entry, one flag per self-link
// whose source title is the entry's term.
func (r *Ranking) AddSelfReferenceFlags(relationships []entity.LinkRelationship) {
	for i := range r.entries {
		flags := []bool{}
		for _, rel := range relationships {
			if rel.SourceTitle == r.entries[i].Term && rel.IsSelfLink {
				flags = append(flags, rel.IsSelfLink)
			}
		}
		r.entries[i].SelfReferenceFlags = flags
	}
}

// ReduceCallsFromSelfReference subtracts the self-reference count from the
// calls of every flagged entry, when the policy asks for it.
func (r *Ranking) ReduceCallsFromSelfReference() {
	if !r.policy.SelfReferencePenaltyAppliesToScoreAndCount {
		return
	}
	for i := range r.entries {
		for _, flag := range r.entries[i].SelfReferenceFlags {
			if flag {
				r.entries[i].Calls--
			}
		}
	}
}

// Sort orders the entries with Less.
func (r *Ranking) Sort() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return Less(r.entries[i], r.entries[j])
	})
}

// Less reports whether a ranks before b: higher score first, then more
// calls, then more query occurrences, then fewer self-references.
func Less(a, b entity.RankEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Calls != b.Calls {
		return a.Calls > b.Calls
	}
	if a.QueryOccurrences != b.QueryOccurrences {
		return a.QueryOccurrences > b.QueryOccurrences
	}
	return a.SelfReferences() < b.SelfReferences()
}

// Rank runs every step in order and returns the sorted entries together
// with the number of terms that had no keyword record.
func (p Policy) Rank(stats []entity.PageStatistics, relationships []entity.LinkRelationship, records []entity.KeywordRecord) ([]entity.RankEntry, int) {
	r := New(p)
	r.AddAuthorityPoints(stats, relationships)
	missing := r.AddQueryPoints(records)
	r.AddSelfReferenceFlags(relationships)
	r.ReduceCallsFromSelfReference()
	r.Sort()
	return r.Entries(), missing
}
