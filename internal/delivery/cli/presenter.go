package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rodaine/table"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/ranking"
)

const (
	termWidth     = 10
	linkTermWidth = 5
)

// PrintKeywordTable writes the occurrences of a keyword per stored page.
func PrintKeywordTable(w io.Writer, records []entity.KeywordRecord) {
	tbl := table.New("Page", "Qty", "Points").WithWriter(w)
	for _, r := range records {
		tbl.AddRow(r.PageTitle, r.OccurrenceCount, r.WeightedScore)
	}
	tbl.Print()
}

// PrintRankTable writes the sorted rank list. Calls and Query show the raw
// number next to the points it earned.
func PrintRankTable(w io.Writer, entries []entity.RankEntry, p ranking.Policy) {
	tbl := table.New("Page", "Pts", "Calls", "Query", "Self ref", "Linked from").WithWriter(w)
	for i, e := range entries {
		tbl.AddRow(
			fmt.Sprintf("%dº %s", i+1, truncate(e.Term, termWidth)),
			e.Score,
			pair(e.Calls, e.Calls*p.AuthorityWeight),
			pair(e.QueryOccurrences, e.QueryOccurrences*p.QueryWeight),
			e.SelfReferences()*p.SelfReferencePenalty,
			linkedFrom(e.ReferencedFrom),
		)
	}
	tbl.Print()
}

func pair(n, points int) string {
	return fmt.Sprintf("[%d, %d]", n, points)
}

func linkedFrom(titles []string) string {
	short := make([]string, 0, len(titles))
	for _, t := range titles {
		short = append(short, truncate(t, linkTermWidth))
	}
	return strings.Join(short, " | ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
