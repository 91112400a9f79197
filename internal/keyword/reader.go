package keyword

import (
	"sort"
	"strings"

	"github.com/user/linkrank/internal/entity"
)

// Result is the outcome of one keyword scan.
type Result struct {
	Records []entity.KeywordRecord
	// Skipped counts records that did not match the record format.
	Skipped int
}

// Count returns the number of non-overlapping literal occurrences of keyword.
// An empty keyword never occurs.
func Count(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	return strings.Count(text, keyword)
}

// Find scans positional lines. Every line starting with '<' is a body line and
// its count is attributed to the line right before it, with the title marker
// and surrounding whitespace removed.
func Find(lines []string, keyword string, weight int) Result {
	var res Result
	for i, line := range lines {
		if !strings.HasPrefix(line, "<") {
			if strings.HasPrefix(line, TitleMarker) && (i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], "<")) {
				res.Skipped++
			}
			continue
		}
		if i == 0 {
			res.Skipped++
			continue
		}
		title := strings.TrimSpace(strings.Replace(lines[i-1], TitleMarker, "", 1))
		res.Records = append(res.Records, newRecord(title, Count(line, keyword), weight))
	}
	sortByOccurrences(res.Records)
	return res
}

// Search counts keyword occurrences in already decoded pages.
func Search(pages []StoredPage, keyword string, weight int) []entity.KeywordRecord {
	records := make([]entity.KeywordRecord, 0, len(pages))
	for _, p := range pages {
		records = append(records, newRecord(strings.TrimSpace(p.Title), Count(p.Body, keyword), weight))
	}
	sortByOccurrences(records)
	return records
}

// Read decodes store content in the given format and scans it for keyword.
func Read(content string, format Format, keyword string, weight int) Result {
	if format == FormatTagged {
		pages, skipped := DecodeTagged(content)
		return Result{Records: Search(pages, keyword, weight), Skipped: skipped}
	}
	return Find(SplitPositional(content), keyword, weight)
}

func newRecord(title string, count, weight int) entity.KeywordRecord {
	return entity.KeywordRecord{
		PageTitle:       title,
		OccurrenceCount: count,
		WeightedScore:   count * weight,
	}
}

func sortByOccurrences(records []entity.KeywordRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].OccurrenceCount > records[j].OccurrenceCount
	})
}
