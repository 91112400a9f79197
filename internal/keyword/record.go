package keyword

import (
	"fmt"
	"strings"

	"github.com/user/linkrank/internal/entity"
)

const (
	RecordDelimiter = "^"
	TitleMarker     = "!@"

	titleTag = "title="
	bodyTag  = "body="
	seedTag  = "seed="
)

// Format selects how records are laid out in the body store.
type Format string

const (
	FormatPositional Format = "positional"
	FormatTagged     Format = "tagged"
)

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPositional, FormatTagged:
		return f, nil
	default:
		return "", fmt.Errorf("unknown body store format %q", s)
	}
}

// StoredPage is a title/body pair as kept in the body store.
type StoredPage struct {
	Title string
	Body  string
}

// NewStoredPage flattens a resource for storage: the body loses its line
// breaks and is lower-cased, the title is normalized.
func NewStoredPage(r entity.PageResource) StoredPage {
	return StoredPage{
		Title: entity.NormalizeTitle(r.Title),
		Body:  Flatten(r.Body),
	}
}

// Flatten replaces every line break with a space, lower-cases and trims.
func Flatten(body string) string {
	return strings.TrimSpace(strings.ToLower(joinLines(body)))
}

func joinLines(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// Encode serialises pages in the given format, ready to be appended.
func Encode(format Format, pages []StoredPage) string {
	var b strings.Builder
	for _, p := range pages {
		switch format {
		case FormatTagged:
			b.WriteString(titleTag + p.Title + "\n")
			b.WriteString(bodyTag + p.Body + "\n")
		default:
			b.WriteString(RecordDelimiter + TitleMarker + p.Title + "\n" + p.Body)
		}
	}
	return b.String()
}

// SeedHeader is the first line of a store built from seed. Both formats
// carry it; the readers ignore it.
func SeedHeader(seed string) string {
	return seedTag + joinLines(seed) + "\n"
}

// StoredSeed returns the seed recorded in the store header, or "" when the
// content has no header.
func StoredSeed(content string) string {
	first, _, _ := strings.Cut(content, "\n")
	if !strings.HasPrefix(first, seedTag) {
		return ""
	}
	return strings.TrimPrefix(first, seedTag)
}

// SplitPositional cuts positional store content into the flat line sequence
// the reader walks: first on the record delimiter, then on line breaks.
func SplitPositional(content string) []string {
	var lines []string
	for _, record := range strings.Split(content, RecordDelimiter) {
		lines = append(lines, strings.Split(record, "\n")...)
	}
	return lines
}

// DecodeTagged parses tagged store content. A record needs a title line
// immediately followed by a body line; anything else is skipped and counted.
func DecodeTagged(content string) (pages []StoredPage, skipped int) {
	var pending *string
	for _, line := range strings.Split(content, "\n") {
		switch {
		case line == "", strings.HasPrefix(line, seedTag):
			continue
		case strings.HasPrefix(line, titleTag):
			if pending != nil {
				skipped++
			}
			title := strings.TrimPrefix(line, titleTag)
			pending = &title
		case strings.HasPrefix(line, bodyTag):
			if pending == nil {
				skipped++
				continue
			}
			pages = append(pages, StoredPage{Title: *pending, Body: strings.TrimPrefix(line, bodyTag)})
			pending = nil
		default:
			skipped++
		}
	}
	if pending != nil {
		skipped++
	}
	return pages, skipped
}
