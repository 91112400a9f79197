package entity

import "strings"

// Document is what a fetcher returns for one URL.
type Document struct {
	URL       string
	Title     string
	StyleText string
	Markup    string
	// Hrefs holds the href attribute of every anchor in document order.
	// Anchors without an href contribute an empty string.
	Hrefs []string
}

// PageResource is a discovered page whose title and body were both retrieved.
type PageResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Body  string `json:"-"`
}

// PageStatistics lists the relationships pointing at one resource.
type PageStatistics struct {
	Title        string
	InboundCalls []LinkRelationship
	CallCount    int
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// NormalizeTitle turns line breaks into spaces and trims the result, so a
// title reads the same in the crawl graph, the body store and the ranking.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(lineBreaks.Replace(title))
}
