package entity

// LinkRelationship is one anchor edge found while crawling. TargetHref keeps
// the href text as written in the markup, unresolved.
type LinkRelationship struct {
	SourcePage  string `json:"source_page"`
	TargetHref  string `json:"target_href"`
	IsSelfLink  bool   `json:"is_self_link"`
	SourceTitle string `json:"source_title"`
}

// CrawlGraph is the output of a single breadth-first crawl.
// DiscoveredURLs starts with the seed and keeps first-discovery order.
type CrawlGraph struct {
	DiscoveredURLs []string
	Relationships  []LinkRelationship
}

// NewLinkRelationship builds the relationship for an anchor on sourcePage.
func NewLinkRelationship(sourcePage, sourceTitle, href string) LinkRelationship {
	return LinkRelationship{
		SourcePage:  sourcePage,
		TargetHref:  href,
		IsSelfLink:  RawHrefEquals(href, sourcePage),
		SourceTitle: sourceTitle,
	}
}
