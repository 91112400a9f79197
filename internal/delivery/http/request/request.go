package request

// RankRequest asks for a fresh crawl of Seed ranked against Keyword.
// An empty Seed falls back to the configured seed; an empty Keyword ranks
// on authority points only.
type RankRequest struct {
	Seed    string `json:"seed"`
	Keyword string `json:"keyword"`
}
