package html_fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/linkrank/internal/entity"
)

// Extract parses HTML content and pulls out the parts the crawler needs.
func Extract(url, htmlContent string) (*entity.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	markup, err := doc.Find("html").Html()
	if err != nil {
		return nil, err
	}

	data := &entity.Document{
		URL:       url,
		Title:     entity.NormalizeTitle(doc.Find("title").Text()),
		StyleText: doc.Find("style").Text(),
		Markup:    markup,
		Hrefs:     []string{},
	}

	// Extract anchors, keeping those without an href as empty strings
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		data.Hrefs = append(data.Hrefs, href)
	})

	return data, nil
}
