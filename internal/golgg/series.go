package golgg

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExpandSeries returns the game links of the series shown on doc, in menu
// order. A page without a game menu is a one-game series and yields only
// self, the URL doc was fetched from.
func (s *Site) ExpandSeries(doc *goquery.Document, self string) []string {
	var games []string
	doc.FindMatcher(s.gameMenuLink).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, s.gameMarker) {
			return
		}
		abs, err := s.Normalize(href)
		if err != nil {
			return
		}
		games = append(games, abs)
	})

	if len(games) == 0 {
		return []string{self}
	}
	return games
}
