package golgg

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/logger"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

// CollectSeries returns the series links of a tournament match list in
// document order. Repeated links are kept.
//
// A page without a results table yields no links and a STRUCTURE_NOT_FOUND
// error; callers continue with zero series.
func (s *Site) CollectSeries(doc *goquery.Document) ([]string, error) {
	table := doc.FindMatcher(s.resultsTable).First()
	if table.Length() == 0 {
		return nil, match.Errorf(match.KindStructureNotFound, pageURL(doc), "results table not found")
	}

	var links []string
	table.FindMatcher(s.seriesAnchor).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs, err := s.Normalize(href)
		if err != nil {
			return
		}
		if !s.isGamePath(abs) {
			return
		}
		links = append(links, abs)
	})

	logger.Debug("series collected", logger.Fields{
		"url":    pageURL(doc),
		"series": len(links),
	})
	return links, nil
}

func (s *Site) isGamePath(abs string) bool {
	u, err := url.Parse(abs)
	if err != nil {
		return false
	}
	return s.gamePath.MatchString(u.Path)
}
