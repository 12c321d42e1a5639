package golgg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/config"
)

// Site holds the compiled layout rules of one statistics site.
type Site struct {
	baseURL     string
	gamePath    *regexp.Regexp
	gameMarker  string
	patchPrefix string
	lossMarker  string
	bansLabel   string
	picksLabel  string

	resultsTable  cascadia.Selector
	seriesAnchor  cascadia.Selector
	gameMenuLink  cascadia.Selector
	sectionLabel  cascadia.Selector
	sectionBody   cascadia.Selector
	championIcon  cascadia.Selector
	patch         cascadia.Selector
	playerLink    cascadia.Selector
	blueHeader    cascadia.Selector
	redHeader     cascadia.Selector
	patchHeader   cascadia.Selector
	patchCell     cascadia.Selector
	championBlock cascadia.Selector
}

var anchor = cascadia.MustCompile("a")

// NewSite compiles the site rules from cfg.
func NewSite(cfg *config.Config) (*Site, error) {
	gamePath, err := regexp.Compile(cfg.Site.GamePathPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling game path pattern: %w", err)
	}

	s := &Site{
		baseURL:     withTrailingSlash(cfg.Site.BaseURL),
		gamePath:    gamePath,
		gameMarker:  cfg.Site.GamePageMarker,
		patchPrefix: cfg.Site.PatchPrefix,
		lossMarker:  cfg.Site.LossMarker,
		bansLabel:   cfg.Site.BansLabel,
		picksLabel:  cfg.Site.PicksLabel,
	}

	sel := cfg.Selectors
	targets := []struct {
		name string
		expr string
		dst  *cascadia.Selector
	}{
		{"results_table", sel.ResultsTable, &s.resultsTable},
		{"series_anchor", sel.SeriesAnchor, &s.seriesAnchor},
		{"game_menu_link", sel.GameMenuLink, &s.gameMenuLink},
		{"section_label", sel.SectionLabel, &s.sectionLabel},
		{"section_body", sel.SectionBody, &s.sectionBody},
		{"champion_icon", sel.ChampionIcon, &s.championIcon},
		{"patch", sel.Patch, &s.patch},
		{"player_link", sel.PlayerLink, &s.playerLink},
		{"blue_header", sel.BlueHeader, &s.blueHeader},
		{"red_header", sel.RedHeader, &s.redHeader},
		{"patch_header", sel.PatchHeader, &s.patchHeader},
		{"patch_cell", sel.PatchCell, &s.patchCell},
		{"champion_block", sel.ChampionBlock, &s.championBlock},
	}
	for _, t := range targets {
		compiled, err := cascadia.Compile(t.expr)
		if err != nil {
			return nil, fmt.Errorf("compiling selector %s %q: %w", t.name, t.expr, err)
		}
		*t.dst = compiled
	}

	return s, nil
}

// BaseURL returns the site root, always ending in a slash.
func (s *Site) BaseURL() string {
	return s.baseURL
}

func withTrailingSlash(u string) string {
	u = strings.TrimSpace(u)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// pageURL is the URL a document was fetched from, or "" for documents built
// from fixtures.
func pageURL(doc *goquery.Document) string {
	if doc == nil || doc.Url == nil {
		return ""
	}
	return doc.Url.String()
}

func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
