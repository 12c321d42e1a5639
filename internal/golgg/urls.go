package golgg

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	tournamentMatchlistPath = "tournament/tournament-matchlist/"
	gameStatsPath           = "game/stats/%d/page-game/"
	patchStatsPath          = "stats/patches-by-patches/season-S%d/split-%s/"
)

// Split is a part of a competitive season.
type Split string

const (
	SplitWinter Split = "Winter"
	SplitSpring Split = "Spring"
	SplitSummer Split = "Summer"
	SplitAll    Split = "ALL"
)

// ParseSplit accepts a split name in any case.
func ParseSplit(v string) (Split, error) {
	for _, s := range []Split{SplitWinter, SplitSpring, SplitSummer, SplitAll} {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown split %q (want Winter, Spring, Summer or ALL)", v)
}

// Normalize turns an href found on a site page into an absolute URL.
//
// Absolute URLs are returned unchanged. Otherwise every leading "./", "../"
// and "/" is removed and the remainder is resolved against the site root, so
// "../game/stats/555/page-game/" and "/game/stats/555/page-game/" name the
// same page.
func (s *Site) Normalize(href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("empty href")
	}

	if strings.HasPrefix(href, "//") {
		root, err := url.Parse(s.baseURL)
		if err != nil {
			return "", fmt.Errorf("parsing base URL: %w", err)
		}
		href = root.Scheme + ":" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing href %q: %w", href, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	rest := href
	for {
		switch {
		case strings.HasPrefix(rest, "../"):
			rest = rest[3:]
		case strings.HasPrefix(rest, "./"):
			rest = rest[2:]
		case strings.HasPrefix(rest, "/"):
			rest = rest[1:]
		default:
			return s.baseURL + rest, nil
		}
	}
}

// TournamentMatchlistURL returns the match list page of a tournament. A full
// URL is returned as is; a name such as "LCK Summer Playoffs 2024" is path
// escaped.
func (s *Site) TournamentMatchlistURL(tournament string) string {
	tournament = strings.TrimSpace(tournament)
	if strings.HasPrefix(tournament, "http://") || strings.HasPrefix(tournament, "https://") {
		return tournament
	}
	name := strings.Trim(tournament, "/")
	return s.baseURL + tournamentMatchlistPath + url.PathEscape(name) + "/"
}

// GameURL returns the statistics page of one game.
func (s *Site) GameURL(id int) string {
	return s.baseURL + fmt.Sprintf(gameStatsPath, id)
}

// PatchStatsURL returns the pick/ban presence by patch page of a split.
func (s *Site) PatchStatsURL(season int, split Split) string {
	return s.baseURL + fmt.Sprintf(patchStatsPath, season, split)
}
