package golgg

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

// Extraction is everything read from one game page. Each part is nil when
// the page lacks it; Issues explains why.
type Extraction struct {
	Draft  *match.Draft
	Roster *match.Roster
	Result *match.Result
	Issues []error
}

// ExtractGame reads the draft, roster and result of a game page. Missing or
// inconsistent parts never prevent the others from being read.
func (s *Site) ExtractGame(doc *goquery.Document) Extraction {
	var ex Extraction
	var err error

	if ex.Draft, err = s.ExtractDraft(doc); err != nil {
		ex.Issues = append(ex.Issues, err)
	}
	if ex.Roster, err = s.ExtractRoster(doc); err != nil {
		ex.Issues = append(ex.Issues, err)
	}
	if ex.Result, err = s.ExtractResult(doc); err != nil {
		ex.Issues = append(ex.Issues, err)
	}
	return ex
}

// ExtractDraft reads bans, picks and patch. The draft is nil when neither
// section nor the patch label is present, or when a section has an odd
// number of champions.
func (s *Site) ExtractDraft(doc *goquery.Document) (*match.Draft, error) {
	src := pageURL(doc)

	bans, hasBans := s.section(doc, s.bansLabel)
	picks, hasPicks := s.section(doc, s.picksLabel)
	patch, hasPatch := s.ExtractPatch(doc)

	if !hasBans && !hasPicks && !hasPatch {
		return nil, match.Errorf(match.KindStructureNotFound, src, "no draft sections")
	}

	d := &match.Draft{Patch: patch}
	var err error
	if hasBans {
		if d.BlueBans, d.RedBans, err = match.SplitSides(bans); err != nil {
			return nil, match.Errorf(match.KindParseInconsistent, src, "bans: %d champions", len(bans))
		}
	}
	if hasPicks {
		if d.BluePicks, d.RedPicks, err = match.SplitSides(picks); err != nil {
			return nil, match.Errorf(match.KindParseInconsistent, src, "picks: %d champions", len(picks))
		}
	}
	return d, nil
}

// section returns the champion names of every block labeled label, in page
// order. The names come from the icons' alt text in the body that follows
// each label.
func (s *Site) section(doc *goquery.Document, label string) ([]string, bool) {
	var champions []string
	found := false

	doc.FindMatcher(s.sectionLabel).Each(func(_ int, div *goquery.Selection) {
		if strings.TrimSpace(div.Text()) != label {
			return
		}
		body := div.NextAllMatcher(s.sectionBody).First()
		if body.Length() == 0 {
			return
		}
		found = true
		body.FindMatcher(s.championIcon).Each(func(_ int, img *goquery.Selection) {
			if alt, ok := img.Attr("alt"); ok {
				champions = append(champions, strings.TrimSpace(alt))
			}
		})
	})

	return champions, found
}

// ExtractPatch returns the patch label without its version marker.
func (s *Site) ExtractPatch(doc *goquery.Document) (string, bool) {
	label := doc.FindMatcher(s.patch).First()
	if label.Length() == 0 {
		return "", false
	}
	return strings.TrimPrefix(strings.TrimSpace(label.Text()), s.patchPrefix), true
}

// ExtractRoster reads the player links of both sides.
func (s *Site) ExtractRoster(doc *goquery.Document) (*match.Roster, error) {
	src := pageURL(doc)

	var players []string
	doc.FindMatcher(s.playerLink).Each(func(_ int, a *goquery.Selection) {
		players = append(players, cleanText(a))
	})
	if len(players) == 0 {
		return nil, match.Errorf(match.KindStructureNotFound, src, "no player links")
	}

	blue, red, err := match.SplitSides(players)
	if err != nil {
		return nil, match.Errorf(match.KindParseInconsistent, src, "roster: %d players", len(players))
	}
	return &match.Roster{Blue: blue, Red: red}, nil
}

// ExtractResult reads the team names from the side headers and decides the
// loser by the loss marker in the blue header.
func (s *Site) ExtractResult(doc *goquery.Document) (*match.Result, error) {
	src := pageURL(doc)

	blue := doc.FindMatcher(s.blueHeader).First()
	red := doc.FindMatcher(s.redHeader).First()
	if blue.Length() == 0 || red.Length() == 0 {
		return nil, match.Errorf(match.KindStructureNotFound, src, "side header missing")
	}

	loser := match.SideRed
	if strings.Contains(blue.Text(), s.lossMarker) {
		loser = match.SideBlue
	}

	return match.NewResult(s.teamName(blue), s.teamName(red), loser), nil
}

// teamName prefers the header's first link and falls back to its text.
func (s *Site) teamName(header *goquery.Selection) string {
	if a := header.FindMatcher(anchor).First(); a.Length() > 0 {
		return cleanText(a)
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(header.Text(), s.lossMarker, "")), " ")
}
