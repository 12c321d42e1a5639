package golgg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

var (
	presencePattern   = regexp.MustCompile(`(\d+)%`)
	championIDPattern = regexp.MustCompile(`/champion-stats/(\d+)/`)
)

// PatchStat is the pick/ban presence of one champion on one patch.
type PatchStat struct {
	Patch      string
	Champion   string
	Percentage *int
	ChampionID string
}

// ParsePatchStats reads a patches-by-patches page. Each top-aligned cell is
// one patch column, named by the header cell at the same position; columns
// past the last header are named Unknown_Patch_<i>.
func (s *Site) ParsePatchStats(doc *goquery.Document) ([]PatchStat, error) {
	var headers []string
	doc.FindMatcher(s.patchHeader).Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	cells := doc.FindMatcher(s.patchCell)
	if cells.Length() == 0 {
		return nil, match.Errorf(match.KindStructureNotFound, pageURL(doc), "no patch columns")
	}

	var stats []PatchStat
	cells.Each(func(i int, cell *goquery.Selection) {
		patch := fmt.Sprintf("Unknown_Patch_%d", i)
		if i < len(headers) {
			patch = headers[i]
		}

		cell.FindMatcher(s.championBlock).Each(func(_ int, block *goquery.Selection) {
			if hover, _ := block.Attr("onmouseover"); !strings.Contains(hover, "setBg") {
				return
			}
			class, _ := block.Attr("class")
			fields := strings.Fields(class)
			if len(fields) == 0 {
				return
			}

			stat := PatchStat{Patch: patch, Champion: fields[0]}
			if m := presencePattern.FindStringSubmatch(block.Text()); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					stat.Percentage = &v
				}
			}
			if href, ok := block.FindMatcher(anchor).First().Attr("href"); ok {
				if m := championIDPattern.FindStringSubmatch(href); m != nil {
					stat.ChampionID = m[1]
				}
			}
			stats = append(stats, stat)
		})
	})

	return stats, nil
}
