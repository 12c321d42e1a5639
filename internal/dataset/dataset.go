// Package dataset turns scraped drafts into training samples.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

// BanHeader is the column set of a ban sample table.
var BanHeader = []string{"tournament", "series_index", "game_index", "blue_bans", "red_bans", "patch", "winner"}

// BanSample is the bans of one game labeled with the winning side: 1 for
// blue, 0 for red.
type BanSample struct {
	Tournament  string
	SeriesIndex int
	GameIndex   int
	BlueBans    []string
	RedBans     []string
	Patch       string
	Winner      float64
}

// BanSamples labels every row. A row without draft or with a winner other
// than blue_side or red_side is an error.
func BanSamples(rows []match.Row) ([]BanSample, error) {
	samples := make([]BanSample, 0, len(rows))
	for _, r := range rows {
		id := fmt.Sprintf("%s series %d game %d", r.Tournament, r.SeriesIndex, r.GameIndex)

		if r.Draft == nil {
			return nil, fmt.Errorf("%s: no draft", id)
		}
		var winner match.Side
		if r.Result != nil {
			winner = r.Result.Winner
		}
		label, err := winnerLabel(winner)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}

		samples = append(samples, BanSample{
			Tournament:  r.Tournament,
			SeriesIndex: r.SeriesIndex,
			GameIndex:   r.GameIndex,
			BlueBans:    r.Draft.BlueBans,
			RedBans:     r.Draft.RedBans,
			Patch:       r.Draft.Patch,
			Winner:      label,
		})
	}
	return samples, nil
}

func winnerLabel(s match.Side) (float64, error) {
	switch s {
	case match.SideBlue:
		return 1.0, nil
	case match.SideRed:
		return 0.0, nil
	default:
		return 0, fmt.Errorf("invalid winner %q, expected %q or %q", s, match.SideBlue, match.SideRed)
	}
}

// Record serializes a sample in BanHeader order.
func (s BanSample) Record(delimiter string) []string {
	return []string{
		s.Tournament,
		strconv.Itoa(s.SeriesIndex),
		strconv.Itoa(s.GameIndex),
		strings.Join(s.BlueBans, delimiter),
		strings.Join(s.RedBans, delimiter),
		s.Patch,
		strconv.FormatFloat(s.Winner, 'f', 1, 64),
	}
}
