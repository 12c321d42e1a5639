package match

import (
	"crypto/sha1"
	"fmt"
	"strconv"
)

// Side is the board color a team played on, independent of team identity.
type Side string

const (
	SideBlue Side = "blue_side"
	SideRed  Side = "red_side"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBlue {
		return SideRed
	}
	return SideBlue
}

// ParseSide accepts the symbolic side labels written by the sinks.
func ParseSide(v string) (Side, error) {
	switch Side(v) {
	case SideBlue, SideRed:
		return Side(v), nil
	default:
		return "", fmt.Errorf("unknown side %q", v)
	}
}

// Draft holds the picks and bans of one game and the patch it was played on.
type Draft struct {
	BlueBans  []string `json:"blue_bans"`
	RedBans   []string `json:"red_bans"`
	BluePicks []string `json:"blue_picks"`
	RedPicks  []string `json:"red_picks"`
	Patch     string   `json:"patch"`
}

// Roster holds the player names of both sides in page order.
type Roster struct {
	Blue []string `json:"blue_side_roster"`
	Red  []string `json:"red_side_roster"`
}

// Result records which team sat on which side and which side won.
type Result struct {
	BlueTeam string `json:"blue_side_team"`
	RedTeam  string `json:"red_side_team"`
	Winner   Side   `json:"winner"`
	Loser    Side   `json:"loser"`
}

// NewResult builds a Result from the two team names and the losing side.
func NewResult(blueTeam, redTeam string, loser Side) *Result {
	return &Result{
		BlueTeam: blueTeam,
		RedTeam:  redTeam,
		Winner:   loser.Opposite(),
		Loser:    loser,
	}
}

// Row is one game of one series of a tournament.
type Row struct {
	Tournament  string  `json:"tournament"`
	SeriesIndex int     `json:"series_index"`
	GameIndex   int     `json:"game_index"`
	GameURL     string  `json:"game_url"`
	Draft       *Draft  `json:"draft,omitempty"`
	Roster      *Roster `json:"roster,omitempty"`
	Result      *Result `json:"result,omitempty"`
}

// Columns is the fixed column set of the persisted dataset, in order.
var Columns = []string{
	"tournament",
	"series_index",
	"game_index",
	"blue_bans",
	"red_bans",
	"blue_picks",
	"red_picks",
	"patch",
	"blue_side_roster",
	"red_side_roster",
	"blue_side_team",
	"red_side_team",
	"winner",
	"loser",
}

// NewRow creates a Row. Series and game indexes are 1-based.
func NewRow(tournament string, seriesIndex, gameIndex int, gameURL string, d *Draft, r *Roster, res *Result) Row {
	return Row{
		Tournament:  tournament,
		SeriesIndex: seriesIndex,
		GameIndex:   gameIndex,
		GameURL:     gameURL,
		Draft:       d,
		Roster:      r,
		Result:      res,
	}
}

// Key returns a deterministic identifier for the row's position in the
// tournament. Re-scraping the same tournament yields the same keys.
func (r Row) Key() string {
	return GenerateKey(r.Tournament, r.SeriesIndex, r.GameIndex)
}

// GenerateKey hashes the provenance triple of a row.
func GenerateKey(tournament string, seriesIndex, gameIndex int) string {
	h := sha1.New()
	h.Write([]byte(tournament + "|" + strconv.Itoa(seriesIndex) + "|" + strconv.Itoa(gameIndex)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Less orders rows by series, then game.
func Less(a, b Row) bool {
	if a.SeriesIndex != b.SeriesIndex {
		return a.SeriesIndex < b.SeriesIndex
	}
	return a.GameIndex < b.GameIndex
}
