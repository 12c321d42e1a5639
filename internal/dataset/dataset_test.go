package dataset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

func row(game int, winner match.Side) match.Row {
	var res *match.Result
	if winner != "" {
		res = &match.Result{Winner: winner, Loser: winner.Opposite()}
	}
	return match.NewRow("Worlds 2024", 1, game, "",
		&match.Draft{BlueBans: []string{"Ahri", "Zed"}, RedBans: []string{"Lux"}, Patch: "14.18"},
		nil, res)
}

func TestBanSamples(t *testing.T) {
	got, err := BanSamples([]match.Row{row(1, match.SideBlue), row(2, match.SideRed)})
	if err != nil {
		t.Fatalf("BanSamples() error: %v", err)
	}

	want := []BanSample{
		{Tournament: "Worlds 2024", SeriesIndex: 1, GameIndex: 1, BlueBans: []string{"Ahri", "Zed"}, RedBans: []string{"Lux"}, Patch: "14.18", Winner: 1.0},
		{Tournament: "Worlds 2024", SeriesIndex: 1, GameIndex: 2, BlueBans: []string{"Ahri", "Zed"}, RedBans: []string{"Lux"}, Patch: "14.18", Winner: 0.0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BanSamples() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Worlds 2024", "1", "1", "Ahri|Zed", "Lux", "14.18", "1.0"}, got[0].Record("|")); diff != "" {
		t.Errorf("Record() mismatch (-want +got):\n%s", diff)
	}
}

func TestBanSamples_Invalid(t *testing.T) {
	noDraft := row(3, match.SideBlue)
	noDraft.Draft = nil

	badWinner := row(4, match.SideBlue)
	badWinner.Result.Winner = "T1"

	tests := []struct {
		name    string
		row     match.Row
		wantMsg string
	}{
		{"missing result", row(2, ""), "game 2: invalid winner"},
		{"missing draft", noDraft, "game 3: no draft"},
		{"team name as winner", badWinner, `invalid winner "T1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BanSamples([]match.Row{row(1, match.SideRed), tt.row})
			if err == nil {
				t.Fatal("BanSamples() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}
