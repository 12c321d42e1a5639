package match

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitSides(t *testing.T) {
	tests := []struct {
		name     string
		combined []string
		wantBlue []string
		wantRed  []string
	}{
		{
			name:     "bans example",
			combined: []string{"Ahri", "Zed", "Lux", "Yasuo"},
			wantBlue: []string{"Ahri", "Zed"},
			wantRed:  []string{"Lux", "Yasuo"},
		},
		{
			name:     "full draft",
			combined: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
			wantBlue: []string{"a", "b", "c", "d", "e"},
			wantRed:  []string{"f", "g", "h", "i", "j"},
		},
		{
			name:     "empty",
			combined: nil,
			wantBlue: nil,
			wantRed:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blue, red, err := SplitSides(tt.combined)
			if err != nil {
				t.Fatalf("SplitSides() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantBlue, blue); diff != "" {
				t.Errorf("blue mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRed, red); diff != "" {
				t.Errorf("red mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitSides_EvenLengthsKeepOrder(t *testing.T) {
	for n := 0; n <= 5; n++ {
		combined := make([]int, 2*n)
		for i := range combined {
			combined[i] = i
		}
		blue, red, err := SplitSides(combined)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(blue) != n || len(red) != n {
			t.Fatalf("n=%d: got lengths %d/%d", n, len(blue), len(red))
		}
		for i := 0; i < n; i++ {
			if blue[i] != i || red[i] != n+i {
				t.Errorf("n=%d: order not preserved at %d: blue=%d red=%d", n, i, blue[i], red[i])
			}
		}
	}
}

func TestSplitSides_OddLengthRejected(t *testing.T) {
	blue, red, err := SplitSides([]string{"Ahri", "Zed", "Lux"})
	if err == nil {
		t.Fatal("SplitSides() expected error for odd length, got nil")
	}
	if !errors.Is(err, ErrParseInconsistent) {
		t.Errorf("error = %v, want ErrParseInconsistent", err)
	}
	if blue != nil || red != nil {
		t.Errorf("expected nil halves on error, got %v / %v", blue, red)
	}
}

func TestSplitSides_DoesNotAlias(t *testing.T) {
	combined := []string{"a", "b", "c", "d"}
	blue, _, err := SplitSides(combined)
	if err != nil {
		t.Fatal(err)
	}
	blue[0] = "changed"
	if combined[0] != "a" {
		t.Errorf("SplitSides() result aliases its input: %v", combined)
	}
}

func TestErrorKinds(t *testing.T) {
	base := fmt.Errorf("connection refused")
	err := fmt.Errorf("series 3: %w", Wrap(KindFetchFailed, "https://gol.gg/game/stats/1/page-game/", base))

	if !errors.Is(err, ErrFetchFailed) {
		t.Error("wrapped error should match ErrFetchFailed")
	}
	if errors.Is(err, ErrSinkWriteFailed) {
		t.Error("wrapped error should not match ErrSinkWriteFailed")
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should still match its cause")
	}
	if got := KindOf(err); got != KindFetchFailed {
		t.Errorf("KindOf() = %q, want %q", got, KindFetchFailed)
	}
	if got := KindOf(base); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if Wrap(KindFetchFailed, "", nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}
