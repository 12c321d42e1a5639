package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/config"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

// Sink persists rows in the order given.
type Sink interface {
	Write(ctx context.Context, rows []match.Row) error
	Close() error
}

// ResolvePath expands ~ and creates the parent directory of path.
func ResolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	return path, nil
}

// IsSQLitePath reports whether path names a SQLite database.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Open returns the sink for path: SQLite for .db/.sqlite files, CSV
// otherwise.
func Open(path string, out config.OutputConfig) (Sink, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, match.Wrap(match.KindSinkWriteFailed, path, err)
	}
	if IsSQLitePath(resolved) {
		return OpenSQLite(resolved, out.ListDelimiter)
	}
	return NewCSVSink(resolved, out), nil
}

// field is one serialized column; Valid is false for absent values.
type field struct {
	Value string
	Valid bool
}

func present(v string) field { return field{Value: v, Valid: true} }

func list(values []string, delimiter string) field {
	if values == nil {
		return field{}
	}
	return present(strings.Join(values, delimiter))
}

// fields flattens a row in match.Columns order.
func fields(r match.Row, delimiter string) []field {
	out := []field{
		present(r.Tournament),
		present(strconv.Itoa(r.SeriesIndex)),
		present(strconv.Itoa(r.GameIndex)),
	}

	if d := r.Draft; d != nil {
		out = append(out,
			list(d.BlueBans, delimiter),
			list(d.RedBans, delimiter),
			list(d.BluePicks, delimiter),
			list(d.RedPicks, delimiter),
			present(d.Patch),
		)
	} else {
		out = append(out, field{}, field{}, field{}, field{}, field{})
	}

	if ro := r.Roster; ro != nil {
		out = append(out, list(ro.Blue, delimiter), list(ro.Red, delimiter))
	} else {
		out = append(out, field{}, field{})
	}

	if res := r.Result; res != nil {
		out = append(out,
			present(res.BlueTeam),
			present(res.RedTeam),
			present(string(res.Winner)),
			present(string(res.Loser)),
		)
	} else {
		out = append(out, field{}, field{}, field{}, field{})
	}

	return out
}
