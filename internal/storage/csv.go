package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/config"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/logger"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

// CSVSink writes rows to a CSV file with a header line.
type CSVSink struct {
	path string
	out  config.OutputConfig
}

// NewCSVSink creates a sink for path. The file is created on Write.
func NewCSVSink(path string, out config.OutputConfig) *CSVSink {
	return &CSVSink{path: path, out: out}
}

// Write replaces the file with rows, or appends to it when configured. The
// header is written whenever the file starts empty.
func (s *CSVSink) Write(_ context.Context, rows []match.Row) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if s.out.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(s.path, flags, 0644)
	if err != nil {
		return match.Wrap(match.KindSinkWriteFailed, s.path, fmt.Errorf("opening output: %w", err))
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return match.Wrap(match.KindSinkWriteFailed, s.path, fmt.Errorf("reading output size: %w", err))
	}

	if err := s.encode(f, rows, info.Size() == 0); err != nil {
		f.Close()
		return match.Wrap(match.KindSinkWriteFailed, s.path, err)
	}
	if err := f.Close(); err != nil {
		return match.Wrap(match.KindSinkWriteFailed, s.path, fmt.Errorf("closing output: %w", err))
	}

	logger.Info("rows written", logger.Fields{"path": s.path, "rows": len(rows), "format": "csv"})
	return nil
}

func (s *CSVSink) encode(w io.Writer, rows []match.Row, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(match.Columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, r := range rows {
		if err := cw.Write(s.record(r)); err != nil {
			return fmt.Errorf("writing row %s: %w", r.GameURL, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing rows: %w", err)
	}
	return nil
}

func (s *CSVSink) record(r match.Row) []string {
	fs := fields(r, s.out.ListDelimiter)
	rec := make([]string, len(fs))
	for i, f := range fs {
		if f.Valid {
			rec[i] = f.Value
		} else {
			rec[i] = s.out.NullValue
		}
	}
	return rec
}

// Close is a no-op; each Write opens and closes the file.
func (s *CSVSink) Close() error {
	return nil
}

// ReadRows parses a CSV file written by CSVSink. Values equal to the null
// marker are read as absent.
func ReadRows(r io.Reader, out config.OutputConfig) ([]match.Row, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range match.Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []match.Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		row, err := parseRecord(rec, index, out)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string, index map[string]int, out config.OutputConfig) (match.Row, error) {
	get := func(col string) (string, bool) {
		v := rec[index[col]]
		return v, v != out.NullValue
	}
	getList := func(col string) []string {
		if v, ok := get(col); ok {
			return strings.Split(v, out.ListDelimiter)
		}
		return nil
	}

	var row match.Row
	var err error

	row.Tournament, _ = get("tournament")
	if row.SeriesIndex, err = strconv.Atoi(rec[index["series_index"]]); err != nil {
		return row, fmt.Errorf("series_index: %w", err)
	}
	if row.GameIndex, err = strconv.Atoi(rec[index["game_index"]]); err != nil {
		return row, fmt.Errorf("game_index: %w", err)
	}

	patch, hasPatch := get("patch")
	d := &match.Draft{
		BlueBans:  getList("blue_bans"),
		RedBans:   getList("red_bans"),
		BluePicks: getList("blue_picks"),
		RedPicks:  getList("red_picks"),
		Patch:     patch,
	}
	if hasPatch || d.BlueBans != nil || d.RedBans != nil || d.BluePicks != nil || d.RedPicks != nil {
		row.Draft = d
	}

	if blue, red := getList("blue_side_roster"), getList("red_side_roster"); blue != nil || red != nil {
		row.Roster = &match.Roster{Blue: blue, Red: red}
	}

	blueTeam, hasBlue := get("blue_side_team")
	redTeam, _ := get("red_side_team")
	winner, hasWinner := get("winner")
	loser, _ := get("loser")
	if hasBlue || hasWinner {
		row.Result = &match.Result{
			BlueTeam: blueTeam,
			RedTeam:  redTeam,
			Winner:   match.Side(winner),
			Loser:    match.Side(loser),
		}
	}

	return row, nil
}

// WriteTable writes a header and records to path, replacing the file.
func WriteTable(path string, header []string, records [][]string) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return match.Wrap(match.KindSinkWriteFailed, path, err)
	}

	f, err := os.Create(resolved)
	if err != nil {
		return match.Wrap(match.KindSinkWriteFailed, resolved, fmt.Errorf("creating output: %w", err))
	}

	cw := csv.NewWriter(f)
	cw.Write(header)
	cw.WriteAll(records)
	if err := cw.Error(); err != nil {
		f.Close()
		return match.Wrap(match.KindSinkWriteFailed, resolved, fmt.Errorf("writing records: %w", err))
	}
	if err := f.Close(); err != nil {
		return match.Wrap(match.KindSinkWriteFailed, resolved, fmt.Errorf("closing output: %w", err))
	}

	logger.Info("table written", logger.Fields{"path": resolved, "rows": len(records)})
	return nil
}
