package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/logger"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/match"
)

const schema = `
	CREATE TABLE IF NOT EXISTS drafts (
		row_key TEXT PRIMARY KEY,
		tournament TEXT NOT NULL,
		series_index INTEGER NOT NULL,
		game_index INTEGER NOT NULL,
		blue_bans TEXT,
		red_bans TEXT,
		blue_picks TEXT,
		red_picks TEXT,
		patch TEXT,
		blue_side_roster TEXT,
		red_side_roster TEXT,
		blue_side_team TEXT,
		red_side_team TEXT,
		winner TEXT,
		loser TEXT,
		game_url TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_drafts_order ON drafts(tournament, series_index, game_index);
`

// SQLiteSink stores rows in a drafts table keyed by the row's provenance.
// Re-running a tournament replaces its rows instead of duplicating them.
type SQLiteSink struct {
	db        *sql.DB
	path      string
	delimiter string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path, delimiter string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, match.Wrap(match.KindSinkWriteFailed, path, fmt.Errorf("opening database: %w", err))
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, match.Wrap(match.KindSinkWriteFailed, path, fmt.Errorf("creating schema: %w", err))
	}

	return &SQLiteSink{db: db, path: path, delimiter: delimiter}, nil
}

// DB exposes the underlying handle for queries.
func (s *SQLiteSink) DB() *sql.DB {
	return s.db
}

// Write upserts rows in one transaction. Either all rows are stored or none.
func (s *SQLiteSink) Write(ctx context.Context, rows []match.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return match.Wrap(match.KindSinkWriteFailed, s.path, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	columns := append([]string{"row_key"}, match.Columns...)
	columns = append(columns, "game_url")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT OR REPLACE INTO drafts (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders,
	))
	if err != nil {
		return match.Wrap(match.KindSinkWriteFailed, s.path, fmt.Errorf("preparing insert: %w", err))
	}
	defer stmt.Close()

	for _, r := range rows {
		args := []any{r.Key()}
		for _, f := range fields(r, s.delimiter) {
			args = append(args, sql.NullString{String: f.Value, Valid: f.Valid})
		}
		args = append(args, r.GameURL)

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return match.Wrap(match.KindSinkWriteFailed, s.path, fmt.Errorf("inserting %s: %w", r.GameURL, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return match.Wrap(match.KindSinkWriteFailed, s.path, fmt.Errorf("committing rows: %w", err))
	}

	logger.Info("rows written", logger.Fields{"path": s.path, "rows": len(rows), "format": "sqlite"})
	return nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
