package track

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jmorales/seatscout/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tracked_games (
	id           TEXT PRIMARY KEY,
	game_id      TEXT NOT NULL,
	target_cents INTEGER NOT NULL,
	label        TEXT NOT NULL DEFAULT '',
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tracked_games_game ON tracked_games(game_id);
`

// SQLiteStore keeps tracked games in an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, tg model.TrackedGame) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tracked_games (id, game_id, target_cents, label, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, tg.ID.String(), tg.GameID, tg.TargetCents, tg.Label, tg.CreatedAt)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (model.TrackedGame, error) {
	var tg model.TrackedGame
	var rawID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, game_id, target_cents, label, created_at
		FROM tracked_games WHERE id = ?
	`, id.String()).Scan(&rawID, &tg.GameID, &tg.TargetCents, &tg.Label, &tg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TrackedGame{}, ErrNotFound
	}
	if err != nil {
		return model.TrackedGame{}, err
	}
	tg.ID, err = uuid.Parse(rawID)
	return tg, err
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.TrackedGame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game_id, target_cents, label, created_at
		FROM tracked_games ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TrackedGame
	for rows.Next() {
		var tg model.TrackedGame
		var rawID string
		if err := rows.Scan(&rawID, &tg.GameID, &tg.TargetCents, &tg.Label, &tg.CreatedAt); err != nil {
			return nil, err
		}
		if tg.ID, err = uuid.Parse(rawID); err != nil {
			return nil, err
		}
		out = append(out, tg)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tracked_games WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
