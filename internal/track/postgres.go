package track

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmorales/seatscout/internal/model"
)

// PostgresStore keeps tracked games in a Postgres table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool. The pool stays owned by the
// caller; Close is a no-op.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, tg model.TrackedGame) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO tracked_games (id, game_id, target_cents, label, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, tg.ID.String(), tg.GameID, tg.TargetCents, tg.Label, tg.CreatedAt)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (model.TrackedGame, error) {
	var tg model.TrackedGame
	var rawID string
	err := s.db.QueryRow(ctx, `
		SELECT id, game_id, target_cents, label, created_at
		FROM tracked_games WHERE id = $1
	`, id.String()).Scan(&rawID, &tg.GameID, &tg.TargetCents, &tg.Label, &tg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TrackedGame{}, ErrNotFound
	}
	if err != nil {
		return model.TrackedGame{}, err
	}
	tg.ID, err = uuid.Parse(rawID)
	return tg, err
}

func (s *PostgresStore) List(ctx context.Context) ([]model.TrackedGame, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, target_cents, label, created_at
		FROM tracked_games ORDER BY created_at DESC
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

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM tracked_games WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error { return nil }
