package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmorales/seatscout/internal/model"
)

// Reader serves recorded price history. A nil pool always returns empty.
type Reader struct {
	db *pgxpool.Pool
}

// NewReader wraps an existing pool.
func NewReader(db *pgxpool.Pool) *Reader {
	return &Reader{db: db}
}

// GamePoints returns the most recent samples for a game, oldest first,
// capped at limit.
func (r *Reader) GamePoints(ctx context.Context, gameID string, limit int) ([]model.PricePoint, error) {
	if r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(ctx, `
		SELECT game_id, vendor_id, cheap_cents, recorded_at
		FROM (
			SELECT game_id, vendor_id, cheap_cents, recorded_at
			FROM price_history
			WHERE game_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) recent
		ORDER BY recorded_at ASC
	`, gameID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PricePoint
	for rows.Next() {
		var p model.PricePoint
		if err := rows.Scan(&p.GameID, &p.VendorID, &p.CheapCents, &p.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
