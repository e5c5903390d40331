package track

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jmorales/seatscout/internal/model"
)

// ErrNotFound is returned when no tracked game has the requested ID.
var ErrNotFound = errors.New("tracked game not found")

// Store persists tracked games.
type Store interface {
	// Create inserts a tracked game. The caller assigns the ID.
	Create(ctx context.Context, tg model.TrackedGame) error

	// Get returns one tracked game, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (model.TrackedGame, error)

	// List returns all tracked games, newest first.
	List(ctx context.Context) ([]model.TrackedGame, error)

	// Delete removes a tracked game. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases the backing connection.
	Close() error
}

// NewTrackedGame builds a tracked game with a fresh ID and timestamp.
func NewTrackedGame(gameID string, targetCents int64, label string, nowMicro int64) model.TrackedGame {
	return model.TrackedGame{
		ID:          uuid.New(),
		GameID:      gameID,
		TargetCents: targetCents,
		Label:       label,
		CreatedAt:   nowMicro,
	}
}
