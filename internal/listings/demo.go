package listings

import (
	"fmt"

	"github.com/jmorales/seatscout/internal/model"
)

// demoSeat is one row of the fixture inventory shape.
type demoSeat struct {
	section   string
	row       string
	baseCents int64
	feeCents  int64
}

// demoSeats spans every seating tier so the demo result exercises the same
// category layout as live data.
var demoSeats = []demoSeat{
	{"5", "B", 18500, 2775},
	{"20", "D", 12000, 1800},
	{"40", "F", 8500, 1275},
	{"52", "J", 4200, 630},
	{"65", "C", 3600, 540},
	{"80", "K", 5900, 885},
	{"110", "A", 9900, 1485},
	{"140", "M", 2400, 360},
	{"151", "P", 1900, 285},
	{"Dugout Box 1B", "2", 26500, 3975},
	{"Home Plate Club", "1", 31000, 4650},
	{"Upper Deck Reserved", "R", 2100, 315},
}

// DemoListings returns the deterministic fixture inventory for a game,
// used when no vendor data is available. Identical inputs produce
// identical listings.
func DemoListings(gameID string, now int64) []model.Listing {
	out := make([]model.Listing, 0, len(demoSeats))
	for i, seat := range demoSeats {
		out = append(out, model.Listing{
			ID:          fmt.Sprintf("demo-%s-%d", gameID, i),
			GameID:      gameID,
			VendorID:    "demo",
			BaseCents:   seat.baseCents,
			FeeCents:    seat.feeCents,
			TotalCents:  seat.baseCents + seat.feeCents,
			Section:     seat.section,
			Row:         seat.row,
			PurchaseURL: "",
			LastUpdated: now,
		})
	}
	return out
}
