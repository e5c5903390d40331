package listings

import (
	"context"

	"github.com/jmorales/seatscout/internal/model"
	"github.com/jmorales/seatscout/internal/vendor"
)

// StubHubSource adapts the StubHub client to the Fetcher interface.
type StubHubSource struct {
	Client *vendor.Client
}

func (s *StubHubSource) VendorID() string { return vendor.StubHub }

func (s *StubHubSource) Fetch(ctx context.Context, gameID string) ([]model.Listing, error) {
	raw, err := s.Client.SearchListings(ctx, gameID)
	if err != nil {
		return nil, err
	}

	now := vendor.NowMicro()
	out := make([]model.Listing, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].ToListing(gameID, now))
	}
	return out, nil
}

// TicketmasterSource adapts the Ticketmaster client to the Fetcher interface.
type TicketmasterSource struct {
	Client *vendor.Client
}

func (t *TicketmasterSource) VendorID() string { return vendor.Ticketmaster }

func (t *TicketmasterSource) Fetch(ctx context.Context, gameID string) ([]model.Listing, error) {
	raw, err := t.Client.EventOffers(ctx, gameID)
	if err != nil {
		return nil, err
	}

	now := vendor.NowMicro()
	out := make([]model.Listing, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].ToListing(gameID, now))
	}
	return out, nil
}
