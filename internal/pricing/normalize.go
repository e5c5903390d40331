package pricing

import "github.com/jmorales/seatscout/internal/model"

// Normalize converts raw listings to display listings, computing the
// display price from the fee-inclusion flag and classifying each section.
//
// The mapping is 1:1 and order-preserving; inputs are never mutated.
func Normalize(listings []model.Listing, includeFees bool) []model.DisplayListing {
	out := make([]model.DisplayListing, len(listings))
	for i, l := range listings {
		display := l.BaseCents
		if includeFees {
			display = l.TotalCents
		}
		out[i] = model.DisplayListing{
			Listing:      l,
			DisplayCents: display,
			Area:         Classify(l.Section),
		}
	}
	return out
}
