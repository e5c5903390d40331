package model

import (
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Vendor Types
// -----------------------------------------------------------------------------

// VendorToken is an OAuth client-credentials token for a single vendor.
// Tokens are immutable once issued; refresh replaces the whole value.
type VendorToken struct {
	AccessToken string // Bearer token value
	TokenType   string // Usually "bearer"
	ExpiresIn   int    // Lifetime in seconds, as reported by the vendor
	IssuedAt    int64  // Issue time (ms since epoch), stamped locally
}

// TokenSafetyMargin is subtracted from a token's lifetime so we never send
// a token that expires mid-request.
const TokenSafetyMargin = 5 * time.Minute

// Valid reports whether the token can still be used at the given time.
func (t *VendorToken) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	expiresAt := t.IssuedAt + int64(t.ExpiresIn)*1000 - TokenSafetyMargin.Milliseconds()
	return now.UnixMilli() < expiresAt
}

// VendorCredentials holds a vendor's OAuth client credentials.
// Externally owned; never logged.
type VendorCredentials struct {
	ClientID     string
	ClientSecret string
}

// VendorSource describes a ticket vendor in the source catalog.
type VendorSource struct {
	ID       string `json:"id"`       // Vendor key (e.g., "stubhub", "ticketmaster")
	Name     string `json:"name"`     // Display name
	Homepage string `json:"homepage"` // Vendor homepage URL
}

// -----------------------------------------------------------------------------
// Listing Types
// -----------------------------------------------------------------------------

// Listing is a single ticket listing normalized from a vendor response.
// Invariant: TotalCents == BaseCents + FeeCents.
type Listing struct {
	ID          string `json:"id"`           // Vendor-scoped listing ID
	GameID      string `json:"game_id"`      // Game this listing belongs to
	CategoryID  string `json:"category_id"`  // Seating category ID
	VendorID    string `json:"vendor_id"`    // Vendor key
	BaseCents   int64  `json:"base_cents"`   // Price before fees
	FeeCents    int64  `json:"fee_cents"`    // Service fee
	TotalCents  int64  `json:"total_cents"`  // BaseCents + FeeCents
	Section     string `json:"section"`      // Free-form section label, "" if unknown
	Row         string `json:"row"`          // Free-form row label, "" if unknown
	PurchaseURL string `json:"purchase_url"` // Deep link to the vendor checkout
	LastUpdated int64  `json:"last_updated"` // Last refresh (µs since epoch)
}

// AreaTag is a coarse stadium-location classification derived from a
// vendor's free-form section label.
type AreaTag string

const (
	AreaFirstBase     AreaTag = "first_base"
	AreaThirdBase     AreaTag = "third_base"
	AreaLeftField     AreaTag = "left_field"
	AreaRightField    AreaTag = "right_field"
	AreaOutfieldUpper AreaTag = "outfield_upper"
	AreaOutfieldLower AreaTag = "outfield_lower"
	AreaPlate         AreaTag = "plate"
	AreaUpperDeck     AreaTag = "upper_deck"
	AreaUnknown       AreaTag = "unknown"
)

// DisplayListing is a Listing annotated for presentation. Derived, never
// persisted; recomputed whenever the fee-inclusion flag changes.
type DisplayListing struct {
	Listing
	DisplayCents int64   `json:"display_cents"` // TotalCents or BaseCents per fee-inclusion flag
	Area         AreaTag `json:"area"`          // Classified stadium area
}

// Category is a seating tier (e.g., "Field Level", "Cheapest Available").
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CheapestAvailableName identifies the distinguished pseudo-category that
// the aggregation pipeline always surfaces first. Matched case-insensitively
// against Category.Name.
const CheapestAvailableName = "Cheapest Available"

// CategoryGroup is a category together with its filtered, sorted listings.
type CategoryGroup struct {
	Category Category         `json:"category"`
	Listings []DisplayListing `json:"listings"`
}

// -----------------------------------------------------------------------------
// Game & Tracking Types
// -----------------------------------------------------------------------------

// Game is an upcoming game whose tickets can be compared.
type Game struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Venue     string `json:"venue"`
	StartTime int64  `json:"start_time"` // Scheduled start (µs since epoch)
}

// TrackedGame is a caller's request to watch a game's cheapest price.
type TrackedGame struct {
	ID          uuid.UUID `json:"id"`           // Primary key
	GameID      string    `json:"game_id"`      // Game being watched
	TargetCents int64     `json:"target_cents"` // Alert when cheapest price drops to or below this
	Label       string    `json:"label"`        // Optional caller-supplied note
	CreatedAt   int64     `json:"created_at"`   // Creation time (µs since epoch)
}

// PricePoint is one observation of a game's cheapest available price.
type PricePoint struct {
	GameID     string `json:"game_id"`
	VendorID   string `json:"vendor_id"`   // Vendor that had the cheapest listing
	CheapCents int64  `json:"cheap_cents"` // Cheapest display price observed
	RecordedAt int64  `json:"recorded_at"` // Observation time (µs since epoch)
}

// PriceUpdate is broadcast to stream subscribers after each poll cycle.
type PriceUpdate struct {
	GameID     string `json:"game_id"`
	VendorID   string `json:"vendor_id"`
	CheapCents int64  `json:"cheap_cents"`
	RecordedAt int64  `json:"recorded_at"`
	Alert      bool   `json:"alert"` // True when a tracked target was crossed
}
