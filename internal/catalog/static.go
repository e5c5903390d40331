package catalog

import "github.com/jmorales/seatscout/internal/model"

// Static reference data, served whenever the catalog tables are
// unreachable. IDs here are the ones the area mapping below produces, so
// live listings always land in a declared category.

// StaticCategories returns the built-in seating tiers in display order.
func StaticCategories() []model.Category {
	return []model.Category{
		{ID: "cheapest", Name: "Cheapest Available", Description: "Lowest prices across every section"},
		{ID: "infield", Name: "Infield", Description: "Home plate and baseline seating"},
		{ID: "outfield", Name: "Outfield", Description: "Left, right, and center field seating"},
		{ID: "upper-deck", Name: "Upper Deck", Description: "Upper level reserved seating"},
		{ID: "other", Name: "Other Seating", Description: "Suites, standing room, and unclassified sections"},
	}
}

// StaticSources returns the built-in vendor list.
func StaticSources() []model.VendorSource {
	return []model.VendorSource{
		{ID: "stubhub", Name: "StubHub", Homepage: "https://www.stubhub.com"},
		{ID: "ticketmaster", Name: "Ticketmaster", Homepage: "https://www.ticketmaster.com"},
	}
}

// CategoryIDForArea maps a classified stadium area to the seating tier it
// is displayed under.
func CategoryIDForArea(area model.AreaTag) string {
	switch area {
	case model.AreaPlate, model.AreaFirstBase, model.AreaThirdBase:
		return "infield"
	case model.AreaLeftField, model.AreaRightField, model.AreaOutfieldLower, model.AreaOutfieldUpper:
		return "outfield"
	case model.AreaUpperDeck:
		return "upper-deck"
	default:
		return "other"
	}
}
