package pricing

import (
	"sort"
	"strings"

	"github.com/jmorales/seatscout/internal/model"
)

// Options controls filtering and sorting in Aggregate.
type Options struct {
	IncludeFees    bool
	SortDescending bool

	// SectionFilter keeps only listings in the named sections.
	// Empty means no section filtering.
	SectionFilter []string

	// MinQuantityHint enables the pseudo-availability filter when > 0.
	MinQuantityHint int
}

// cheapestSliceSize bounds the derived "Cheapest Available" group when no
// listing is tagged with that category directly.
const cheapestSliceSize = 10

// Aggregate groups listings into the declared categories, applies section
// and quantity filters, and sorts each group by display price.
//
// The category named "Cheapest Available" (case-insensitive) is surfaced as
// a distinguished first group; remaining non-empty categories follow in
// their input order. Categories left empty after filtering are omitted.
func Aggregate(listings []model.Listing, categories []model.Category, opts Options) []model.CategoryGroup {
	filtered := applyFilters(Normalize(listings, opts.IncludeFees), opts)

	byCategory := make(map[string][]model.DisplayListing)
	for _, dl := range filtered {
		byCategory[dl.CategoryID] = append(byCategory[dl.CategoryID], dl)
	}

	var cheapest *model.CategoryGroup
	groups := make([]model.CategoryGroup, 0, len(categories))

	for _, cat := range categories {
		if strings.EqualFold(cat.Name, model.CheapestAvailableName) {
			members := byCategory[cat.ID]
			if len(members) == 0 {
				members = cheapestSlice(filtered)
			}
			if len(members) > 0 {
				g := model.CategoryGroup{Category: cat, Listings: sortGroup(members, opts)}
				cheapest = &g
			}
			continue
		}

		members := byCategory[cat.ID]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, model.CategoryGroup{
			Category: cat,
			Listings: sortGroup(members, opts),
		})
	}

	if cheapest != nil {
		return append([]model.CategoryGroup{*cheapest}, groups...)
	}
	return groups
}

// applyFilters runs the section and quantity filters, preserving order.
func applyFilters(listings []model.DisplayListing, opts Options) []model.DisplayListing {
	out := make([]model.DisplayListing, 0, len(listings))
	for _, dl := range listings {
		if len(opts.SectionFilter) > 0 && !sectionMatch(dl.Section, opts.SectionFilter) {
			continue
		}
		if opts.MinQuantityHint > 0 && !QuantityAvailable(dl.ID, opts.MinQuantityHint) {
			continue
		}
		out = append(out, dl)
	}
	return out
}

func sectionMatch(section string, filter []string) bool {
	for _, s := range filter {
		if section == s {
			return true
		}
	}
	return false
}

// QuantityAvailable is a deterministic pseudo-availability filter standing
// in for real inventory data: a listing passes when the sum of its ID's
// character codes mod 9 is below the requested quantity. The formula is a
// placeholder kept bit-compatible with the data it was seeded from; do not
// extend it.
func QuantityAvailable(id string, minQuantity int) bool {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return sum%9 < minQuantity
}

// sortGroup returns a price-sorted copy of the group. Ties keep their
// original input order.
func sortGroup(members []model.DisplayListing, opts Options) []model.DisplayListing {
	out := make([]model.DisplayListing, len(members))
	copy(out, members)

	if opts.SortDescending {
		sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayCents > out[j].DisplayCents })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayCents < out[j].DisplayCents })
	}
	return out
}

// cheapestSlice derives the distinguished group from untagged listings:
// the lowest-priced listings across all sections.
func cheapestSlice(filtered []model.DisplayListing) []model.DisplayListing {
	if len(filtered) == 0 {
		return nil
	}

	asc := make([]model.DisplayListing, len(filtered))
	copy(asc, filtered)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].DisplayCents < asc[j].DisplayCents })

	if len(asc) > cheapestSliceSize {
		asc = asc[:cheapestSliceSize]
	}
	return asc
}
