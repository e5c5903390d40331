package pricing

import (
	"testing"

	"github.com/jmorales/seatscout/internal/model"
)

func TestNormalizeDisplayPrice(t *testing.T) {
	l := model.Listing{
		ID:         "sh-1",
		BaseCents:  5000,
		FeeCents:   850,
		TotalCents: 5850,
		Section:    "12",
	}

	withFees := Normalize([]model.Listing{l}, true)
	if withFees[0].DisplayCents != l.TotalCents {
		t.Errorf("includeFees=true: DisplayCents = %d, want TotalCents %d", withFees[0].DisplayCents, l.TotalCents)
	}

	withoutFees := Normalize([]model.Listing{l}, false)
	if withoutFees[0].DisplayCents != l.BaseCents {
		t.Errorf("includeFees=false: DisplayCents = %d, want BaseCents %d", withoutFees[0].DisplayCents, l.BaseCents)
	}
}

func TestNormalizePreservesOrderAndCount(t *testing.T) {
	listings := []model.Listing{
		{ID: "c", Section: "134"},
		{ID: "a", Section: "1"},
		{ID: "b", Section: ""},
	}

	out := Normalize(listings, true)
	if len(out) != len(listings) {
		t.Fatalf("len = %d, want %d", len(out), len(listings))
	}
	for i := range listings {
		if out[i].ID != listings[i].ID {
			t.Errorf("out[%d].ID = %q, want %q", i, out[i].ID, listings[i].ID)
		}
	}
}

func TestNormalizeClassifiesSections(t *testing.T) {
	listings := []model.Listing{
		{ID: "a", Section: "12"},
		{ID: "b", Section: "Upper Deck 4"},
		{ID: "c", Section: ""},
	}

	out := Normalize(listings, false)
	if out[0].Area != model.AreaPlate {
		t.Errorf("out[0].Area = %q, want plate", out[0].Area)
	}
	if out[1].Area != model.AreaUpperDeck {
		t.Errorf("out[1].Area = %q, want upper_deck", out[1].Area)
	}
	if out[2].Area != model.AreaUnknown {
		t.Errorf("out[2].Area = %q, want unknown", out[2].Area)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	listings := []model.Listing{{ID: "a", BaseCents: 100, TotalCents: 120}}
	snapshot := listings[0]

	Normalize(listings, true)

	if listings[0] != snapshot {
		t.Error("Normalize mutated its input")
	}
}
