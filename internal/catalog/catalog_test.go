package catalog

import (
	"context"
	"testing"

	"github.com/jmorales/seatscout/internal/model"
)

func TestStaticFallbackWithoutDatabase(t *testing.T) {
	c := New(nil, nil)

	cats := c.Categories(context.Background())
	if len(cats) == 0 {
		t.Fatal("Categories returned empty set")
	}
	if cats[0].Name != model.CheapestAvailableName {
		t.Errorf("first static category = %q, want %q", cats[0].Name, model.CheapestAvailableName)
	}

	srcs := c.Sources(context.Background())
	if len(srcs) != 2 {
		t.Fatalf("Sources = %d entries, want 2", len(srcs))
	}
}

func TestCategoryIDForAreaIsTotal(t *testing.T) {
	areas := []model.AreaTag{
		model.AreaPlate, model.AreaFirstBase, model.AreaThirdBase,
		model.AreaLeftField, model.AreaRightField,
		model.AreaOutfieldLower, model.AreaOutfieldUpper,
		model.AreaUpperDeck, model.AreaUnknown,
	}

	declared := make(map[string]bool)
	for _, cat := range StaticCategories() {
		declared[cat.ID] = true
	}

	for _, area := range areas {
		id := CategoryIDForArea(area)
		if id == "" {
			t.Errorf("CategoryIDForArea(%q) = empty", area)
		}
		if !declared[id] {
			t.Errorf("CategoryIDForArea(%q) = %q, not in the static catalog", area, id)
		}
	}
}

func TestCategoryIDForAreaMapping(t *testing.T) {
	tests := []struct {
		area model.AreaTag
		want string
	}{
		{model.AreaPlate, "infield"},
		{model.AreaFirstBase, "infield"},
		{model.AreaRightField, "outfield"},
		{model.AreaUpperDeck, "upper-deck"},
		{model.AreaUnknown, "other"},
	}

	for _, tt := range tests {
		if got := CategoryIDForArea(tt.area); got != tt.want {
			t.Errorf("CategoryIDForArea(%q) = %q, want %q", tt.area, got, tt.want)
		}
	}
}
