package pricing

import (
	"strconv"
	"strings"

	"github.com/jmorales/seatscout/internal/model"
)

// Classify maps a free-form section label to a coarse stadium area.
//
// Numeric sections map by range; non-numeric labels match keywords.
// Ambiguous labels resolve to AreaUnknown. This is a heuristic for one
// stadium layout, not a guaranteed-correct seat map.
func Classify(section string) model.AreaTag {
	s := strings.TrimSpace(section)
	if s == "" {
		return model.AreaUnknown
	}

	if n, err := strconv.Atoi(s); err == nil {
		return classifyNumber(n)
	}
	return classifyKeywords(strings.ToLower(s))
}

func classifyNumber(n int) model.AreaTag {
	switch {
	case n >= 1 && n <= 12:
		return model.AreaPlate
	case n >= 13 && n <= 33:
		return model.AreaFirstBase
	case n >= 34 && n <= 45:
		return model.AreaRightField
	case n >= 46 && n <= 60:
		return model.AreaOutfieldLower
	case n >= 61 && n <= 70:
		return model.AreaOutfieldUpper
	case n >= 71 && n <= 95:
		return model.AreaLeftField
	case n >= 96 && n <= 133:
		return model.AreaThirdBase
	case n >= 134 && n <= 165:
		return model.AreaUpperDeck
	default:
		return model.AreaUnknown
	}
}

func classifyKeywords(s string) model.AreaTag {
	switch {
	case strings.Contains(s, "dugout") || strings.Contains(s, "box"):
		if strings.Contains(s, "1b") || strings.Contains(s, "first") {
			return model.AreaFirstBase
		}
		if strings.Contains(s, "3b") || strings.Contains(s, "third") {
			return model.AreaThirdBase
		}
		return model.AreaUnknown
	case strings.Contains(s, "home") || strings.Contains(s, "plate"):
		return model.AreaPlate
	case strings.Contains(s, "upper") && strings.Contains(s, "deck"):
		return model.AreaUpperDeck
	case strings.Contains(s, "outfield"):
		if strings.Contains(s, "upper") {
			return model.AreaOutfieldUpper
		}
		return model.AreaOutfieldLower
	default:
		return model.AreaUnknown
	}
}
