package adaptive

import "strings"

// Category identifies one of the nine fixed content profiles a material is
// generated for.
type Category string

const (
	CategoryADHD         Category = "adhd"
	CategoryAutism       Category = "autism"
	CategoryDyslexia     Category = "dyslexia"
	CategoryVisual       Category = "visual"
	CategoryHearing      Category = "hearing"
	CategoryIntellectual Category = "intellectual"
	CategorySpeech       Category = "speech"
	CategoryMotor        Category = "motor"
	CategoryGeneral      Category = "general"
)

// AllCategories is the fixed dispatch order. Aggregates are merged in this
// order, never in completion order.
var AllCategories = []Category{
	CategoryADHD,
	CategoryAutism,
	CategoryDyslexia,
	CategoryVisual,
	CategoryHearing,
	CategoryIntellectual,
	CategorySpeech,
	CategoryMotor,
	CategoryGeneral,
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(AllCategories))
	for _, c := range AllCategories {
		m[c] = struct{}{}
	}
	return m
}()

// ResolveCategory maps a raw disability-type string onto a category key.
// Matching is case-insensitive; "stammering" aliases to speech; anything
// unrecognized (including empty and "none") resolves to general.
func ResolveCategory(disabilityType string) Category {
	dt := strings.ToLower(strings.TrimSpace(disabilityType))
	if dt == "stammering" {
		return CategorySpeech
	}
	if _, ok := categorySet[Category(dt)]; ok {
		return Category(dt)
	}
	return CategoryGeneral
}

func normalized(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isNone(s string) bool {
	v := normalized(s)
	return v == "" || v == "none"
}
