package domain

import "strings"

// Item condition labels shared by listings, closet items and WTB offers,
// ordered from most to least valuable.
const (
	ConditionNewWithTags = "new_with_tags"
	ConditionLikeNew     = "like_new"
	ConditionExcellent   = "excellent"
	ConditionGood        = "good"
)

type ConditionInfo struct {
	Value       string
	Label       string
	Description string
}

var Conditions = []ConditionInfo{
	{ConditionNewWithTags, "New with Tags", "Unworn, tags attached"},
	{ConditionLikeNew, "Like New", "Worn once or twice, no signs of wear"},
	{ConditionExcellent, "Excellent", "Gently used, minimal signs of wear"},
	{ConditionGood, "Good", "Used with some visible wear"},
}

func ValidCondition(s string) bool {
	for _, c := range Conditions {
		if c.Value == s {
			return true
		}
	}
	return false
}

// ConditionRank orders conditions; higher is better. Unknown labels rank 0.
func ConditionRank(s string) int {
	for i, c := range Conditions {
		if c.Value == s {
			return len(Conditions) - i
		}
	}
	return 0
}

// ConditionLabel returns the display label ("like_new" -> "Like New").
// Unknown values have their underscores replaced by spaces.
func ConditionLabel(s string) string {
	for _, c := range Conditions {
		if c.Value == s {
			return c.Label
		}
	}
	return strings.ReplaceAll(s, "_", " ")
}
