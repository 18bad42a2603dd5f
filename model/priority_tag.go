package model

import "strings"

// PriorityDimension is one axis of the five-character priority tag. Each
// dimension owns a fixed position and letter; the letter is uppercase when
// the dimension is marked high, lowercase otherwise ("IiCUp" = importance,
// complexity and urgency high).
type PriorityDimension string

const (
	DimImportance PriorityDimension = "importance"
	DimInterest   PriorityDimension = "interest"
	DimComplexity PriorityDimension = "complexity"
	DimUrgency    PriorityDimension = "urgency"
	DimPressure   PriorityDimension = "pressure"
)

// PriorityDimensions holds wizard display order, which is also tag position
// order.
var PriorityDimensions = []PriorityDimension{
	DimImportance, DimInterest, DimComplexity, DimUrgency, DimPressure,
}

var dimensionLetters = map[PriorityDimension]byte{
	DimImportance: 'I',
	DimInterest:   'I',
	DimComplexity: 'C',
	DimUrgency:    'U',
	DimPressure:   'P',
}

// EncodePriorityTag builds the five-character tag string from the set of
// dimensions the user marked high.
func EncodePriorityTag(high map[PriorityDimension]bool) string {
	var b strings.Builder
	for _, dim := range PriorityDimensions {
		letter := dimensionLetters[dim]
		if high[dim] {
			b.WriteByte(letter)
		} else {
			b.WriteByte(letter + ('a' - 'A'))
		}
	}
	return b.String()
}

func ParsePriorityDimension(s string) (PriorityDimension, bool) {
	dim := PriorityDimension(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range PriorityDimensions {
		if d == dim {
			return d, true
		}
	}
	return "", false
}
