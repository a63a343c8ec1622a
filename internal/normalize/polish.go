// Package normalize transliterates Polish diacritics to ASCII for the
// fallback search tiers. The record store keeps pre-normalized copies of
// the city and street columns; queries normalize their parameters with the
// same table so the two sides always agree.
package normalize

import "strings"

// polishRunes maps the nine Polish diacritic letters, both cases, to their
// ASCII equivalents. Single source of truth for the whole service.
var polishRunes = map[rune]rune{
	'ą': 'a', 'ć': 'c', 'ę': 'e', 'ł': 'l', 'ń': 'n',
	'ó': 'o', 'ś': 's', 'ź': 'z', 'ż': 'z',

	'Ą': 'A', 'Ć': 'C', 'Ę': 'E', 'Ł': 'L', 'Ń': 'N',
	'Ó': 'O', 'Ś': 'S', 'Ź': 'Z', 'Ż': 'Z',
}

// Polish replaces Polish diacritics with ASCII equivalents. Other runes
// pass through unchanged.
func Polish(text string) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if ascii, ok := polishRunes[r]; ok {
			b.WriteRune(ascii)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasPolish reports whether text contains any Polish diacritic.
func HasPolish(text string) bool {
	for _, r := range text {
		if _, ok := polishRunes[r]; ok {
			return true
		}
	}
	return false
}

// SearchParams carries the filter criteria for a postal-code search.
// Nil pointer fields mean "not filtered".
type SearchParams struct {
	City         *string
	Street       *string
	HouseNumber  *string
	Province     *string
	County       *string
	Municipality *string
	Limit        int
}

// Normalized returns a copy of the parameters with Polish diacritics
// stripped, for querying the normalized columns.
func (p SearchParams) Normalized() SearchParams {
	out := SearchParams{Limit: p.Limit}
	out.City = normalizedPtr(p.City)
	out.Street = normalizedPtr(p.Street)
	out.HouseNumber = normalizedPtr(p.HouseNumber)
	out.Province = normalizedPtr(p.Province)
	out.County = normalizedPtr(p.County)
	out.Municipality = normalizedPtr(p.Municipality)
	return out
}

func normalizedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	normalized := Polish(*s)
	return &normalized
}
