package housenumber

import (
	"strconv"
	"testing"
)

func TestMatchesSimpleRanges(t *testing.T) {
	tests := []struct {
		houseNumber string
		pattern     string
		want        bool
	}{
		{"2", "1-12", true},
		{"1", "1-12", true},
		{"12", "1-12", true},
		{"13", "1-12", false},
		{"0", "1-12", false},

		// Degenerate single-value range.
		{"5", "5-5", true},
		{"6", "5-5", false},

		// Reversed bounds are an empty set, not an error.
		{"4", "5-3", false},
		{"5", "5-3", false},
		{"3", "5-3", false},

		// Letter-suffixed bounds still contain plain interior numbers.
		{"31", "31-31a", true},
		{"31a", "31-31a", true},
		{"32", "31-31a", false},
		{"5", "4a-9", true},
	}

	for _, tt := range tests {
		t.Run(tt.houseNumber+" in "+tt.pattern, func(t *testing.T) {
			if got := Matches(tt.houseNumber, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.houseNumber, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesSideRestrictedRanges(t *testing.T) {
	tests := []struct {
		houseNumber string
		pattern     string
		want        bool
	}{
		{"1", "1-41(n)", true},
		{"2", "1-41(n)", false},
		{"41", "1-41(n)", true},
		{"43", "1-41(n)", false},

		{"2", "2-60(p)", true},
		{"60", "2-60(p)", true},
		{"3", "2-60(p)", false},
		{"61", "2-60(p)", false},

		{"17", "17-21(n)", true},
		{"18", "17-21(n)", false},
		{"19", "17-21(n)", true},
		{"21", "17-21(n)", true},
		{"22", "17-21(n)", false},

		// Degenerate range with a parity the single value cannot satisfy.
		{"5", "5-5(p)", false},
		{"6", "5-5(p)", false},
	}

	for _, tt := range tests {
		t.Run(tt.houseNumber+" in "+tt.pattern, func(t *testing.T) {
			if got := Matches(tt.houseNumber, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.houseNumber, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesOpenEndedRanges(t *testing.T) {
	tests := []struct {
		houseNumber string
		pattern     string
		want        bool
	}{
		{"337", "337-DK", true},
		{"500", "337-DK", true},
		{"336", "337-DK", false},

		{"30", "30-DK(p)", true},
		{"100", "30-DK(p)", true},
		{"31", "30-DK(p)", false},
		{"29", "30-DK(p)", false},

		// Lowercase dk in source data.
		{"40", "30-dk", true},

		// Letter-suffixed start: the bare numeric twin is excluded.
		{"6", "6a-DK", false},
		{"6a", "6a-DK", true},
		{"7", "6a-DK", true},
		{"100", "6a-DK", true},
		{"6", "6a-DK(p)", false},
		{"7", "6a-DK(p)", false},
		{"8", "6a-DK(p)", true},
	}

	for _, tt := range tests {
		t.Run(tt.houseNumber+" in "+tt.pattern, func(t *testing.T) {
			if got := Matches(tt.houseNumber, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.houseNumber, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesOpenEndedHasNoUpperBound(t *testing.T) {
	for _, start := range []int{1, 337} {
		pattern := strconv.Itoa(start) + "-DK"
		n := strconv.Itoa(start + 10000)
		if !Matches(n, pattern) {
			t.Errorf("Matches(%q, %q) = false, want true", n, pattern)
		}
	}
}

func TestMatchesIndividualNumbers(t *testing.T) {
	tests := []struct {
		houseNumber string
		pattern     string
		want        bool
	}{
		{"60", "60", true},
		{"61", "60", false},
		{"35c", "35c", true},
		{"35", "35c", false},
		{"35b", "35c", false},

		// A letterless token matches by numeric value.
		{"35c", "35", true},
		{"60a", "60", true},
	}

	for _, tt := range tests {
		t.Run(tt.houseNumber+" in "+tt.pattern, func(t *testing.T) {
			if got := Matches(tt.houseNumber, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.houseNumber, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesSlashNotation(t *testing.T) {
	tests := []struct {
		houseNumber string
		pattern     string
		want        bool
	}{
		// Two-element set.
		{"2", "2/4", true},
		{"4", "2/4", true},
		{"3", "2/4", false},

		// Range with a detached high endpoint.
		{"55", "55-69/71(n)", true},
		{"69", "55-69/71(n)", true},
		{"71", "55-69/71(n)", true},
		{"56", "55-69/71(n)", false},
		{"70", "55-69/71(n)", false},
		{"72", "55-69/71(n)", false},
		{"4a", "4a-9/11", true},
		{"5", "4a-9/11", true},
		{"9", "4a-9/11", true},
		{"11", "4a-9/11", true},
		{"10", "4a-9/11", false},
		{"12", "4a-9/11", false},

		// Detached low point plus range: the first element is excluded,
		// only the second anchors the low bound.
		{"2", "2/4-10(p)", false},
		{"4", "2/4-10(p)", true},
		{"6", "2/4-10(p)", true},
		{"10", "2/4-10(p)", true},
		{"5", "2/4-10(p)", false},
		{"12", "2/4-10(p)", false},

		// Double-slash form is a four-element set.
		{"1", "1/3-23/25(n)", true},
		{"3", "1/3-23/25(n)", true},
		{"23", "1/3-23/25(n)", true},
		{"25", "1/3-23/25(n)", true},
		{"2", "1/3-23/25(n)", false},
		{"24", "1/3-23/25(n)", false},
		{"5", "1/3-23/25(n)", false},
	}

	for _, tt := range tests {
		t.Run(tt.houseNumber+" in "+tt.pattern, func(t *testing.T) {
			if got := Matches(tt.houseNumber, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.houseNumber, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesCommaSeparatedPatterns(t *testing.T) {
	tests := []struct {
		houseNumber string
		pattern     string
		want        bool
	}{
		{"270", "270-336(p), 283-335(n)", true},
		{"283", "270-336(p), 283-335(n)", true},
		{"284", "270-336(p), 283-335(n)", true},
		{"281", "270-336(p), 283-335(n)", false},
		{"337", "270-336(p), 283-335(n)", false},

		// Mixed token kinds in one pattern, including slash tokens.
		{"4a", "4a-9/11, 7-29/31(n), 33/37", true},
		{"15", "4a-9/11, 7-29/31(n), 33/37", true},
		{"33", "4a-9/11, 7-29/31(n), 33/37", true},
		{"37", "4a-9/11, 7-29/31(n), 33/37", true},
		{"32", "4a-9/11, 7-29/31(n), 33/37", false},

		// A malformed token contributes nothing to the disjunction.
		{"7", "garbage, 5-9", true},
		{"4", "garbage, 5-9", false},
	}

	for _, tt := range tests {
		t.Run(tt.houseNumber+" in "+tt.pattern, func(t *testing.T) {
			if got := Matches(tt.houseNumber, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.houseNumber, tt.pattern, got, tt.want)
			}
		})
	}
}

// A comma-separated pattern must behave exactly like the OR of its tokens.
func TestMatchesIsDisjunctionOverTokens(t *testing.T) {
	tokens := []string{"1-12", "15-41(n)", "50-DK(p)", "2/4", "35c", "55-69/71(n)"}
	pattern := ""
	for i, tok := range tokens {
		if i > 0 {
			pattern += ", "
		}
		pattern += tok
	}

	for n := 0; n <= 120; n++ {
		houseNumber := strconv.Itoa(n)
		want := false
		for _, tok := range tokens {
			if Matches(houseNumber, tok) {
				want = true
				break
			}
		}
		if got := Matches(houseNumber, pattern); got != want {
			t.Errorf("Matches(%q, %q) = %v, want %v", houseNumber, pattern, got, want)
		}
	}
}

func TestMatchesFailsClosed(t *testing.T) {
	tests := []struct {
		name        string
		houseNumber string
		pattern     string
	}{
		{"empty house number", "", "1-10"},
		{"empty pattern", "12", ""},
		{"both empty", "", ""},
		{"blank house number", "   ", "1-10"},
		{"blank pattern", "12", "   "},
		{"no leading digits", "abc", "1-10"},
		{"letter only vs individual", "a", "5"},
		{"malformed range", "5", "brak danych"},
		{"dangling dash", "5", "5-"},
		{"double dash", "5", "1--9"},
		{"unmatched slash form", "5", "1/2/3"},
		{"side indicator alone", "5", "(n)"},
		{"dk without start", "5", "DK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Matches(tt.houseNumber, tt.pattern) {
				t.Errorf("Matches(%q, %q) = true, want false", tt.houseNumber, tt.pattern)
			}
		})
	}
}

func TestMatchesTrimsWhitespace(t *testing.T) {
	tests := []struct {
		houseNumber string
		pattern     string
		want        bool
	}{
		{"  7 ", " 1-12 ", true},
		{"\t35c", "35c\n", true},
		{" 500", " 337-DK ", true},
	}

	for _, tt := range tests {
		if got := Matches(tt.houseNumber, tt.pattern); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.houseNumber, tt.pattern, got, tt.want)
		}
	}
}

func TestNumericPart(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"123", 123, true},
		{"123a", 123, true},
		{"4a", 4, true},
		{" 17 ", 17, true},
		{"", 0, false},
		{"abc", 0, false},
		{"a12", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NumericPart(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NumericPart(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func BenchmarkMatches(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Matches("284", "270-336(p), 283-335(n), 4a-9/11, 337-DK")
	}
}
