// Package housenumber decides whether a house number falls inside a Polish
// address range pattern such as "270-336(p), 283-335(n)" or "4a-9/11".
//
// Patterns come straight from the postal record set and are not trusted:
// anything the tokenizer cannot classify is treated as non-matching rather
// than an error, so malformed source data degrades to "no match" instead of
// failing a lookup.
package housenumber

import (
	"regexp"
	"strconv"
	"strings"
)

// tokenKind classifies a single range token. Every token a pattern can
// contain is exactly one of these; the evaluator switches over them
// exhaustively instead of re-trying regexes in order.
type tokenKind int

const (
	kindInvalid tokenKind = iota
	kindIndividual            // "60", "35c"
	kindSimpleRange           // "1-12", "31-31a"
	kindSideRange             // "1-41(n)", "2-60(p)"
	kindOpenEnded             // "337-DK", "6a-DK(p)"
	kindSlashSet              // "2/4"
	kindSlashRangeHigh        // "55-69/71(n)": range plus detached high point
	kindSlashRangeLow         // "2/4-10(p)": detached low point plus range
	kindSlashComplex          // "1/3-23/25(n)": four explicit members
)

// parity restricts a token to one side of the street.
type parity int

const (
	anySide parity = iota
	oddSide        // (n), nieparzyste
	evenSide       // (p), parzyste
)

func (p parity) allows(n int) bool {
	switch p {
	case oddSide:
		return n%2 == 1
	case evenSide:
		return n%2 == 0
	}
	return true
}

// token is the parsed form of one comma-separated range token.
type token struct {
	kind tokenKind
	side parity

	raw string // trimmed token text, for exact individual comparison

	value       int  // individual value
	letter      bool // individual carries a letter suffix
	start, end  int  // numeric bounds for range kinds
	startLetter bool // open-ended start carried a letter suffix ("6a-DK")
	point       int  // detached endpoint for the slash-range kinds
	members     [4]int
}

var (
	reNumericPrefix = regexp.MustCompile(`^(\d+)`)
	reLetter        = regexp.MustCompile(`[a-z]`)
	reIndividual    = regexp.MustCompile(`^\d+[a-z]?$`)
	reSideSuffix    = regexp.MustCompile(`\(([np])\)$`)
	reOpenEnded     = regexp.MustCompile(`^(\d+)([a-z]?)-(?i:DK)$`)
	reSimpleRange   = regexp.MustCompile(`^(\d+)[a-z]?-(\d+)[a-z]?$`)

	// Slash shapes overlap, so parseSlash tries them most-specific first.
	// Endpoints tolerate a letter suffix ("4a-9/11"); membership is decided
	// on the numeric part.
	reSlashComplex   = regexp.MustCompile(`^(\d+)[a-z]?/(\d+)[a-z]?-(\d+)[a-z]?/(\d+)[a-z]?(?:\(([np])\))?$`)
	reSlashRangeHigh = regexp.MustCompile(`^(\d+)[a-z]?-(\d+)[a-z]?/(\d+)[a-z]?(?:\(([np])\))?$`)
	reSlashRangeLow  = regexp.MustCompile(`^(\d+)[a-z]?/(\d+)[a-z]?-(\d+)[a-z]?(?:\(([np])\))?$`)
	reSlashSet       = regexp.MustCompile(`^(\d+)[a-z]?/(\d+)[a-z]?$`)
)

// NumericPart extracts the leading digit run of a house number,
// "123a" -> 123. The second result is false when there are no leading
// digits.
func NumericPart(houseNumber string) (int, bool) {
	m := reNumericPrefix.FindStringSubmatch(strings.TrimSpace(houseNumber))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Matches reports whether houseNumber falls inside rangePattern.
//
// A comma-separated pattern matches when any of its tokens matches. Empty
// or unparseable input never matches and never errors. The function is
// pure and safe for concurrent use.
func Matches(houseNumber, rangePattern string) bool {
	houseNumber = strings.TrimSpace(houseNumber)
	rangePattern = strings.TrimSpace(rangePattern)
	if houseNumber == "" || rangePattern == "" {
		return false
	}

	if strings.Contains(rangePattern, ",") {
		for _, part := range strings.Split(rangePattern, ",") {
			if matchToken(houseNumber, strings.TrimSpace(part)) {
				return true
			}
		}
		return false
	}
	return matchToken(houseNumber, rangePattern)
}

// matchToken evaluates a single comma-free token.
func matchToken(houseNumber, raw string) bool {
	tok := parseToken(raw)
	if tok.kind == kindInvalid {
		return false
	}

	if tok.kind == kindIndividual {
		if tok.letter {
			// "35c" only matches the identical string.
			return houseNumber == tok.raw
		}
		n, ok := NumericPart(houseNumber)
		return ok && n == tok.value
	}

	n, ok := NumericPart(houseNumber)
	if !ok {
		return false
	}

	inRange := false
	switch tok.kind {
	case kindSimpleRange, kindSideRange:
		inRange = tok.start <= n && n <= tok.end
	case kindOpenEnded:
		// "6a-DK": the bare numeric twin of a letter-suffixed start is
		// outside the range, everything above it is inside.
		if tok.startLetter && !reLetter.MatchString(houseNumber) && n == tok.start {
			return false
		}
		inRange = n >= tok.start
	case kindSlashSet:
		inRange = n == tok.members[0] || n == tok.members[1]
	case kindSlashRangeHigh:
		inRange = (tok.start <= n && n <= tok.end) || n == tok.point
	case kindSlashRangeLow:
		// Only the second slash element anchors the low bound; the first
		// is excluded from the match set.
		inRange = tok.start <= n && n <= tok.end
	case kindSlashComplex:
		inRange = n == tok.members[0] || n == tok.members[1] ||
			n == tok.members[2] || n == tok.members[3]
	}
	if !inRange {
		return false
	}
	return tok.side.allows(n)
}

// parseToken classifies one token. Unrecognized input yields kindInvalid.
func parseToken(raw string) token {
	if reIndividual.MatchString(raw) {
		n, _ := NumericPart(raw)
		return token{
			kind:   kindIndividual,
			raw:    raw,
			value:  n,
			letter: reLetter.MatchString(raw),
		}
	}

	if strings.Contains(raw, "/") {
		return parseSlash(raw)
	}

	side := anySide
	base := raw
	if m := reSideSuffix.FindStringSubmatch(raw); m != nil {
		side = sideFor(m[1])
		base = raw[:len(raw)-len(m[0])]
	}

	if m := reOpenEnded.FindStringSubmatch(base); m != nil {
		start, _ := strconv.Atoi(m[1])
		return token{
			kind:        kindOpenEnded,
			side:        side,
			start:       start,
			startLetter: m[2] != "",
		}
	}

	if m := reSimpleRange.FindStringSubmatch(base); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		kind := kindSimpleRange
		if side != anySide {
			kind = kindSideRange
		}
		return token{kind: kind, side: side, start: start, end: end}
	}

	return token{kind: kindInvalid}
}

// parseSlash classifies the four slash notations, most specific first so a
// double-slash token never falls through to a partial interpretation.
func parseSlash(raw string) token {
	if m := reSlashComplex.FindStringSubmatch(raw); m != nil {
		t := token{kind: kindSlashComplex, side: sideFor(m[5])}
		for i := 0; i < 4; i++ {
			t.members[i], _ = strconv.Atoi(m[i+1])
		}
		return t
	}

	if m := reSlashRangeHigh.FindStringSubmatch(raw); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		point, _ := strconv.Atoi(m[3])
		return token{kind: kindSlashRangeHigh, side: sideFor(m[4]), start: start, end: end, point: point}
	}

	if m := reSlashRangeLow.FindStringSubmatch(raw); m != nil {
		point, _ := strconv.Atoi(m[1])
		start, _ := strconv.Atoi(m[2])
		end, _ := strconv.Atoi(m[3])
		return token{kind: kindSlashRangeLow, side: sideFor(m[4]), start: start, end: end, point: point}
	}

	if m := reSlashSet.FindStringSubmatch(raw); m != nil {
		t := token{kind: kindSlashSet}
		t.members[0], _ = strconv.Atoi(m[1])
		t.members[1], _ = strconv.Atoi(m[2])
		return t
	}

	return token{kind: kindInvalid}
}

func sideFor(indicator string) parity {
	switch indicator {
	case "n":
		return oddSide
	case "p":
		return evenSide
	}
	return anySide
}
