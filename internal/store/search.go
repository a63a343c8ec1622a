package store

import (
	"fmt"
	"strings"

	"github.com/kodpocztowy/internal/housenumber"
	"github.com/kodpocztowy/internal/normalize"
)

// SearchResult is a search outcome plus how it was obtained, so the API
// can tell callers when a softer tier served their query.
type SearchResult struct {
	Records           []Record
	SearchType        string // "exact" or "polish_characters"
	FallbackUsed      bool
	NormalizationUsed bool
	Message           string
}

// maxOversample caps how many rows are pulled for in-process house-number
// filtering.
const maxOversample = 1000

// Search runs the four-tier lookup:
//
//  1. exact filters,
//  2. the same filters against the diacritic-normalized columns,
//  3. query relaxations on the original filters (drop house number, then
//     drop street),
//  4. the same relaxations against the normalized columns.
//
// The first tier producing records wins.
func (s *Store) Search(params normalize.SearchParams) (*SearchResult, error) {
	normalizedParams := params.Normalized()

	// Tier 1: exact.
	records, err := s.queryFiltered(params, false)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return &SearchResult{Records: records, SearchType: "exact"}, nil
	}

	// Tier 2: diacritic-normalized columns.
	records, err = s.queryFiltered(normalizedParams, true)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return &SearchResult{
			Records:           records,
			SearchType:        "polish_characters",
			NormalizationUsed: true,
			Message:           "Search performed with Polish character normalization.",
		}, nil
	}

	// Tier 3: relaxations of the original filters.
	records, message, err := s.queryRelaxed(params, false)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return &SearchResult{
			Records:      records,
			SearchType:   "exact",
			FallbackUsed: true,
			Message:      message,
		}, nil
	}

	// Tier 4: relaxations against the normalized columns.
	records, message, err = s.queryRelaxed(normalizedParams, true)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return &SearchResult{
			Records:           records,
			SearchType:        "polish_characters",
			FallbackUsed:      true,
			NormalizationUsed: true,
			Message:           message + " Polish characters were normalized for search.",
		}, nil
	}

	return &SearchResult{Records: nil, SearchType: "exact"}, nil
}

// queryFiltered runs one SQL query and applies the house-number filter.
func (s *Store) queryFiltered(params normalize.SearchParams, useNormalized bool) ([]Record, error) {
	query, args := buildSearchQuery(params, useNormalized)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return filterByHouseNumber(records, params.HouseNumber, params.Limit), nil
}

// queryRelaxed tries each relaxation in order and returns the first
// non-empty result.
func (s *Store) queryRelaxed(params normalize.SearchParams, useNormalized bool) ([]Record, string, error) {
	for _, r := range relaxationsFor(params) {
		query, args := buildSearchQuery(r.params, useNormalized)
		rows, err := s.db.Query(query, args...)
		if err != nil {
			return nil, "", fmt.Errorf("fallback database query failed: %w", err)
		}
		records, err := scanRecords(rows)
		if err != nil {
			return nil, "", err
		}
		if len(records) > 0 {
			return records, r.message, nil
		}
	}
	return nil, "", nil
}

// buildSearchQuery assembles the filter query. City matches by prefix,
// street by substring, administrative areas exactly, all case-insensitive.
// When a house number is present the limit is oversampled because rows are
// filtered again in-process.
func buildSearchQuery(params normalize.SearchParams, useNormalized bool) (string, []interface{}) {
	cityCol := "city"
	streetCol := "street"
	if useNormalized {
		cityCol = "city_normalized"
		streetCol = "street_normalized"
	}

	var b strings.Builder
	b.WriteString("SELECT " + recordColumns + " FROM postal_codes WHERE 1=1")
	var args []interface{}

	appendFilter := func(clause string, value string) {
		args = append(args, value)
		fmt.Fprintf(&b, clause, len(args))
	}

	if has(params.City) {
		appendFilter(" AND "+cityCol+" ILIKE $%d", *params.City+"%")
	}
	if has(params.Street) {
		appendFilter(" AND "+streetCol+" ILIKE $%d", "%"+*params.Street+"%")
	}
	if has(params.Province) {
		appendFilter(" AND province ILIKE $%d", *params.Province)
	}
	if has(params.County) {
		appendFilter(" AND county ILIKE $%d", *params.County)
	}
	if has(params.Municipality) {
		appendFilter(" AND municipality ILIKE $%d", *params.Municipality)
	}

	sqlLimit := params.Limit
	if has(params.HouseNumber) {
		sqlLimit = params.Limit * 5
		if sqlLimit > maxOversample {
			sqlLimit = maxOversample
		}
	}
	args = append(args, sqlLimit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))

	return b.String(), args
}

// filterByHouseNumber keeps records whose range pattern contains the house
// number. Records without a pattern never match a house-number search.
func filterByHouseNumber(records []Record, houseNumber *string, limit int) []Record {
	if !has(houseNumber) {
		if len(records) > limit {
			return records[:limit]
		}
		return records
	}

	var filtered []Record
	for _, r := range records {
		if r.HouseNumbers == nil || *r.HouseNumbers == "" {
			continue
		}
		if housenumber.Matches(*houseNumber, *r.HouseNumbers) {
			filtered = append(filtered, r)
			if len(filtered) >= limit {
				break
			}
		}
	}
	return filtered
}

// relaxation is one step of the sequential-degradation policy: a softened
// copy of the filters plus the message explaining what was dropped.
type relaxation struct {
	params  normalize.SearchParams
	message string
}

// relaxationsFor returns the ordered relaxations for the given filters:
// first drop the house number, then drop the street as well.
func relaxationsFor(params normalize.SearchParams) []relaxation {
	var out []relaxation

	if has(params.HouseNumber) {
		relaxed := params
		relaxed.HouseNumber = nil

		var location []string
		if has(params.Street) {
			location = append(location, fmt.Sprintf("street '%s'", *params.Street))
		}
		if has(params.City) {
			location = append(location, fmt.Sprintf("city '%s'", *params.City))
		}
		locationStr := ""
		if len(location) > 0 {
			locationStr = " in " + strings.Join(location, " in ")
		}

		out = append(out, relaxation{
			params: relaxed,
			message: fmt.Sprintf("House number '%s' not found%s. Showing all results%s.",
				*params.HouseNumber, locationStr, locationStr),
		})
	}

	if has(params.City) && has(params.Street) {
		relaxed := params
		relaxed.Street = nil
		relaxed.HouseNumber = nil

		var message string
		if has(params.HouseNumber) {
			message = fmt.Sprintf("Street '%s' with house number '%s' not found in %s. Showing all results for %s.",
				*params.Street, *params.HouseNumber, *params.City, *params.City)
		} else {
			message = fmt.Sprintf("Street '%s' not found in %s. Showing all results for %s.",
				*params.Street, *params.City, *params.City)
		}

		out = append(out, relaxation{params: relaxed, message: message})
	}

	return out
}

func has(s *string) bool {
	return s != nil && *s != ""
}
