package store

import (
	"fmt"
	"strings"

	"github.com/kodpocztowy/internal/normalize"
)

// Provinces lists distinct provinces, optionally narrowed to a name prefix.
// Prefixes match both the raw and the diacritic-normalized spelling.
func (s *Store) Provinces(prefix *string) ([]string, error) {
	values, err := s.distinct("province", nil, nil)
	if err != nil {
		return nil, err
	}
	return filterByPrefix(values, prefix), nil
}

// Counties lists distinct counties, optionally narrowed by province and
// name prefix.
func (s *Store) Counties(province, prefix *string) ([]string, error) {
	values, err := s.distinct("county",
		[]string{"province"}, []*string{province})
	if err != nil {
		return nil, err
	}
	return filterByPrefix(values, prefix), nil
}

// Municipalities lists distinct municipalities, optionally narrowed by
// province, county, and name prefix.
func (s *Store) Municipalities(province, county, prefix *string) ([]string, error) {
	values, err := s.distinct("municipality",
		[]string{"province", "county"}, []*string{province, county})
	if err != nil {
		return nil, err
	}
	return filterByPrefix(values, prefix), nil
}

// Cities lists distinct cities, optionally narrowed by the administrative
// levels above them and a name prefix. Prefix filtering runs in SQL against
// both the raw and the normalized column.
func (s *Store) Cities(province, county, municipality, prefix *string) ([]string, error) {
	query := "SELECT DISTINCT city FROM postal_codes WHERE city IS NOT NULL"
	var args []interface{}

	query, args = appendExact(query, args, "province", province)
	query, args = appendExact(query, args, "county", county)
	query, args = appendExact(query, args, "municipality", municipality)

	if has(prefix) {
		args = append(args, *prefix+"%", normalize.Polish(*prefix)+"%")
		query += fmt.Sprintf(" AND (city ILIKE $%d OR city_normalized ILIKE $%d)",
			len(args)-1, len(args))
	}

	query += " ORDER BY city"
	return s.queryStrings(query, args)
}

// Streets lists distinct streets, optionally narrowed by city, the
// administrative levels, and a name prefix.
func (s *Store) Streets(city, province, county, municipality, prefix *string) ([]string, error) {
	query := "SELECT DISTINCT street FROM postal_codes WHERE street IS NOT NULL AND street != ''"
	var args []interface{}

	query, args = appendExact(query, args, "city", city)
	query, args = appendExact(query, args, "province", province)
	query, args = appendExact(query, args, "county", county)
	query, args = appendExact(query, args, "municipality", municipality)

	if has(prefix) {
		args = append(args, *prefix+"%", normalize.Polish(*prefix)+"%")
		query += fmt.Sprintf(" AND (street ILIKE $%d OR street_normalized ILIKE $%d)",
			len(args)-1, len(args))
	}

	query += " ORDER BY street"
	return s.queryStrings(query, args)
}

// distinct lists one non-null column, filtered by exact matches on the
// given columns where the filter value is set.
func (s *Store) distinct(column string, filterCols []string, filters []*string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %s FROM postal_codes WHERE %s IS NOT NULL", column, column)
	var args []interface{}

	for i, col := range filterCols {
		query, args = appendExact(query, args, col, filters[i])
	}

	query += " ORDER BY " + column
	return s.queryStrings(query, args)
}

func appendExact(query string, args []interface{}, column string, value *string) (string, []interface{}) {
	if has(value) {
		args = append(args, *value)
		query += fmt.Sprintf(" AND %s ILIKE $%d", column, len(args))
	}
	return query, args
}

func (s *Store) queryStrings(query string, args []interface{}) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// filterByPrefix keeps values whose raw or normalized spelling starts with
// the prefix, compared case-insensitively.
func filterByPrefix(values []string, prefix *string) []string {
	if !has(prefix) {
		return values
	}

	rawPrefix := strings.ToLower(*prefix)
	normalizedPrefix := strings.ToLower(normalize.Polish(*prefix))

	var filtered []string
	for _, v := range values {
		raw := strings.ToLower(v)
		normalized := strings.ToLower(normalize.Polish(v))
		if strings.HasPrefix(raw, rawPrefix) || strings.HasPrefix(normalized, normalizedPrefix) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
