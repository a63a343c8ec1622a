// Package store is the Postgres-backed record store for Polish postal
// codes. Filtering by city, street, and administrative area happens in
// SQL; filtering by house number happens in-process against the raw
// range-pattern column using the housenumber matcher.
package store

import (
	"database/sql"
	"fmt"
)

// Record is one row of the flat postal record set.
type Record struct {
	PostalCode   string  `json:"postal_code"`
	City         string  `json:"city"`
	Street       *string `json:"street,omitempty"`
	HouseNumbers *string `json:"house_numbers,omitempty"`
	Municipality *string `json:"municipality,omitempty"`
	County       *string `json:"county,omitempty"`
	Province     string  `json:"province"`
}

// Store wraps the database handle with postal-code queries.
type Store struct {
	db *sql.DB
}

// New creates a store over an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the postal_codes table and its indexes if they do not exist.
func (s *Store) Init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS postal_codes (
		id SERIAL PRIMARY KEY,
		postal_code TEXT NOT NULL,
		city TEXT NOT NULL,
		street TEXT,
		house_numbers TEXT,
		municipality TEXT,
		county TEXT,
		province TEXT NOT NULL,
		city_normalized TEXT,
		street_normalized TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_postal_codes_code ON postal_codes(postal_code);
	CREATE INDEX IF NOT EXISTS idx_postal_codes_city ON postal_codes(city);
	CREATE INDEX IF NOT EXISTS idx_postal_codes_city_normalized ON postal_codes(city_normalized);
	CREATE INDEX IF NOT EXISTS idx_postal_codes_street ON postal_codes(street);
	CREATE INDEX IF NOT EXISTS idx_postal_codes_province ON postal_codes(province);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

const recordColumns = "postal_code, city, street, house_numbers, municipality, county, province"

// scanRecords drains a result set of recordColumns rows.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		err := rows.Scan(&r.PostalCode, &r.City, &r.Street, &r.HouseNumbers,
			&r.Municipality, &r.County, &r.Province)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ByCode returns all records carrying the given postal code.
func (s *Store) ByCode(postalCode string) ([]Record, error) {
	query := "SELECT " + recordColumns + " FROM postal_codes WHERE postal_code = $1"
	rows, err := s.db.Query(query, postalCode)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return scanRecords(rows)
}

// Count returns the number of postal records loaded.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM postal_codes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
