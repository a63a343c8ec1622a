// Package importer loads the flat Polish postal record CSV into the
// postal_codes table, computing the diacritic-normalized search columns
// on the way in.
package importer

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kodpocztowy/internal/normalize"
)

// CSVImporter handles importing postal record CSV files.
type CSVImporter struct {
	db *sql.DB

	// Delimiter of the source export. The national file is
	// semicolon-separated.
	Delimiter rune
}

// NewCSVImporter creates a new CSV importer.
func NewCSVImporter(db *sql.DB) *CSVImporter {
	return &CSVImporter{db: db, Delimiter: ';'}
}

// Import reads a CSV file with the columns
//
//	postal_code;city;street;house_numbers;municipality;county;province
//
// (header row required) and inserts each row. Rows that fail to insert are
// counted and skipped rather than aborting the load.
func (ci *CSVImporter) Import(filename string) (int, error) {
	fmt.Printf("Importing postal records from %s...\n", filename)

	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ci.Delimiter
	reader.FieldsPerRecord = 7

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	stmt, err := ci.db.Prepare(`
		INSERT INTO postal_codes (
			postal_code, city, street, house_numbers, municipality, county, province,
			city_normalized, street_normalized
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	imported := 0
	failed := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error reading CSV record: %v\n", err)
			failed++
			continue
		}

		row := rowFromRecord(record)
		_, err = stmt.Exec(row.postalCode, row.city, row.street, row.houseNumbers,
			row.municipality, row.county, row.province,
			normalize.Polish(row.city), nullableNormalized(row.street))
		if err != nil {
			failed++
			continue
		}

		imported++
		if imported%10000 == 0 {
			fmt.Printf("  %d records imported...\n", imported)
		}
	}

	fmt.Printf("Imported %d records (%d failed)\n", imported, failed)
	return imported, nil
}

// NormalizeExisting backfills the normalized columns for rows loaded
// before normalization existed.
func (ci *CSVImporter) NormalizeExisting() (int, error) {
	rows, err := ci.db.Query("SELECT id, city, street FROM postal_codes WHERE city_normalized IS NULL")
	if err != nil {
		return 0, fmt.Errorf("failed to select unnormalized rows: %w", err)
	}
	defer rows.Close()

	type pending struct {
		id     int
		city   string
		street *string
	}
	var work []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.city, &p.street); err != nil {
			return 0, fmt.Errorf("failed to scan row: %w", err)
		}
		work = append(work, p)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	stmt, err := ci.db.Prepare("UPDATE postal_codes SET city_normalized = $1, street_normalized = $2 WHERE id = $3")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	updated := 0
	for _, p := range work {
		var street *string
		if p.street != nil {
			normalized := normalize.Polish(*p.street)
			street = &normalized
		}
		if _, err := stmt.Exec(normalize.Polish(p.city), street, p.id); err != nil {
			continue
		}
		updated++
	}

	fmt.Printf("Normalized %d records\n", updated)
	return updated, nil
}

// csvRow is one parsed CSV line with empty optional fields mapped to NULL.
type csvRow struct {
	postalCode   string
	city         string
	street       *string
	houseNumbers *string
	municipality *string
	county       *string
	province     string
}

func rowFromRecord(record []string) csvRow {
	return csvRow{
		postalCode:   strings.TrimSpace(record[0]),
		city:         strings.TrimSpace(record[1]),
		street:       optional(record[2]),
		houseNumbers: optional(record[3]),
		municipality: optional(record[4]),
		county:       optional(record[5]),
		province:     strings.TrimSpace(record[6]),
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nullableNormalized(s *string) *string {
	if s == nil {
		return nil
	}
	normalized := normalize.Polish(*s)
	return &normalized
}
