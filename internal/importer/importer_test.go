package importer

import "testing"

func TestRowFromRecord(t *testing.T) {
	record := []string{"00-950", "Warszawa", "Marszałkowska", "1-12, 15-DK(n)", "Warszawa", "Warszawa", "mazowieckie"}

	row := rowFromRecord(record)

	if row.postalCode != "00-950" || row.city != "Warszawa" || row.province != "mazowieckie" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.street == nil || *row.street != "Marszałkowska" {
		t.Errorf("street = %v, want Marszałkowska", row.street)
	}
	if row.houseNumbers == nil || *row.houseNumbers != "1-12, 15-DK(n)" {
		t.Errorf("houseNumbers = %v", row.houseNumbers)
	}
}

func TestRowFromRecordEmptyOptionalsBecomeNull(t *testing.T) {
	record := []string{"62-200", "Gniezno", "", "", " ", "", "wielkopolskie"}

	row := rowFromRecord(record)

	if row.street != nil {
		t.Errorf("street = %v, want nil", *row.street)
	}
	if row.houseNumbers != nil {
		t.Errorf("houseNumbers = %v, want nil", *row.houseNumbers)
	}
	if row.municipality != nil {
		t.Errorf("municipality = %v, want nil", *row.municipality)
	}
}

func TestNullableNormalized(t *testing.T) {
	if got := nullableNormalized(nil); got != nil {
		t.Errorf("nullableNormalized(nil) = %v, want nil", got)
	}

	street := "Świętokrzyska"
	got := nullableNormalized(&street)
	if got == nil || *got != "Swietokrzyska" {
		t.Errorf("nullableNormalized(%q) = %v, want Swietokrzyska", street, got)
	}
}
