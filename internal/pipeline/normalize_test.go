package pipeline

import (
	"reflect"
	"testing"
)

func TestNormalizeMappedColumns(t *testing.T) {
	headers := []string{"Date", "Product", "Region", "Qty", "Unit Price", "Revenue"}
	rows := []RawRow{
		{"Date": "2024-01-01", "Product": "Dark 70%", "Region": "EMEA", "Qty": "3", "Unit Price": "$4.50", "Revenue": "$13.50"},
	}
	cols := DefaultRules().Infer(headers)
	records, _ := Normalize(rows, headers, cols)
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	r := records[0]
	if r.Date != "2024-01-01" || r.Product != "Dark 70%" || r.Region != "EMEA" {
		t.Errorf("unexpected text fields: %+v", r)
	}
	if r.Quantity != 3 || r.UnitPrice != 4.5 {
		t.Errorf("quantity/price = %v/%v", r.Quantity, r.UnitPrice)
	}
	if !r.HasRevenue || r.Revenue != 13.5 {
		t.Errorf("revenue = %v (has=%v)", r.Revenue, r.HasRevenue)
	}
}

func TestNormalizeFallbackHeaders(t *testing.T) {
	// Headers that match no inference pattern at all, but carry the common
	// alternate spellings the normalizer knows about.
	headers := []string{"When", "Item", "City"}
	rows := []RawRow{{"When": "2024-02-02", "Item": "Gift Box", "City": "Lyon"}}
	cols := RuleTable{}.Infer(headers)
	records, _ := Normalize(rows, headers, cols)
	r := records[0]
	if r.Product != "Gift Box" {
		t.Errorf("product = %q, want fallback Item", r.Product)
	}
	if r.Location != "Lyon" {
		t.Errorf("location = %q, want fallback City", r.Location)
	}
	// Date falls back to the first header when unmapped.
	if r.Date != "2024-02-02" {
		t.Errorf("date = %q", r.Date)
	}
}

func TestNormalizeDefaultsNeverPanic(t *testing.T) {
	headers := []string{"X"}
	rows := []RawRow{{"X": "whatever"}, {}, {"X": ""}}
	records, _ := Normalize(rows, headers, ColumnMap{})
	for i, r := range records {
		if r.Quantity != 0 || r.UnitPrice != 0 {
			t.Errorf("record %d: numeric defaults not zero: %+v", i, r)
		}
		if r.HasRevenue {
			t.Errorf("record %d: revenue should be absent", i)
		}
		if r.RevenueValue() != 0 {
			t.Errorf("record %d: derived revenue = %v", i, r.RevenueValue())
		}
	}
}

func TestRevenueNeverBackFilled(t *testing.T) {
	headers := []string{"Product", "Qty", "Price"}
	rows := []RawRow{{"Product": "A", "Qty": "2", "Price": "5"}}
	cols := DefaultRules().Infer(headers)
	records, _ := Normalize(rows, headers, cols)
	r := records[0]
	if r.HasRevenue {
		t.Fatal("no revenue column, HasRevenue should be false")
	}
	if r.Revenue != 0 {
		t.Errorf("stored revenue was back-filled: %v", r.Revenue)
	}
	if got := r.RevenueValue(); got != 10 {
		t.Errorf("derived revenue = %v, want 10", got)
	}
	// Reading twice derives the same value from quantity and price.
	if r.RevenueValue() != r.RevenueValue() {
		t.Error("derived revenue not stable")
	}
}

func TestNormalizeCollectsOptions(t *testing.T) {
	headers := []string{"Product", "Region", "Location"}
	rows := []RawRow{
		{"Product": "B", "Region": "South", "Location": "Lima"},
		{"Product": "A", "Region": "North", "Location": ""},
		{"Product": "B", "Region": "", "Location": "Quito"},
	}
	cols := DefaultRules().Infer(headers)
	_, opts := Normalize(rows, headers, cols)
	if got := opts.Products(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("products = %v", got)
	}
	if got := opts.Regions(); !reflect.DeepEqual(got, []string{"North", "South"}) {
		t.Errorf("regions = %v", got)
	}
	if got := opts.Locations(); !reflect.DeepEqual(got, []string{"Lima", "Quito"}) {
		t.Errorf("locations = %v", got)
	}
}
