package pipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestInferBindsFirstMatchingHeader(t *testing.T) {
	headers := []string{"Order Date", "Product Name", "Region", "City", "Qty", "Unit Price"}
	m := DefaultRules().Infer(headers)

	want := ColumnMap{
		RoleDate:     "Order Date",
		RoleProduct:  "Product Name",
		RoleRegion:   "Region",
		RoleLocation: "City",
		RoleQty:      "Qty",
		RolePrice:    "Unit Price",
	}
	for role, header := range want {
		if m[role] != header {
			t.Errorf("role %s bound to %q, want %q", role, m[role], header)
		}
	}
	if _, ok := m[RoleRevenue]; ok {
		t.Errorf("revenue should be unmapped, got %q", m[RoleRevenue])
	}
	if _, ok := m[RoleChannel]; ok {
		t.Errorf("channel should be unmapped, got %q", m[RoleChannel])
	}
}

func TestInferDeterministic(t *testing.T) {
	headers := []string{"Date", "Sales", "Amount", "Product", "Units"}
	first := DefaultRules().Infer(headers)
	for i := 0; i < 50; i++ {
		if got := DefaultRules().Infer(headers); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: inference not deterministic: %v vs %v", i, got, first)
		}
	}
}

func TestInferPatternPrecedence(t *testing.T) {
	// "Unit Price" matches the price role's first pattern, so it wins even
	// when a plain "price" header comes later.
	m := DefaultRules().Infer([]string{"Unit Price", "price"})
	if m[RolePrice] != "Unit Price" {
		t.Errorf("price bound to %q, want \"Unit Price\"", m[RolePrice])
	}
	// Pattern order outranks header order: the unit-price pattern scans all
	// headers before the bare price pattern gets a turn.
	m = DefaultRules().Infer([]string{"price", "Unit Price"})
	if m[RolePrice] != "Unit Price" {
		t.Errorf("price bound to %q, want \"Unit Price\"", m[RolePrice])
	}
}

func TestInferAllowsDoubleBinding(t *testing.T) {
	// "Market" satisfies both the region and location vocabularies; roles
	// resolve independently, so one header may serve two roles.
	m := DefaultRules().Infer([]string{"Date", "Market", "Sales"})
	if m[RoleRegion] != "Market" {
		t.Errorf("region bound to %q, want \"Market\"", m[RoleRegion])
	}
	if m[RoleLocation] != "Market" {
		t.Errorf("location bound to %q, want \"Market\"", m[RoleLocation])
	}
	if m[RoleRevenue] != "Sales" {
		t.Errorf("revenue bound to %q, want \"Sales\"", m[RoleRevenue])
	}
}

func TestInferEmptyHeaders(t *testing.T) {
	m := DefaultRules().Infer(nil)
	if len(m) != 0 {
		t.Errorf("expected no bindings for empty headers, got %v", m)
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `rules:
  - role: date
    patterns: ["shipped"]
  - role: product
    patterns: ["widget", "item"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m := rules.Infer([]string{"Shipped On", "Widget"})
	if m[RoleDate] != "Shipped On" {
		t.Errorf("date bound to %q", m[RoleDate])
	}
	if m[RoleProduct] != "Widget" {
		t.Errorf("product bound to %q", m[RoleProduct])
	}
}

func TestLoadRulesRejectsUnknownRole(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  - role: sentiment\n    patterns: [\"mood\"]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
