package pipeline

import (
	"math"
	"testing"
)

// normalized builds records through the real inference + normalization path,
// the same way a file load would.
func normalized(t *testing.T, headers []string, rows []RawRow) []Record {
	t.Helper()
	cols := DefaultRules().Infer(headers)
	records, _ := Normalize(rows, headers, cols)
	return records
}

func TestAggregateRevenueFallback(t *testing.T) {
	headers := []string{"Date", "Product", "Qty", "Price"}
	rows := []RawRow{
		{"Date": "2024-01-01", "Product": "A", "Qty": "2", "Price": "$5.00"},
		{"Date": "2024-01-02", "Product": "B", "Qty": "0", "Price": "$10"},
	}
	res := Aggregate(normalized(t, headers, rows))

	if res.Revenue != 10 {
		t.Errorf("revenue = %v, want 10", res.Revenue)
	}
	if res.Units != 2 {
		t.Errorf("units = %v, want 2", res.Units)
	}
	if res.Orders != 2 {
		t.Errorf("orders = %v, want 2", res.Orders)
	}
	if res.AOV != 5 {
		t.Errorf("aov = %v, want 5", res.AOV)
	}
	if res.Products.TopRevenue == nil || res.Products.TopRevenue.Key != "A" {
		t.Errorf("top revenue product = %+v, want A", res.Products.TopRevenue)
	}
}

func TestAggregateFilteredToZeroUnits(t *testing.T) {
	headers := []string{"Date", "Product", "Qty", "Price"}
	rows := []RawRow{
		{"Date": "2024-01-01", "Product": "A", "Qty": "2", "Price": "$5.00"},
		{"Date": "2024-01-02", "Product": "B", "Qty": "0", "Price": "$10"},
	}
	records := Filter(normalized(t, headers, rows), Criteria{Product: "B"})
	res := Aggregate(records)

	if res.Revenue != 0 || res.Units != 0 {
		t.Errorf("revenue/units = %v/%v, want 0/0", res.Revenue, res.Units)
	}
	if res.Orders != 1 {
		t.Errorf("orders = %v, want 1", res.Orders)
	}
	if res.AOV != 0 || res.RevenuePerUnit != 0 {
		t.Errorf("aov/rpu = %v/%v, want exactly 0", res.AOV, res.RevenuePerUnit)
	}
}

func TestAggregateZeroDivisionGuards(t *testing.T) {
	res := Aggregate(nil)
	for name, v := range map[string]float64{"aov": res.AOV, "rpu": res.RevenuePerUnit} {
		if v != 0 {
			t.Errorf("%s = %v, want 0", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is non-finite", name)
		}
	}
}

func TestAggregateExplicitRevenueWins(t *testing.T) {
	headers := []string{"Date", "Product", "Qty", "Price", "Revenue"}
	rows := []RawRow{
		{"Date": "2024-01-01", "Product": "A", "Qty": "2", "Price": "5", "Revenue": "100"},
	}
	res := Aggregate(normalized(t, headers, rows))
	if res.Revenue != 100 {
		t.Errorf("revenue = %v, want explicit 100 (not qty*price)", res.Revenue)
	}
}

func TestAggregateGroupInsertionOrderAndTies(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Product: "First", Quantity: 1, UnitPrice: 10},
		{Date: "2024-01-01", Product: "Second", Quantity: 1, UnitPrice: 10},
		{Date: "2024-01-01", Product: "Third", Quantity: 1, UnitPrice: 10},
	}
	res := Aggregate(records)
	if got := res.ByProduct.Groups[0].Key; got != "First" {
		t.Errorf("group order[0] = %q", got)
	}
	// All three tie on every metric: the first encountered must win both
	// extremes.
	if res.Products.TopRevenue.Key != "First" || res.Products.LowRevenue.Key != "First" {
		t.Errorf("tie-break: top=%q low=%q, want First/First",
			res.Products.TopRevenue.Key, res.Products.LowRevenue.Key)
	}
	if res.Products.TopAvg.Key != "First" || res.Products.LowAvg.Key != "First" {
		t.Errorf("avg tie-break: top=%q low=%q", res.Products.TopAvg.Key, res.Products.LowAvg.Key)
	}
}

func TestAggregateAvgCalloutsSkipZeroUnitGroups(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Product: "NoUnits", Quantity: 0, UnitPrice: 0, Revenue: 50, HasRevenue: true},
		{Date: "2024-01-01", Product: "Cheap", Quantity: 10, UnitPrice: 1},
		{Date: "2024-01-01", Product: "Dear", Quantity: 1, UnitPrice: 40},
	}
	res := Aggregate(records)
	if res.Products.TopAvg.Key != "Dear" || res.Products.LowAvg.Key != "Cheap" {
		t.Errorf("avg callouts = %q/%q, want Dear/Cheap", res.Products.TopAvg.Key, res.Products.LowAvg.Key)
	}
	// Revenue extremes still consider the zero-unit group.
	if res.Products.TopRevenue.Key != "NoUnits" {
		t.Errorf("top revenue = %q, want NoUnits", res.Products.TopRevenue.Key)
	}
}

func TestAggregateUnknownKeyBucket(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Product: "", Quantity: 1, UnitPrice: 5},
		{Date: "2024-01-01", Product: "A", Quantity: 1, UnitPrice: 5},
	}
	res := Aggregate(records)
	g, ok := res.ByProduct.Get(UnknownKey)
	if !ok {
		t.Fatal("empty product key not bucketed under placeholder")
	}
	if g.Revenue != 5 || g.Orders != 1 {
		t.Errorf("placeholder group = %+v", g)
	}
}

func TestAggregateCalendarBreakdowns(t *testing.T) {
	records := []Record{
		{Date: "2024-01-07", Quantity: 1, UnitPrice: 10}, // a Sunday
		{Date: "2024-02-05", Quantity: 1, UnitPrice: 20}, // a Monday
		{Date: "unparseable", Quantity: 1, UnitPrice: 40},
	}
	res := Aggregate(records)
	if res.Weekday[0] != 10 {
		t.Errorf("sunday revenue = %v, want 10", res.Weekday[0])
	}
	if res.Weekday[1] != 20 {
		t.Errorf("monday revenue = %v, want 20", res.Weekday[1])
	}
	if res.Month[0] != 10 || res.Month[1] != 20 {
		t.Errorf("month revenue = %v/%v", res.Month[0], res.Month[1])
	}
	if res.ByDay.Len() != 2 {
		t.Errorf("byday groups = %d, want 2 (unparseable skipped)", res.ByDay.Len())
	}
	// The unparseable row still counts toward the scalar KPIs.
	if res.Revenue != 70 || res.Orders != 3 {
		t.Errorf("revenue/orders = %v/%v, want 70/3", res.Revenue, res.Orders)
	}
}
