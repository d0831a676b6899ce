package pipeline

import (
	"reflect"
	"testing"
)

func chartByName(t *testing.T, charts []ChartData, name string) ChartData {
	t.Helper()
	for _, c := range charts {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no chart named %q", name)
	return ChartData{}
}

func TestChartsDaySeriesSortedAndCumulative(t *testing.T) {
	records := []Record{
		{Date: "2024-01-03", Quantity: 1, UnitPrice: 30},
		{Date: "2024-01-01", Quantity: 1, UnitPrice: 10},
		{Date: "2024-01-02", Quantity: 1, UnitPrice: 20},
	}
	charts := Charts(Aggregate(records))

	day := chartByName(t, charts, "revenue_by_day")
	if !reflect.DeepEqual(day.Labels, []string{"2024-01-01", "2024-01-02", "2024-01-03"}) {
		t.Errorf("day labels = %v", day.Labels)
	}
	if !reflect.DeepEqual(day.Series, []float64{10, 20, 30}) {
		t.Errorf("day series = %v", day.Series)
	}

	cum := chartByName(t, charts, "cumulative_revenue")
	if !reflect.DeepEqual(cum.Series, []float64{10, 30, 60}) {
		t.Errorf("cumulative series = %v", cum.Series)
	}
}

func TestChartsTopProductsCapped(t *testing.T) {
	var records []Record
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for i, n := range names {
		records = append(records, Record{Date: "2024-01-01", Product: n, Quantity: 1, UnitPrice: float64(i + 1)})
	}
	charts := Charts(Aggregate(records))
	top := chartByName(t, charts, "top_products")
	if len(top.Labels) != 10 {
		t.Fatalf("top products = %d entries, want 10", len(top.Labels))
	}
	if top.Labels[0] != "l" || top.Series[0] != 12 {
		t.Errorf("highest first: got %s=%v", top.Labels[0], top.Series[0])
	}
	for i := 1; i < len(top.Series); i++ {
		if top.Series[i] > top.Series[i-1] {
			t.Errorf("series not descending at %d: %v", i, top.Series)
		}
	}
}

func TestChartsOrdersByChannel(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Channel: "Online", Quantity: 1, UnitPrice: 5},
		{Date: "2024-01-01", Channel: "Online", Quantity: 1, UnitPrice: 5},
		{Date: "2024-01-01", Channel: "Retail", Quantity: 1, UnitPrice: 5},
	}
	charts := Charts(Aggregate(records))
	ch := chartByName(t, charts, "orders_by_channel")
	if !reflect.DeepEqual(ch.Labels, []string{"Online", "Retail"}) {
		t.Errorf("channel labels = %v", ch.Labels)
	}
	if !reflect.DeepEqual(ch.Series, []float64{2, 1}) {
		t.Errorf("channel series = %v", ch.Series)
	}
}

func TestChartsLabelSeriesLengthsMatch(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Product: "A", Region: "R", Channel: "C", SalesRep: "S", Quantity: 1, UnitPrice: 5},
	}
	for _, c := range Charts(Aggregate(records)) {
		if len(c.Labels) != len(c.Series) {
			t.Errorf("chart %s: %d labels vs %d points", c.Name, len(c.Labels), len(c.Series))
		}
	}
}
