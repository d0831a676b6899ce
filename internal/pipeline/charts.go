package pipeline

import "sort"

// ChartData is a labeled numeric series handed to an external rendering
// sink. Labels and Series always have equal length.
type ChartData struct {
	Name   string    `json:"name"`
	Kind   string    `json:"kind"` // line | bar | donut
	Labels []string  `json:"labels"`
	Series []float64 `json:"series"`
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Charts derives every named chart dataset from an aggregation result.
func Charts(res *Result) []ChartData {
	return []ChartData{
		revenueByDay(res),
		weekdayChart(res),
		monthChart(res),
		cumulativeRevenue(res),
		topGroups("top_products", "bar", res.ByProduct, 10),
		regionDonut(res),
		ordersByChannel(res),
		topGroups("top_reps", "bar", res.ByRep, 5),
	}
}

func revenueByDay(res *Result) ChartData {
	c := ChartData{Name: "revenue_by_day", Kind: "line"}
	for _, g := range res.ByDay.Groups {
		c.Labels = append(c.Labels, g.Key)
	}
	sort.Strings(c.Labels)
	for _, day := range c.Labels {
		g, _ := res.ByDay.Get(day)
		c.Series = append(c.Series, g.Revenue)
	}
	return c
}

func cumulativeRevenue(res *Result) ChartData {
	base := revenueByDay(res)
	c := ChartData{Name: "cumulative_revenue", Kind: "line", Labels: base.Labels}
	run := 0.0
	for _, v := range base.Series {
		run += v
		c.Series = append(c.Series, run)
	}
	return c
}

func weekdayChart(res *Result) ChartData {
	c := ChartData{Name: "revenue_by_weekday", Kind: "bar", Labels: weekdayNames}
	c.Series = append(c.Series, res.Weekday[:]...)
	return c
}

func monthChart(res *Result) ChartData {
	c := ChartData{Name: "monthly_seasonality", Kind: "line", Labels: monthNames}
	c.Series = append(c.Series, res.Month[:]...)
	return c
}

// topGroups returns the n highest-revenue groups, descending. Sorting is
// stable so equal-revenue groups keep their first-appearance order.
func topGroups(name, kind string, b *Breakdown, n int) ChartData {
	groups := make([]Group, len(b.Groups))
	copy(groups, b.Groups)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Revenue > groups[j].Revenue })
	if len(groups) > n {
		groups = groups[:n]
	}
	c := ChartData{Name: name, Kind: kind}
	for _, g := range groups {
		c.Labels = append(c.Labels, g.Key)
		c.Series = append(c.Series, g.Revenue)
	}
	return c
}

func regionDonut(res *Result) ChartData {
	c := ChartData{Name: "revenue_by_region", Kind: "donut"}
	for _, g := range res.ByRegion.Groups {
		c.Labels = append(c.Labels, g.Key)
		c.Series = append(c.Series, g.Revenue)
	}
	return c
}

func ordersByChannel(res *Result) ChartData {
	c := ChartData{Name: "orders_by_channel", Kind: "bar"}
	for _, g := range res.ByChannel.Groups {
		c.Labels = append(c.Labels, g.Key)
		c.Series = append(c.Series, float64(g.Orders))
	}
	return c
}
