package render

import (
	"fmt"
	"strings"

	"salescope/internal/pipeline"
)

// Report renders an aggregation result as a compact markdown document for
// the terminal or a file.
type Report struct {
	Dataset  string
	Criteria pipeline.Criteria
	Result   *pipeline.Result
	Currency string
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	cur := r.Currency
	if cur == "" {
		cur = "USD"
	}
	res := r.Result
	var b strings.Builder

	b.WriteString("[SALES SUMMARY]\n")
	if r.Dataset != "" {
		b.WriteString(fmt.Sprintf("Dataset: %s\n", r.Dataset))
	}
	if !r.Criteria.IsZero() {
		b.WriteString(fmt.Sprintf("Filters: %s\n", describeCriteria(r.Criteria)))
	}
	b.WriteString("\n[KPIS]\n")
	if res.Orders == 0 {
		b.WriteString("- Revenue: —\n- Units: —\n- Orders: —\n- AOV: —\n- Revenue/unit: —\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("- Revenue: %s\n", Money(res.Revenue, cur)))
	b.WriteString(fmt.Sprintf("- Units: %s\n", Count(res.Units)))
	b.WriteString(fmt.Sprintf("- Orders: %s\n", Count(float64(res.Orders))))
	b.WriteString(fmt.Sprintf("- AOV: %s\n", Money(res.AOV, cur)))
	b.WriteString(fmt.Sprintf("- Revenue/unit: %s\n", Money(res.RevenuePerUnit, cur)))

	writeCallouts(&b, "PRODUCT CALLOUTS", res.Products, cur)
	writeCallouts(&b, "REP CALLOUTS", res.Reps, cur)

	writeBreakdown(&b, "BY PRODUCT", res.ByProduct, cur, true)
	writeBreakdown(&b, "BY REGION", res.ByRegion, cur, false)
	writeBreakdown(&b, "BY CHANNEL", res.ByChannel, cur, false)
	writeBreakdown(&b, "BY SALES REP", res.ByRep, cur, false)
	return b.String()
}

func describeCriteria(c pipeline.Criteria) string {
	var parts []string
	if c.Product != "" {
		parts = append(parts, "product="+c.Product)
	}
	if c.Region != "" {
		parts = append(parts, "region="+c.Region)
	}
	if c.Location != "" {
		parts = append(parts, "location="+c.Location)
	}
	if c.From != "" {
		parts = append(parts, "from="+c.From)
	}
	if c.To != "" {
		parts = append(parts, "to="+c.To)
	}
	return strings.Join(parts, ", ")
}

func writeCallouts(b *strings.Builder, title string, c pipeline.Callouts, cur string) {
	if c.TopRevenue == nil {
		return
	}
	b.WriteString("\n[" + title + "]\n")
	b.WriteString(fmt.Sprintf("- Top revenue: %s (%s total)\n", c.TopRevenue.Key, Money(c.TopRevenue.Value, cur)))
	b.WriteString(fmt.Sprintf("- Lowest revenue: %s (%s total)\n", c.LowRevenue.Key, Money(c.LowRevenue.Value, cur)))
	if c.TopAvg != nil && c.LowAvg != nil {
		b.WriteString(fmt.Sprintf("- Highest avg/unit: %s (%s / unit)\n", c.TopAvg.Key, Money(c.TopAvg.Value, cur)))
		b.WriteString(fmt.Sprintf("- Lowest avg/unit: %s (%s / unit)\n", c.LowAvg.Key, Money(c.LowAvg.Value, cur)))
	}
}

func writeBreakdown(b *strings.Builder, title string, bd *pipeline.Breakdown, cur string, withUnits bool) {
	if bd.Len() == 0 {
		return
	}
	b.WriteString("\n[" + title + "]\n")
	for _, g := range bd.Groups {
		if withUnits {
			b.WriteString(fmt.Sprintf("- %s: %s (%s units, %d orders)\n", g.Key, Money(g.Revenue, cur), Count(g.Units), g.Orders))
		} else {
			b.WriteString(fmt.Sprintf("- %s: %s (%d orders)\n", g.Key, Money(g.Revenue, cur), g.Orders))
		}
	}
}
