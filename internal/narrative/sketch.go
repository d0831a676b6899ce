// Package narrative composes the executive summary from aggregate results,
// either locally from a template or by delegating to a remote
// text-generation backend.
package narrative

import (
	"encoding/json"
	"fmt"
	"math"

	"salescope/internal/pipeline"
)

// sketch is the compact, rounded numeric picture embedded in the remote
// prompt. Only whole numbers go over the wire.
type sketch struct {
	Totals struct {
		Revenue int64 `json:"revenue"`
		Units   int64 `json:"units"`
		Orders  int   `json:"orders"`
		AOV     int64 `json:"aov"`
	} `json:"totals"`
	RevPerUnit int64           `json:"revPerUnit"`
	Products   productCallouts `json:"products"`
}

type productCallouts struct {
	TopRevenue    *namedAmount `json:"topRevenue"`
	LowRevenue    *namedAmount `json:"lowRevenue"`
	TopAvgPerUnit *namedAmount `json:"topAvgPerUnit"`
	LowAvgPerUnit *namedAmount `json:"lowAvgPerUnit"`
}

type namedAmount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

func round(v float64) int64 { return int64(math.Round(v)) }

func named(c *pipeline.Callout) *namedAmount {
	if c == nil {
		return nil
	}
	return &namedAmount{Name: c.Key, Amount: round(c.Value)}
}

// BuildPrompt serializes the rounded sketch of res into a natural-language
// instruction for a text-generation backend.
func BuildPrompt(res *pipeline.Result) string {
	var s sketch
	s.Totals.Revenue = round(res.Revenue)
	s.Totals.Units = round(res.Units)
	s.Totals.Orders = res.Orders
	s.Totals.AOV = round(res.AOV)
	s.RevPerUnit = round(res.RevenuePerUnit)
	s.Products = productCallouts{
		TopRevenue:    named(res.Products.TopRevenue),
		LowRevenue:    named(res.Products.LowRevenue),
		TopAvgPerUnit: named(res.Products.TopAvg),
		LowAvgPerUnit: named(res.Products.LowAvg),
	}
	data, _ := json.Marshal(s)
	return fmt.Sprintf(
		"You are a business analyst. Using the following metrics, write a concise (80-120 words) summary for an executive. "+
			"State overall performance, call out the top and bottom products by total revenue and by average revenue per unit, "+
			"and recommend one actionable next step.\nData (rounded): %s\n"+
			"Focus on clarity. Avoid hedging and restating the numbers verbatim; synthesize insights.",
		data)
}
