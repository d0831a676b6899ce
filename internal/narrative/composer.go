package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salescope/internal/ai"
	"salescope/internal/pipeline"
	"salescope/internal/render"
)

// Composer produces the executive summary. With a nil Runtime it composes
// locally and never fails; with a Runtime it delegates generation and
// returns the backend's error for the caller to render as text.
type Composer struct {
	Runtime  ai.Runtime
	Currency string
}

// Compose returns the narrative for res.
func (c *Composer) Compose(ctx context.Context, res *pipeline.Result) (string, error) {
	if c.Runtime == nil {
		return c.Local(res), nil
	}
	text, err := c.Runtime.GenerateText(ctx, BuildPrompt(res))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "No text generated.", nil
	}
	return text, nil
}

// Local fills a deterministic template from the aggregate result. It always
// returns non-empty text, falling back to a low-data message when the
// dataset offers nothing to call out.
func (c *Composer) Local(res *pipeline.Result) string {
	cur := c.Currency
	if cur == "" {
		cur = "USD"
	}
	if res == nil || res.Orders == 0 {
		return "No orders match the current selection. Load a dataset or widen the filters to see a summary."
	}
	toMoney := func(v float64) string { return render.Money(v, cur) }

	var parts []string
	parts = append(parts, fmt.Sprintf("Total revenue %s across %s orders (%s units). AOV %s, Avg revenue/unit %s.",
		toMoney(res.Revenue), render.Count(float64(res.Orders)), render.Count(res.Units),
		toMoney(res.AOV), toMoney(res.RevenuePerUnit)))

	p := res.Products
	if p.TopRevenue != nil && p.LowRevenue != nil {
		parts = append(parts, fmt.Sprintf("Top revenue product: %s (%s). Lowest revenue: %s (%s).",
			p.TopRevenue.Key, toMoney(p.TopRevenue.Value), p.LowRevenue.Key, toMoney(p.LowRevenue.Value)))
	}
	if p.TopAvg != nil && p.LowAvg != nil {
		parts = append(parts, fmt.Sprintf("Highest avg/unit: %s (%s). Lowest avg/unit: %s (%s).",
			p.TopAvg.Key, toMoney(p.TopAvg.Value), p.LowAvg.Key, toMoney(p.LowAvg.Value)))
		spread := p.TopAvg.Value - p.LowAvg.Value
		if spread > 10 {
			parts = append(parts, fmt.Sprintf("Recommendation: Promote %s in regions/channels where %s underperforms; review price/pack-size on %s.",
				p.TopAvg.Key, p.LowAvg.Key, p.LowAvg.Key))
		} else {
			parts = append(parts, "Recommendation: Focus on distribution and channel mix to lift overall AOV; no extreme outliers by avg/unit.")
		}
	} else {
		parts = append(parts, "Recommendation: Increase data completeness (units and revenue) to enable product-level optimization.")
	}
	return strings.Join(parts, " ")
}

// RenderError converts a composer error into the text shown in place of the
// narrative. Missing credentials get an instructional message rather than an
// error.
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ai.ErrCredentialMissing) {
		switch {
		case strings.Contains(err.Error(), "api key"):
			return "Please configure your Hugging Face API key (salescope config set api_key <token>)."
		case strings.Contains(err.Error(), "endpoint url"):
			return "Enter your summarization endpoint URL (salescope config set space_url <url>)."
		}
		return "Please configure the remote provider credentials."
	}
	return "Error: " + err.Error()
}
