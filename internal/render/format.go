// Package render turns pipeline numbers into display strings and terminal
// reports.
package render

import (
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
)

// Money formats v as a whole-unit currency amount, e.g. "$12,340" for USD.
// KPI displays round to whole units.
func Money(v float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	f := money.NewFormatter(0, ".", ",", cur.Grapheme, cur.Template)
	return f.Format(int64(math.Round(v)))
}

// Count formats v as a thousands-grouped whole number.
func Count(v float64) string {
	s := strconv.FormatInt(int64(math.Round(v)), 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
