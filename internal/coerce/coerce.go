// Package coerce provides best-effort parsing of heterogeneous cell values
// into numbers and calendar dates. Parsing never fails: unparseable numbers
// become 0 and unparseable dates report ok=false, so callers can degrade
// gracefully instead of surfacing errors for messy spreadsheet input.
package coerce

import (
	"strconv"
	"strings"
	"time"
)

// Number strips currency symbols and thousands separators from s and parses
// the remainder as a float. Returns 0 for anything unparseable, including the
// empty string, bare symbols, and NaN/Inf-like text.
func Number(s string) float64 {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0
	}
	clean = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(clean)
	clean = strings.TrimSpace(clean)
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	// ParseFloat accepts "NaN" and "Inf"; those are junk for our purposes.
	if f != f || f > maxFinite || f < -maxFinite {
		return 0
	}
	return f
}

const maxFinite = 1.7976931348623157e308

// dateLayouts are tried in order. Calendar-only layouts come first because
// sales exports almost never carry a time component.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"1/2/2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// Date parses s as a calendar date using a fixed set of layouts.
// The boolean reports whether any layout matched.
func Date(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day formats t as a YYYY-MM-DD day key.
func Day(t time.Time) string { return t.Format("2006-01-02") }
