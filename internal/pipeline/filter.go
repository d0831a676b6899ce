package pipeline

import (
	"time"

	"salescope/internal/coerce"
)

// Criteria is one filter pass's constraints. Every field is optional; the
// zero value imposes no constraint at all. From and To are ISO calendar dates
// (inclusive bounds).
type Criteria struct {
	Product  string
	Region   string
	Location string
	From     string
	To       string
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c.Product == "" && c.Region == "" && c.Location == "" && c.From == "" && c.To == ""
}

// Filter returns the records satisfying every active criterion, preserving
// the original relative order. It is a pure function over its inputs.
//
// Date bounds compare calendar dates, parsed per record at filter time. A
// record whose date does not parse is excluded whenever a from or to bound is
// active: an invalid comparison never passes.
func Filter(records []Record, c Criteria) []Record {
	if c.IsZero() {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	from, hasFrom := coerce.Date(c.From)
	to, hasTo := coerce.Date(c.To)
	if c.From != "" && !hasFrom {
		// Unparseable bound behaves like an impossible one.
		return nil
	}
	if c.To != "" && !hasTo {
		return nil
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Product != "" && r.Product != c.Product {
			continue
		}
		if c.Region != "" && r.Region != c.Region {
			continue
		}
		if c.Location != "" && r.Location != c.Location {
			continue
		}
		if hasFrom || hasTo {
			d, ok := coerce.Date(r.Date)
			if !ok {
				continue
			}
			if hasFrom && d.Before(from) {
				continue
			}
			if hasTo && d.After(endOfDay(to)) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// endOfDay keeps the To bound inclusive even for record dates carrying a
// time component.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
