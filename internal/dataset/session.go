package dataset

import (
	"time"

	"github.com/google/uuid"

	"salescope/internal/coerce"
	"salescope/internal/pipeline"
)

// Session owns the records built from the most recent load. Each load
// replaces the previous contents wholesale; there is no incremental append.
// The session is plain state: callers pass it into pipeline calls instead of
// reading it from package scope, which keeps every stage testable with
// synthetic input.
type Session struct {
	ID       uuid.UUID
	Name     string
	LoadedAt time.Time

	Columns   pipeline.ColumnMap
	Records   []pipeline.Record
	Products  []string
	Regions   []string
	Locations []string

	rules pipeline.RuleTable
}

// NewSession returns an empty session using the given column rules, or the
// defaults when rules is nil.
func NewSession(rules pipeline.RuleTable) *Session {
	if rules == nil {
		rules = pipeline.DefaultRules()
	}
	return &Session{ID: uuid.New(), rules: rules}
}

// Load replaces the session contents with the given table: infers columns
// from the headers, normalizes every row, and rebuilds the filter option
// lists. Last load wins.
func (s *Session) Load(t *Table) {
	s.ID = uuid.New()
	s.Name = t.Name
	s.LoadedAt = time.Now()
	s.Columns = s.rules.Infer(t.Headers)
	records, opts := pipeline.Normalize(t.Rows, t.Headers, s.Columns)
	s.Records = records
	s.Products = opts.Products()
	s.Regions = opts.Regions()
	s.Locations = opts.Locations()
}

// Empty reports whether no dataset has been loaded.
func (s *Session) Empty() bool { return len(s.Records) == 0 }

// DateBounds returns the minimum and maximum parseable record dates as
// YYYY-MM-DD strings. ok is false when no record date parses.
func (s *Session) DateBounds() (min, max string, ok bool) {
	for _, r := range s.Records {
		d, parsed := coerce.Date(r.Date)
		if !parsed {
			continue
		}
		day := coerce.Day(d)
		if !ok || day < min {
			min = day
		}
		if !ok || day > max {
			max = day
		}
		ok = true
	}
	return min, max, ok
}
