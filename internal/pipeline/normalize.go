package pipeline

import (
	"sort"

	"salescope/internal/coerce"
)

// RawRow is one parsed dataset row, keyed by original header name.
type RawRow map[string]string

// Record is a normalized row. String fields default to "" and numeric fields
// to 0 when the source column is missing or unparseable.
//
// Revenue is only populated when the dataset actually carries a revenue
// column (HasRevenue). It is never back-filled from quantity and price at
// write time; consumers must go through RevenueValue.
type Record struct {
	Raw RawRow

	Date     string // raw value; parsed by consumers at the point of use
	Product  string
	Region   string
	Location string
	Channel  string
	SalesRep string

	Quantity   float64
	UnitPrice  float64
	Revenue    float64
	HasRevenue bool
}

// RevenueValue returns the record's revenue, falling back to
// quantity × unit price when no revenue column was present. The fallback is
// computed on every read; it is never stored.
func (r Record) RevenueValue() float64 {
	if r.HasRevenue {
		return r.Revenue
	}
	return r.Quantity * r.UnitPrice
}

// fallback header spellings tried when a role is unmapped.
var fallbackHeaders = map[Role][]string{
	RoleProduct:  {"Product", "Item"},
	RoleRegion:   {"Region"},
	RoleLocation: {"Location", "City"},
	RoleChannel:  {"Channel"},
	RoleSalesRep: {"SalesRep", "Rep"},
	RoleQty:      {"Quantity", "Qty"},
	RolePrice:    {"Unit Price", "Price"},
	RoleRevenue:  {"Revenue", "Sales"},
}

// Options collects the distinct categorical values observed while
// normalizing, used to populate filter option lists.
type Options struct {
	products  map[string]bool
	regions   map[string]bool
	locations map[string]bool
}

func newOptions() *Options {
	return &Options{
		products:  map[string]bool{},
		regions:   map[string]bool{},
		locations: map[string]bool{},
	}
}

// Products returns the observed product names, sorted.
func (o *Options) Products() []string { return sortedKeys(o.products) }

// Regions returns the observed region names, sorted.
func (o *Options) Regions() []string { return sortedKeys(o.regions) }

// Locations returns the observed location names, sorted.
func (o *Options) Locations() []string { return sortedKeys(o.locations) }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Normalize converts raw rows into records using the inferred column map.
// headers is the original header order; the date role falls back to the first
// header when unmapped. Normalization never fails: missing columns produce
// empty/zero fields.
func Normalize(rows []RawRow, headers []string, cols ColumnMap) ([]Record, *Options) {
	opts := newOptions()
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := normalizeRow(row, headers, cols)
		records = append(records, rec)
		if rec.Product != "" {
			opts.products[rec.Product] = true
		}
		if rec.Region != "" {
			opts.regions[rec.Region] = true
		}
		if rec.Location != "" {
			opts.locations[rec.Location] = true
		}
	}
	return records, opts
}

func normalizeRow(row RawRow, headers []string, cols ColumnMap) Record {
	rec := Record{Raw: row}

	if h, ok := cols[RoleDate]; ok {
		rec.Date = row[h]
	} else if len(headers) > 0 {
		rec.Date = row[headers[0]]
	}
	rec.Product = textField(row, cols, RoleProduct)
	rec.Region = textField(row, cols, RoleRegion)
	rec.Location = textField(row, cols, RoleLocation)
	rec.Channel = textField(row, cols, RoleChannel)
	rec.SalesRep = textField(row, cols, RoleSalesRep)

	rec.Quantity = coerce.Number(numField(row, cols, RoleQty))
	rec.UnitPrice = coerce.Number(numField(row, cols, RolePrice))
	if h, ok := cols[RoleRevenue]; ok {
		rec.Revenue = coerce.Number(row[h])
		rec.HasRevenue = true
	} else if h, v := firstFallback(row, RoleRevenue); h != "" {
		rec.Revenue = coerce.Number(v)
		rec.HasRevenue = true
	}
	return rec
}

func textField(row RawRow, cols ColumnMap, role Role) string {
	if h, ok := cols[role]; ok {
		return row[h]
	}
	_, v := firstFallback(row, role)
	return v
}

func numField(row RawRow, cols ColumnMap, role Role) string {
	if h, ok := cols[role]; ok {
		return row[h]
	}
	_, v := firstFallback(row, role)
	return v
}

// firstFallback returns the first alternate header spelling present in the
// row, with its value. A header counts as present only when its cell is
// non-empty, so a row missing the column entirely behaves the same as one
// with a blank cell.
func firstFallback(row RawRow, role Role) (header, value string) {
	for _, h := range fallbackHeaders[role] {
		if v, ok := row[h]; ok && v != "" {
			return h, v
		}
	}
	return "", ""
}
