package pipeline

import (
	"salescope/internal/coerce"
)

// UnknownKey labels groups whose key field is empty. Rows are bucketed here
// rather than dropped.
const UnknownKey = "(unknown)"

// Group accumulates one breakdown bucket.
type Group struct {
	Key     string
	Revenue float64
	Units   float64
	Orders  int
}

// AvgPerUnit returns revenue/units, or 0 when the group has no units.
func (g Group) AvgPerUnit() float64 {
	if g.Units == 0 {
		return 0
	}
	return g.Revenue / g.Units
}

// Breakdown is an ordered set of groups. Order is insertion order of first
// appearance, which makes extremal tie-breaks deterministic.
type Breakdown struct {
	Groups []Group
	index  map[string]int
}

func newBreakdown() *Breakdown {
	return &Breakdown{index: map[string]int{}}
}

func (b *Breakdown) add(key string, revenue, units float64) {
	if key == "" {
		key = UnknownKey
	}
	i, ok := b.index[key]
	if !ok {
		i = len(b.Groups)
		b.index[key] = i
		b.Groups = append(b.Groups, Group{Key: key})
	}
	g := &b.Groups[i]
	g.Revenue += revenue
	g.Units += units
	g.Orders++
}

// Get returns the group for key, if present.
func (b *Breakdown) Get(key string) (Group, bool) {
	if i, ok := b.index[key]; ok {
		return b.Groups[i], true
	}
	return Group{}, false
}

// Len returns the number of groups.
func (b *Breakdown) Len() int { return len(b.Groups) }

// Callout is one extremal fact: a group key and the value that made it
// extreme.
type Callout struct {
	Key   string
	Value float64
}

// Callouts holds the extremes for one breakdown. TopAvg/LowAvg consider only
// groups with nonzero units and are nil when no such group exists; revenue
// extremes are nil only for an empty breakdown.
type Callouts struct {
	TopRevenue *Callout
	LowRevenue *Callout
	TopAvg     *Callout
	LowAvg     *Callout
}

// Result is one aggregation pass over a filtered record set.
type Result struct {
	Revenue        float64
	Units          float64
	Orders         int
	AOV            float64
	RevenuePerUnit float64

	ByDay     *Breakdown // key YYYY-MM-DD; only rows with parseable dates
	ByProduct *Breakdown
	ByRegion  *Breakdown
	ByChannel *Breakdown
	ByRep     *Breakdown

	Weekday [7]float64  // revenue by weekday, 0 = Sunday
	Month   [12]float64 // revenue by month, 0 = January

	Products Callouts
	Reps     Callouts
}

// Aggregate computes KPIs, grouped breakdowns, and extremal callouts from a
// filtered record set. Revenue always goes through Record.RevenueValue, so
// the quantity × price fallback applies uniformly. All ratio KPIs are 0, not
// NaN or Inf, on a zero denominator.
func Aggregate(records []Record) *Result {
	res := &Result{
		ByDay:     newBreakdown(),
		ByProduct: newBreakdown(),
		ByRegion:  newBreakdown(),
		ByChannel: newBreakdown(),
		ByRep:     newBreakdown(),
	}
	for _, r := range records {
		rev := r.RevenueValue()
		res.Revenue += rev
		res.Units += r.Quantity
		res.Orders++

		res.ByProduct.add(r.Product, rev, r.Quantity)
		res.ByRegion.add(r.Region, rev, 0)
		res.ByChannel.add(r.Channel, rev, 0)
		res.ByRep.add(r.SalesRep, rev, 0)

		if d, ok := coerce.Date(r.Date); ok {
			res.ByDay.add(coerce.Day(d), rev, r.Quantity)
			res.Weekday[int(d.Weekday())] += rev
			res.Month[int(d.Month())-1] += rev
		}
	}
	if res.Orders > 0 {
		res.AOV = res.Revenue / float64(res.Orders)
	}
	if res.Units > 0 {
		res.RevenuePerUnit = res.Revenue / res.Units
	}
	res.Products = callouts(res.ByProduct, true)
	res.Reps = callouts(res.ByRep, false)
	return res
}

// callouts scans groups in insertion order; strict comparisons mean the first
// group encountered wins any tie.
func callouts(b *Breakdown, withAvg bool) Callouts {
	var c Callouts
	for i := range b.Groups {
		g := b.Groups[i]
		if c.TopRevenue == nil || g.Revenue > c.TopRevenue.Value {
			c.TopRevenue = &Callout{Key: g.Key, Value: g.Revenue}
		}
		if c.LowRevenue == nil || g.Revenue < c.LowRevenue.Value {
			c.LowRevenue = &Callout{Key: g.Key, Value: g.Revenue}
		}
		if withAvg && g.Units > 0 {
			avg := g.AvgPerUnit()
			if c.TopAvg == nil || avg > c.TopAvg.Value {
				c.TopAvg = &Callout{Key: g.Key, Value: avg}
			}
			if c.LowAvg == nil || avg < c.LowAvg.Value {
				c.LowAvg = &Callout{Key: g.Key, Value: avg}
			}
		}
	}
	return c
}
