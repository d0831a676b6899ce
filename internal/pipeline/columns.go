package pipeline

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Role is a semantic column category inferred from arbitrary header names.
type Role string

const (
	RoleDate     Role = "date"
	RoleProduct  Role = "product"
	RoleRegion   Role = "region"
	RoleLocation Role = "location"
	RoleChannel  Role = "channel"
	RoleSalesRep Role = "salesrep"
	RoleQty      Role = "qty"
	RolePrice    Role = "price"
	RoleRevenue  Role = "revenue"
)

// Roles lists all roles in their canonical resolution order.
var Roles = []Role{
	RoleDate, RoleProduct, RoleRegion, RoleLocation, RoleChannel,
	RoleSalesRep, RoleQty, RolePrice, RoleRevenue,
}

// Rule binds a role to an ordered list of header patterns. Earlier patterns
// take precedence; within a pattern, earlier headers take precedence.
type Rule struct {
	Role     Role
	Patterns []*regexp.Regexp
}

// RuleTable is an ordered list of rules, one per role. Roles resolve
// independently; nothing prevents one header from satisfying two roles.
type RuleTable []Rule

// DefaultRules matches the header vocabulary of common sales exports.
func DefaultRules() RuleTable {
	mk := func(role Role, pats ...string) Rule {
		r := Rule{Role: role, Patterns: make([]*regexp.Regexp, 0, len(pats))}
		for _, p := range pats {
			r.Patterns = append(r.Patterns, regexp.MustCompile("(?i)"+p))
		}
		return r
	}
	return RuleTable{
		mk(RoleDate, `date`, `order.?date`, `invoice.?date`),
		mk(RoleProduct, `product`, `item`, `sku`, `flavor`),
		mk(RoleRegion, `region`, `country`, `state`, `market`),
		mk(RoleLocation, `location`, `city`, `market`, `site`),
		mk(RoleChannel, `channel`, `source`, `segment`),
		mk(RoleSalesRep, `sales.?rep`, `representative`, `agent`, `seller`),
		mk(RoleQty, `qty`, `quantity`, `units?`, `pcs?`),
		mk(RolePrice, `unit.?price`, `price`),
		mk(RoleRevenue, `revenue`, `sales`, `amount`, `total`, `net`),
	}
}

// ColumnMap maps each resolved role to the original header bound to it.
// Unmapped roles are simply absent.
type ColumnMap map[Role]string

// Infer resolves every rule in t against headers. For each role, patterns are
// scanned in declaration order and headers in their original order; the first
// header matching any pattern wins. An empty header list leaves every role
// unmapped.
func (t RuleTable) Infer(headers []string) ColumnMap {
	m := make(ColumnMap, len(t))
	for _, rule := range t {
		for _, rx := range rule.Patterns {
			found := false
			for _, h := range headers {
				if rx.MatchString(h) {
					m[rule.Role] = h
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}
	return m
}

// rulesFile is the on-disk shape of a custom rule table.
type rulesFile struct {
	Rules []struct {
		Role     string   `yaml:"role"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"rules"`
}

// LoadRules reads a YAML rule table. Declaration order in the file is the
// resolution order. Patterns are compiled case-insensitive.
func LoadRules(path string) (RuleTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	known := make(map[Role]bool, len(Roles))
	for _, r := range Roles {
		known[r] = true
	}
	var t RuleTable
	for _, entry := range rf.Rules {
		role := Role(entry.Role)
		if !known[role] {
			return nil, fmt.Errorf("unknown role %q in rules file", entry.Role)
		}
		rule := Rule{Role: role}
		for _, p := range entry.Patterns {
			rx, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q for role %s: %w", p, role, err)
			}
			rule.Patterns = append(rule.Patterns, rx)
		}
		if len(rule.Patterns) == 0 {
			return nil, fmt.Errorf("role %s has no patterns", role)
		}
		t = append(t, rule)
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	return t, nil
}
