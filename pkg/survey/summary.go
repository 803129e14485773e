package survey

import (
	"strings"
	"unicode"
)

// Summary counts what a dataset holds.
type Summary struct {
	Roles        int     `json:"roles"`
	Primaries    int     `json:"primaries"`
	Orgs         int     `json:"orgs"`
	OrgNodes     int     `json:"org_nodes"`
	Nodes        int     `json:"nodes"`
	Links        int     `json:"links"`
	MaxRoleTotal float64 `json:"max_role_total"`
	MaxYOE       float64 `json:"max_yoe"`
	MaxSalary    float64 `json:"max_salary"`
	MaxBar       float64 `json:"max_bar"`
}

// Summary walks every part of the dataset once.
func (d *Dataset) Summary() Summary {
	var s Summary
	if d == nil {
		return s
	}

	visitRole := func(r Role) {
		s.MaxRoleTotal = max(s.MaxRoleTotal, r.RoleTotal)
		for _, p := range r.Primaries {
			s.Primaries++
			for _, m := range p.YOEMetrics {
				s.MaxYOE = max(s.MaxYOE, m.YOE)
			}
			for _, m := range p.SalaryMetrics {
				s.MaxSalary = max(s.MaxSalary, m.Salary)
			}
		}
		for _, a := range r.Agg {
			s.MaxBar = max(s.MaxBar, a.Secondary)
		}
	}

	s.Roles = len(d.Roles)
	for _, r := range d.Roles {
		visitRole(r)
	}

	s.Orgs = len(d.Orgs)
	for _, o := range d.Orgs {
		for _, r := range o.Roles {
			visitRole(r)
		}
	}

	if d.Connect != nil {
		s.Nodes = len(d.Connect.Nodes)
		s.OrgNodes = len(d.Connect.OrgNodes())
		s.Links = len(d.Connect.Links)
		for _, l := range d.Connect.Links {
			s.MaxRoleTotal = max(s.MaxRoleTotal, l.RoleTotal)
		}
	}
	return s
}

// Slug turns a label into an identifier usable in SVG ids and class names:
// lower case, runs of anything but letters and digits collapsed to "-".
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
