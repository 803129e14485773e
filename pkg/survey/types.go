package survey

// =============================================================================
// Metrics
// =============================================================================

// YOEMetric is one point of a years-of-experience distribution.
type YOEMetric struct {
	Role      string  `json:"role" bson:"role"`
	YOE       float64 `json:"yoe" bson:"yoe"`
	PctVolume float64 `json:"yoePctVolume" bson:"yoePctVolume"`
}

// SalaryMetric is one point of a salary distribution, in thousands.
type SalaryMetric struct {
	Role      string  `json:"role" bson:"role"`
	Salary    float64 `json:"salary" bson:"salary"`
	PctVolume float64 `json:"salaryPctVolume" bson:"salaryPctVolume"`
}

// Primary holds the distributions for one side of a role: respondents for
// whom the role is their primary one, or a secondary one.
type Primary struct {
	Primary       Flag           `json:"primary" bson:"primary"`
	Role          string         `json:"role,omitempty" bson:"role,omitempty"`
	IRole         int            `json:"iRole" bson:"iRole"`
	YOEMetrics    []YOEMetric    `json:"yoeMetrics,omitempty" bson:"yoeMetrics,omitempty"`
	SalaryMetrics []SalaryMetric `json:"salaryMetrics,omitempty" bson:"salaryMetrics,omitempty"`
}

// Aggregate is a stacked bar: Primary and Secondary are cumulative ends,
// Total is the label.
type Aggregate struct {
	Role      string  `json:"role" bson:"role"`
	IRole     int     `json:"iRole" bson:"iRole"`
	Primary   float64 `json:"primary" bson:"primary"`
	Secondary float64 `json:"secondary" bson:"secondary"`
	Total     float64 `json:"total" bson:"total"`
}

// =============================================================================
// Roles and Orgs
// =============================================================================

// Role is a job role, optionally scoped to an org.
type Role struct {
	Role      string      `json:"role" bson:"role"`
	IRole     int         `json:"iRole" bson:"iRole"`
	Org       string      `json:"org,omitempty" bson:"org,omitempty"`
	RoleTotal float64     `json:"roleTotal" bson:"roleTotal"`
	Primaries []Primary   `json:"primaries" bson:"primaries"`
	Agg       []Aggregate `json:"agg,omitempty" bson:"agg,omitempty"`
}

// Org groups the roles reported within one organization.
type Org struct {
	Org   string `json:"org" bson:"org"`
	Roles []Role `json:"roles" bson:"roles"`
}

// =============================================================================
// Connect - Org to Role flows
// =============================================================================

// Node is an entry of the connect table. Level 0 nodes are orgs, level 1
// nodes are roles.
type Node struct {
	ID    string  `json:"id" bson:"id"`
	Index int     `json:"index" bson:"index"`
	Level int     `json:"level" bson:"level"`
	Value float64 `json:"value" bson:"value"`
}

// IsOrg reports whether the node is an org node.
func (n Node) IsOrg() bool { return n.Level == 0 }

// Link is a flow of respondents from an org to a role.
type Link struct {
	IOrg      int     `json:"iOrg" bson:"iOrg"`
	IRole     int     `json:"iRole" bson:"iRole"`
	RoleTotal float64 `json:"roleTotal" bson:"roleTotal"`
	Value     float64 `json:"value" bson:"value"`
	Org       string  `json:"org,omitempty" bson:"org,omitempty"`
	Role      string  `json:"role,omitempty" bson:"role,omitempty"`
}

// Connect is the node/link table of org to role flows.
type Connect struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// OrgNodes returns the level 0 nodes in table order.
func (c *Connect) OrgNodes() []Node {
	if c == nil {
		return nil
	}
	var out []Node
	for _, n := range c.Nodes {
		if n.IsOrg() {
			out = append(out, n)
		}
	}
	return out
}

// =============================================================================
// Dataset
// =============================================================================

// Dataset bundles the three inputs. Any part may be nil or empty.
type Dataset struct {
	Roles   []Role   `json:"roles,omitempty" bson:"roles,omitempty"`
	Connect *Connect `json:"connect,omitempty" bson:"connect,omitempty"`
	Orgs    []Org    `json:"orgs,omitempty" bson:"orgs,omitempty"`
}

// HasRoles reports whether role records are present.
func (d *Dataset) HasRoles() bool { return d != nil && len(d.Roles) > 0 }

// HasConnect reports whether a connect table with nodes or links is present.
func (d *Dataset) HasConnect() bool {
	return d != nil && d.Connect != nil && (len(d.Connect.Nodes) > 0 || len(d.Connect.Links) > 0)
}

// HasOrgs reports whether org records are present.
func (d *Dataset) HasOrgs() bool { return d != nil && len(d.Orgs) > 0 }

// RoleCount returns the number of role slots: one more than the largest
// role index seen in roles and links.
func (d *Dataset) RoleCount() int {
	n := 0
	for _, r := range d.Roles {
		n = max(n, r.IRole+1)
	}
	if d.Connect != nil {
		for _, l := range d.Connect.Links {
			n = max(n, l.IRole+1)
		}
	}
	return n
}

// OrgCount returns the number of org slots: one more than the largest org
// index seen in org nodes and links.
func (d *Dataset) OrgCount() int {
	if d.Connect == nil {
		return len(d.Orgs)
	}
	n := 0
	for _, o := range d.Connect.OrgNodes() {
		n = max(n, o.Index+1)
	}
	for _, l := range d.Connect.Links {
		n = max(n, l.IOrg+1)
	}
	return n
}
