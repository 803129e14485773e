package orgs

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/scale"
	"github.com/matzehuels/surveycharts/pkg/shape"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Metric names a side of the disc.
type Metric string

const (
	MetricYOE    Metric = "yoe"
	MetricSalary Metric = "salary"
)

// cleanupInset shrinks the cleanup circle just inside a role ring.
const cleanupInset = 0.2

// gridlineWidth is the thickness of the ring gridlines.
const gridlineWidth = 0.2

// Scales maps dataset values onto a disc.
type Scales struct {
	YOrg        scale.Linear // org index → disc centre y
	RRole       scale.Linear // role index → ring radius
	YOEAngle    scale.Linear // years → angle, left half
	SalaryAngle scale.Linear // salary → angle, right half
	Volume      scale.Pow    // volume share → ring thickness
	BarAngle    scale.Linear // respondent count → angle along the bottom
	BarHeight   float64
}

// NewScales builds the scales for numOrgs discs of numRoles rings.
func NewScales(cfg config.OrgsConfig, numOrgs, numRoles int) Scales {
	R := cfg.RadiusOrg
	start, end := config.Radians(cfg.StartAngle), config.Radians(cfg.EndAngle)
	barPad := config.Radians(cfg.BarPadding)

	s := Scales{
		YOrg:        scale.NewLinear(0, float64(numOrgs), cfg.Padding+R, cfg.Height-cfg.Padding-R),
		RRole:       scale.NewLinear(float64(numRoles-1), 0, cfg.InnerRatio*R, cfg.OuterRatio*R),
		YOEAngle:    scale.NewLinear(-1, cfg.YOEMax, -start, -end),
		SalaryAngle: scale.NewLinear(-1, cfg.SalaryMax, start, end),
		Volume:      scale.NewSqrt(0, 1, 0, cfg.VolumeRatio*R),
		BarAngle:    scale.NewLinear(0, cfg.BarMax, -end-barPad, -2*end+barPad),
	}
	s.BarHeight = cfg.BarRatio * math.Abs(s.RRole.Apply(1)-s.RRole.Apply(0))
	return s
}

// Layout is the computed geometry of an orgs chart.
type Layout struct {
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	NumOrgs  int               `json:"num_orgs"`
	NumRoles int               `json:"num_roles"`
	Config   config.OrgsConfig `json:"-"`
	Scales   Scales            `json:"-"`
	Orgs     []OrgLayout       `json:"orgs"`
}

// OrgLayout is one disc.
type OrgLayout struct {
	Org    string       `json:"org"`
	Slug   string       `json:"slug"`
	Title  string       `json:"title"`
	Center shape.Point  `json:"center"`
	Roles  []RoleLayout `json:"roles"`
}

// RoleLayout is one ring of a disc, relative to the disc centre.
type RoleLayout struct {
	Role   string  `json:"role"`
	Slug   string  `json:"slug"`
	IRole  int     `json:"i_role"`
	Radius float64 `json:"radius"`

	Areas    []AreaLayout      `json:"areas"`
	Gridline map[Metric]string `json:"gridline"`
	// CleanupRadius is drawn once per primary flag.
	CleanupRadius float64     `json:"cleanup_radius"`
	TitleID       string      `json:"title_id"`
	TitleArc      string      `json:"title_arc"`
	Bars          []BarLayout `json:"bars,omitempty"`
}

// AreaLayout is a radial distribution for one side and primary flag.
type AreaLayout struct {
	Metric  Metric      `json:"metric"`
	Primary survey.Flag `json:"primary"`
	Path    string      `json:"path"`
}

// BarLayout is the respondent count arc of a role.
type BarLayout struct {
	Role      string  `json:"role"`
	Primary   string  `json:"primary"`
	Secondary string  `json:"secondary"`
	Total     float64 `json:"total"`
	LabelY    float64 `json:"label_y"`
	// LabelRotate is in degrees.
	LabelRotate float64 `json:"label_rotate"`
}

// Build computes the chart geometry from org records.
func Build(ds *survey.Dataset, cfg config.OrgsConfig) (*Layout, error) {
	if !ds.HasOrgs() {
		return nil, errors.New(errors.ErrCodeMissingDataset, "orgs chart needs metrics data")
	}

	numRoles := 0
	for _, o := range ds.Orgs {
		numRoles = max(numRoles, len(o.Roles))
		for _, r := range o.Roles {
			numRoles = max(numRoles, r.IRole+1)
		}
	}
	numOrgs := len(ds.Orgs)

	l := &Layout{
		Width:    cfg.Width,
		Height:   cfg.Height,
		NumOrgs:  numOrgs,
		NumRoles: numRoles,
		Config:   cfg,
		Scales:   NewScales(cfg, numOrgs, numRoles),
	}
	for i, o := range ds.Orgs {
		l.Orgs = append(l.Orgs, l.org(i, o))
	}
	return l, nil
}

// OrgCenter returns the disc centre for the i-th org. Even orgs sit on the
// left, odd ones on the right.
func (l *Layout) OrgCenter(i int) shape.Point {
	cfg := l.Config
	x := cfg.Padding + cfg.RadiusOrg
	if i%2 == 1 {
		x = cfg.Width - cfg.Padding - cfg.RadiusOrg
	}
	return shape.Point{X: x, Y: l.Scales.YOrg.Apply(float64(i))}
}

func (l *Layout) org(i int, o survey.Org) OrgLayout {
	ol := OrgLayout{
		Org:    o.Org,
		Slug:   survey.Slug(o.Org),
		Title:  strings.ToUpper(o.Org),
		Center: l.OrgCenter(i),
	}
	for _, r := range o.Roles {
		ol.Roles = append(ol.Roles, l.role(ol.Slug, r))
	}
	return ol
}

func (l *Layout) role(orgSlug string, r survey.Role) RoleLayout {
	s := l.Scales
	start, end := config.Radians(l.Config.StartAngle), config.Radians(l.Config.EndAngle)
	radius := s.RRole.Apply(float64(r.IRole))
	slug := survey.Slug(r.Role)

	rl := RoleLayout{
		Role:          r.Role,
		Slug:          slug,
		IRole:         r.IRole,
		Radius:        radius,
		CleanupRadius: radius - cleanupInset,
		TitleID:       "title-path-" + slug + "-" + orgSlug,
		TitleArc:      shape.TextArc(radius, -start, start),
		Gridline: map[Metric]string{
			MetricYOE:    ring(radius, -start, -end),
			MetricSalary: ring(radius, start, end),
		},
	}

	for _, m := range []Metric{MetricYOE, MetricSalary} {
		angle, hi := s.YOEAngle, l.Config.YOEMax
		if m == MetricSalary {
			angle, hi = s.SalaryAngle, l.Config.SalaryMax
		}
		area := shape.RadialArea[point]{
			Angle:       func(p point, _ int) float64 { return angle.Apply(p.v) },
			InnerRadius: shape.Constant[point](radius),
			OuterRadius: func(p point, _ int) float64 { return radius + s.Volume.Apply(p.pct) },
			Curve:       shape.CatmullRom(0),
		}
		for _, p := range r.Primaries {
			rl.Areas = append(rl.Areas, AreaLayout{
				Metric:  m,
				Primary: p.Primary,
				Path:    area.Path(metricPoints(p, m, hi)),
			})
		}
	}

	for _, a := range r.Agg {
		rl.Bars = append(rl.Bars, l.bar(a))
	}
	return rl
}

func (l *Layout) bar(a survey.Aggregate) BarLayout {
	s := l.Scales
	ry := s.RRole.Apply(float64(a.IRole))
	half := s.BarHeight / 2
	arc := func(from, to float64) string {
		return shape.Arc{
			InnerRadius: ry + half,
			OuterRadius: ry - half,
			StartAngle:  s.BarAngle.Apply(from),
			EndAngle:    s.BarAngle.Apply(to),
		}.Path()
	}
	return BarLayout{
		Role:        a.Role,
		Primary:     arc(0, a.Primary),
		Secondary:   arc(a.Primary, a.Secondary),
		Total:       a.Total,
		LabelY:      ry - 5,
		LabelRotate: shape.Degrees(s.BarAngle.Apply(a.Secondary)) - 180 - 3,
	}
}

func ring(r, a0, a1 float64) string {
	return shape.Arc{InnerRadius: r, OuterRadius: r + gridlineWidth, StartAngle: a0, EndAngle: a1}.Path()
}

type point struct{ v, pct float64 }

// metricPoints copies one side's metrics, closes the distribution with zero
// volume at both ends of the domain and sorts by value.
func metricPoints(p survey.Primary, m Metric, hi float64) []point {
	var out []point
	if m == MetricYOE {
		out = make([]point, 0, len(p.YOEMetrics)+2)
		for _, x := range p.YOEMetrics {
			out = append(out, point{x.YOE, x.PctVolume})
		}
	} else {
		out = make([]point, 0, len(p.SalaryMetrics)+2)
		for _, x := range p.SalaryMetrics {
			out = append(out, point{x.Salary, x.PctVolume})
		}
	}
	out = append(out, point{-1, 0}, point{hi, 0})
	slices.SortStableFunc(out, func(a, b point) int { return cmp.Compare(a.v, b.v) })
	return out
}
