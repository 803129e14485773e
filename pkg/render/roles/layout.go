package roles

import (
	"math"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/scale"
	"github.com/matzehuels/surveycharts/pkg/shape"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Link end circles are drawn with this radius.
const linkCircleRadius = 2

// Scales maps dataset values onto the page.
type Scales struct {
	XOrg       scale.Linear // org index → x
	XRole      scale.Linear // role index → x
	RRole      scale.Linear // role total → circle radius
	YOE        scale.Linear // years of experience → y
	Centrality scale.Linear // volume share → half-width of an experience area
	LinkOffset scale.Linear // role index → x offset of a link start inside its org box
	OrgAngle   scale.Linear // org index → angle of a link end on the role circle
}

// NewScales builds the scales for numOrgs orgs and numRoles roles.
func NewScales(cfg config.RolesConfig, numOrgs, numRoles int, maxRoleTotal float64) Scales {
	pad := cfg.PagePadding
	s := Scales{
		XOrg:     scale.NewLinear(-1, float64(numOrgs)+0.5, pad, cfg.Width-pad),
		XRole:    scale.NewLinear(-1, float64(numRoles)-0.5, pad, cfg.Width-pad),
		RRole:    scale.NewLinear(0, maxRoleTotal, cfg.RoleMinRadius, cfg.RoleMaxRadius),
		YOE:      scale.NewLinear(-1, cfg.YOEMax, cfg.YRoleOffset+pad, cfg.Height-pad),
		OrgAngle: scale.NewLinear(0, float64(numOrgs-1), -config.Radians(cfg.LinkAngle), config.Radians(cfg.LinkAngle)),
	}
	s.Centrality = scale.NewLinear(0, cfg.CentralityMax, 0, 0.5*(s.XRole.Apply(1)-s.XRole.Apply(0)))
	s.LinkOffset = scale.NewLinear(0, float64(numRoles-1), -cfg.LinkSpread, cfg.LinkSpread)
	return s
}

// Box is an axis-aligned rectangle.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is the computed geometry of a roles chart.
type Layout struct {
	Width    float64            `json:"width"`
	Height   float64            `json:"height"`
	NumRoles int                `json:"num_roles"`
	NumOrgs  int                `json:"num_orgs"`
	Config   config.RolesConfig `json:"-"`
	Scales   Scales             `json:"-"`

	// CenterY is the y of every role circle centre.
	CenterY float64 `json:"center_y"`
	// Years holds the experience gridline values.
	Years []float64    `json:"years"`
	Roles []RoleLayout `json:"roles,omitempty"`
	Nodes []NodeLayout `json:"nodes,omitempty"`
	Links []LinkLayout `json:"links,omitempty"`
}

// RoleLayout is one role column.
type RoleLayout struct {
	Role   string       `json:"role"`
	Slug   string       `json:"slug"`
	IRole  int          `json:"i_role"`
	X      float64      `json:"x"`
	Radius float64      `json:"radius"`
	Total  float64      `json:"total"`
	Sides  []SideLayout `json:"sides"`
}

// SideLayout is the experience area of one primary flag, relative to the
// role column.
type SideLayout struct {
	Primary    survey.Flag `json:"primary"`
	Area       string      `json:"area"`
	Background Box         `json:"background"`
}

// NodeLayout is an org box in the top row.
type NodeLayout struct {
	ID      string      `json:"id"`
	Index   int         `json:"index"`
	Value   float64     `json:"value"`
	Opacity float64     `json:"opacity"`
	Box     Box         `json:"box"`
	Shadow  Box         `json:"shadow"`
	Label   shape.Point `json:"label"`
}

// LinkLayout is a curve from an org box to a role circle.
type LinkLayout struct {
	IOrg        int         `json:"i_org"`
	IRole       int         `json:"i_role"`
	Value       float64     `json:"value"`
	Path        string      `json:"path"`
	Start       shape.Point `json:"start"`
	End         shape.Point `json:"end"`
	Opacity     float64     `json:"opacity"`
	StrokeWidth float64     `json:"stroke_width"`
}

// Build computes the chart geometry. It needs role records, connect data,
// or both.
func Build(ds *survey.Dataset, cfg config.RolesConfig) (*Layout, error) {
	if !ds.HasRoles() && !ds.HasConnect() {
		return nil, errors.New(errors.ErrCodeMissingDataset, "roles chart needs yoe or connect data")
	}

	maxTotal := 0.0
	for _, r := range ds.Roles {
		maxTotal = max(maxTotal, r.RoleTotal)
	}
	if maxTotal == 0 && ds.Connect != nil {
		for _, l := range ds.Connect.Links {
			maxTotal = max(maxTotal, l.RoleTotal)
		}
	}

	numRoles, numOrgs := ds.RoleCount(), ds.OrgCount()
	l := &Layout{
		Width:    cfg.Width,
		Height:   cfg.Height,
		NumRoles: numRoles,
		NumOrgs:  numOrgs,
		Config:   cfg,
		Scales:   NewScales(cfg, numOrgs, numRoles, maxTotal),
		CenterY:  cfg.PagePadding + cfg.YRoleOffset,
	}

	if ds.HasRoles() {
		l.Years = yearTicks(cfg.YOEMax)
		for _, r := range ds.Roles {
			l.Roles = append(l.Roles, l.role(r))
		}
	}
	if ds.HasConnect() {
		l.Nodes = l.nodes(ds.Connect.OrgNodes())
		l.Links = l.links(ds.Connect.Links)
	}
	return l, nil
}

// yearTicks returns the nice ticks strictly inside (0, yoeMax).
func yearTicks(yoeMax float64) []float64 {
	var out []float64
	for _, t := range scale.Ticks(0, yoeMax, 10) {
		if t > 0 && t < yoeMax {
			out = append(out, t)
		}
	}
	return out
}

func (l *Layout) role(r survey.Role) RoleLayout {
	s := l.Scales
	rl := RoleLayout{
		Role:   r.Role,
		Slug:   survey.Slug(r.Role),
		IRole:  r.IRole,
		X:      s.XRole.Apply(float64(r.IRole)),
		Radius: s.RRole.Apply(r.RoleTotal),
		Total:  r.RoleTotal,
	}

	bgWidth := s.Centrality.Apply(0.2)
	bgY := s.YOE.Apply(-0.5)
	bgHeight := s.YOE.Apply(l.Config.YOEMax-0.5) - s.YOE.Apply(0)

	for _, p := range r.Primaries {
		side := p.Primary.Side()
		area := shape.Area[survey.YOEMetric]{
			X0:    shape.Constant[survey.YOEMetric](0),
			X1:    func(m survey.YOEMetric, _ int) float64 { return side * s.Centrality.Apply(m.PctVolume) },
			Y0:    func(m survey.YOEMetric, _ int) float64 { return s.YOE.Apply(m.YOE) },
			Curve: shape.CatmullRom(0),
		}
		bg := Box{Y: bgY, Width: bgWidth, Height: bgHeight}
		if p.Primary {
			bg.X = -bgWidth
		}
		rl.Sides = append(rl.Sides, SideLayout{
			Primary:    p.Primary,
			Area:       area.Path(p.YOEMetrics),
			Background: bg,
		})
	}
	return rl
}

func (l *Layout) nodes(orgs []survey.Node) []NodeLayout {
	if len(orgs) == 0 {
		return nil
	}
	values := make([]float64, len(orgs))
	for i, n := range orgs {
		values[i] = n.Value
	}
	lo, hi := scale.Extent(values)
	opacity := scale.NewLinear(lo, hi, 0.1, 0.8)

	cfg := l.Config
	x := l.Scales.XOrg
	width := x.Apply(1) - x.Apply(0) - 0.5*cfg.NodePadding

	out := make([]NodeLayout, 0, len(orgs))
	for _, n := range orgs {
		cx := x.Apply(float64(n.Index))
		step := x.Apply(float64(n.Index+1)) - cx
		box := Box{
			X:      cx - 0.5*step + 0.5*cfg.NodePadding,
			Y:      cfg.PagePadding - cfg.NodeHeight/2,
			Width:  width,
			Height: cfg.NodeHeight,
		}
		shadow := box
		shadow.X += 2.8
		shadow.Y += 4.3
		out = append(out, NodeLayout{
			ID:      n.ID,
			Index:   n.Index,
			Value:   n.Value,
			Opacity: opacity.Apply(n.Value),
			Box:     box,
			Shadow:  shadow,
			Label:   shape.Point{X: cx, Y: cfg.PagePadding + 1},
		})
	}
	return out
}

func (l *Layout) links(links []survey.Link) []LinkLayout {
	if len(links) == 0 {
		return nil
	}
	values := make([]float64, len(links))
	for i, k := range links {
		values[i] = k.Value
	}
	lo, hi := scale.Extent(values)
	opacity := scale.NewLinear(lo, hi, 0.05, 0.8)
	stroke := scale.NewLinear(lo, hi, 0.5, 3)

	cfg := l.Config
	s := l.Scales
	yStart := cfg.PagePadding + cfg.NodeHeight/2 + 8
	h := cfg.PagePadding + cfg.YRoleOffset - cfg.NodeHeight/2 - 3

	out := make([]LinkLayout, 0, len(links))
	for _, k := range links {
		sx := s.XOrg.Apply(float64(k.IOrg)) + s.LinkOffset.Apply(float64(k.IRole))
		o := shape.Polar(s.RRole.Apply(k.RoleTotal), s.OrgAngle.Apply(float64(k.IOrg)))
		ex := s.XRole.Apply(float64(k.IRole)) + o.X

		start := shape.Point{X: sx, Y: yStart}
		end := shape.Point{X: ex, Y: h + o.Y}
		out = append(out, LinkLayout{
			IOrg:  k.IOrg,
			IRole: k.IRole,
			Value: k.Value,
			Path: shape.Link(start,
				shape.Point{X: sx, Y: 0.6 * h},
				shape.Point{X: ex, Y: 0.6*h + o.Y},
				end),
			Start:       start,
			End:         end,
			Opacity:     opacity.Apply(k.Value),
			StrokeWidth: stroke.Apply(k.Value),
		})
	}
	return out
}

// GridTop and GridBottom bound the vertical role axis.
func (l *Layout) GridTop() float64    { return l.Scales.YOE.Apply(-1) - 10 }
func (l *Layout) GridBottom() float64 { return l.Scales.YOE.Apply(l.Config.YOEMax) + 10 }

// TitleArc is the hidden path role titles follow.
func (l *Layout) TitleArc() string {
	return shape.TextArc(l.Config.TitleRadius, -math.Pi/2, math.Pi/2)
}
