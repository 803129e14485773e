// Package config defines chart geometry, theme, cache and publishing
// settings, with defaults matching the published survey charts.
//
// Configuration files are TOML or YAML, chosen by extension:
//
//	[roles]
//	width = 800
//	height = 1000
//	backgrounds = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// Every field has a default; a file only needs the values it changes.
package config

import (
	"math"
	"time"

	"github.com/matzehuels/surveycharts/pkg/render/theme"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Config is the complete configuration.
type Config struct {
	Roles     RolesConfig     `toml:"roles" yaml:"roles" json:"roles"`
	Orgs      OrgsConfig      `toml:"orgs" yaml:"orgs" json:"orgs"`
	Network   NetworkConfig   `toml:"network" yaml:"network" json:"network"`
	Histogram HistogramConfig `toml:"histogram" yaml:"histogram" json:"histogram"`
	Theme     theme.Theme     `toml:"theme" yaml:"theme" json:"theme"`
	Files     survey.Files    `toml:"files" yaml:"files" json:"files"`
	Render    RenderConfig    `toml:"render" yaml:"render" json:"render"`
	Cache     CacheConfig     `toml:"cache" yaml:"cache" json:"cache"`
	Publish   PublishConfig   `toml:"publish" yaml:"publish" json:"publish"`
}

// RolesConfig is the geometry of the cartesian roles chart.
type RolesConfig struct {
	Width       float64 `toml:"width" yaml:"width" json:"width" validate:"gt=0"`
	Height      float64 `toml:"height" yaml:"height" json:"height" validate:"gt=0"`
	PagePadding float64 `toml:"page_padding" yaml:"page_padding" json:"page_padding" validate:"gte=0"`
	RolePadding float64 `toml:"role_padding" yaml:"role_padding" json:"role_padding" validate:"gte=0"`
	// YRoleOffset is the distance from the org row to the role circles.
	YRoleOffset   float64 `toml:"y_role_offset" yaml:"y_role_offset" json:"y_role_offset" validate:"gte=0"`
	RoleMinRadius float64 `toml:"role_min_radius" yaml:"role_min_radius" json:"role_min_radius" validate:"gte=0"`
	RoleMaxRadius float64 `toml:"role_max_radius" yaml:"role_max_radius" json:"role_max_radius" validate:"gtefield=RoleMinRadius"`
	TitleRadius   float64 `toml:"title_radius" yaml:"title_radius" json:"title_radius" validate:"gt=0"`
	YOEMax        float64 `toml:"yoe_max" yaml:"yoe_max" json:"yoe_max" validate:"gt=0"`
	// CentralityMax is the volume share that spans half the role spacing.
	CentralityMax float64 `toml:"centrality_max" yaml:"centrality_max" json:"centrality_max" validate:"gt=0,lte=1"`
	NodePadding   float64 `toml:"node_padding" yaml:"node_padding" json:"node_padding" validate:"gte=0"`
	NodeHeight    float64 `toml:"node_height" yaml:"node_height" json:"node_height" validate:"gt=0"`
	// LinkSpread is the horizontal spread of link starts within an org box.
	LinkSpread float64 `toml:"link_spread" yaml:"link_spread" json:"link_spread" validate:"gte=0"`
	// LinkAngle is the angular spread, in degrees, of link ends around a role circle.
	LinkAngle   float64 `toml:"link_angle" yaml:"link_angle" json:"link_angle" validate:"gte=0,lte=90"`
	Backgrounds bool    `toml:"backgrounds" yaml:"backgrounds" json:"backgrounds"`
}

// OrgsConfig is the geometry of the radial orgs chart.
type OrgsConfig struct {
	Width     float64 `toml:"width" yaml:"width" json:"width" validate:"gt=0"`
	Height    float64 `toml:"height" yaml:"height" json:"height" validate:"gt=0"`
	Padding   float64 `toml:"padding" yaml:"padding" json:"padding" validate:"gte=0"`
	RadiusOrg float64 `toml:"radius_org" yaml:"radius_org" json:"radius_org" validate:"gt=0"`
	// StartAngle and EndAngle bound each side's sweep, in degrees from 12 o'clock.
	StartAngle float64 `toml:"start_angle" yaml:"start_angle" json:"start_angle" validate:"gte=0,lt=180"`
	EndAngle   float64 `toml:"end_angle" yaml:"end_angle" json:"end_angle" validate:"gtfield=StartAngle,lte=180"`
	YOEMax     float64 `toml:"yoe_max" yaml:"yoe_max" json:"yoe_max" validate:"gt=0"`
	SalaryMax  float64 `toml:"salary_max" yaml:"salary_max" json:"salary_max" validate:"gt=0"`
	BarMax     float64 `toml:"bar_max" yaml:"bar_max" json:"bar_max" validate:"gt=0"`
	BarPadding float64 `toml:"bar_padding" yaml:"bar_padding" json:"bar_padding" validate:"gte=0"`
	// InnerRatio and OuterRatio place the innermost and outermost role rings
	// as fractions of RadiusOrg.
	InnerRatio  float64 `toml:"inner_ratio" yaml:"inner_ratio" json:"inner_ratio" validate:"gt=0,lt=1"`
	OuterRatio  float64 `toml:"outer_ratio" yaml:"outer_ratio" json:"outer_ratio" validate:"gtfield=InnerRatio,lte=1"`
	VolumeRatio float64 `toml:"volume_ratio" yaml:"volume_ratio" json:"volume_ratio" validate:"gt=0,lte=1"`
	BarRatio    float64 `toml:"bar_ratio" yaml:"bar_ratio" json:"bar_ratio" validate:"gt=0,lte=1"`
}

// NetworkConfig controls the Graphviz org to role diagram.
type NetworkConfig struct {
	RankDir  string  `toml:"rank_dir" yaml:"rank_dir" json:"rank_dir" validate:"oneof=LR TB RL BT"`
	MinPen   float64 `toml:"min_pen" yaml:"min_pen" json:"min_pen" validate:"gt=0"`
	MaxPen   float64 `toml:"max_pen" yaml:"max_pen" json:"max_pen" validate:"gtefield=MinPen"`
	FontSize float64 `toml:"font_size" yaml:"font_size" json:"font_size" validate:"gt=0"`
}

// HistogramConfig sizes the experience line chart.
type HistogramConfig struct {
	Width  int `toml:"width" yaml:"width" json:"width" validate:"gt=0"`
	Height int `toml:"height" yaml:"height" json:"height" validate:"gt=0"`
}

// Rasterizers for PNG output.
const (
	RasterAuto   = "auto"
	RasterNative = "native"
	RasterRSVG   = "rsvg"
)

// RenderConfig controls output conversion.
type RenderConfig struct {
	Scale      float64 `toml:"scale" yaml:"scale" json:"scale" validate:"gt=0,lte=10"`
	Rasterizer string  `toml:"rasterizer" yaml:"rasterizer" json:"rasterizer" validate:"oneof=auto native rsvg"`
}

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Backend   string   `toml:"backend" yaml:"backend" json:"backend" validate:"oneof=file redis none"`
	Dir       string   `toml:"dir" yaml:"dir" json:"dir,omitempty"`
	RedisAddr string   `toml:"redis_addr" yaml:"redis_addr" json:"redis_addr,omitempty" validate:"required_if=Backend redis"`
	TTL       Duration `toml:"ttl" yaml:"ttl" json:"ttl"`
	Compress  bool     `toml:"compress" yaml:"compress" json:"compress"`
	Namespace string   `toml:"namespace" yaml:"namespace" json:"namespace,omitempty"`
}

// PublishConfig configures artifact upload. An empty target disables it.
type PublishConfig struct {
	Target   string `toml:"target" yaml:"target" json:"target,omitempty" validate:"omitempty,startswith=s3://"`
	Region   string `toml:"region" yaml:"region" json:"region,omitempty"`
	Endpoint string `toml:"endpoint" yaml:"endpoint" json:"endpoint,omitempty" validate:"omitempty,url"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Roles: RolesConfig{
			Width:         800,
			Height:        1000,
			PagePadding:   100,
			RolePadding:   40,
			YRoleOffset:   300,
			RoleMinRadius: 28,
			RoleMaxRadius: 70,
			TitleRadius:   18,
			YOEMax:        38,
			CentralityMax: 0.25,
			NodePadding:   10,
			NodeHeight:    15,
			LinkSpread:    12.2,
			LinkAngle:     30,
		},
		Orgs: OrgsConfig{
			Width:       680,
			Height:      1800,
			Padding:     40,
			RadiusOrg:   140,
			StartAngle:  22.5,
			EndAngle:    135,
			YOEMax:      38,
			SalaryMax:   270,
			BarMax:      200,
			BarPadding:  2,
			InnerRatio:  0.32,
			OuterRatio:  0.88,
			VolumeRatio: 0.22,
			BarRatio:    0.4,
		},
		Network: NetworkConfig{
			RankDir:  "LR",
			MinPen:   0.5,
			MaxPen:   6,
			FontSize: 14,
		},
		Histogram: HistogramConfig{Width: 1024, Height: 640},
		Theme:     theme.Default(),
		Files:     survey.DefaultFiles(),
		Render:    RenderConfig{Scale: 2, Rasterizer: RasterAuto},
		Cache: CacheConfig{
			Backend:  CacheFile,
			TTL:      Duration{24 * time.Hour},
			Compress: true,
		},
	}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }
