package theme

import "github.com/matzehuels/surveycharts/pkg/render/scene"

const (
	green    = "#95a876"
	lilac    = "#d7b6d7"
	yellow   = "#f2de84"
	rose     = "#dcc0ba"
	ink      = "#4a4a4a"
	muted    = "#9b9b9b"
	paper    = "#fbf9f4"
	gridline = "#d9d4c7"
)

// Default returns the survey palette.
func Default() Theme {
	return Theme{
		FontFamily: "Helvetica Neue, Helvetica, Arial, sans-serif",
		Background: paper,
		Circle: Gradient{
			X1: "50%", Y1: "0%", X2: "100%", Y2: "100%",
			Stops: []scene.Stop{
				{Offset: "0%", Color: lilac, Opacity: 0.1},
				{Offset: "50%", Color: green, Opacity: 0.5},
				{Offset: "100%", Color: green, Opacity: 0.8},
			},
		},
		Primary: Gradient{
			X1: "100%", X2: "0%",
			Stops: []scene.Stop{
				{Offset: "0%", Color: yellow, Opacity: 0.4},
				{Offset: "100%", Color: yellow, Opacity: 0},
			},
		},
		Secondary: Gradient{
			X1: "0%", X2: "100%",
			Stops: []scene.Stop{
				{Offset: "0%", Color: rose, Opacity: 0.4},
				{Offset: "100%", Color: rose, Opacity: 0},
			},
		},
		Styles: map[string]Style{
			// roles chart
			"role-background":    {Fill: "none", Stroke: green, StrokeWidth: 1},
			"title-path":         {Hidden: true},
			"role-title":         {Fill: ink, FontSize: 11, FontWeight: "bold", Anchor: "middle", LetterSpacing: 0.5},
			"centrality":         {Stroke: "none"},
			"primary-true":       {Fill: yellow, FillOpacity: 0.85},
			"primary-false":      {Fill: rose, FillOpacity: 0.85},
			"gridline":           {Fill: "none", Stroke: gridline, StrokeWidth: 1},
			"axis":               {Fill: "none", Stroke: gridline, StrokeWidth: 0.5, Dash: "2,3"},
			"axis-text":          {Fill: muted, FontSize: 9},
			"axis-title":         {Fill: ink, FontSize: 10, FontStyle: "italic", Anchor: "middle"},
			"role-total":         {Fill: ink, FontSize: 10, Anchor: "middle"},
			"nodes":              {Fill: green},
			"nodes-outline":      {Fill: "none", Stroke: ink, StrokeWidth: 0.8},
			"nodes-outline-text": {Fill: ink, FontSize: 8, Anchor: "middle", Baseline: "middle"},
			"link":               {Fill: "none", Stroke: green},
			"link-circle":        {Fill: ink},

			// orgs chart
			"org-text":  {Fill: ink, FontSize: 13, FontWeight: "bold", Anchor: "middle", LetterSpacing: 1},
			"text":      {Fill: ink, FontSize: 8, Anchor: "middle"},
			"cleanup":   {Fill: paper, Stroke: "none"},
			"primary":   {Fill: yellow, Stroke: "none"},
			"secondary": {Fill: rose, Stroke: "none"},
			"total":     {Fill: muted, FontSize: 7},
		},
	}
}
