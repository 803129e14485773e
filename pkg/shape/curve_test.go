package shape

import "testing"

type pt struct{ x, y float64 }

func pointLine(curve CurveFactory) Line[pt] {
	return Line[pt]{
		X:     func(p pt, _ int) float64 { return p.x },
		Y:     func(p pt, _ int) float64 { return p.y },
		Curve: curve,
	}
}

var zigzag = []pt{{0, 1}, {1, 3}, {2, 1}, {3, 3}}

func TestLineCurves(t *testing.T) {
	tests := []struct {
		name  string
		curve CurveFactory
		data  []pt
		want  string
	}{
		{"linear", Linear(), []pt{{0, 0}, {1, 1}, {2, 0}}, "M0,0L1,1L2,0"},
		{"nil curve is linear", nil, []pt{{0, 0}, {1, 1}}, "M0,0L1,1"},
		{"linear single point", Linear(), []pt{{0, 0}}, "M0,0Z"},
		{"empty", Linear(), nil, ""},
		{"cardinal two points", Cardinal(0), []pt{{0, 1}, {1, 3}}, "M0,1L1,3"},
		{"cardinal single point", Cardinal(0), []pt{{4, 2}}, "M4,2Z"},
		{
			"cardinal",
			Cardinal(0),
			zigzag,
			"M0,1C0,1,0.667,3,1,3C1.333,3,1.667,1,2,1C2.333,1,3,3,3,3",
		},
		{
			"cardinal full tension is straight",
			Cardinal(1),
			[]pt{{0, 0}, {1, 1}, {2, 0}},
			"M0,0C0,0,1,1,1,1C1,1,2,0,2,0",
		},
		{
			"catmull-rom uniform",
			CatmullRom(0),
			zigzag,
			"M0,1C0,1,0.667,3,1,3C1.333,3,1.667,1,2,1C2.333,1,3,3,3,3",
		},
		{
			"catmull-rom centripetal equal segments",
			CatmullRom(0.5),
			zigzag,
			"M0,1C0,1,0.667,3,1,3C1.333,3,1.667,1,2,1C2.333,1,3,3,3,3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointLine(tt.curve).Path(tt.data); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineDefinedSplitsSubpaths(t *testing.T) {
	l := pointLine(Linear())
	l.Defined = func(p pt, _ int) bool { return p.y >= 0 }

	got := l.Path([]pt{{0, 0}, {1, 1}, {2, -1}, {3, 1}, {4, 0}})
	want := "M0,0L1,1M3,1L4,0"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
