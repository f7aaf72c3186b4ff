package grades

// ScaleEntry maps a grade code to its grade point.
type ScaleEntry struct {
	Grade string
	Point float64
}

// Scale is the fixed grade vocabulary, highest grade first.
var Scale = []ScaleEntry{
	{"A", 4.0},
	{"AB", 3.5},
	{"B", 3.0},
	{"BC", 2.5},
	{"C", 2.0},
	{"D", 1.5},
	{"E", 1.0},
}

var scalePoints = func() map[string]float64 {
	m := make(map[string]float64, len(Scale))
	for _, e := range Scale {
		m[e.Grade] = e.Point
	}
	return m
}()

// Point returns the grade point for a grade code. Lookup is exact and case-sensitive.
func Point(grade string) (float64, bool) {
	p, ok := scalePoints[grade]
	return p, ok
}

// Known reports whether grade belongs to the scale.
func Known(grade string) bool {
	_, ok := scalePoints[grade]
	return ok
}
