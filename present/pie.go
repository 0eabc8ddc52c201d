package present

import (
	"fmt"
	"math"
)

// Fixed chart geometry: a 200x200 viewport with the circle centered in it.
const (
	PieCenterX = 100.0
	PieCenterY = 100.0
	PieRadius  = 80.0
)

// Slice colors for the two-slice chart: current cost, then future value.
var pieFills = [2]string{"#4e79a7", "#f28e2b"}

// SlicePaths returns the two SVG path strings for a circle split at pct
// percent. The first slice starts at the top (-90 degrees) and sweeps
// clockwise through pct percent of the circle; the second covers the
// remainder. pct is clamped to [0, 100], and a degenerate split is nudged
// off the boundary so neither arc collapses to a zero-length path.
func SlicePaths(pct float64) (first, second string) {
	pct = math.Max(0, math.Min(100, pct))
	// A slice of exactly 0% or 100% would put both arc endpoints on the
	// same point, which SVG renders as nothing.
	if pct < 0.01 {
		pct = 0.01
	} else if pct > 99.99 {
		pct = 99.99
	}

	split := -90 + pct/100*360
	first = slicePath(-90, split)
	second = slicePath(split, 270)
	return first, second
}

// slicePath builds one wedge from angle a1 to a2 (degrees, clockwise,
// SVG's y-down coordinate system).
func slicePath(a1, a2 float64) string {
	x1, y1 := pointAt(a1)
	x2, y2 := pointAt(a2)
	largeArc := 0
	if a2-a1 > 180 {
		largeArc = 1
	}
	return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d,1 %.2f,%.2f Z",
		PieCenterX, PieCenterY, x1, y1, PieRadius, PieRadius, largeArc, x2, y2)
}

func pointAt(deg float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return PieCenterX + PieRadius*math.Cos(rad), PieCenterY + PieRadius*math.Sin(rad)
}

// SVG renders a standalone two-slice pie chart document for the given
// split percentage.
func SVG(pct float64) string {
	first, second := SlicePaths(pct)
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200" viewBox="0 0 200 200">
  <path d="%s" fill="%s"/>
  <path d="%s" fill="%s"/>
</svg>
`, first, pieFills[0], second, pieFills[1])
}
