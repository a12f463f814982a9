package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

const slopeEpsilon = 1e-12

type line struct {
	vertical  bool
	x         float64
	slope     float64
	intercept float64
}

func lineThrough(a, b Landmark) (line, bool) {
	if a.X == b.X {
		if a.Y == b.Y {
			return line{}, false
		}
		return line{vertical: true, x: a.X}, true
	}
	slope := (b.Y - a.Y) / (b.X - a.X)
	return line{slope: slope, intercept: a.Y - slope*a.X}, true
}

// LineIntersection crosses the line through top and bottom with the line
// through left and right, in x/y only. A vertical line is solved as x = c.
// Parallel lines and lines defined by two identical points return
// ErrNoIntersection.
func LineIntersection(top, left, right, bottom Landmark) (r2.Point, error) {
	a, ok := lineThrough(top, bottom)
	if !ok {
		return r2.Point{}, ErrNoIntersection
	}
	b, ok := lineThrough(left, right)
	if !ok {
		return r2.Point{}, ErrNoIntersection
	}

	switch {
	case a.vertical && b.vertical:
		return r2.Point{}, ErrNoIntersection
	case a.vertical:
		return r2.Point{X: a.x, Y: b.slope*a.x + b.intercept}, nil
	case b.vertical:
		return r2.Point{X: b.x, Y: a.slope*b.x + a.intercept}, nil
	}

	if math.Abs(a.slope-b.slope) < slopeEpsilon {
		return r2.Point{}, ErrNoIntersection
	}

	x := (b.intercept - a.intercept) / (a.slope - b.slope)
	return r2.Point{X: x, Y: a.slope*x + a.intercept}, nil
}
