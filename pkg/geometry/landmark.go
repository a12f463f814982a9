package geometry

import (
	"errors"

	"github.com/golang/geo/r3"
)

// Face mesh sizes: 468 points without iris refinement, 478 with it.
const (
	FaceMeshLandmarks        = 468
	FaceMeshRefinedLandmarks = 478
)

var (
	ErrLandmarkIndex  = errors.New("landmark index out of range")
	ErrNoIntersection = errors.New("lines do not intersect")
	ErrEyeTable       = errors.New("eye connection table too short")
)

// Landmark is a normalized face mesh point. X and Y are relative to frame
// width and height, Z is relative depth (negative towards the camera).
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (l Landmark) Vector() r3.Vector {
	return r3.Vector{X: l.X, Y: l.Y, Z: l.Z}
}

// Distance returns the euclidean distance between two landmarks in 3D.
func Distance(a, b Landmark) float64 {
	return a.Vector().Distance(b.Vector())
}

func at(landmarks []Landmark, idx int) (Landmark, error) {
	if idx < 0 || idx >= len(landmarks) {
		return Landmark{}, ErrLandmarkIndex
	}
	return landmarks[idx], nil
}
