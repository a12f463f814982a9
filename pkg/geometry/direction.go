package geometry

import "strings"

type Direction string

const (
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
	DirectionLeft   Direction = "left"
	DirectionRight  Direction = "right"
	DirectionCenter Direction = "center"
)

// Face mesh landmarks used for head direction: forehead, left cheek, right
// cheek and chin.
const (
	DirectionTopIndex    = 10
	DirectionLeftIndex   = 323
	DirectionRightIndex  = 93
	DirectionBottomIndex = 152
)

// DirectionThresholds are the z-delta magnitudes each axis must exceed.
type DirectionThresholds struct {
	Up    float64 `json:"up" validate:"gte=0"`
	Down  float64 `json:"down" validate:"gte=0"`
	Left  float64 `json:"left" validate:"gte=0"`
	Right float64 `json:"right" validate:"gte=0"`
}

func DefaultDirectionThresholds() DirectionThresholds {
	return DirectionThresholds{
		Up:    0.1,
		Down:  0.08,
		Left:  0.08,
		Right: 0.08,
	}
}

// ClassifyDirection labels head orientation from the depth difference of two
// opposing landmark pairs. Comparisons are strict: a delta equal to its
// threshold produces no term on that axis. The result is empty when neither
// axis has a term.
func ClassifyDirection(top, left, right, bottom Landmark, th DirectionThresholds) Direction {
	dzVertical := top.Z - bottom.Z
	dzHorizontal := left.Z - right.Z

	terms := make([]string, 0, 2)
	switch {
	case dzVertical > th.Up:
		terms = append(terms, string(DirectionTop))
	case dzVertical < -th.Down:
		terms = append(terms, string(DirectionBottom))
	}
	switch {
	case dzHorizontal > th.Left:
		terms = append(terms, string(DirectionLeft))
	case dzHorizontal < -th.Right:
		terms = append(terms, string(DirectionRight))
	}

	return Direction(strings.Join(terms, "-"))
}

// ClassifyFaceMeshDirection picks the direction landmarks out of a full face mesh.
func ClassifyFaceMeshDirection(landmarks []Landmark, th DirectionThresholds) (Direction, error) {
	idx := []int{DirectionTopIndex, DirectionLeftIndex, DirectionRightIndex, DirectionBottomIndex}
	points := make([]Landmark, len(idx))
	for i, n := range idx {
		p, err := at(landmarks, n)
		if err != nil {
			return "", err
		}
		points[i] = p
	}
	return ClassifyDirection(points[0], points[1], points[2], points[3], th), nil
}

func (d Direction) IsCenter() bool {
	return d == "" || d == DirectionCenter
}

func (d Direction) OrCenter() Direction {
	if d == "" {
		return DirectionCenter
	}
	return d
}

// Terms splits a label into its axis terms; center yields none.
func (d Direction) Terms() []Direction {
	if d.IsCenter() {
		return nil
	}
	parts := strings.Split(string(d), "-")
	terms := make([]Direction, 0, len(parts))
	for _, p := range parts {
		terms = append(terms, Direction(p))
	}
	return terms
}

func (d Direction) Has(term Direction) bool {
	for _, t := range d.Terms() {
		if t == term {
			return true
		}
	}
	return false
}
