package geometry

// MinLidDistance is the smallest vertical eye opening measured; below it the
// eye is treated as shut.
const MinLidDistance = 1e-9

// DefaultBlinkThreshold is the combined ratio above which eyes count as closed.
const DefaultBlinkThreshold = 10.0

// Face mesh eye contours as landmark connection pairs.
var (
	FaceMeshRightEye = [][2]int{
		{33, 7}, {7, 163}, {163, 144}, {144, 145}, {145, 153}, {153, 154}, {154, 155}, {155, 133},
		{33, 246}, {246, 161}, {161, 160}, {160, 159}, {159, 158}, {158, 157}, {157, 173}, {173, 133},
	}
	FaceMeshLeftEye = [][2]int{
		{263, 249}, {249, 390}, {390, 373}, {373, 374}, {374, 380}, {380, 381}, {381, 382}, {382, 362},
		{263, 466}, {466, 388}, {388, 387}, {387, 386}, {386, 385}, {385, 384}, {384, 398}, {398, 362},
	}
)

// EyeIndices names the four landmarks measured for one eye.
type EyeIndices struct {
	Outer  int `json:"outer"`
	Inner  int `json:"inner"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// EyeIndicesFromConnections reads the corner and lid landmarks out of an eye
// contour table: corners at [0][0] and [7][1], lids at [4][0] and [12][0].
func EyeIndicesFromConnections(conns [][2]int) (EyeIndices, error) {
	if len(conns) < 13 {
		return EyeIndices{}, ErrEyeTable
	}
	return EyeIndices{
		Outer:  conns[0][0],
		Inner:  conns[7][1],
		Top:    conns[4][0],
		Bottom: conns[12][0],
	}, nil
}

func DefaultEyeIndices() (right, left EyeIndices) {
	right, _ = EyeIndicesFromConnections(FaceMeshRightEye)
	left, _ = EyeIndicesFromConnections(FaceMeshLeftEye)
	return right, left
}

// BlinkRatios holds eye width divided by eye height per eye and their mean.
// A larger ratio means a more closed eye: as the lids meet the height shrinks
// while the width stays put.
//
// An eye whose lid distance is under MinLidDistance has no finite ratio. It
// is flagged as shut, its ratio is left at 0 and it counts as closed at any
// threshold. Eyes averages the eyes that are not shut.
type BlinkRatios struct {
	Right     float64 `json:"right"`
	Left      float64 `json:"left"`
	Eyes      float64 `json:"eyes"`
	RightShut bool    `json:"right_shut,omitempty"`
	LeftShut  bool    `json:"left_shut,omitempty"`
}

func (r BlinkRatios) RightClosed(threshold float64) bool {
	return r.RightShut || r.Right > threshold
}

func (r BlinkRatios) LeftClosed(threshold float64) bool {
	return r.LeftShut || r.Left > threshold
}

// Closed reports whether the combined ratio is above threshold. A shut eye
// makes the combined ratio unbounded, so it is always closed.
func (r BlinkRatios) Closed(threshold float64) bool {
	return r.RightShut || r.LeftShut || r.Eyes > threshold
}

// eyeRatio returns the eye's ratio, or shut when its lids meet.
func eyeRatio(landmarks []Landmark, eye EyeIndices) (ratio float64, shut bool, err error) {
	var pts [4]Landmark
	for i, idx := range []int{eye.Outer, eye.Inner, eye.Top, eye.Bottom} {
		p, err := at(landmarks, idx)
		if err != nil {
			return 0, false, err
		}
		pts[i] = p
	}

	vertical := Distance(pts[2], pts[3])
	if vertical < MinLidDistance {
		return 0, true, nil
	}
	return Distance(pts[0], pts[1]) / vertical, false, nil
}

// BlinkRatio measures each eye on its own. Only indices outside the mesh are
// an error.
func BlinkRatio(landmarks []Landmark, right, left EyeIndices) (BlinkRatios, error) {
	r, rShut, err := eyeRatio(landmarks, right)
	if err != nil {
		return BlinkRatios{}, err
	}
	l, lShut, err := eyeRatio(landmarks, left)
	if err != nil {
		return BlinkRatios{}, err
	}

	ratios := BlinkRatios{Right: r, Left: l, RightShut: rShut, LeftShut: lShut}
	switch {
	case !rShut && !lShut:
		ratios.Eyes = (r + l) / 2
	case !rShut:
		ratios.Eyes = r
	case !lShut:
		ratios.Eyes = l
	}
	return ratios, nil
}
