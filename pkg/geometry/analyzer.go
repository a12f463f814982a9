package geometry

import "github.com/golang/geo/r2"

// Config carries every tunable of a frame analysis. It is passed per call;
// nothing is read from shared state.
type Config struct {
	Direction      DirectionThresholds
	BlinkThreshold float64
	RightEye       EyeIndices
	LeftEye        EyeIndices
	Midpoint       bool
}

func DefaultConfig() Config {
	right, left := DefaultEyeIndices()
	return Config{
		Direction:      DefaultDirectionThresholds(),
		BlinkThreshold: DefaultBlinkThreshold,
		RightEye:       right,
		LeftEye:        left,
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func pointFrom(p r2.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

type FrameAnalysis struct {
	Direction  Direction    `json:"direction"`
	Blink      *BlinkRatios `json:"blink,omitempty"`
	EyesClosed bool         `json:"eyes_closed"`
	Midpoint   *Point       `json:"midpoint,omitempty"`
}

// Analyze runs direction, blink and (optionally) midpoint over one face mesh.
// Midpoint is left nil when the lines do not cross; only a mesh too short for
// the configured indices is an error.
func Analyze(landmarks []Landmark, cfg Config) (FrameAnalysis, error) {
	direction, err := ClassifyFaceMeshDirection(landmarks, cfg.Direction)
	if err != nil {
		return FrameAnalysis{}, err
	}
	result := FrameAnalysis{Direction: direction.OrCenter()}

	ratios, err := BlinkRatio(landmarks, cfg.RightEye, cfg.LeftEye)
	if err != nil {
		return FrameAnalysis{}, err
	}
	result.Blink = &ratios
	result.EyesClosed = ratios.Closed(cfg.BlinkThreshold)

	if cfg.Midpoint {
		p, err := LineIntersection(
			landmarks[DirectionTopIndex],
			landmarks[DirectionLeftIndex],
			landmarks[DirectionRightIndex],
			landmarks[DirectionBottomIndex],
		)
		if err == nil {
			mid := pointFrom(p)
			result.Midpoint = &mid
		}
	}

	return result, nil
}
