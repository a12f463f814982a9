package overlay

import (
	"FaceGeometry/pkg/geometry"
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	ErrEmptyImage = errors.New("image could not be decoded")

	landmarkColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	eyeColor      = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	axisColor     = color.RGBA{R: 0, G: 140, B: 255, A: 255}
	midpointColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	labelColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Options selects what Render draws on top of the frame.
type Options struct {
	Landmarks bool
	Eyes      bool
	Axes      bool
	Label     bool
}

func DefaultOptions() Options {
	return Options{Landmarks: true, Eyes: true, Axes: true, Label: true}
}

// Render decodes a PNG or JPEG frame, draws the face mesh and analysis on it
// and returns it JPEG encoded. Landmarks are in normalized image space.
func Render(frame []byte, landmarks []geometry.Landmark, analysis geometry.FrameAnalysis, cfg geometry.Config, opts Options) ([]byte, error) {
	img, err := gocv.IMDecode(frame, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	if img.Empty() {
		return nil, ErrEmptyImage
	}

	w, h := img.Cols(), img.Rows()
	px := func(l geometry.Landmark) image.Point {
		return image.Pt(int(l.X*float64(w)), int(l.Y*float64(h)))
	}

	if opts.Landmarks {
		for _, l := range landmarks {
			gocv.Circle(&img, px(l), 1, landmarkColor, -1)
		}
	}

	if opts.Eyes {
		for _, eye := range []geometry.EyeIndices{cfg.RightEye, cfg.LeftEye} {
			if !inRange(landmarks, eye.Outer, eye.Inner, eye.Top, eye.Bottom) {
				continue
			}
			gocv.Line(&img, px(landmarks[eye.Outer]), px(landmarks[eye.Inner]), eyeColor, 1)
			gocv.Line(&img, px(landmarks[eye.Top]), px(landmarks[eye.Bottom]), eyeColor, 1)
		}
	}

	if opts.Axes && inRange(landmarks, geometry.DirectionTopIndex, geometry.DirectionBottomIndex, geometry.DirectionLeftIndex, geometry.DirectionRightIndex) {
		gocv.Line(&img, px(landmarks[geometry.DirectionTopIndex]), px(landmarks[geometry.DirectionBottomIndex]), axisColor, 1)
		gocv.Line(&img, px(landmarks[geometry.DirectionLeftIndex]), px(landmarks[geometry.DirectionRightIndex]), axisColor, 1)
	}

	if analysis.Midpoint != nil {
		c := px(geometry.Landmark{X: analysis.Midpoint.X, Y: analysis.Midpoint.Y})
		gocv.Line(&img, c.Add(image.Pt(-6, 0)), c.Add(image.Pt(6, 0)), midpointColor, 2)
		gocv.Line(&img, c.Add(image.Pt(0, -6)), c.Add(image.Pt(0, 6)), midpointColor, 2)
	}

	if opts.Label {
		gocv.PutText(&img, Label(analysis), image.Pt(10, 30),
			gocv.FontHersheyPlain, 2, labelColor, 2)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

// Label is the text drawn in the frame corner.
func Label(a geometry.FrameAnalysis) string {
	label := string(a.Direction.OrCenter())
	if a.Blink != nil {
		label = fmt.Sprintf("%s  blink %.1f", label, a.Blink.Eyes)
	}
	if a.EyesClosed {
		label += " (closed)"
	}
	return label
}

func inRange(landmarks []geometry.Landmark, idx ...int) bool {
	for _, i := range idx {
		if i < 0 || i >= len(landmarks) {
			return false
		}
	}
	return true
}
