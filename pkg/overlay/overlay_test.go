package overlay

import (
	"FaceGeometry/pkg/geometry"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name     string
		analysis geometry.FrameAnalysis
		expected string
	}{
		{
			name:     "absent direction",
			analysis: geometry.FrameAnalysis{},
			expected: "center",
		},
		{
			name: "with blink",
			analysis: geometry.FrameAnalysis{
				Direction: "top-left",
				Blink:     &geometry.BlinkRatios{Eyes: 4.3},
			},
			expected: "top-left  blink 4.3",
		},
		{
			name: "closed",
			analysis: geometry.FrameAnalysis{
				Direction:  geometry.DirectionCenter,
				Blink:      &geometry.BlinkRatios{Eyes: 12},
				EyesClosed: true,
			},
			expected: "center  blink 12.0 (closed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.analysis); got != tt.expected {
				t.Errorf("Label() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	mesh := make([]geometry.Landmark, 10)
	if !inRange(mesh, 0, 9) {
		t.Error("inRange(0, 9) = false, want true")
	}
	if inRange(mesh, 3, 10) {
		t.Error("inRange(3, 10) = true, want false")
	}
	if inRange(mesh, -1) {
		t.Error("inRange(-1) = true, want false")
	}
}
