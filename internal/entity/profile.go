package entity

import (
	"FaceGeometry/pkg/geometry"
	"time"
)

type Profile struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	DirectionUp     float64   `db:"direction_up" json:"direction_up"`
	DirectionDown   float64   `db:"direction_down" json:"direction_down"`
	DirectionLeft   float64   `db:"direction_left" json:"direction_left"`
	DirectionRight  float64   `db:"direction_right" json:"direction_right"`
	BlinkThreshold  float64   `db:"blink_threshold" json:"blink_threshold"`
	MinHoldMs       int64     `db:"min_hold_ms" json:"min_hold_ms"`
	FrameIntervalMs float64   `db:"frame_interval_ms" json:"frame_interval_ms"`
	CreatedBy       string    `db:"created_by" json:"created_by"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultProfile mirrors the face-direction page settings.
func DefaultProfile() Profile {
	th := geometry.DefaultDirectionThresholds()
	click := geometry.DefaultClickConfig()
	return Profile{
		Name:            "default",
		DirectionUp:     th.Up,
		DirectionDown:   th.Down,
		DirectionLeft:   th.Left,
		DirectionRight:  th.Right,
		BlinkThreshold:  click.Threshold,
		MinHoldMs:       click.MinHold.Milliseconds(),
		FrameIntervalMs: float64(click.FrameInterval) / float64(time.Millisecond),
	}
}

func (p Profile) AnalyzerConfig() geometry.Config {
	cfg := geometry.DefaultConfig()
	cfg.Direction = geometry.DirectionThresholds{
		Up:    p.DirectionUp,
		Down:  p.DirectionDown,
		Left:  p.DirectionLeft,
		Right: p.DirectionRight,
	}
	cfg.BlinkThreshold = p.BlinkThreshold
	return cfg
}

func (p Profile) ClickConfig() geometry.ClickConfig {
	return geometry.ClickConfig{
		Threshold:     p.BlinkThreshold,
		FrameInterval: time.Duration(p.FrameIntervalMs * float64(time.Millisecond)),
		MinHold:       time.Duration(p.MinHoldMs) * time.Millisecond,
	}
}
