package geometry

import "time"

type Eye string

const (
	EyeLeft  Eye = "left"
	EyeRight Eye = "right"
)

// DefaultFrameInterval assumes a 30 fps capture. Elapsed hold time is derived
// from frame counts only, so it drifts when the real frame rate differs.
const DefaultFrameInterval = time.Second / 30

// CloseState counts consecutive frames each eye has been closed.
type CloseState struct {
	LeftFrames  int `json:"left_frames"`
	RightFrames int `json:"right_frames"`
}

// UpdateCloseState advances the counters by one frame. A nil ratios value
// means no face was detected and resets both eyes.
func UpdateCloseState(state CloseState, ratios *BlinkRatios, threshold float64) CloseState {
	if ratios == nil {
		return CloseState{}
	}

	next := state
	if ratios.LeftClosed(threshold) {
		next.LeftFrames++
	} else {
		next.LeftFrames = 0
	}
	if ratios.RightClosed(threshold) {
		next.RightFrames++
	} else {
		next.RightFrames = 0
	}
	return next
}

func (s CloseState) Frames(eye Eye) int {
	if eye == EyeLeft {
		return s.LeftFrames
	}
	return s.RightFrames
}

// Held converts a frame count into an approximate duration.
func (s CloseState) Held(eye Eye, frameInterval time.Duration) time.Duration {
	return time.Duration(s.Frames(eye)) * frameInterval
}

type ClickConfig struct {
	Threshold     float64       `json:"threshold"`
	FrameInterval time.Duration `json:"frame_interval"`
	MinHold       time.Duration `json:"min_hold"`
}

func DefaultClickConfig() ClickConfig {
	return ClickConfig{
		Threshold:     DefaultBlinkThreshold,
		FrameInterval: DefaultFrameInterval,
		MinHold:       500 * time.Millisecond,
	}
}

// framesToHold is the closed-frame count at which a hold becomes a click.
func (c ClickConfig) framesToHold() int {
	interval := c.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	n := int((c.MinHold + interval - 1) / interval)
	if n < 1 {
		n = 1
	}
	return n
}

// ClickEvent is emitted once per continuous hold, on the frame the hold
// reaches MinHold.
type ClickEvent struct {
	Eye    Eye           `json:"eye"`
	Frames int           `json:"frames"`
	Held   time.Duration `json:"held"`
}

// CloseTracker owns the close state of one video stream. It is not safe for
// concurrent use.
type CloseTracker struct {
	cfg   ClickConfig
	state CloseState
}

func NewCloseTracker(cfg ClickConfig) *CloseTracker {
	return &CloseTracker{cfg: cfg}
}

// Observe records one frame and returns the clicks it completes.
func (t *CloseTracker) Observe(ratios *BlinkRatios) []ClickEvent {
	t.state = UpdateCloseState(t.state, ratios, t.cfg.Threshold)

	need := t.cfg.framesToHold()
	interval := t.cfg.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	var events []ClickEvent
	for _, eye := range []Eye{EyeLeft, EyeRight} {
		if t.state.Frames(eye) == need {
			events = append(events, ClickEvent{
				Eye:    eye,
				Frames: need,
				Held:   t.state.Held(eye, interval),
			})
		}
	}
	return events
}

func (t *CloseTracker) State() CloseState {
	return t.state
}

func (t *CloseTracker) Reset() {
	t.state = CloseState{}
}
