package geometry

// Cursor is a point on a virtual screen steered by head direction.
type Cursor struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Step   int `json:"step"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Size   int `json:"size"`
}

// NewCursor places a cursor in the middle of a width x height screen.
func NewCursor(width, height, step, size int) *Cursor {
	return &Cursor{
		X:      (width - size) / 2,
		Y:      (height - size) / 2,
		Step:   step,
		Width:  width,
		Height: height,
		Size:   size,
	}
}

func DefaultCursor() *Cursor {
	return NewCursor(720, 480, 4, 20)
}

// Move shifts the cursor one step per direction term, clamped to the screen.
func (c *Cursor) Move(d Direction) {
	if d.Has(DirectionTop) {
		c.Y = max(c.Y-c.Step, 0)
	}
	if d.Has(DirectionLeft) {
		c.X = max(c.X-c.Step, 0)
	}
	if d.Has(DirectionBottom) {
		c.Y = min(c.Y+c.Step, c.Height-c.Size)
	}
	if d.Has(DirectionRight) {
		c.X = min(c.X+c.Step, c.Width-c.Size)
	}
}
