package common

// Rect is an axis-aligned box in world pixels, Y growing downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Intersects reports whether the two boxes overlap. Touching edges do not count.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}
