package game

// Rect is an axis-aligned bounding box with its origin at the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Overlap reports whether a and b intersect. Touching edges do not count.
func Overlap(a, b Rect) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}
