package common

import "testing"

func TestRectIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 2, 2, 2}, true},
		{"touching_edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"touching_bottom", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"apart", Rect{0, 0, 10, 10}, Rect{30, 30, 1, 1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Fatalf("Intersects(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
			if got := c.b.Intersects(c.a); got != c.want {
				t.Fatalf("Intersects is not symmetric for %v, %v", c.a, c.b)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, want float64
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{250, 100},
	}
	for _, c := range cases {
		if got := Clamp(c.v, 0, 100); got != c.want {
			t.Fatalf("Clamp(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}
