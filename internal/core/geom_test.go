package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single cell overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(10, 10, 10, 10).Inset(2)
	if r.X != 12 || r.Y != 12 || r.W != 6 || r.H != 6 {
		t.Errorf("Inset(2) = %+v, expected {12 12 6 6}", r)
	}

	// Inset larger than half the size collapses to zero, never negative
	tiny := NewRect(0, 0, 3, 3).Inset(2)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset beyond size should collapse to zero, got %+v", tiny)
	}
}

func TestFRectIntersects(t *testing.T) {
	a := FRect{X: 0, Y: 0, W: 5, H: 5}
	b := FRect{X: 4.5, Y: 4.5, W: 2, H: 2}
	if !a.Intersects(b) {
		t.Error("expected overlapping FRects to intersect")
	}

	c := FRect{X: 5, Y: 0, W: 2, H: 2}
	if a.Intersects(c) {
		t.Error("edge-adjacent FRects should not intersect")
	}
}

func TestFRectShrink(t *testing.T) {
	r := FRect{X: 0, Y: 0, W: 4, H: 4}.Shrink(1)
	if r.X != 1 || r.Y != 1 || r.W != 2 || r.H != 2 {
		t.Errorf("Shrink(1) = %+v, expected {1 1 2 2}", r)
	}

	collapsed := FRect{X: 0, Y: 0, W: 1, H: 1}.Shrink(1)
	if collapsed.W != 0 || collapsed.H != 0 {
		t.Errorf("Shrink beyond size should collapse to zero, got %+v", collapsed)
	}
}

func TestCircleIntersectsFRect(t *testing.T) {
	r := FRect{X: 10, Y: 10, W: 10, H: 10}

	tests := []struct {
		name     string
		cx, cy   float64
		radius   float64
		expected bool
	}{
		{"center inside", 15, 15, 1, true},
		{"touching left edge", 8, 15, 2.1, true},
		{"near left edge, too small", 8, 15, 1.9, false},
		{"corner within radius", 9, 9, 2, true},
		{"corner outside radius", 8.5, 8.5, 2, false},
		{"far away", 0, 0, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CircleIntersectsFRect(tc.cx, tc.cy, tc.radius, r)
			if got != tc.expected {
				t.Errorf("CircleIntersectsFRect(%v, %v, %v) = %v, expected %v",
					tc.cx, tc.cy, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min is wrong")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max is wrong")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs is wrong")
	}
}
