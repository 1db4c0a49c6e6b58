package measure

import "testing"

func TestMapToImage_IndependentAxes(t *testing.T) {
	rect := DisplayRect{X: 10, Y: 20, Width: 400, Height: 300}
	// Natural image is twice as wide and three times as tall as displayed.
	p, ok := MapToImage(210, 120, rect, 800, 900)
	if !ok {
		t.Fatalf("expected mapping to succeed")
	}
	if !almostEqual(p.X, 400) || !almostEqual(p.Y, 300) {
		t.Fatalf("expected (400,300), got (%v,%v)", p.X, p.Y)
	}
}

func TestMapToImage_NoClamping(t *testing.T) {
	rect := DisplayRect{Width: 100, Height: 100}
	p, ok := MapToImage(-10, 150, rect, 100, 100)
	if !ok {
		t.Fatalf("expected mapping to succeed")
	}
	if p.X != -10 || p.Y != 150 {
		t.Fatalf("mapper must not clamp, got (%v,%v)", p.X, p.Y)
	}
}

func TestMapToImage_DegenerateRect(t *testing.T) {
	if _, ok := MapToImage(5, 5, DisplayRect{Width: 0, Height: 100}, 10, 10); ok {
		t.Fatalf("zero-width rect must not map")
	}
	if _, ok := MapToImage(5, 5, DisplayRect{Width: 100, Height: 100}, 0, 10); ok {
		t.Fatalf("missing natural size must not map")
	}
}
