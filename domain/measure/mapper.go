package measure

// DisplayRect describes where and how large the image is rendered on the
// display surface, in device coordinates.
type DisplayRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MapToImage converts device coordinates into image pixel space,
// independent of display scaling. Horizontal and vertical factors are
// derived separately so non-uniform stretching maps correctly. It reports
// false when the display rect is degenerate or the natural size is
// unknown; no clamping is performed, callers restrict raw coordinates to
// the display rect beforehand.
func MapToImage(deviceX, deviceY float64, rect DisplayRect, naturalW, naturalH float64) (Point, bool) {
	if rect.Width <= 0 || rect.Height <= 0 || naturalW <= 0 || naturalH <= 0 {
		return Point{}, false
	}
	sx := naturalW / rect.Width
	sy := naturalH / rect.Height
	return Point{
		X: (deviceX - rect.X) * sx,
		Y: (deviceY - rect.Y) * sy,
	}, true
}
