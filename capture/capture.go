// Package capture grabs screen content to measure on.
package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// Source captures the screen as an image source for the editor.
type Source struct{}

// NewSource returns a screen capture source.
func NewSource() *Source { return &Source{} }

// Grab returns a screen capture of the current active monitor.
func (s *Source) Grab() (image.Image, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabRect returns a capture of the given screen rectangle.
func (s *Source) GrabRect(area image.Rectangle) (image.Image, error) {
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, err
	}
	return img, nil
}
