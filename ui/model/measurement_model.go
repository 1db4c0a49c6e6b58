package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tvoss/image-measure-go/domain/measure"
)

// MeasurementModel is the single owner of interaction state: mode,
// calibration pair, traced path, scale, last measurement result and the
// transient upload/measure flags. It is decoupled from the UI; presenters
// mutate it synchronously on the UI thread and push values to views. Every
// mutation is immediately visible to readers; nothing is batched.
type MeasurementModel struct {
	mode     measure.Mode
	imageURL string
	naturalW float64
	naturalH float64

	pair  measure.CalibrationPair
	path  measure.Path
	scale measure.Scale

	result        *measure.Measurement
	totalDistance float64

	uploading    bool
	measuring    bool
	uploadError  string
	measureError string

	instructions string
}

// NewMeasurementModel returns a model with the pixel identity scale.
func NewMeasurementModel() *MeasurementModel {
	return &MeasurementModel{
		scale:        measure.DefaultScale(),
		instructions: "Load an image to begin.",
	}
}

// Mode returns the active interaction mode.
func (m *MeasurementModel) Mode() measure.Mode {
	if m == nil {
		return measure.ModeIdle
	}
	return m.mode
}

// SetMode switches the interaction mode and updates the guidance text.
// Geometry is never cleared by a mode change.
func (m *MeasurementModel) SetMode(mode measure.Mode) {
	if m == nil {
		return
	}
	m.mode = mode
	switch mode {
	case measure.ModeScale:
		m.instructions = "Click two points to define the scale."
	case measure.ModePath:
		if m.path.Len() == 0 {
			m.instructions = "Click on the image to create a path. Right click to remove the last point."
		} else {
			m.instructions = "Path active. Continue clicking to add points or close the loop."
		}
	default:
		if m.path.Len() > 0 {
			m.instructions = "Path active. Continue clicking to add points or close the loop."
		} else {
			m.instructions = "Select a mode to begin measuring."
		}
	}
}

// SetImage records a freshly loaded image and resets all measurements.
func (m *MeasurementModel) SetImage(url string, naturalW, naturalH float64) {
	if m == nil {
		return
	}
	m.imageURL = url
	m.naturalW, m.naturalH = naturalW, naturalH
	m.Reset()
}

// ImageLoaded reports whether an image is available for measuring.
func (m *MeasurementModel) ImageLoaded() bool { return m != nil && m.imageURL != "" }

// ImageURL returns the address of the loaded image.
func (m *MeasurementModel) ImageURL() string {
	if m == nil {
		return ""
	}
	return m.imageURL
}

// NaturalSize returns the loaded image dimensions in pixels.
func (m *MeasurementModel) NaturalSize() (w, h float64) {
	if m == nil {
		return 0, 0
	}
	return m.naturalW, m.naturalH
}

// Reset clears calibration, path and scale, returning to idle. It is
// effective only while an image is loaded.
func (m *MeasurementModel) Reset() {
	if m == nil || !m.ImageLoaded() {
		return
	}
	m.mode = measure.ModeIdle
	m.pair.Reset()
	m.path.Clear()
	m.scale = measure.DefaultScale()
	m.result = nil
	m.totalDistance = 0
	m.measureError = ""
	m.instructions = "Select 'Set Scale' or 'Trace Path' to begin measuring."
}

// AddCalibrationPoint records a scale reference point; the third point in
// a row restarts the pair. Guidance switches to the distance prompt
// exactly when the pair completes.
func (m *MeasurementModel) AddCalibrationPoint(p measure.Point) {
	if m == nil {
		return
	}
	m.pair.Add(p)
	if m.pair.Complete() {
		m.instructions = "Enter the real-world distance for the scale."
	} else {
		m.instructions = "Click the second point for the scale reference."
	}
}

// Calibration returns a copy of the calibration pair points.
func (m *MeasurementModel) Calibration() []measure.Point {
	if m == nil {
		return nil
	}
	return m.pair.Points()
}

// CalibrationComplete reports whether both reference points are picked.
func (m *MeasurementModel) CalibrationComplete() bool { return m != nil && m.pair.Complete() }

// SetRealWorldDistance derives units-per-pixel from the calibration pair
// and the user-entered distance. Effective only with a complete pair, a
// parseable positive finite value and a non-degenerate reference segment.
func (m *MeasurementModel) SetRealWorldDistance(value string) bool {
	if m == nil || !m.pair.Complete() {
		return false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		m.measureError = "enter a positive real-world distance"
		return false
	}
	pixelLength := m.pair.PixelLength()
	if pixelLength <= 0 {
		m.measureError = "calibration points are identical; pick them again"
		return false
	}
	if !m.scale.SetUnitsPerPixel(v / pixelLength) {
		return false
	}
	m.measureError = ""
	m.mode = measure.ModeIdle
	m.instructions = "Scale set. Switch to path tracing to measure distances."
	return true
}

// SetUnitsPerPixel applies a direct override of the conversion factor.
// Invalid candidates set a validation error and leave the scale unchanged.
func (m *MeasurementModel) SetUnitsPerPixel(value string) bool {
	if m == nil {
		return false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !m.scale.SetUnitsPerPixel(v) {
		m.measureError = "units per pixel must be a positive finite number"
		return false
	}
	m.measureError = ""
	return true
}

// SetUnitName switches the active unit. Selecting pixels pins the factor
// to 1 and clears any standing calibration error.
func (m *MeasurementModel) SetUnitName(name string) {
	if m == nil {
		return
	}
	m.scale.SetUnitName(name)
	if name == measure.UnitPixels {
		m.measureError = ""
	}
}

// Scale returns a copy of the active scale.
func (m *MeasurementModel) Scale() measure.Scale {
	if m == nil {
		return measure.DefaultScale()
	}
	return m.scale
}

// AddVertex appends a path vertex; on a closed path it starts a fresh
// open path containing only p. Any standing measurement error is cleared.
func (m *MeasurementModel) AddVertex(p measure.Point) {
	if m == nil {
		return
	}
	m.path.AddVertex(p)
	m.measureError = ""
	if m.path.Len() == 1 {
		m.instructions = "Add more points to trace a path."
	} else {
		m.instructions = "Continue adding points or close the loop."
	}
}

// RemoveLastVertex drops the most recent vertex; no-op on an empty path.
func (m *MeasurementModel) RemoveLastVertex() bool {
	if m == nil {
		return false
	}
	if !m.path.RemoveLast() {
		return false
	}
	if m.path.Len() == 0 {
		m.instructions = "Path cleared. Add a new point to start."
	}
	return true
}

// ClosePath closes the traced path into a loop when it has at least three
// vertices and is still open.
func (m *MeasurementModel) ClosePath() bool {
	if m == nil {
		return false
	}
	if !m.path.Close() {
		return false
	}
	m.instructions = "Path closed. Add points to start a new path."
	return true
}

// PathVertices returns a copy of the traced vertex sequence.
func (m *MeasurementModel) PathVertices() []measure.Point {
	if m == nil {
		return nil
	}
	return m.path.Vertices()
}

// PathClosed reports whether the traced path forms a loop.
func (m *MeasurementModel) PathClosed() bool { return m != nil && m.path.Closed() }

// PathLen returns the traced vertex count.
func (m *MeasurementModel) PathLen() int {
	if m == nil {
		return 0
	}
	return m.path.Len()
}

// SetResult stores a completed measurement wholesale and derives the
// displayed total: the unit total when present, else the pixel total.
func (m *MeasurementModel) SetResult(result *measure.Measurement) {
	if m == nil {
		return
	}
	m.result = result
	switch {
	case result == nil:
		m.totalDistance = 0
	case result.TotalUnits != nil:
		m.totalDistance = *result.TotalUnits
	default:
		m.totalDistance = result.TotalPixels
	}
}

// ClearResult drops the measurement result and zeroes the total.
func (m *MeasurementModel) ClearResult() { m.SetResult(nil) }

// Result returns the last stored measurement, or nil.
func (m *MeasurementModel) Result() *measure.Measurement {
	if m == nil {
		return nil
	}
	return m.result
}

// TotalDistance returns the derived display total in active units.
func (m *MeasurementModel) TotalDistance() float64 {
	if m == nil {
		return 0
	}
	return m.totalDistance
}

// FormattedTotal renders the display total with its unit suffix.
func (m *MeasurementModel) FormattedTotal() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%.2f %s", m.totalDistance, measure.DisplayUnitName(m.scale.UnitName))
}

// Uploading reports whether an image upload is in flight.
func (m *MeasurementModel) Uploading() bool { return m != nil && m.uploading }

// SetUploading toggles the upload-in-flight flag.
func (m *MeasurementModel) SetUploading(b bool) {
	if m != nil {
		m.uploading = b
	}
}

// Measuring reports whether a measurement request is in flight.
func (m *MeasurementModel) Measuring() bool { return m != nil && m.measuring }

// SetMeasuring toggles the measurement-in-flight flag.
func (m *MeasurementModel) SetMeasuring(b bool) {
	if m != nil {
		m.measuring = b
	}
}

// UploadError returns the upload domain error slot.
func (m *MeasurementModel) UploadError() string {
	if m == nil {
		return ""
	}
	return m.uploadError
}

// SetUploadError replaces the upload error slot.
func (m *MeasurementModel) SetUploadError(msg string) {
	if m != nil {
		m.uploadError = msg
	}
}

// MeasureError returns the measurement domain error slot.
func (m *MeasurementModel) MeasureError() string {
	if m == nil {
		return ""
	}
	return m.measureError
}

// SetMeasureError replaces the measurement error slot.
func (m *MeasurementModel) SetMeasureError(msg string) {
	if m != nil {
		m.measureError = msg
	}
}

// Instructions returns the current guidance text.
func (m *MeasurementModel) Instructions() string {
	if m == nil {
		return ""
	}
	return m.instructions
}
