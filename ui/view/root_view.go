package view

import (
	"image"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/tvoss/image-measure-go/config"
	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/ui/overlay"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user-action callbacks the root view invokes.
type Handlers struct {
	OnScaleMode     func()
	OnPathMode      func()
	OnClosePath     func()
	OnUndo          func()
	OnReset         func()
	OnUnitSelected  func(name string)
	OnUnitsPerPixel func(value string)
	OnDistance      func(value string)
	OnLoadImage     func(path string)
	OnCaptureScreen func()
	OnToggleDark    func()
	OnExit          func()
	OnClick         func(x, y float64)
	OnRightClick    func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     ImagePreview

	// Widgets
	statusLabel   *LabelWidget
	totalLabel    *LabelWidget
	measureErrLbl *LabelWidget
	uploadErrLbl  *LabelWidget
	busyLabel     *LabelWidget
	unitSelect    *TComboboxWidget
	uppEntry      *TextWidget
	distanceEntry *TextWidget
	pathEntry     *TextWidget
	loadBtn       *ButtonWidget
	captureBtn    *ButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	ImageDisplayRect() measure.DisplayRect
	UpdateOverlay(scene overlay.Scene)
	ShowImage(img image.Image)
	SetInstructions(text string)
	SetTotal(text string)
	SetMeasureBusy(busy bool)
	SetMeasureError(msg string)
	SetUploadBusy(busy bool)
	SetUploadError(msg string)
	SetSession(session, total time.Duration)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout and binds the handlers.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: session stats, guidance label, buttons frame.
	rv.Session = NewSessionStats(nil, 0, 0)
	rv.statusLabel = Label(Txt("Load an image to begin."), Borderwidth(1), Relief("ridge"), Anchor("w"))
	Grid(rv.statusLabel, Row(0), Column(2), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	btnRow := 0
	addButton := func(label string, cmd func()) *ButtonWidget {
		b := Button(Txt(label), Command(cmd))
		Grid(b, In(btnFrame), Row(btnRow), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		btnRow++
		return b
	}
	addButton("Set Scale", h.OnScaleMode)
	addButton("Trace Path", h.OnPathMode)
	addButton("Close Path", h.OnClosePath)
	addButton("Undo Point", h.OnUndo)
	addButton("Reset", h.OnReset)
	rv.captureBtn = addButton("Capture Screen", h.OnCaptureScreen)
	addButton("Dark Mode", h.OnToggleDark)
	addButton("Exit", h.OnExit)

	// Row 1: readout row: total, busy marker, error labels.
	rv.totalLabel = Label(Txt("Total: 0.00 px"), Anchor("w"))
	Grid(rv.totalLabel, Row(1), Column(0), Sticky("w"), Padx("0.4m"))
	rv.busyLabel = Label(Width(12))
	Grid(rv.busyLabel, Row(1), Column(1), Sticky("w"), Padx("0.2m"))
	rv.measureErrLbl = Label(Anchor("w"))
	Grid(rv.measureErrLbl, Row(1), Column(2), Sticky("we"), Padx("0.4m"))
	rv.uploadErrLbl = Label(Anchor("w"))
	Grid(rv.uploadErrLbl, Row(1), Column(3), Sticky("we"), Padx("0.4m"))

	// Row 2: scale controls.
	controls := Frame()
	Grid(controls, Row(2), Column(0), Columnspan(4), Sticky("we"), Padx("0.3m"), Pady("0.2m"))
	unitLbl := Label(Txt("Unit"), Anchor("w"))
	Grid(unitLbl, In(controls), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	labels := make([]string, len(measure.UnitChoices))
	for i, c := range measure.UnitChoices {
		labels[i] = c.Label
	}
	rv.unitSelect = TCombobox(Values(labels), Width(12))
	Grid(rv.unitSelect, In(controls), Row(0), Column(1), Sticky("w"), Padx("0.2m"))
	rv.selectUnit(rv.cfgUnit())
	Bind(rv.unitSelect, "<<ComboboxSelected>>", Command(func() {
		idxStr := rv.unitSelect.Current(nil)
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(measure.UnitChoices) {
			if rv.logger != nil {
				rv.logger.Error("unit selection parse error", "value", idxStr, "error", err)
			}
			return
		}
		if h.OnUnitSelected != nil {
			h.OnUnitSelected(measure.UnitChoices[idx].Name)
		}
	}))

	makeEntry := func(row int, label string, width int) *TextWidget {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(controls), Row(row), Column(0), Sticky("w"), Padx("0.2m"), Pady("0.15m"))
		w := Text(Height(1), Width(width))
		Grid(w, In(controls), Row(row), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
		return w
	}
	rv.distanceEntry = makeEntry(1, "Real distance", 12)
	distBtn := Button(Txt("Set Distance"), Command(func() {
		if h.OnDistance != nil {
			h.OnDistance(textOf(rv.distanceEntry))
		}
	}))
	Grid(distBtn, In(controls), Row(1), Column(2), Sticky("we"), Padx("0.2m"))

	rv.uppEntry = makeEntry(2, "Units per pixel", 12)
	uppBtn := Button(Txt("Apply Factor"), Command(func() {
		if h.OnUnitsPerPixel != nil {
			h.OnUnitsPerPixel(textOf(rv.uppEntry))
		}
	}))
	Grid(uppBtn, In(controls), Row(2), Column(2), Sticky("we"), Padx("0.2m"))

	rv.pathEntry = makeEntry(3, "Image file", 32)
	rv.loadBtn = Button(Txt("Load Image"), Command(func() {
		if h.OnLoadImage != nil {
			h.OnLoadImage(textOf(rv.pathEntry))
		}
	}))
	Grid(rv.loadBtn, In(controls), Row(3), Column(2), Sticky("we"), Padx("0.2m"))

	// Config panel rows, then the preview at the bottom.
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.ConfigPanel.Build(3)
	maxW, maxH := 900, 600
	if rv.cfg != nil {
		maxW, maxH = rv.cfg.PreviewMaxW, rv.cfg.PreviewMaxH
	}
	rv.Preview = NewImagePreview(endRow, maxW, maxH)
	Bind(rv.Preview.Widget(), "<Button-1>", Command(func(e *Event) {
		if h.OnClick != nil {
			h.OnClick(float64(e.X), float64(e.Y))
		}
	}))
	Bind(rv.Preview.Widget(), "<Button-3>", Command(func(e *Event) {
		if h.OnRightClick != nil {
			h.OnRightClick()
		}
	}))
}

func (rv *RootView) cfgUnit() string {
	if rv.cfg == nil {
		return measure.UnitPixels
	}
	return rv.cfg.UnitName
}

func (rv *RootView) selectUnit(name string) {
	if rv.unitSelect == nil {
		return
	}
	for i, c := range measure.UnitChoices {
		if c.Name == name {
			rv.unitSelect.Current(i)
			return
		}
	}
	rv.unitSelect.Current(0)
}

func textOf(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

// ImageDisplayRect reports the on-screen image rectangle for click mapping.
func (rv *RootView) ImageDisplayRect() measure.DisplayRect {
	if rv == nil || rv.Preview == nil {
		return measure.DisplayRect{}
	}
	return rv.Preview.DisplayRect()
}

// UpdateOverlay recomposites the preview with the given scene.
func (rv *RootView) UpdateOverlay(scene overlay.Scene) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Overlay(scene)
	}
}

// ShowImage installs a freshly loaded image into the preview.
func (rv *RootView) ShowImage(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Show(img)
	}
}

// SetInstructions updates the guidance label.
func (rv *RootView) SetInstructions(text string) {
	if rv != nil && rv.statusLabel != nil {
		rv.statusLabel.Configure(Txt(text))
	}
}

// SetTotal updates the measurement readout label.
func (rv *RootView) SetTotal(text string) {
	if rv != nil && rv.totalLabel != nil {
		rv.totalLabel.Configure(Txt("Total: " + text))
	}
}

// SetMeasureBusy shows or clears the in-flight marker.
func (rv *RootView) SetMeasureBusy(busy bool) {
	if rv == nil || rv.busyLabel == nil {
		return
	}
	if busy {
		rv.busyLabel.Configure(Txt("measuring..."))
	} else {
		rv.busyLabel.Configure(Txt(""))
	}
}

// SetMeasureError displays the measurement domain error message.
func (rv *RootView) SetMeasureError(msg string) {
	if rv != nil && rv.measureErrLbl != nil {
		rv.measureErrLbl.Configure(Txt(msg))
	}
}

// SetUploadBusy toggles the image source buttons while an upload runs.
func (rv *RootView) SetUploadBusy(busy bool) {
	if rv == nil {
		return
	}
	state := "normal"
	if busy {
		state = "disabled"
	}
	if rv.loadBtn != nil {
		rv.loadBtn.Configure(State(state))
	}
	if rv.captureBtn != nil {
		rv.captureBtn.Configure(State(state))
	}
}

// SetUploadError displays the upload domain error message.
func (rv *RootView) SetUploadError(msg string) {
	if rv != nil && rv.uploadErrLbl != nil {
		rv.uploadErrLbl.Configure(Txt(msg))
	}
}

// SetSession updates both session and total measuring durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}
