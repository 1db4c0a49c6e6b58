package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/tvoss/image-measure-go/config"
	"github.com/tvoss/image-measure-go/domain/measure"
	"github.com/tvoss/image-measure-go/ui/presenter"
	"github.com/tvoss/image-measure-go/ui/theme"
	"github.com/tvoss/image-measure-go/ui/view"
)

// tick drives the update loop: async completions drain and the session
// clock advances at this cadence.
const tick = 50 * time.Millisecond

type app struct {
	container *AppContainer
	logger    *slog.Logger
	cfgPath   string
	afterID   string
}

// NewApp creates the main window and assembles the component container.
func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger, cfgPath string) *app {
	a := &app{
		container: BuildContainer(cfg, logger, cfgPath),
		logger:    logger,
		cfgPath:   cfgPath,
	}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, wires handlers to presenters and enters the Tk
// event loop. Blocks until the window closes.
func (a *app) Start() {
	c := a.container
	theme.SetDark(c.Config.DarkMode)

	c.RootView.Build(view.Handlers{
		OnScaleMode:     func() { c.InputPresenter.SetMode(measure.ModeScale) },
		OnPathMode:      func() { c.InputPresenter.SetMode(measure.ModePath) },
		OnClosePath:     c.InputPresenter.ClosePath,
		OnUndo:          c.InputPresenter.RightClick,
		OnReset:         c.InputPresenter.Reset,
		OnUnitSelected:  c.InputPresenter.UnitSelected,
		OnUnitsPerPixel: c.InputPresenter.UnitsPerPixelEntered,
		OnDistance:      c.InputPresenter.DistanceEntered,
		OnLoadImage:     c.UploadPresenter.LoadFile,
		OnCaptureScreen: c.UploadPresenter.CaptureScreen,
		OnToggleDark:    a.toggleDark,
		OnExit:          a.exitHandler,
		OnClick:         c.InputPresenter.Click,
		OnRightClick:    c.InputPresenter.RightClick,
	})

	c.Loop = presenter.NewLoop(c.SessionPresenter, c.MeasurePresenter, c.UploadPresenter, a.scheduleUpdate)
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) toggleDark() {
	dark := theme.ToggleDark()
	a.container.Config.DarkMode = dark
	if err := a.container.Config.Save(a.cfgPath); err != nil && a.logger != nil {
		a.logger.Error("config save failed", "error", err)
	}
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.container.Loop.Tick() })
}
