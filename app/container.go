package app

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tvoss/image-measure-go/capture"
	"github.com/tvoss/image-measure-go/config"
	"github.com/tvoss/image-measure-go/remote"
	"github.com/tvoss/image-measure-go/ui/model"
	"github.com/tvoss/image-measure-go/ui/presenter"
	"github.com/tvoss/image-measure-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Model    *model.MeasurementModel
	Session  *model.SessionModel
	Client   *remote.Client
	Source   *capture.Source
	RootView *view.RootView
	UI       view.UI

	// Presenters
	MeasurePresenter *presenter.MeasurePresenter
	InputPresenter   *presenter.InputPresenter
	UploadPresenter  *presenter.UploadPresenter
	SessionPresenter *presenter.SessionPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. The view widgets are created
// later by RootView.Build; everything here is side-effect free.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Model = model.NewMeasurementModel()
	c.Model.SetUnitName(cfg.UnitName)
	c.Session = model.NewSessionModel()
	c.Client = remote.NewClient(cfg.ServerURL, time.Duration(cfg.RequestTimeoutMillis)*time.Millisecond, logger)
	c.Source = capture.NewSource()
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.MeasurePresenter = presenter.NewMeasurePresenter(logger, c.Model, c.Client, c.RootView, presenter.SystemClock(), presenter.MeasureConfig{
		Debounce:              time.Duration(cfg.DebounceMillis) * time.Millisecond,
		Persist:               cfg.PersistSessions,
		DiscardStaleResponses: cfg.DiscardStaleResponses,
		SessionID:             uuid.New().String(),
	})
	c.InputPresenter = presenter.NewInputPresenter(logger, c.Model, c.MeasurePresenter, c.RootView)
	c.UploadPresenter = presenter.NewUploadPresenter(logger, c.Model, c.Client, c.Source, c.RootView)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Model, c.RootView)
	return c
}
