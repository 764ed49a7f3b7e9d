package app

import (
	"log/slog"

	"github.com/Ryder-MHumble/evolabeler-go/config"
	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/canvas"
	"github.com/Ryder-MHumble/evolabeler-go/domain/codec"
	"github.com/Ryder-MHumble/evolabeler-go/domain/geometry"
	"github.com/Ryder-MHumble/evolabeler-go/domain/tool"
	"github.com/Ryder-MHumble/evolabeler-go/imageio"
	"github.com/Ryder-MHumble/evolabeler-go/ui/model"
	"github.com/Ryder-MHumble/evolabeler-go/ui/presenter"
	"github.com/Ryder-MHumble/evolabeler-go/ui/view"
)

// AppContainer assembles models, domain services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Logger *slog.Logger

	// Models
	Subjects *model.SubjectModel
	Session  *model.SessionModel
	Notices  *model.NoticeModel

	// Domain services
	Viewport   *geometry.Viewport
	Store      *annotation.Store
	Tools      *tool.Machine
	Controller *canvas.Controller
	Vocab      codec.Vocabulary
	Exporter   *codec.Exporter
	Loader     *imageio.Loader

	// View
	RootView *view.RootView
	UI       view.UI

	// Presenters
	CanvasPresenter  *presenter.CanvasPresenter
	SubjectPresenter *presenter.SubjectPresenter
	ExportPresenter  *presenter.ExportPresenter
	SessionPresenter *presenter.SessionPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. Side-effects limited to reading
// the vocabulary file. Presenters are wired here; widget construction waits
// for app.Start on the Tk thread.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Subjects = model.NewSubjectModel()
	c.Session = model.NewSessionModel()
	c.Notices = &model.NoticeModel{}

	c.Viewport = geometry.NewViewport()
	c.Store = annotation.NewStore(logger)
	c.Tools = tool.NewMachine(logger)
	c.Controller = canvas.NewController(logger, c.Viewport, c.Store, c.Tools, canvas.Options{
		DefaultLabel:   cfg.DefaultLabel,
		HandleRadiusPx: float64(cfg.HandleRadiusPx),
		ZoomStep:       cfg.ZoomStep,
	})
	c.Controller.OnNotice(c.Notices.Publish)

	vocab, err := codec.LoadVocabulary(cfg.VocabularyPath)
	if err != nil {
		logger.Warn("vocabulary load failed, using defaults", "path", cfg.VocabularyPath, "error", err)
	}
	c.Vocab = vocab
	c.Exporter = codec.NewExporter(logger, vocab, codec.DirSink{Dir: cfg.ExportDir})
	c.Loader = imageio.NewLoader(logger)

	c.RootView = view.NewRootView(cfg, logger)
	c.UI = c.RootView

	c.CanvasPresenter = presenter.NewCanvasPresenter(logger, c.Controller, c.Store, c.Viewport, c.Tools, c.Subjects, c.Session, c.RootView)
	c.SubjectPresenter = presenter.NewSubjectPresenter(logger, c.Loader, c.Subjects, c.Store, c.Viewport, c.Controller, c.Notices, c.RootView, c.CanvasPresenter)
	c.ExportPresenter = presenter.NewExportPresenter(logger, c.Exporter, c.Store, c.Subjects, c.Notices, c.Session)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Subjects, c.RootView)
	// Loop.Schedule is set by the app once the Tk after-loop exists.
	c.Loop = presenter.NewLoop(c.SubjectPresenter, c.ExportPresenter, c.SessionPresenter, c.CanvasPresenter, c.Notices, c.RootView, nil)
	return c
}
