package setup

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/itchan-dev/minichan/internal/handler"
	"github.com/itchan-dev/minichan/internal/markdown"
	"github.com/itchan-dev/minichan/internal/service"
	"github.com/itchan-dev/minichan/internal/storage/pg"
	"github.com/itchan-dev/minichan/internal/utils"
	"github.com/itchan-dev/minichan/shared/config"
	"github.com/itchan-dev/minichan/shared/logger"
)

const (
	baseTemplate           = "base.html"
	templateReloadInterval = 5 * time.Second
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config     *config.Config
	Storage    *pg.Storage
	Handler    *handler.Handler
	CancelFunc context.CancelFunc
}

// SetupDependencies connects to postgres, applies migrations and wires the services into the handler.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	templates, err := loadTemplates(cfg.Public.TemplatesDir)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	board := service.NewBoard(storage, cfg.Public.PageSize())
	thread := service.NewThread(storage,
		&utils.ThreadTitleValidator{MaxLen: cfg.Public.ThreadTitleMaxLen},
		&utils.MessageValidator{MaxLen: cfg.Public.MessageTextMaxLen},
	)
	reply := service.NewReply(storage, &utils.MessageValidator{MaxLen: cfg.Public.MessageTextMaxLen})

	h := handler.New(board, thread, reply, storage, markdown.New(), templates, cfg)

	reloadCtx, cancel := context.WithCancel(ctx)
	startTemplateReloader(reloadCtx, h, cfg.Public.TemplatesDir)

	return &Dependencies{
		Config:     cfg,
		Storage:    storage,
		Handler:    h,
		CancelFunc: cancel,
	}, nil
}

// Close stops background work and releases the database pool.
func (d *Dependencies) Close() {
	if d.CancelFunc != nil {
		d.CancelFunc()
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("closing storage", "error", err)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// loadTemplates parses every page template in tmplPath together with the shared base layout.
func loadTemplates(tmplPath string) (map[string]*template.Template, error) {
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	funcs := template.FuncMap{
		"formatTime": formatTime,
	}

	templates := make(map[string]*template.Template)
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", f.Name(), err)
		}
		templates[f.Name()] = tmpl
	}
	return templates, nil
}

func startTemplateReloader(ctx context.Context, h *handler.Handler, tmplPath string) {
	if os.Getenv("ENV") != "development" {
		return
	}
	ticker := time.NewTicker(templateReloadInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				templates, err := loadTemplates(tmplPath)
				if err != nil {
					// keep serving the last good set
					logger.Log.Warn("template reload failed", "error", err)
					continue
				}
				h.SetTemplates(templates)
			}
		}
	}()
}
