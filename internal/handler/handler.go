package handler

import (
	"context"
	"html/template"
	"sync"

	"github.com/itchan-dev/minichan/internal/service"
	"github.com/itchan-dev/minichan/internal/view"
	"github.com/itchan-dev/minichan/shared/config"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board     service.BoardService
	thread    service.ThreadService
	reply     service.ReplyService
	health    HealthChecker
	text      view.TextRenderer
	mu        sync.RWMutex
	templates map[string]*template.Template
	cfg       *config.Config
}

func New(board service.BoardService, thread service.ThreadService, reply service.ReplyService, health HealthChecker, text view.TextRenderer, templates map[string]*template.Template, cfg *config.Config) *Handler {
	return &Handler{
		board:     board,
		thread:    thread,
		reply:     reply,
		health:    health,
		text:      text,
		templates: templates,
		cfg:       cfg,
	}
}

// SetTemplates swaps the template set, used by the development reloader.
func (h *Handler) SetTemplates(templates map[string]*template.Template) {
	h.mu.Lock()
	h.templates = templates
	h.mu.Unlock()
}

func (h *Handler) template(name string) (*template.Template, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tmpl, ok := h.templates[name]
	return tmpl, ok
}
