package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/minichan/internal/view"
	"github.com/itchan-dev/minichan/shared/api"
	internal_errors "github.com/itchan-dev/minichan/shared/errors"
	"github.com/itchan-dev/minichan/shared/logger"
	"github.com/itchan-dev/minichan/shared/middleware/metrics"
	"github.com/itchan-dev/minichan/shared/utils"
)

// CreateThread handles POST /thread and redirects to the list.
func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeFormValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Create(r.Context(), body.Title, body.Message)
	if err != nil {
		if internal_errors.StatusCode(err) == http.StatusInternalServerError {
			logger.Log.Error("failed to create thread", "error", err)
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.ThreadsCreated.Inc()
	logger.Log.Info("thread created", "thread_id", thread.Id)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetThread renders GET /thread/{id} with replies in posting order.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "id"), "thread ID")
	if err != nil {
		// an id that cannot exist is simply not found
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}

	thread, err := h.thread.Get(r.Context(), threadId)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			logger.Log.Debug("thread not found", "thread_id", threadId)
			http.Error(w, "Thread not found", http.StatusNotFound)
			return
		}
		logger.Log.Error("failed to fetch thread", "thread_id", threadId, "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if checkNotModified(w, r, threadETag(thread), thread.LastActivity) {
		return
	}

	h.renderTemplate(w, "thread.html", http.StatusOK, view.NewThreadPage(thread, h.text))
}
