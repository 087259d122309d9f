package handler

import (
	"net/http"

	"github.com/itchan-dev/minichan/internal/view"
	"github.com/itchan-dev/minichan/shared/logger"
	"github.com/itchan-dev/minichan/shared/middleware/metrics"
	"github.com/itchan-dev/minichan/shared/utils"
)

const defaultPage int = 1

// GetBoard renders the recency ordered thread list, GET /?page=N.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))

	threadPage, err := h.board.Page(r.Context(), page)
	if err != nil {
		logger.Log.Error("listing threads", "page", page, "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.ThreadsTotal.Set(float64(threadPage.TotalThreads))

	h.renderTemplate(w, "index.html", http.StatusOK, view.NewBoardPage(threadPage, h.text))
}
