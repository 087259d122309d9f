package handler

import (
	"net/http"

	"github.com/itchan-dev/minichan/internal/view"
	"github.com/itchan-dev/minichan/shared/api"
	internal_errors "github.com/itchan-dev/minichan/shared/errors"
	"github.com/itchan-dev/minichan/shared/logger"
	"github.com/itchan-dev/minichan/shared/middleware/metrics"
	"github.com/itchan-dev/minichan/shared/utils"
)

// CreateReply handles POST /reply and redirects back to the parent thread.
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var body api.CreateReplyRequest
	if err := utils.DecodeFormValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	parentId, err := parseIntParam(body.ParentId, "parent_id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.InvalidParent(err.Error()))
		return
	}

	reply, err := h.reply.Create(r.Context(), parentId, body.Message)
	if err != nil {
		if internal_errors.StatusCode(err) == http.StatusInternalServerError {
			logger.Log.Error("failed to post reply", "thread_id", parentId, "error", err)
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.RepliesCreated.Inc()
	logger.Log.Info("reply created", "reply_id", reply.Id, "thread_id", parentId)

	http.Redirect(w, r, view.ThreadLink(parentId), http.StatusSeeOther)
}
