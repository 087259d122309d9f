package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/itchan-dev/minichan/internal/view"
	"github.com/itchan-dev/minichan/shared/domain"
	"github.com/itchan-dev/minichan/shared/logger"
)

// threadETag identifies one rendering of a thread page. last_activity only has
// second resolution, so the reply count and last reply id are part of the tag:
// a reply landing in the same second still yields a new tag.
func threadETag(t domain.ThreadWithReplies) string {
	var lastReply domain.ReplyId
	if n := len(t.Replies); n > 0 {
		lastReply = t.Replies[n-1].Id
	}
	return fmt.Sprintf(`W/"%d-%d-%d-%d"`, t.Id, t.LastActivity.Unix(), len(t.Replies), lastReply)
}

// etagMatches compares an If-None-Match header against etag using weak comparison.
func etagMatches(ifNoneMatch, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

// checkNotModified handles conditional GET with ETag/If-None-Match.
// Returns true if a 304 Not Modified response was sent (caller should return early).
// If-Modified-Since alone never produces a 304.
func checkNotModified(w http.ResponseWriter, r *http.Request, etag string, lastModified time.Time) bool {
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", lastModified.UTC().Format(http.TimeFormat))

	if ifNoneMatch := r.Header.Get("If-None-Match"); ifNoneMatch != "" && etagMatches(ifNoneMatch, etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (h *Handler) commonData() view.CommonTemplateData {
	return view.CommonTemplateData{
		Validation: view.ValidationData{
			ThreadTitleMaxLen: h.cfg.Public.ThreadTitleMaxLen,
			MessageTextMaxLen: h.cfg.Public.MessageTextMaxLen,
		},
	}
}

// renderTemplate executes into a buffer first so a failing template yields a
// clean 500 for this request instead of a half written page.
func (h *Handler) renderTemplate(w http.ResponseWriter, name string, status int, data any) {
	tmpl, ok := h.template(name)
	if !ok {
		logger.Log.Error("template not found", "template", name)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	wrapped := view.TemplateData{
		Data:   data,
		Common: h.commonData(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
