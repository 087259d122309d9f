package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/minichan/shared/config"
	"github.com/itchan-dev/minichan/shared/domain"
)

// --- Mocks ---

type MockBoardService struct {
	PageFunc func(ctx context.Context, page int) (domain.ThreadPage, error)
}

func (m *MockBoardService) Page(ctx context.Context, page int) (domain.ThreadPage, error) {
	if m.PageFunc != nil {
		return m.PageFunc(ctx, page)
	}
	return domain.ThreadPage{Page: page}, nil
}

type MockThreadService struct {
	CreateFunc func(ctx context.Context, title domain.ThreadTitle, message domain.MsgText) (domain.Thread, error)
	GetFunc    func(ctx context.Context, id domain.ThreadId) (domain.ThreadWithReplies, error)
}

func (m *MockThreadService) Create(ctx context.Context, title domain.ThreadTitle, message domain.MsgText) (domain.Thread, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, title, message)
	}
	return domain.Thread{Id: 1, Title: title, Message: message}, nil
}

func (m *MockThreadService) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadWithReplies, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return domain.ThreadWithReplies{Thread: domain.Thread{Id: id}}, nil
}

type MockReplyService struct {
	CreateFunc func(ctx context.Context, parentId domain.ThreadId, message domain.MsgText) (domain.Reply, error)
}

func (m *MockReplyService) Create(ctx context.Context, parentId domain.ThreadId, message domain.MsgText) (domain.Reply, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, parentId, message)
	}
	return domain.Reply{Id: 1, ParentId: parentId, Message: message}, nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}

type plainRenderer struct{}

func (plainRenderer) Render(text string) template.HTML {
	return template.HTML(template.HTMLEscapeString(text))
}

// --- Helpers ---

var testTemplates = map[string]*template.Template{
	"index.html": template.Must(template.New("index.html").Parse(
		`{{range .Data.Threads}}[{{.Id}}:{{.Title}}]{{end}} page {{.Data.Pagination.CurrentPage}}/{{.Data.Pagination.TotalPages}} max {{.Common.Validation.ThreadTitleMaxLen}}`)),
	"thread.html": template.Must(template.New("thread.html").Parse(
		`{{.Data.Thread.Title}}:{{.Data.Thread.Message}}{{range .Data.Replies}}({{.Id}}:{{.Message}}){{end}}`)),
}

func newTestHandler(board *MockBoardService, thread *MockThreadService, reply *MockReplyService) *Handler {
	cfg := &config.Config{Public: config.Public{ThreadTitleMaxLen: 100, MessageTextMaxLen: 1000}}
	return New(board, thread, reply, &MockHealthChecker{}, plainRenderer{}, testTemplates, cfg)
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
