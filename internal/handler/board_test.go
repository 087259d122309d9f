package handler

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itchan-dev/minichan/shared/domain"
	internal_errors "github.com/itchan-dev/minichan/shared/errors"
	"github.com/stretchr/testify/assert"
)

func TestGetBoard(t *testing.T) {
	testCases := []struct {
		name         string
		query        string
		expectedPage int
	}{
		{"no page", "/", 1},
		{"explicit page", "/?page=3", 3},
		{"zero page", "/?page=0", 1},
		{"negative page", "/?page=-4", 1},
		{"garbage page", "/?page=abc", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotPage int
			board := &MockBoardService{PageFunc: func(ctx context.Context, page int) (domain.ThreadPage, error) {
				gotPage = page
				return domain.ThreadPage{
					Threads:    []domain.Thread{{Id: 7, Title: "seven"}, {Id: 3, Title: "three"}},
					Page:       page,
					TotalPages: 4,
				}, nil
			}}
			h := newTestHandler(board, &MockThreadService{}, &MockReplyService{})

			rr := httptest.NewRecorder()
			h.GetBoard(rr, httptest.NewRequest(http.MethodGet, tc.query, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.expectedPage, gotPage)
			assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Equal(t, fmt.Sprintf("[7:seven][3:three] page %d/4 max 100", tc.expectedPage), rr.Body.String())
		})
	}

	t.Run("store failure is a server error", func(t *testing.T) {
		board := &MockBoardService{PageFunc: func(ctx context.Context, page int) (domain.ThreadPage, error) {
			return domain.ThreadPage{}, fmt.Errorf("count: %w", internal_errors.ErrStoreFailure)
		}}
		h := newTestHandler(board, &MockThreadService{}, &MockReplyService{})

		rr := httptest.NewRecorder()
		h.GetBoard(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("template failure degrades to 500 for this request", func(t *testing.T) {
		h := newTestHandler(&MockBoardService{}, &MockThreadService{}, &MockReplyService{})
		h.SetTemplates(map[string]*template.Template{
			"index.html": template.Must(template.New("index.html").Parse(`{{.Data.NoSuchField}}`)),
		})

		rr := httptest.NewRecorder()
		h.GetBoard(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Error rendering page\n", rr.Body.String())
	})

	t.Run("missing template", func(t *testing.T) {
		h := newTestHandler(&MockBoardService{}, &MockThreadService{}, &MockReplyService{})
		h.SetTemplates(map[string]*template.Template{})

		rr := httptest.NewRecorder()
		h.GetBoard(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
