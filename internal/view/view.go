// Package view maps service results to the values the html templates consume.
package view

import (
	"fmt"
	"html/template"
	"time"

	"github.com/itchan-dev/minichan/shared/domain"
)

// pages shown on each side of the current one in the page selector
const pageWindow = 4

// TextRenderer turns a stored message body into safe markup.
type TextRenderer interface {
	Render(text string) template.HTML
}

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error      string
	Validation ValidationData
}

type ValidationData struct {
	ThreadTitleMaxLen int
	MessageTextMaxLen int
}

// TemplateData wraps page-specific data with common template data.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

type Thread struct {
	Id           domain.ThreadId
	Title        string
	Message      template.HTML
	LastActivity time.Time
	Link         string
	ReplyCount   int // only filled on the thread page
}

type Reply struct {
	Id      domain.ReplyId
	Anchor  string
	Message template.HTML
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []int
}

type BoardPageData struct {
	Threads    []Thread
	Pagination Pagination
}

type ThreadPageData struct {
	Thread  Thread
	Replies []Reply
}

func ThreadLink(id domain.ThreadId) string {
	return fmt.Sprintf("/thread/%d", id)
}

func renderThread(t domain.Thread, tr TextRenderer) Thread {
	return Thread{
		Id:           t.Id,
		Title:        t.Title,
		Message:      tr.Render(t.Message),
		LastActivity: t.LastActivity,
		Link:         ThreadLink(t.Id),
	}
}

// NewBoardPage builds the list page view.
func NewBoardPage(page domain.ThreadPage, tr TextRenderer) BoardPageData {
	threads := make([]Thread, len(page.Threads))
	for i, t := range page.Threads {
		threads[i] = renderThread(t, tr)
	}
	return BoardPageData{
		Threads:    threads,
		Pagination: NewPagination(page.Page, page.TotalPages),
	}
}

// NewThreadPage builds the thread view; replies keep the order they were given in.
func NewThreadPage(t domain.ThreadWithReplies, tr TextRenderer) ThreadPageData {
	thread := renderThread(t.Thread, tr)
	thread.ReplyCount = len(t.Replies)

	replies := make([]Reply, len(t.Replies))
	for i, r := range t.Replies {
		replies[i] = Reply{
			Id:      r.Id,
			Anchor:  fmt.Sprintf("r%d", r.Id),
			Message: tr.Render(r.Message),
		}
	}
	return ThreadPageData{Thread: thread, Replies: replies}
}

func NewPagination(current, total int) Pagination {
	current = max(1, current)
	p := Pagination{
		CurrentPage: current,
		TotalPages:  total,
		HasPrev:     current > 1,
		HasNext:     current < total,
	}
	if p.HasPrev {
		// from past the end, "previous" jumps back to the last real page
		p.PrevPage = min(current-1, max(total, 1))
	}
	if p.HasNext {
		p.NextPage = current + 1
	}
	if total > 0 {
		first := max(1, min(current, total)-pageWindow)
		last := min(total, max(current, 1)+pageWindow)
		for i := first; i <= last; i++ {
			p.Pages = append(p.Pages, i)
		}
	}
	return p
}
