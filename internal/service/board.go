package service

import (
	"context"
	"math"

	"github.com/itchan-dev/minichan/shared/domain"
)

const DefaultPageSize = 10

// to mock service in tests
type BoardService interface {
	Page(ctx context.Context, page int) (domain.ThreadPage, error)
}

type Board struct {
	storage  BoardStorage
	pageSize int
}

type BoardStorage interface {
	ThreadsPage(ctx context.Context, offset, limit int) ([]domain.Thread, error)
	ThreadCount(ctx context.Context) (int, error)
}

// NewBoard builds the list engine. A non-positive pageSize falls back to DefaultPageSize.
func NewBoard(storage BoardStorage, pageSize int) *Board {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Board{storage: storage, pageSize: pageSize}
}

func (b *Board) PageSize() int {
	return b.pageSize
}

// Page returns one page of threads, most recently active first, with the
// page count derived from a full count of threads. Missing, zero and negative
// page numbers mean page 1. Pages past the end are empty, not an error.
func (b *Board) Page(ctx context.Context, page int) (domain.ThreadPage, error) {
	page = max(1, page)

	total, err := b.storage.ThreadCount(ctx)
	if err != nil {
		return domain.ThreadPage{}, err
	}

	result := domain.ThreadPage{
		Threads:      []domain.Thread{},
		Page:         page,
		PageSize:     b.pageSize,
		TotalThreads: total,
		TotalPages:   TotalPages(total, b.pageSize),
	}

	offset, ok := pageOffset(page, b.pageSize)
	if !ok || offset >= total {
		return result, nil
	}

	threads, err := b.storage.ThreadsPage(ctx, offset, b.pageSize)
	if err != nil {
		return domain.ThreadPage{}, err
	}
	result.Threads = threads
	return result, nil
}

// TotalPages is ceil(total/pageSize), 0 for an empty board.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// pageOffset computes (page-1)*pageSize, reporting false when it would overflow.
func pageOffset(page, pageSize int) (int, bool) {
	if page-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}
