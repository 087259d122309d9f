package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/itchan-dev/minichan/shared/domain"
	"github.com/itchan-dev/minichan/shared/errors"
)

// fakeStore is an in-memory stand-in for the postgres storage with the same ordering rules.
type fakeStore struct {
	mu          sync.Mutex
	threads     []domain.Thread
	replies     []domain.Reply
	nextThread  domain.ThreadId
	nextReply   domain.ReplyId
	failOnCount error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextThread: 1, nextReply: 1}
}

func (f *fakeStore) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread := domain.Thread{Id: f.nextThread, Title: data.Title, Message: data.Message, LastActivity: data.CreatedAt}
	f.nextThread++
	f.threads = append(f.threads, thread)
	return thread, nil
}

func (f *fakeStore) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, th := range f.threads {
		if th.Id == id {
			return th, nil
		}
	}
	return domain.Thread{}, errors.NotFound("Thread not found")
}

func (f *fakeStore) GetReplies(ctx context.Context, parentId domain.ThreadId) ([]domain.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Reply{}
	for _, r := range f.replies {
		if r.ParentId == parentId {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.threads {
		if f.threads[i].Id != data.ParentId {
			continue
		}
		reply := domain.Reply{Id: f.nextReply, ParentId: data.ParentId, Message: data.Message}
		f.nextReply++
		f.replies = append(f.replies, reply)
		if data.CreatedAt.After(f.threads[i].LastActivity) {
			f.threads[i].LastActivity = data.CreatedAt
		}
		return reply, nil
	}
	return domain.Reply{}, errors.InvalidParent("Thread does not exist")
}

func (f *fakeStore) ThreadsPage(ctx context.Context, offset, limit int) ([]domain.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sorted := append([]domain.Thread(nil), f.threads...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].LastActivity.Equal(sorted[j].LastActivity) {
			return sorted[i].LastActivity.After(sorted[j].LastActivity)
		}
		return sorted[i].Id > sorted[j].Id
	})
	if offset >= len(sorted) {
		return []domain.Thread{}, nil
	}
	end := min(offset+limit, len(sorted))
	return sorted[offset:end], nil
}

func (f *fakeStore) ThreadCount(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOnCount != nil {
		return 0, f.failOnCount
	}
	return len(f.threads), nil
}

// clock hands out the instants it was given, one per call.
type clock struct {
	mu    sync.Mutex
	times []time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.times[0]
	c.times = c.times[1:]
	return t
}
