package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itchan-dev/minichan/shared/domain"
	internal_errors "github.com/itchan-dev/minichan/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockThreadStorage mocks the ThreadStorage interface.
type MockThreadStorage struct {
	createThreadFunc func(creationData domain.ThreadCreationData) (domain.Thread, error)
	getThreadFunc    func(id domain.ThreadId) (domain.Thread, error)
	getRepliesFunc   func(parentId domain.ThreadId) ([]domain.Reply, error)

	createCalled     bool
	getRepliesCalled bool
}

func (m *MockThreadStorage) CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error) {
	m.createCalled = true
	if m.createThreadFunc != nil {
		return m.createThreadFunc(creationData)
	}
	return domain.Thread{Id: 1, Title: creationData.Title, Message: creationData.Message, LastActivity: creationData.CreatedAt}, nil
}

func (m *MockThreadStorage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockThreadStorage) GetReplies(ctx context.Context, parentId domain.ThreadId) ([]domain.Reply, error) {
	m.getRepliesCalled = true
	if m.getRepliesFunc != nil {
		return m.getRepliesFunc(parentId)
	}
	return []domain.Reply{}, nil
}

// MockThreadValidator mocks the ThreadValidator interface.
type MockThreadValidator struct {
	titleFunc func(title domain.ThreadTitle) error
}

func (m *MockThreadValidator) Title(title domain.ThreadTitle) error {
	if m.titleFunc != nil {
		return m.titleFunc(title)
	}
	return nil // Default valid
}

// MockMessageValidator mocks the MessageValidator interface.
type MockMessageValidator struct {
	textFunc func(text domain.MsgText) error
}

func (m *MockMessageValidator) Text(text domain.MsgText) error {
	if m.textFunc != nil {
		return m.textFunc(text)
	}
	return nil
}

// --- Tests ---

func TestThreadCreate(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Successful creation stamps last activity", func(t *testing.T) {
		storage := &MockThreadStorage{}
		service := NewThread(storage, &MockThreadValidator{}, &MockMessageValidator{})
		service.now = func() time.Time { return fixedNow }

		storage.createThreadFunc = func(creationData domain.ThreadCreationData) (domain.Thread, error) {
			assert.Equal(t, domain.ThreadCreationData{Title: "title", Message: "body", CreatedAt: fixedNow}, creationData)
			return domain.Thread{Id: 42, Title: "title", Message: "body", LastActivity: fixedNow}, nil
		}

		thread, err := service.Create(ctx, "title", "body")
		require.NoError(t, err)
		assert.Equal(t, domain.ThreadId(42), thread.Id)
		assert.Equal(t, fixedNow, thread.LastActivity)
	})

	t.Run("Invalid title never reaches storage", func(t *testing.T) {
		storage := &MockThreadStorage{}
		validationErr := internal_errors.Validation("Title is empty")
		service := NewThread(storage, &MockThreadValidator{titleFunc: func(domain.ThreadTitle) error { return validationErr }}, &MockMessageValidator{})

		_, err := service.Create(ctx, "", "body")
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
		assert.False(t, storage.createCalled)
	})

	t.Run("Invalid message never reaches storage", func(t *testing.T) {
		storage := &MockThreadStorage{}
		service := NewThread(storage, &MockThreadValidator{}, &MockMessageValidator{textFunc: func(domain.MsgText) error {
			return internal_errors.Validation("Text is too short")
		}})

		_, err := service.Create(ctx, "title", "")
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
		assert.False(t, storage.createCalled)
	})

	t.Run("Storage failure is returned", func(t *testing.T) {
		storeErr := errors.New("db unreachable")
		storage := &MockThreadStorage{createThreadFunc: func(domain.ThreadCreationData) (domain.Thread, error) {
			return domain.Thread{}, storeErr
		}}
		service := NewThread(storage, &MockThreadValidator{}, &MockMessageValidator{})

		_, err := service.Create(ctx, "title", "body")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestThreadGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Thread with replies", func(t *testing.T) {
		replies := []domain.Reply{{Id: 1, ParentId: 7}, {Id: 2, ParentId: 7}, {Id: 5, ParentId: 7}}
		storage := &MockThreadStorage{
			getThreadFunc: func(id domain.ThreadId) (domain.Thread, error) {
				return domain.Thread{Id: id, Title: "t"}, nil
			},
			getRepliesFunc: func(parentId domain.ThreadId) ([]domain.Reply, error) {
				assert.Equal(t, domain.ThreadId(7), parentId)
				return replies, nil
			},
		}
		service := NewThread(storage, &MockThreadValidator{}, &MockMessageValidator{})

		got, err := service.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.ThreadId(7), got.Id)
		assert.Equal(t, replies, got.Replies)
	})

	t.Run("Not found skips replies", func(t *testing.T) {
		storage := &MockThreadStorage{getThreadFunc: func(id domain.ThreadId) (domain.Thread, error) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}}
		service := NewThread(storage, &MockThreadValidator{}, &MockMessageValidator{})

		_, err := service.Get(ctx, 7)
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
		assert.False(t, storage.getRepliesCalled)
	})

	t.Run("Replies failure is returned", func(t *testing.T) {
		storeErr := errors.New("timeout")
		storage := &MockThreadStorage{getRepliesFunc: func(domain.ThreadId) ([]domain.Reply, error) { return nil, storeErr }}
		service := NewThread(storage, &MockThreadValidator{}, &MockMessageValidator{})

		_, err := service.Get(ctx, 7)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("Replies stay in chronological order", func(t *testing.T) {
		store := newFakeStore()
		service := NewThread(store, &MockThreadValidator{}, &MockMessageValidator{})
		replyService := NewReply(store, &MockMessageValidator{})

		thread, err := service.Create(ctx, "t", "op")
		require.NoError(t, err)
		for _, text := range []string{"first", "second", "third"} {
			_, err := replyService.Create(ctx, thread.Id, text)
			require.NoError(t, err)
		}

		got, err := service.Get(ctx, thread.Id)
		require.NoError(t, err)
		require.Len(t, got.Replies, 3)
		assert.Equal(t, "first", got.Replies[0].Message)
		assert.Equal(t, "second", got.Replies[1].Message)
		assert.Equal(t, "third", got.Replies[2].Message)
		assert.Less(t, got.Replies[0].Id, got.Replies[1].Id)
		assert.Less(t, got.Replies[1].Id, got.Replies[2].Id)
	})
}
