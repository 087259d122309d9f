package service

import (
	"context"
	"time"

	"github.com/itchan-dev/minichan/shared/domain"
	"github.com/itchan-dev/minichan/shared/logger"
)

type ThreadService interface {
	Create(ctx context.Context, title domain.ThreadTitle, message domain.MsgText) (domain.Thread, error)
	Get(ctx context.Context, id domain.ThreadId) (domain.ThreadWithReplies, error)
}

type Thread struct {
	storage          ThreadStorage
	titleValidator   ThreadValidator
	messageValidator MessageValidator
	now              func() time.Time
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error)
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	GetReplies(ctx context.Context, parentId domain.ThreadId) ([]domain.Reply, error)
}

type ThreadValidator interface {
	Title(title domain.ThreadTitle) error
}

type MessageValidator interface {
	Text(text domain.MsgText) error
}

func NewThread(storage ThreadStorage, titleValidator ThreadValidator, messageValidator MessageValidator) *Thread {
	return &Thread{storage, titleValidator, messageValidator, domain.Now}
}

// Create validates and stores a new thread with last activity set to now.
func (b *Thread) Create(ctx context.Context, title domain.ThreadTitle, message domain.MsgText) (domain.Thread, error) {
	if err := b.titleValidator.Title(title); err != nil {
		return domain.Thread{}, err
	}
	if err := b.messageValidator.Text(message); err != nil {
		return domain.Thread{}, err
	}

	thread, err := b.storage.CreateThread(ctx, domain.ThreadCreationData{
		Title:     title,
		Message:   message,
		CreatedAt: b.now(),
	})
	if err != nil {
		return domain.Thread{}, err
	}
	logger.Log.Debug("thread created", "thread_id", thread.Id)
	return thread, nil
}

// Get returns the thread with its replies in ascending id order.
func (b *Thread) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadWithReplies, error) {
	thread, err := b.storage.GetThread(ctx, id)
	if err != nil {
		return domain.ThreadWithReplies{}, err
	}
	replies, err := b.storage.GetReplies(ctx, id)
	if err != nil {
		return domain.ThreadWithReplies{}, err
	}
	return domain.ThreadWithReplies{Thread: thread, Replies: replies}, nil
}
