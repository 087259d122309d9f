package service

import (
	"context"
	"time"

	"github.com/itchan-dev/minichan/shared/domain"
	"github.com/itchan-dev/minichan/shared/errors"
	"github.com/itchan-dev/minichan/shared/logger"
)

type ReplyService interface {
	Create(ctx context.Context, parentId domain.ThreadId, message domain.MsgText) (domain.Reply, error)
}

type Reply struct {
	storage   ReplyStorage
	validator MessageValidator
	now       func() time.Time
}

type ReplyStorage interface {
	// CreateReply inserts the reply and advances the parent's last activity to
	// at least CreatedAt atomically.
	CreateReply(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error)
}

func NewReply(storage ReplyStorage, validator MessageValidator) *Reply {
	return &Reply{storage, validator, domain.Now}
}

func (b *Reply) Create(ctx context.Context, parentId domain.ThreadId, message domain.MsgText) (domain.Reply, error) {
	if parentId <= 0 {
		return domain.Reply{}, errors.InvalidParent("Thread does not exist")
	}
	if err := b.validator.Text(message); err != nil {
		return domain.Reply{}, err
	}

	reply, err := b.storage.CreateReply(ctx, domain.ReplyCreationData{
		ParentId:  parentId,
		Message:   message,
		CreatedAt: b.now(),
	})
	if err != nil {
		return domain.Reply{}, err
	}
	logger.Log.Debug("reply created", "reply_id", reply.Id, "thread_id", parentId)
	return reply, nil
}
