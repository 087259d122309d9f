package domain

import "time"

type ReplyCreationData struct {
	ParentId  ThreadId
	Message   MsgText
	CreatedAt time.Time // the parent thread is bumped to at least this instant
}

type Reply struct {
	Id       ReplyId
	ParentId ThreadId
	Message  MsgText
}
