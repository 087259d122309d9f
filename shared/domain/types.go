package domain

type (
	ThreadTitle = string
	ThreadId    = int64
	MsgText     = string
	ReplyId     = int64
)
