package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title     ThreadTitle
	Message   MsgText
	CreatedAt time.Time // second resolution, stored as last_updated
}

type Thread struct {
	Id           ThreadId
	Title        ThreadTitle
	Message      MsgText
	LastActivity time.Time
}

// ThreadWithReplies is a thread together with all its replies in ascending id order.
type ThreadWithReplies struct {
	Thread
	Replies []Reply
}

// ThreadPage is one offset-based slice of the recency-ordered thread list.
type ThreadPage struct {
	Threads      []Thread
	Page         int
	PageSize     int
	TotalThreads int
	TotalPages   int
}
