package domain

import (
	"fmt"
	"time"
)

// Now returns the wall-clock instant truncated to the second, the resolution
// last_activity is stored with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// for debug
func (t Thread) String() string {
	return fmt.Sprintf("[id:%d, title:%s, last_activity:%s]", t.Id, t.Title, t.LastActivity.Format(time.DateTime))
}

func (r Reply) String() string {
	return fmt.Sprintf("[id:%d, parent:%d, message:%s]", r.Id, r.ParentId, r.Message)
}
