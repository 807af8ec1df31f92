package scoring

import (
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
)

// Clock supplies the date urgency is measured against.
type Clock interface {
	Today() task.Date
}

// SystemClock reads the local date.
type SystemClock struct{}

// Today returns the current local date.
func (SystemClock) Today() task.Date {
	return task.DateOf(time.Now())
}

// FixedClock always reports the same date.
type FixedClock struct {
	date task.Date
}

// NewFixedClock creates a clock pinned to date.
func NewFixedClock(date task.Date) FixedClock {
	return FixedClock{date: date}
}

// Today returns the pinned date.
func (c FixedClock) Today() task.Date {
	return c.date
}
