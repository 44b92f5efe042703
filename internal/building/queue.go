package building

import (
	"log/slog"
	"slices"
	"time"
)

// Queue is a strict FIFO of activities. Only the head progresses.
//
// Not thread-safe: owned by the simulation goroutine.
type Queue struct {
	activities []Activity
	progress   time.Duration
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends activity.
func (q *Queue) Add(activity Activity) {
	q.activities = append(q.activities, activity)
	slog.Debug("activity queued", "activity", activity, "len", len(q.activities))
}

// Advance accumulates dt on the head. When it reaches the head duration the
// head is dequeued, progress resets to 0 and its effect runs.
// At most one activity completes per call. Returns the completed activity.
func (q *Queue) Advance(dt time.Duration) (Activity, bool) {
	if len(q.activities) == 0 || dt < 0 {
		return Activity{}, false
	}

	q.progress += dt
	head := q.activities[0]
	if q.progress < head.Duration {
		return Activity{}, false
	}

	q.activities = slices.Delete(q.activities, 0, 1)
	q.progress = 0

	slog.Debug("activity completed", "activity", head)
	if head.Effect != nil {
		head.Effect()
	}
	return head, true
}

// Len returns number of queued activities.
func (q *Queue) Len() int {
	return len(q.activities)
}

// Head returns the progressing activity.
func (q *Queue) Head() (Activity, bool) {
	if len(q.activities) == 0 {
		return Activity{}, false
	}
	return q.activities[0], true
}

// Progress returns accumulated time of the head.
func (q *Queue) Progress() time.Duration {
	return q.progress
}

// ProgressRatio returns head progress in [0, 1] (0 when empty).
func (q *Queue) ProgressRatio() float64 {
	head, ok := q.Head()
	if !ok {
		return 0
	}
	if head.Duration <= 0 {
		return 1
	}
	return min(float64(q.progress)/float64(head.Duration), 1)
}

// Activities returns a copy of queued activities, head first.
func (q *Queue) Activities() []Activity {
	return slices.Clone(q.activities)
}
