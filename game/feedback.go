package game

import "github.com/milk9111/ashvale/common"

// Cue names a sound or flash the presentation layer plays.
type Cue string

const (
	CueHit        Cue = "hit"
	CuePlayerHurt Cue = "player_hurt"
	CueBlocked    Cue = "blocked"
	CueDenied     Cue = "denied"
	CuePickup     Cue = "pickup"
	CueCoins      Cue = "coins"
	CueDeath      Cue = "death"
	CueLevelUp    Cue = "level_up"
	CueCast       Cue = "cast"
	CuePortal     Cue = "portal"
)

// Feedback is one presentation cue with an optional message.
type Feedback struct {
	Cue     Cue
	Message string
	At      common.Position
}

// FeedbackQueue is a FIFO the shell drains after each tick.
type FeedbackQueue struct {
	items []Feedback
}

func (q *FeedbackQueue) Push(f Feedback) {
	q.items = append(q.items, f)
}

// Drain returns all queued feedback and clears the queue.
func (q *FeedbackQueue) Drain() []Feedback {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *FeedbackQueue) Len() int {
	return len(q.items)
}
