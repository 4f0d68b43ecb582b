package compositor

import (
	"sync"

	"caption-studio-server/models"
)

// Tracker remembers the replay keys of the previous frame so that an
// animation restarts only when an element first appears or its key
// changes.
type Tracker struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{keys: make(map[string]struct{})}
}

// Mark sets Replay on every element of frame whose key was not present in
// the previously marked frame.
func (t *Tracker) Mark(frame *Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make(map[string]struct{}, len(frame.Assets)+1)
	if c := frame.Caption; c != nil {
		c.Animation.Replay = t.isNew(c.Animation)
		next[c.Animation.Key] = struct{}{}
	}
	for i := range frame.Assets {
		a := &frame.Assets[i].Animation
		a.Replay = t.isNew(*a)
		next[a.Key] = struct{}{}
	}
	t.keys = next
}

func (t *Tracker) Reset() {
	t.mu.Lock()
	t.keys = make(map[string]struct{})
	t.mu.Unlock()
}

func (t *Tracker) isNew(h AnimationHook) bool {
	if h.Preset == models.AnimationNone {
		return false
	}
	_, seen := t.keys[h.Key]
	return !seen
}
