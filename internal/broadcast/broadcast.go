package broadcast

import (
	"sync"

	"buzzroom/internal/game"

	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 64

// Subscription is one subscriber's ordered stream of room diffs. C is
// closed when the subscription is cancelled or the subscriber is detached.
type Subscription struct {
	C    chan game.Diff
	b    *Broadcaster
	once sync.Once
}

// Cancel detaches the subscription and closes C.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.b.remove(s)
	})
}

// Broadcaster fans a room's committed diffs out to its subscribers in
// commit order. Publish is called at the room's sequence point, so every
// subscriber sees the same diffs in the same version order with no gaps and
// no duplicates. A subscriber whose buffer is full is detached rather than
// ever skipping a diff.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[*Subscription]bool
}

func New() *Broadcaster {
	return &Broadcaster{subs: make(map[*Subscription]bool)}
}

// Register attaches a new subscriber. Call it at the room's sequence point
// (game.Room.SnapshotWith) so the snapshot and the stream line up.
func (b *Broadcaster) Register() *Subscription {
	s := &Subscription{C: make(chan game.Diff, subscriberBuffer), b: b}
	b.mu.Lock()
	b.subs[s] = true
	b.mu.Unlock()
	return s
}

func (b *Broadcaster) remove(s *Subscription) {
	b.mu.Lock()
	if b.subs[s] {
		delete(b.subs, s)
		close(s.C)
	}
	b.mu.Unlock()
}

// Publish delivers a diff to every subscriber. Implements game.DiffSink.
func (b *Broadcaster) Publish(d game.Diff) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		select {
		case s.C <- d:
		default:
			// Subscriber can't keep up; detach it so it never observes a
			// gap in the stream. It can resubscribe for a fresh snapshot.
			delete(b.subs, s)
			close(s.C)
			log.Warn().Int64("version", d.Version).Msg("detached slow subscriber")
		}
	}
}

// SubscriberCount returns the number of attached subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
