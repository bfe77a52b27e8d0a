package rooms

import (
	"time"

	"buzzroom/internal/broadcast"
	"buzzroom/internal/game"
	"buzzroom/internal/wshub"
)

type Room struct {
	Code        string
	Engine      *game.Room
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
	CreatedAt   time.Time
	HostID      string
}

// Subscribe attaches a subscriber at the room's sequence point: the
// returned snapshot and the first diff on the stream are contiguous.
func (r *Room) Subscribe() (game.Snapshot, *broadcast.Subscription) {
	var sub *broadcast.Subscription
	snap := r.Engine.SnapshotWith(func() {
		sub = r.Broadcaster.Register()
	})
	return snap, sub
}
