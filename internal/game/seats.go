package game

import "buzzroom/internal/events"

// Join seats a player in the room. Joining is an idempotent upsert: a
// returning identity keeps its seat, score and team, only the display name
// is refreshed.
func (r *Room) Join(identity, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}

	if s := r.seatLocked(identity); s != nil {
		if s.name == name {
			return nil
		}
		s.name = name
	} else {
		r.seats = append(r.seats, &seat{identity: identity, name: name})
	}

	r.commit("player_joined", Changes{Players: r.seatViewsCopy()})
	return nil
}

// Leave removes the player's seat. The host's seat is retained for the
// room's lifetime so the host can rejoin after a reload without losing the
// room; everyone else frees their seat and their final score is reported
// for match history. Unknown identities are ignored.
func (r *Room) Leave(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	s := r.seatLocked(identity)
	if s == nil {
		return nil
	}

	r.bus.EmitMatch(events.MatchEvent{
		RoomCode: r.code,
		RoomName: r.name,
		Identity: s.identity,
		Score:    s.score,
	})

	if identity == r.createdBy {
		return nil
	}

	r.removeSeatLocked(identity)
	r.commit("player_left", Changes{Players: r.seatViewsCopy()})
	return nil
}

// Kick removes a seat regardless of host status. If the kicked player holds
// the current buzz the winner is left dangling until judged or reset, the
// same as a disconnect.
func (r *Room) Kick(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	if r.seatLocked(identity) == nil {
		return ErrSeatNotFound
	}

	r.removeSeatLocked(identity)
	r.commit("player_kicked", Changes{Players: r.seatViewsCopy()})
	return nil
}

// ToggleMute flips the seat's mute flag and returns the new state. A muted
// player keeps its seat and score but cannot buzz.
func (r *Room) ToggleMute(identity string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return false, ErrRoomClosed
	}
	s := r.seatLocked(identity)
	if s == nil {
		return false, ErrSeatNotFound
	}

	s.muted = !s.muted
	r.commit("player_muted", Changes{Players: r.seatViewsCopy()})
	return s.muted, nil
}

// AssignTeam puts the seat on the named team, or clears the assignment when
// team is empty.
func (r *Room) AssignTeam(identity, team string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	s := r.seatLocked(identity)
	if s == nil {
		return ErrSeatNotFound
	}
	if team != "" && r.teamIndexLocked(team) < 0 {
		return ErrTeamNotFound
	}

	s.team = team
	r.commit("team_assigned", Changes{Players: r.seatViewsCopy()})
	return nil
}

// Seated reports whether the identity currently holds a seat.
func (r *Room) Seated(identity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seatLocked(identity) != nil
}

func (r *Room) seatLocked(identity string) *seat {
	for _, s := range r.seats {
		if s.identity == identity {
			return s
		}
	}
	return nil
}

func (r *Room) removeSeatLocked(identity string) {
	kept := r.seats[:0]
	for _, s := range r.seats {
		if s.identity != identity {
			kept = append(kept, s)
		}
	}
	r.seats = kept
}

func (r *Room) seatViewsLocked() []SeatView {
	views := make([]SeatView, 0, len(r.seats))
	for _, s := range r.seats {
		views = append(views, SeatView{
			Identity: s.identity,
			Name:     s.name,
			Team:     s.team,
			Muted:    s.muted,
			Score:    s.score,
			IsHost:   s.identity == r.createdBy,
		})
	}
	return views
}

func (r *Room) seatViewsCopy() *[]SeatView {
	v := r.seatViewsLocked()
	return &v
}
