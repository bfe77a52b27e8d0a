package rooms

import (
	"fmt"
	"sync"
	"time"

	"buzzroom/internal/broadcast"
	"buzzroom/internal/events"
	"buzzroom/internal/game"
	"buzzroom/internal/wshub"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const sweepInterval = 5 * time.Minute

// Store holds every live room keyed by code. Closed rooms stay in the map
// while subscribers are still attached so late diffs and the final snapshot
// remain readable; the sweeper reaps them afterwards, along with abandoned
// rooms past the TTL.
type Store struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	clock    clockwork.Clock
	bus      *events.Bus
	staleTTL time.Duration
}

func NewStore(clock clockwork.Clock, bus *events.Bus, staleTTL time.Duration) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Store{
		rooms:    make(map[string]*Room),
		clock:    clock,
		bus:      bus,
		staleTTL: staleTTL,
	}
	go s.sweep()
	return s
}

// Create makes a new room with a collision-checked code, owned by hostID.
func (s *Store) Create(name, hostID string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}

		b := broadcast.New()
		room := &Room{
			Code:        code,
			Engine:      game.NewRoom(code, name, hostID, s.clock, b, s.bus),
			Broadcaster: b,
			Hub:         wshub.NewHub(),
			CreatedAt:   s.clock.Now(),
			HostID:      hostID,
		}
		s.rooms[code] = room
		log.Info().Str("room", code).Str("host", hostID).Msg("room created")
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code]
}

func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

func (s *Store) sweep() {
	ticker := s.clock.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.Chan() {
		s.reap()
	}
}

func (s *Store) reap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	for code, room := range s.rooms {
		closed := room.Engine.Closed()
		stale := now.Sub(room.CreatedAt) > s.staleTTL
		if (closed || stale) && room.Broadcaster.SubscriberCount() == 0 {
			if !closed {
				_ = room.Engine.Close()
			}
			delete(s.rooms, code)
			log.Info().Str("room", code).Msg("room reaped")
		}
	}
}
