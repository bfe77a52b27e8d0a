package server

import (
	"encoding/json"
	"net/http"

	"buzzroom/internal/session"
	"buzzroom/internal/wshub"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// wsEnvelope frames messages on the subscription stream: one "snapshot"
// first, then "diff" messages in commit order.
type wsEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// handleSubscribe upgrades to WebSocket and streams the room's state: a
// full snapshot first, then every committed diff in version order. The
// connection doubles as the liveness signal; when an identity's last
// connection drops, an ordinary Leave command enters the room's sequence.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	sess := session.FromRequest(r)
	if sess.Identity == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "join the room first"})
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket accept failed")
		return
	}

	client := &wshub.Client{
		ConnID:   uuid.New().String(),
		Identity: sess.Identity,
		Name:     sess.Name,
		Conn:     conn,
		Send:     make(chan []byte, 64),
	}
	room.Hub.Register(client)

	snap, sub := room.Subscribe()

	ctx := r.Context()
	go client.WritePump(ctx)

	client.Send <- mustMarshal(wsEnvelope{Type: "snapshot", Data: snap})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range sub.C {
			select {
			case client.Send <- mustMarshal(wsEnvelope{Type: "diff", Data: d}):
			default:
				// Writer has stalled; drop the connection rather than
				// deliver diffs out of order later.
				conn.Close(websocket.StatusPolicyViolation, "too slow")
				return
			}
		}
	}()

	// Block until the peer goes away.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}

	sub.Cancel()
	<-done
	identity, last := room.Hub.Unregister(client.ConnID)
	if last && identity != room.Engine.CreatedBy() && !room.Engine.Closed() {
		if err := room.Engine.Leave(identity); err != nil {
			log.Debug().Err(err).Str("room", room.Code).Msg("leave on disconnect")
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal ws message")
		return []byte("{}")
	}
	return b
}
