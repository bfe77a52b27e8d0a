package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"buzzroom/internal/config"
	"buzzroom/internal/game"
	"buzzroom/internal/rooms"
	"buzzroom/internal/session"

	"github.com/rs/zerolog/log"
)

type Server struct {
	Rooms *rooms.Store
	Cfg   config.Config
}

// getRoom resolves the room from the request path.
func (s *Server) getRoom(r *http.Request) *rooms.Room {
	code := strings.ToUpper(strings.TrimSpace(r.PathValue("code")))
	return s.Rooms.Get(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the engine's error taxonomy onto HTTP statuses. Nothing
// is swallowed: every failed command reports its reason to the caller.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrRoomClosed):
		status = http.StatusGone
	case errors.Is(err, game.ErrSeatNotFound), errors.Is(err, game.ErrTeamNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNoActiveQuestion), errors.Is(err, game.ErrNothingToJudge):
		status = http.StatusConflict
	case errors.Is(err, game.ErrInvalidDuration), errors.Is(err, game.ErrInvalidPoints),
		errors.Is(err, game.ErrEmptyQuestion), errors.Is(err, game.ErrEmptyAnswer),
		errors.Is(err, game.ErrEmptyTeamName):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "room not found"})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// requireHost confirms the caller owns the room. Host-only commands are
// rejected for everyone else.
func (s *Server) requireHost(w http.ResponseWriter, r *http.Request, room *rooms.Room) (session.Session, bool) {
	sess := session.FromRequest(r)
	if sess.Identity != room.Engine.CreatedBy() {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "host only"})
		return sess, false
	}
	return sess, true
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		HostName string `json:"hostName"`
	}
	if err := decode(r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "room name required"})
		return
	}

	sess := session.Ensure(w, r, req.HostName)
	room, err := s.Rooms.Create(strings.TrimSpace(req.Name), sess.Identity)
	if err != nil {
		log.Error().Err(err).Msg("creating room")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to create room"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"roomId": room.Code})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, room.Engine.Snapshot())
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	_ = decode(r, &req)

	sess := session.Ensure(w, r, strings.TrimSpace(req.Name))
	if err := room.Engine.Join(sess.Identity, sess.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Engine.Snapshot())
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	sess := session.FromRequest(r)
	if err := room.Engine.Leave(sess.Identity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"left": true})
}

func (s *Server) handleStartQuestion(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	if _, ok := s.requireHost(w, r, room); !ok {
		return
	}
	var req struct {
		Text    string `json:"text"`
		Seconds int    `json:"seconds"`
		Points  int    `json:"points"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if req.Seconds == 0 {
		req.Seconds = s.Cfg.DefaultSeconds
	}
	if req.Points == 0 {
		req.Points = s.Cfg.DefaultPoints
	}

	if err := room.Engine.StartQuestion(strings.TrimSpace(req.Text), req.Seconds, req.Points); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Engine.Snapshot())
}

func (s *Server) handleBuzz(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	sess := session.FromRequest(r)
	verdict, err := room.Engine.TryBuzz(sess.Identity)
	if err != nil {
		writeError(w, err)
		return
	}
	// Losing the buzz race is a normal response, not a fault.
	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	sess := session.FromRequest(r)
	if err := room.Engine.SubmitAnswer(sess.Identity, strings.TrimSpace(req.Text)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"submitted": true})
}

func (s *Server) handleJudgeCorrect(w http.ResponseWriter, r *http.Request) {
	s.hostCommand(w, r, func(room *rooms.Room) error {
		return room.Engine.JudgeCorrect()
	})
}

func (s *Server) handleJudgeWrong(w http.ResponseWriter, r *http.Request) {
	s.hostCommand(w, r, func(room *rooms.Room) error {
		return room.Engine.JudgeWrong()
	})
}

func (s *Server) handleResetQuestion(w http.ResponseWriter, r *http.Request) {
	s.hostCommand(w, r, func(room *rooms.Room) error {
		return room.Engine.ResetQuestion()
	})
}

func (s *Server) handleCloseRoom(w http.ResponseWriter, r *http.Request) {
	s.hostCommand(w, r, func(room *rooms.Room) error {
		return room.Engine.Close()
	})
}

func (s *Server) handleToggleTeams(w http.ResponseWriter, r *http.Request) {
	s.hostCommand(w, r, func(room *rooms.Room) error {
		_, err := room.Engine.ToggleTeamsMode()
		return err
	})
}

func (s *Server) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	s.hostCommandWith(w, r, &req, func(room *rooms.Room) error {
		return room.Engine.AddTeam(strings.TrimSpace(req.Name))
	})
}

func (s *Server) handleRemoveTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	s.hostCommandWith(w, r, &req, func(room *rooms.Room) error {
		return room.Engine.RemoveTeam(req.Index)
	})
}

func (s *Server) handleAssignTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
		Team   string `json:"team"`
	}
	s.hostCommandWith(w, r, &req, func(room *rooms.Room) error {
		return room.Engine.AssignTeam(req.Player, req.Team)
	})
}

func (s *Server) handleMute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
	}
	s.hostCommandWith(w, r, &req, func(room *rooms.Room) error {
		_, err := room.Engine.ToggleMute(req.Player)
		return err
	})
}

func (s *Server) handleKick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
	}
	s.hostCommandWith(w, r, &req, func(room *rooms.Room) error {
		return room.Engine.Kick(req.Player)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// hostCommand runs a body-less host-only command and replies with the
// room's new snapshot.
func (s *Server) hostCommand(w http.ResponseWriter, r *http.Request, fn func(*rooms.Room) error) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	if _, ok := s.requireHost(w, r, room); !ok {
		return
	}
	if err := fn(room); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Engine.Snapshot())
}

// hostCommandWith is hostCommand with a decoded JSON body.
func (s *Server) hostCommandWith(w http.ResponseWriter, r *http.Request, req any, fn func(*rooms.Room) error) {
	room := s.getRoom(r)
	if room == nil {
		notFound(w)
		return
	}
	if _, ok := s.requireHost(w, r, room); !ok {
		return
	}
	if err := decode(r, req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if err := fn(room); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room.Engine.Snapshot())
}
