package game

import "errors"

var (
	ErrRoomClosed       = errors.New("room is closed")
	ErrNoActiveQuestion = errors.New("no active question")
	ErrNothingToJudge   = errors.New("nothing to judge")
	ErrInvalidDuration  = errors.New("timer duration must be a positive number of seconds")
	ErrInvalidPoints    = errors.New("question points must be positive")
	ErrEmptyQuestion    = errors.New("question text must not be empty")
	ErrEmptyAnswer      = errors.New("answer text must not be empty")
	ErrSeatNotFound     = errors.New("player is not seated in this room")
	ErrTeamNotFound     = errors.New("no such team")
	ErrEmptyTeamName    = errors.New("team name must not be empty")
)

// RejectReason explains why a buzz was not accepted. Losing the race to
// another player is an expected outcome, not an error.
type RejectReason string

const (
	RejectNoActiveQuestion RejectReason = "no_active_question"
	RejectMuted            RejectReason = "muted"
	RejectAlreadyWrong     RejectReason = "already_wrong"
	RejectAlreadyBuzzed    RejectReason = "already_buzzed"
)

// BuzzVerdict is the outcome of a buzz attempt.
type BuzzVerdict struct {
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
}
