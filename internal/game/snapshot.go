package game

// Status is a room's lifecycle state.
type Status string

const (
	StatusActive = Status("active")
	StatusClosed = Status("closed")
)

// Team is one scoring team within a room.
type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// BuzzAttempt records one buzz against the current question. Attempts are
// appended in arrival order and never removed individually.
type BuzzAttempt struct {
	Identity  string `json:"identity"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Outcome is the host's ruling on a submitted answer.
type Outcome string

const (
	OutcomePending = Outcome("pending")
	OutcomeCorrect = Outcome("correct")
	OutcomeWrong   = Outcome("wrong")
)

// AnswerRecord is one submitted answer for the current question.
type AnswerRecord struct {
	Identity  string  `json:"identity"`
	Name      string  `json:"name"`
	Text      string  `json:"text"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Outcome   Outcome `json:"outcome"`
}

// SeatView is a player's seat as exposed to subscribers.
type SeatView struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Team     string `json:"team,omitempty"`
	Muted    bool   `json:"muted"`
	Score    int    `json:"score"`
	IsHost   bool   `json:"isHost"`
}

// Snapshot is a room's full committed state at one version.
type Snapshot struct {
	Version           int64          `json:"version"`
	RoomID            string         `json:"roomId"`
	RoomName          string         `json:"roomName"`
	Status            Status         `json:"status"`
	Question          string         `json:"question"`
	QuestionPoints    int            `json:"questionPoints"`
	RemainingSeconds  int            `json:"remainingSeconds"`
	Paused            bool           `json:"paused"`
	QuestionActive    bool           `json:"questionActive"`
	CurrentWinner     string         `json:"currentWinner"`
	CurrentWinnerName string         `json:"currentWinnerName"`
	BuzzQueue         []BuzzAttempt  `json:"buzzQueue"`
	WrongAnswers      []string       `json:"wrongAnswerSet"`
	TeamsEnabled      bool           `json:"teamsEnabled"`
	Teams             []Team         `json:"teams"`
	Players           []SeatView     `json:"players"`
	Answers           []AnswerRecord `json:"answers"`
}

// Changes holds the fields touched by one committed command. Nil means
// unchanged; a non-nil pointer to an empty slice means cleared.
type Changes struct {
	Status            *Status         `json:"status,omitempty"`
	Question          *string         `json:"question,omitempty"`
	QuestionPoints    *int            `json:"questionPoints,omitempty"`
	RemainingSeconds  *int            `json:"remainingSeconds,omitempty"`
	Paused            *bool           `json:"paused,omitempty"`
	QuestionActive    *bool           `json:"questionActive,omitempty"`
	CurrentWinner     *string         `json:"currentWinner,omitempty"`
	CurrentWinnerName *string         `json:"currentWinnerName,omitempty"`
	BuzzQueue         *[]BuzzAttempt  `json:"buzzQueue,omitempty"`
	WrongAnswers      *[]string       `json:"wrongAnswerSet,omitempty"`
	TeamsEnabled      *bool           `json:"teamsEnabled,omitempty"`
	Teams             *[]Team         `json:"teams,omitempty"`
	Players           *[]SeatView     `json:"players,omitempty"`
	Answers           *[]AnswerRecord `json:"answers,omitempty"`
}

// Diff is the delta produced by one committed command, delivered to
// subscribers in version order.
type Diff struct {
	Version int64   `json:"version"`
	Event   string  `json:"event"`
	Changes Changes `json:"changes"`
}

// Apply folds a diff into the snapshot. Applying every diff in version order
// to a snapshot reproduces the room's latest full state.
func (s *Snapshot) Apply(d Diff) {
	s.Version = d.Version
	c := d.Changes
	if c.Status != nil {
		s.Status = *c.Status
	}
	if c.Question != nil {
		s.Question = *c.Question
	}
	if c.QuestionPoints != nil {
		s.QuestionPoints = *c.QuestionPoints
	}
	if c.RemainingSeconds != nil {
		s.RemainingSeconds = *c.RemainingSeconds
	}
	if c.Paused != nil {
		s.Paused = *c.Paused
	}
	if c.QuestionActive != nil {
		s.QuestionActive = *c.QuestionActive
	}
	if c.CurrentWinner != nil {
		s.CurrentWinner = *c.CurrentWinner
	}
	if c.CurrentWinnerName != nil {
		s.CurrentWinnerName = *c.CurrentWinnerName
	}
	if c.BuzzQueue != nil {
		s.BuzzQueue = *c.BuzzQueue
	}
	if c.WrongAnswers != nil {
		s.WrongAnswers = *c.WrongAnswers
	}
	if c.TeamsEnabled != nil {
		s.TeamsEnabled = *c.TeamsEnabled
	}
	if c.Teams != nil {
		s.Teams = *c.Teams
	}
	if c.Players != nil {
		s.Players = *c.Players
	}
	if c.Answers != nil {
		s.Answers = *c.Answers
	}
}
