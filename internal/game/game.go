package game

import (
	"sync"

	"buzzroom/internal/events"

	"github.com/jonboulle/clockwork"
)

// DiffSink receives every committed diff of a room, in commit order.
type DiffSink interface {
	Publish(Diff)
}

// Room is the authoritative state machine for one quiz session. Every
// command runs under the room's mutex, so commands against one room are
// strictly sequenced while different rooms proceed in parallel. Each
// successful command bumps the version counter and hands exactly one diff
// to the sink before the lock is released, which keeps delivery in commit
// order.
type Room struct {
	mu    sync.Mutex
	clock clockwork.Clock
	sink  DiffSink
	bus   *events.Bus

	code      string
	name      string
	createdBy string

	version int64
	status  Status

	question       string
	questionPoints int
	remaining      int
	paused         bool
	questionActive bool

	timer    TimerState
	timerGen int

	winnerID   string
	winnerName string
	buzzQueue  []BuzzAttempt
	wrong      []string
	answers    []AnswerRecord

	teamsEnabled bool
	teams        []Team

	seats []*seat
}

type seat struct {
	identity string
	name     string
	team     string
	muted    bool
	score    int
}

// NewRoom creates a room owned by hostIdentity. sink and bus may be nil
// when the caller has no subscribers or no stats pipeline.
func NewRoom(code, name, hostIdentity string, clock clockwork.Clock, sink DiffSink, bus *events.Bus) *Room {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Room{
		clock:          clock,
		sink:           sink,
		bus:            bus,
		code:           code,
		name:           name,
		createdBy:      hostIdentity,
		status:         StatusActive,
		questionPoints: 1,
		timer:          TimerStopped,
	}
}

func (r *Room) Code() string      { return r.code }
func (r *Room) Name() string      { return r.name }
func (r *Room) CreatedBy() string { return r.createdBy }

// commit bumps the version and publishes the diff. Must be called with
// r.mu held so diffs reach the sink in version order.
func (r *Room) commit(event string, c Changes) Diff {
	r.version++
	d := Diff{Version: r.version, Event: event, Changes: c}
	if r.sink != nil {
		r.sink.Publish(d)
	}
	return d
}

// Snapshot returns the room's latest committed state.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// SnapshotWith returns the snapshot and invokes fn at the same sequence
// point, so a subscriber can register its diff channel without a gap or a
// duplicate between snapshot and stream.
func (r *Room) SnapshotWith(fn func()) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn != nil {
		fn()
	}
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() Snapshot {
	return Snapshot{
		Version:           r.version,
		RoomID:            r.code,
		RoomName:          r.name,
		Status:            r.status,
		Question:          r.question,
		QuestionPoints:    r.questionPoints,
		RemainingSeconds:  r.remaining,
		Paused:            r.paused,
		QuestionActive:    r.questionActive,
		CurrentWinner:     r.winnerID,
		CurrentWinnerName: r.winnerName,
		BuzzQueue:         append([]BuzzAttempt{}, r.buzzQueue...),
		WrongAnswers:      append([]string{}, r.wrong...),
		TeamsEnabled:      r.teamsEnabled,
		Teams:             append([]Team{}, r.teams...),
		Players:           r.seatViewsLocked(),
		Answers:           append([]AnswerRecord{}, r.answers...),
	}
}

// StartQuestion begins a new question cycle: clears all per-question state,
// arms the countdown and commits a single diff.
func (r *Room) StartQuestion(text string, seconds, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	if text == "" {
		return ErrEmptyQuestion
	}
	if seconds <= 0 {
		return ErrInvalidDuration
	}
	if points <= 0 {
		return ErrInvalidPoints
	}

	r.question = text
	r.questionPoints = points
	r.remaining = seconds
	r.paused = false
	r.questionActive = true
	r.winnerID = ""
	r.winnerName = ""
	r.buzzQueue = nil
	r.wrong = nil
	r.answers = nil
	r.startTimerLocked()

	r.commit("question_started", Changes{
		Question:          strPtr(r.question),
		QuestionPoints:    intPtr(r.questionPoints),
		RemainingSeconds:  intPtr(r.remaining),
		Paused:            boolPtr(false),
		QuestionActive:    boolPtr(true),
		CurrentWinner:     strPtr(""),
		CurrentWinnerName: strPtr(""),
		BuzzQueue:         &[]BuzzAttempt{},
		WrongAnswers:      &[]string{},
		Answers:           &[]AnswerRecord{},
	})
	return nil
}

// ResetQuestion clears buzz, winner and wrong-answer state and stops the
// timer without ending the room. Safe to call repeatedly.
func (r *Room) ResetQuestion() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}

	r.winnerID = ""
	r.winnerName = ""
	r.buzzQueue = nil
	r.wrong = nil
	r.questionActive = false
	r.paused = false
	r.remaining = 0
	r.stopTimerLocked()

	r.commit("question_reset", Changes{
		RemainingSeconds:  intPtr(0),
		Paused:            boolPtr(false),
		QuestionActive:    boolPtr(false),
		CurrentWinner:     strPtr(""),
		CurrentWinnerName: strPtr(""),
		BuzzQueue:         &[]BuzzAttempt{},
		WrongAnswers:      &[]string{},
	})
	return nil
}

// Close marks the room closed. Every later mutating command fails with
// ErrRoomClosed; already-committed diffs still reach subscribers.
func (r *Room) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}

	r.status = StatusClosed
	r.questionActive = false
	r.paused = false
	r.remaining = 0
	r.winnerID = ""
	r.winnerName = ""
	r.stopTimerLocked()

	closed := StatusClosed
	r.commit("room_closed", Changes{
		Status:            &closed,
		RemainingSeconds:  intPtr(0),
		Paused:            boolPtr(false),
		QuestionActive:    boolPtr(false),
		CurrentWinner:     strPtr(""),
		CurrentWinnerName: strPtr(""),
	})
	return nil
}

// Closed reports whether the room has been closed.
func (r *Room) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status == StatusClosed
}

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
