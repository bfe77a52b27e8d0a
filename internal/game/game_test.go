package game

import (
	"reflect"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
)

// recordingSink captures every published diff in commit order.
type recordingSink struct {
	mu    sync.Mutex
	diffs []Diff
}

func (s *recordingSink) Publish(d Diff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diffs = append(s.diffs, d)
}

func (s *recordingSink) all() []Diff {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Diff(nil), s.diffs...)
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r := NewRoom("ABC123", "Trivia Night", "host-1", clockwork.NewFakeClock(), nil, nil)
	mustJoin(t, r, "host-1", "Host")
	mustJoin(t, r, "p1", "Alice")
	mustJoin(t, r, "p2", "Bob")
	return r
}

func mustJoin(t *testing.T, r *Room, identity, name string) {
	t.Helper()
	if err := r.Join(identity, name); err != nil {
		t.Fatalf("Join(%s) failed: %v", identity, err)
	}
}

func mustStart(t *testing.T, r *Room, text string, seconds, points int) {
	t.Helper()
	if err := r.StartQuestion(text, seconds, points); err != nil {
		t.Fatalf("StartQuestion failed: %v", err)
	}
}

func TestNewRoom(t *testing.T) {
	r := NewRoom("ABC123", "Trivia Night", "host-1", clockwork.NewFakeClock(), nil, nil)
	snap := r.Snapshot()
	if snap.RoomID != "ABC123" {
		t.Errorf("RoomID = %q, want %q", snap.RoomID, "ABC123")
	}
	if snap.Status != StatusActive {
		t.Errorf("Status = %q, want %q", snap.Status, StatusActive)
	}
	if snap.QuestionActive {
		t.Error("new room should have no active question")
	}
	if snap.QuestionPoints != 1 {
		t.Errorf("QuestionPoints = %d, want 1", snap.QuestionPoints)
	}
	if snap.Version != 0 {
		t.Errorf("Version = %d, want 0", snap.Version)
	}
}

func TestStartQuestion(t *testing.T) {
	r := newTestRoom(t)
	mustStart(t, r, "What is Go?", 30, 5)

	snap := r.Snapshot()
	if !snap.QuestionActive {
		t.Error("question should be active")
	}
	if snap.Question != "What is Go?" {
		t.Errorf("Question = %q", snap.Question)
	}
	if snap.RemainingSeconds != 30 {
		t.Errorf("RemainingSeconds = %d, want 30", snap.RemainingSeconds)
	}
	if snap.QuestionPoints != 5 {
		t.Errorf("QuestionPoints = %d, want 5", snap.QuestionPoints)
	}
	if snap.Paused {
		t.Error("timer should not start paused")
	}
}

func TestStartQuestion_Validation(t *testing.T) {
	r := newTestRoom(t)

	if err := r.StartQuestion("", 30, 1); err != ErrEmptyQuestion {
		t.Errorf("empty text: err = %v, want ErrEmptyQuestion", err)
	}
	if err := r.StartQuestion("Q?", 0, 1); err != ErrInvalidDuration {
		t.Errorf("zero seconds: err = %v, want ErrInvalidDuration", err)
	}
	if err := r.StartQuestion("Q?", -5, 1); err != ErrInvalidDuration {
		t.Errorf("negative seconds: err = %v, want ErrInvalidDuration", err)
	}
	if err := r.StartQuestion("Q?", 30, 0); err != ErrInvalidPoints {
		t.Errorf("zero points: err = %v, want ErrInvalidPoints", err)
	}
}

func TestStartQuestion_ClearsPerQuestionState(t *testing.T) {
	r := newTestRoom(t)
	mustStart(t, r, "First?", 30, 1)

	if v, _ := r.TryBuzz("p1"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}
	if err := r.SubmitAnswer("p1", "forty-two"); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if err := r.JudgeWrong(); err != nil {
		t.Fatalf("JudgeWrong failed: %v", err)
	}

	mustStart(t, r, "Second?", 30, 1)

	snap := r.Snapshot()
	if len(snap.BuzzQueue) != 0 {
		t.Errorf("BuzzQueue = %v, want empty", snap.BuzzQueue)
	}
	if len(snap.WrongAnswers) != 0 {
		t.Errorf("WrongAnswers = %v, want empty", snap.WrongAnswers)
	}
	if snap.CurrentWinner != "" {
		t.Errorf("CurrentWinner = %q, want empty", snap.CurrentWinner)
	}
	if len(snap.Answers) != 0 {
		t.Errorf("Answers = %v, want empty", snap.Answers)
	}
}

func TestResetQuestion(t *testing.T) {
	r := newTestRoom(t)
	mustStart(t, r, "Q?", 30, 1)
	r.TryBuzz("p1")

	if err := r.ResetQuestion(); err != nil {
		t.Fatalf("ResetQuestion failed: %v", err)
	}

	snap := r.Snapshot()
	if snap.QuestionActive {
		t.Error("question should not be active after reset")
	}
	if snap.CurrentWinner != "" {
		t.Errorf("CurrentWinner = %q, want empty", snap.CurrentWinner)
	}
	if snap.RemainingSeconds != 0 {
		t.Errorf("RemainingSeconds = %d, want 0", snap.RemainingSeconds)
	}
	if r.TimerStatus() != TimerStopped {
		t.Errorf("timer = %q, want stopped", r.TimerStatus())
	}

	// Reset is idempotent
	if err := r.ResetQuestion(); err != nil {
		t.Errorf("second ResetQuestion failed: %v", err)
	}
}

func TestClose_RejectsFurtherCommands(t *testing.T) {
	r := newTestRoom(t)
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !r.Closed() {
		t.Error("room should report closed")
	}

	if err := r.Close(); err != ErrRoomClosed {
		t.Errorf("second Close: err = %v, want ErrRoomClosed", err)
	}
	if err := r.StartQuestion("Q?", 30, 1); err != ErrRoomClosed {
		t.Errorf("StartQuestion: err = %v, want ErrRoomClosed", err)
	}
	if _, err := r.TryBuzz("p1"); err != ErrRoomClosed {
		t.Errorf("TryBuzz: err = %v, want ErrRoomClosed", err)
	}
	if err := r.Join("p3", "Carol"); err != ErrRoomClosed {
		t.Errorf("Join: err = %v, want ErrRoomClosed", err)
	}
}

func TestVersion_MonotonicPerCommit(t *testing.T) {
	sink := &recordingSink{}
	r := NewRoom("ABC123", "Trivia Night", "host-1", clockwork.NewFakeClock(), sink, nil)
	mustJoin(t, r, "host-1", "Host")
	mustJoin(t, r, "p1", "Alice")
	mustStart(t, r, "Q?", 30, 1)
	r.TryBuzz("p1")
	r.JudgeCorrect()

	diffs := sink.all()
	if len(diffs) == 0 {
		t.Fatal("no diffs published")
	}
	for i, d := range diffs {
		if d.Version != int64(i+1) {
			t.Fatalf("diff %d has version %d, want %d", i, d.Version, i+1)
		}
	}
}

// Applying every committed diff in order to the initial snapshot must
// reproduce the room's latest full state.
func TestDiffs_RoundTripToSnapshot(t *testing.T) {
	sink := &recordingSink{}
	r := NewRoom("ABC123", "Trivia Night", "host-1", clockwork.NewFakeClock(), sink, nil)
	base := r.Snapshot()

	mustJoin(t, r, "host-1", "Host")
	mustJoin(t, r, "p1", "Alice")
	mustJoin(t, r, "p2", "Bob")
	if _, err := r.ToggleTeamsMode(); err != nil {
		t.Fatal(err)
	}
	if err := r.AddTeam("Team C"); err != nil {
		t.Fatal(err)
	}
	if err := r.AssignTeam("p1", "Team A"); err != nil {
		t.Fatal(err)
	}
	mustStart(t, r, "Capital of France?", 20, 3)
	if err := r.SubmitAnswer("p2", "Lyon"); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.TryBuzz("p2"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}
	if err := r.JudgeWrong(); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.TryBuzz("p1"); !v.Accepted {
		t.Fatal("second buzz should be accepted")
	}
	if err := r.JudgeCorrect(); err != nil {
		t.Fatal(err)
	}
	if err := r.Leave("p2"); err != nil {
		t.Fatal(err)
	}

	rebuilt := base
	for _, d := range sink.all() {
		rebuilt.Apply(d)
	}

	latest := r.Snapshot()
	if !reflect.DeepEqual(rebuilt, latest) {
		t.Errorf("rebuilt state diverged from snapshot:\nrebuilt: %+v\nlatest:  %+v", rebuilt, latest)
	}
}
