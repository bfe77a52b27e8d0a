package game

import (
	"testing"

	"buzzroom/internal/events"
)

func findSeat(t *testing.T, snap Snapshot, identity string) SeatView {
	t.Helper()
	for _, p := range snap.Players {
		if p.Identity == identity {
			return p
		}
	}
	t.Fatalf("no seat for %q in %+v", identity, snap.Players)
	return SeatView{}
}

func TestJudgeCorrect_IndividualMode(t *testing.T) {
	r := newTestRoom(t)
	mustStart(t, r, "Q?", 30, 5)
	if v, _ := r.TryBuzz("p1"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}
	if err := r.SubmitAnswer("p1", "forty-two"); err != nil {
		t.Fatal(err)
	}

	if err := r.JudgeCorrect(); err != nil {
		t.Fatalf("JudgeCorrect failed: %v", err)
	}

	snap := r.Snapshot()
	if got := findSeat(t, snap, "p1").Score; got != 5 {
		t.Errorf("p1 score = %d, want 5", got)
	}
	if snap.QuestionActive {
		t.Error("question should end on a correct judgement")
	}
	if snap.CurrentWinner != "" {
		t.Errorf("CurrentWinner = %q, want empty", snap.CurrentWinner)
	}
	if snap.RemainingSeconds != 0 {
		t.Errorf("RemainingSeconds = %d, want 0", snap.RemainingSeconds)
	}
	if snap.Answers[0].Outcome != OutcomeCorrect {
		t.Errorf("answer outcome = %q, want correct", snap.Answers[0].Outcome)
	}
}

func TestJudgeCorrect_TeamsMode(t *testing.T) {
	r := NewRoom("ABC123", "Trivia Night", "host-1", nil, nil, nil)
	mustJoin(t, r, "host-1", "Host")
	mustJoin(t, r, "pa", "Team A")
	mustJoin(t, r, "pb", "Team B")
	if _, err := r.ToggleTeamsMode(); err != nil {
		t.Fatal(err)
	}

	mustStart(t, r, "Q?", 30, 5)
	if v, _ := r.TryBuzz("pa"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}
	if err := r.JudgeCorrect(); err != nil {
		t.Fatalf("JudgeCorrect failed: %v", err)
	}

	snap := r.Snapshot()
	if snap.Teams[0].Score != 5 {
		t.Errorf("Team A score = %d, want 5", snap.Teams[0].Score)
	}
	if snap.Teams[1].Score != 0 {
		t.Errorf("Team B score = %d, want 0", snap.Teams[1].Score)
	}
	if got := findSeat(t, snap, "pa").Score; got != 0 {
		t.Errorf("individual score = %d, want 0 in teams mode", got)
	}
}

// An award whose winner no longer matches any team is silently lost. The
// room stays consistent and the question still ends.
func TestJudgeCorrect_TeamRemovedMidQuestion(t *testing.T) {
	r := NewRoom("ABC123", "Trivia Night", "host-1", nil, nil, nil)
	mustJoin(t, r, "host-1", "Host")
	mustJoin(t, r, "pa", "Team A")
	if _, err := r.ToggleTeamsMode(); err != nil {
		t.Fatal(err)
	}

	mustStart(t, r, "Q?", 30, 5)
	if v, _ := r.TryBuzz("pa"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}
	if err := r.RemoveTeam(0); err != nil {
		t.Fatal(err)
	}

	if err := r.JudgeCorrect(); err != nil {
		t.Fatalf("JudgeCorrect failed: %v", err)
	}
	snap := r.Snapshot()
	for _, team := range snap.Teams {
		if team.Score != 0 {
			t.Errorf("team %s score = %d, want 0", team.Name, team.Score)
		}
	}
	if snap.QuestionActive {
		t.Error("question should still end")
	}
}

func TestJudge_NothingToJudge(t *testing.T) {
	r := newTestRoom(t)
	mustStart(t, r, "Q?", 30, 1)

	if err := r.JudgeCorrect(); err != ErrNothingToJudge {
		t.Errorf("JudgeCorrect: err = %v, want ErrNothingToJudge", err)
	}
	if err := r.JudgeWrong(); err != ErrNothingToJudge {
		t.Errorf("JudgeWrong: err = %v, want ErrNothingToJudge", err)
	}
}

// A judgement is single-use: the winner is cleared in the same committed
// step, so ruling twice can never double-count.
func TestJudgeCorrect_NeverDoubleCounts(t *testing.T) {
	r := newTestRoom(t)
	mustStart(t, r, "Q?", 30, 5)
	if v, _ := r.TryBuzz("p1"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}

	if err := r.JudgeCorrect(); err != nil {
		t.Fatal(err)
	}
	if err := r.JudgeCorrect(); err != ErrNothingToJudge {
		t.Errorf("second JudgeCorrect: err = %v, want ErrNothingToJudge", err)
	}

	if got := findSeat(t, r.Snapshot(), "p1").Score; got != 5 {
		t.Errorf("p1 score = %d, want 5 (awarded once)", got)
	}
}

func TestJudgeWrong_EmitsJudgementEvent(t *testing.T) {
	bus := events.NewBus()
	r := NewRoom("ABC123", "Trivia Night", "host-1", nil, nil, bus)
	mustJoin(t, r, "host-1", "Host")
	mustJoin(t, r, "p1", "Alice")
	mustStart(t, r, "Q?", 30, 1)
	if v, _ := r.TryBuzz("p1"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}

	// Drain the buzz event first
	<-bus.Buzzes

	if err := r.JudgeWrong(); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-bus.Judgements:
		if ev.Identity != "p1" || ev.Correct {
			t.Errorf("judgement event = %+v, want wrong ruling for p1", ev)
		}
	default:
		t.Fatal("no judgement event emitted")
	}
}

func TestJudgeWrong_TeamsModeSkipsStats(t *testing.T) {
	bus := events.NewBus()
	r := NewRoom("ABC123", "Trivia Night", "host-1", nil, nil, bus)
	mustJoin(t, r, "host-1", "Host")
	mustJoin(t, r, "pa", "Team A")
	if _, err := r.ToggleTeamsMode(); err != nil {
		t.Fatal(err)
	}
	mustStart(t, r, "Q?", 30, 1)
	if v, _ := r.TryBuzz("pa"); !v.Accepted {
		t.Fatal("buzz should be accepted")
	}
	<-bus.Buzzes

	if err := r.JudgeWrong(); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-bus.Judgements:
		t.Errorf("unexpected judgement event in teams mode: %+v", ev)
	default:
	}
}
