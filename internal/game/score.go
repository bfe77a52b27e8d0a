package game

import "buzzroom/internal/events"

// JudgeCorrect awards the current question's points to the winner and ends
// the question. The award is single-use: it requires a non-empty winner and
// clears the winner in the same committed step, so a repeated judgement can
// never double-count.
//
// In teams mode the points go to the team whose name matches the winner's
// display name; no match is a silent no-op, mirroring the behavior the
// clients already depend on. In individual mode the seat's score grows and
// a judgement event feeds the player's persistent statistics.
func (r *Room) JudgeCorrect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	if r.winnerID == "" {
		return ErrNothingToJudge
	}

	winnerID, winnerName := r.winnerID, r.winnerName
	points := r.questionPoints

	c := Changes{
		RemainingSeconds:  intPtr(0),
		Paused:            boolPtr(false),
		QuestionActive:    boolPtr(false),
		CurrentWinner:     strPtr(""),
		CurrentWinnerName: strPtr(""),
	}

	if r.teamsEnabled {
		if i := r.teamIndexLocked(winnerName); i >= 0 {
			r.teams[i].Score += points
			c.Teams = r.teamsCopy()
		}
	} else if s := r.seatLocked(winnerID); s != nil {
		s.score += points
		c.Players = r.seatViewsCopy()
	}

	if r.markPendingLocked(winnerID, OutcomeCorrect) {
		c.Answers = r.answersCopy()
	}

	r.winnerID = ""
	r.winnerName = ""
	r.questionActive = false
	r.paused = false
	r.remaining = 0
	r.stopTimerLocked()

	r.commit("judged_correct", c)
	if !r.teamsEnabled {
		r.bus.EmitJudgement(events.JudgementEvent{
			RoomCode: r.code,
			Identity: winnerID,
			Name:     winnerName,
			Correct:  true,
			Points:   points,
		})
	}
	return nil
}

// JudgeWrong disqualifies the winner for the rest of this question and
// resumes the countdown so the remaining eligible players can still buzz.
// The question does not end.
func (r *Room) JudgeWrong() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	if r.winnerID == "" {
		return ErrNothingToJudge
	}

	winnerID, winnerName := r.winnerID, r.winnerName

	r.wrong = append(r.wrong, winnerID)
	r.winnerID = ""
	r.winnerName = ""
	r.paused = false
	r.resumeTimerLocked()

	c := Changes{
		Paused:            boolPtr(false),
		CurrentWinner:     strPtr(""),
		CurrentWinnerName: strPtr(""),
		WrongAnswers:      r.wrongCopy(),
	}
	if r.markPendingLocked(winnerID, OutcomeWrong) {
		c.Answers = r.answersCopy()
	}

	r.commit("judged_wrong", c)
	if !r.teamsEnabled {
		r.bus.EmitJudgement(events.JudgementEvent{
			RoomCode: r.code,
			Identity: winnerID,
			Name:     winnerName,
			Correct:  false,
		})
	}
	return nil
}

// markPendingLocked rules on the player's pending answer records and emits
// one judged-answer event per record. Reports whether anything changed.
func (r *Room) markPendingLocked(identity string, outcome Outcome) bool {
	changed := false
	for i := range r.answers {
		if r.answers[i].Identity == identity && r.answers[i].Outcome == OutcomePending {
			r.answers[i].Outcome = outcome
			changed = true
			r.bus.EmitAnswerJudged(events.AnswerJudgedEvent{
				RoomCode: r.code,
				Identity: identity,
				Text:     r.answers[i].Text,
				Outcome:  string(outcome),
			})
		}
	}
	return changed
}
