package game

import "buzzroom/internal/events"

// TryBuzz arbitrates a buzz attempt against the room's current committed
// state. Precondition checks and the winning mutation happen as one
// sequenced step under the room lock, so of N simultaneous attempts exactly
// one is accepted; the rest lose with a reason.
func (r *Room) TryBuzz(identity string) (BuzzVerdict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return BuzzVerdict{}, ErrRoomClosed
	}
	s := r.seatLocked(identity)
	if s == nil {
		return BuzzVerdict{}, ErrSeatNotFound
	}

	if !r.questionActive {
		return BuzzVerdict{Reason: RejectNoActiveQuestion}, nil
	}
	if s.muted {
		return BuzzVerdict{Reason: RejectMuted}, nil
	}
	if r.isWrongLocked(identity) {
		return BuzzVerdict{Reason: RejectAlreadyWrong}, nil
	}
	if r.winnerID != "" {
		return BuzzVerdict{Reason: RejectAlreadyBuzzed}, nil
	}

	r.winnerID = s.identity
	r.winnerName = s.name
	r.paused = true
	r.pauseTimerLocked()
	r.buzzQueue = append(r.buzzQueue, BuzzAttempt{
		Identity:  s.identity,
		Name:      s.name,
		Timestamp: r.clock.Now().UnixMilli(),
	})

	r.commit("buzz_accepted", Changes{
		Paused:            boolPtr(true),
		CurrentWinner:     strPtr(r.winnerID),
		CurrentWinnerName: strPtr(r.winnerName),
		BuzzQueue:         r.buzzQueueCopy(),
	})
	r.bus.EmitBuzz(events.BuzzEvent{RoomCode: r.code, Identity: s.identity, Name: s.name})
	return BuzzVerdict{Accepted: true}, nil
}

// SubmitAnswer records a pending answer for the current question. Records
// live until the next question starts.
func (r *Room) SubmitAnswer(identity, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusClosed {
		return ErrRoomClosed
	}
	if text == "" {
		return ErrEmptyAnswer
	}
	s := r.seatLocked(identity)
	if s == nil {
		return ErrSeatNotFound
	}
	if !r.questionActive {
		return ErrNoActiveQuestion
	}

	r.answers = append(r.answers, AnswerRecord{
		Identity:  s.identity,
		Name:      s.name,
		Text:      text,
		Timestamp: r.clock.Now().UnixMilli(),
		Outcome:   OutcomePending,
	})

	r.commit("answer_submitted", Changes{Answers: r.answersCopy()})
	return nil
}

func (r *Room) isWrongLocked(identity string) bool {
	for _, w := range r.wrong {
		if w == identity {
			return true
		}
	}
	return false
}

func (r *Room) buzzQueueCopy() *[]BuzzAttempt {
	q := append([]BuzzAttempt{}, r.buzzQueue...)
	return &q
}

func (r *Room) answersCopy() *[]AnswerRecord {
	a := append([]AnswerRecord{}, r.answers...)
	return &a
}

func (r *Room) wrongCopy() *[]string {
	w := append([]string{}, r.wrong...)
	return &w
}
