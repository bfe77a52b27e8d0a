package game

import "time"

// TimerState is the countdown's lifecycle state.
type TimerState string

const (
	TimerStopped = TimerState("stopped")
	TimerRunning = TimerState("running")
	TimerPaused  = TimerState("paused")
)

// The countdown is owned by a single per-room ticker goroutine, never by any
// participant's clock. Each tick re-enters the room's command sequence like
// any other command, so a tick and a simultaneous buzz are strictly ordered
// and expiry and a buzz can never both land on the same question.
//
// Ticker goroutines are invalidated by a generation counter: starting,
// stopping or resetting the timer bumps the generation, and a tick carrying
// a stale generation is discarded. This keeps exactly one live driver per
// active question even across rapid start/reset sequences.

func (r *Room) startTimerLocked() {
	r.timerGen++
	r.timer = TimerRunning
	go r.runTimer(r.timerGen)
}

func (r *Room) stopTimerLocked() {
	r.timerGen++
	r.timer = TimerStopped
}

func (r *Room) pauseTimerLocked() {
	if r.timer == TimerRunning {
		r.timer = TimerPaused
	}
}

func (r *Room) resumeTimerLocked() {
	if r.timer == TimerPaused {
		r.timer = TimerRunning
	}
}

// TimerStatus returns the countdown's current state.
func (r *Room) TimerStatus() TimerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer
}

func (r *Room) runTimer(gen int) {
	ticker := r.clock.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.Chan() {
		if !r.tick(gen) {
			return
		}
	}
}

// tick advances the countdown by one second. Returns false once this
// driver's generation is stale and the goroutine should exit. A paused
// timer holds its remaining seconds.
func (r *Room) tick(gen int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.timerGen || r.status == StatusClosed {
		return false
	}
	if r.timer == TimerPaused {
		return true
	}
	if r.timer != TimerRunning || !r.questionActive {
		return false
	}

	r.remaining--
	if r.remaining > 0 {
		r.commit("timer_tick", Changes{RemainingSeconds: intPtr(r.remaining)})
		return true
	}

	// Expired: the question ends for everyone without any client action.
	r.remaining = 0
	r.questionActive = false
	r.paused = false
	r.stopTimerLocked()
	r.commit("question_expired", Changes{
		RemainingSeconds: intPtr(0),
		Paused:           boolPtr(false),
		QuestionActive:   boolPtr(false),
	})
	return false
}
