package events

// JudgementEvent is emitted when the host rules on an accepted buzz in
// individual mode. Consumed by the stats writer after the commit.
type JudgementEvent struct {
	RoomCode string
	Identity string
	Name     string
	Correct  bool
	Points   int
}

// BuzzEvent is emitted when a buzz attempt wins the arbitration.
type BuzzEvent struct {
	RoomCode string
	Identity string
	Name     string
}

// AnswerJudgedEvent is emitted when a pending answer record gets an outcome.
type AnswerJudgedEvent struct {
	RoomCode string
	Identity string
	Text     string
	Outcome  string
}

// MatchEvent is emitted when a seat leaves a room, carrying its final score.
type MatchEvent struct {
	RoomCode string
	RoomName string
	Identity string
	Score    int
}

type Bus struct {
	Judgements chan JudgementEvent
	Buzzes     chan BuzzEvent
	Answers    chan AnswerJudgedEvent
	Matches    chan MatchEvent
}

func NewBus() *Bus {
	return &Bus{
		Judgements: make(chan JudgementEvent, 256),
		Buzzes:     make(chan BuzzEvent, 256),
		Answers:    make(chan AnswerJudgedEvent, 256),
		Matches:    make(chan MatchEvent, 256),
	}
}

// The Emit helpers never block: a full channel drops the event rather than
// stalling the room's command sequence.

func (b *Bus) EmitJudgement(ev JudgementEvent) {
	if b == nil {
		return
	}
	select {
	case b.Judgements <- ev:
	default:
	}
}

func (b *Bus) EmitBuzz(ev BuzzEvent) {
	if b == nil {
		return
	}
	select {
	case b.Buzzes <- ev:
	default:
	}
}

func (b *Bus) EmitAnswerJudged(ev AnswerJudgedEvent) {
	if b == nil {
		return
	}
	select {
	case b.Answers <- ev:
	default:
	}
}

func (b *Bus) EmitMatch(ev MatchEvent) {
	if b == nil {
		return
	}
	select {
	case b.Matches <- ev:
	default:
	}
}
