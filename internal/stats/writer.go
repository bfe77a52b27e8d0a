package stats

import (
	"context"

	"buzzroom/internal/events"

	"github.com/rs/zerolog/log"
)

// Sink is where player statistics land. *db.DB satisfies it.
type Sink interface {
	ApplyJudgement(identity, name string, correct bool, points int) error
	RecordFirstBuzz(identity, name string) error
	RecordMatch(identity, roomCode, roomName string, score int) error
	RecordAnswer(roomCode, identity, answer, outcome string) error
}

// Writer drains the event bus into the sink. It runs entirely outside the
// rooms' command sequences: a commit never waits on a statistics write, and
// a failed write costs only that event.
type Writer struct {
	sink Sink
	bus  *events.Bus
}

func NewWriter(sink Sink, bus *events.Bus) *Writer {
	return &Writer{sink: sink, bus: bus}
}

// Run consumes events until the context ends.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-w.bus.Judgements:
			if err := w.sink.ApplyJudgement(ev.Identity, ev.Name, ev.Correct, ev.Points); err != nil {
				log.Error().Err(err).Str("room", ev.RoomCode).Msg("judgement stat write failed")
			}
		case ev := <-w.bus.Buzzes:
			if err := w.sink.RecordFirstBuzz(ev.Identity, ev.Name); err != nil {
				log.Error().Err(err).Str("room", ev.RoomCode).Msg("buzz stat write failed")
			}
		case ev := <-w.bus.Answers:
			if err := w.sink.RecordAnswer(ev.RoomCode, ev.Identity, ev.Text, ev.Outcome); err != nil {
				log.Error().Err(err).Str("room", ev.RoomCode).Msg("answer log write failed")
			}
		case ev := <-w.bus.Matches:
			if err := w.sink.RecordMatch(ev.Identity, ev.RoomCode, ev.RoomName, ev.Score); err != nil {
				log.Error().Err(err).Str("room", ev.RoomCode).Msg("match history write failed")
			}
		}
	}
}
