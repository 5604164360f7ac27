package hand

import (
	"github.com/charmbracelet/log"

	"github.com/lox/tablescribe/internal/handid"
	"github.com/lox/tablescribe/internal/infer"
	"github.com/lox/tablescribe/internal/table"
)

// Aggregator buffers inferred action events for the hand in progress and
// finalizes a Record once the table reports winners. It is not safe for
// concurrent use; the polling loop owns it.
type Aggregator struct {
	logger *log.Logger
	buffer []infer.Event
	newID  func() string
}

// NewAggregator creates an aggregator with an empty buffer.
func NewAggregator(logger *log.Logger) *Aggregator {
	return &Aggregator{
		logger: logger.WithPrefix("aggregator"),
		newID:  handid.New,
	}
}

// Pending returns the number of buffered events for the hand in progress.
func (a *Aggregator) Pending() int {
	return len(a.buffer)
}

// Observe appends a tick's event batch to the hand buffer and evaluates
// completion against the snapshot the batch was inferred from. When the
// snapshot carries winners the buffered hand is finalized and returned, and
// the buffer resets for the next hand.
func (a *Aggregator) Observe(events []infer.Event, latest *table.Snapshot) (*Record, bool) {
	for _, ev := range events {
		if a.redundant(ev) {
			a.logger.Debug("Dropping redundant event", "event", ev.String())
			continue
		}
		a.buffer = append(a.buffer, ev)
	}

	if latest == nil || len(latest.Winners) == 0 {
		return nil, false
	}

	rec := a.finalize(latest)
	a.logger.Info("Hand complete",
		"id", rec.ID,
		"stage", rec.Stage.String(),
		"pot", rec.Pot,
		"winners", len(rec.Winners),
		"events", len(rec.Events))
	return rec, true
}

// Flush finalizes the in-progress hand during shutdown, regardless of
// whether winners are known. Returns false when there is nothing buffered
// or no snapshot to finalize from.
func (a *Aggregator) Flush(last *table.Snapshot) (*Record, bool) {
	if len(a.buffer) == 0 || last == nil {
		return nil, false
	}
	rec := a.finalize(last)
	a.logger.Info("Flushed in-progress hand",
		"id", rec.ID,
		"events", len(rec.Events),
		"winners", len(rec.Winners))
	return rec, true
}

// finalize freezes the buffer into a Record built from the latest snapshot
// and resets the aggregator for the next hand.
func (a *Aggregator) finalize(latest *table.Snapshot) *Record {
	if !a.hasMarker() {
		a.buffer = append(a.buffer, infer.Event{
			Type:       infer.EventHandComplete,
			CapturedAt: latest.CapturedAt,
		})
	}

	rec := &Record{
		ID:          a.newID(),
		GameType:    latest.GameType,
		Blinds:      latest.Blinds,
		DealerPos:   latest.DealerPos,
		Pot:         latest.Pot,
		Cards:       append([]string(nil), latest.Cards...),
		Stage:       StageForBoard(len(latest.Cards)),
		Players:     append([]table.Player(nil), latest.Players...),
		Events:      a.buffer,
		Winners:     append([]table.Winner(nil), latest.Winners...),
		ShownHands:  shownHands(latest),
		CompletedAt: latest.CapturedAt,
	}

	a.buffer = nil
	return rec
}

func (a *Aggregator) hasMarker() bool {
	for _, ev := range a.buffer {
		if ev.Type == infer.EventHandComplete {
			return true
		}
	}
	return false
}

// redundant filters the check events the diff engine re-emits every tick a
// player sits idle: a check is dropped when the same player already checked
// since the last street boundary, or has folded earlier in the hand.
func (a *Aggregator) redundant(ev infer.Event) bool {
	if ev.Type != infer.EventCheck {
		return false
	}
	for i := len(a.buffer) - 1; i >= 0; i-- {
		prior := a.buffer[i]
		switch prior.Type {
		case infer.EventFlop, infer.EventTurn, infer.EventRiver, infer.EventNewHand:
			// Street boundary: earlier checks no longer count, but a fold
			// anywhere in the hand still silences the player.
			return foldedIn(a.buffer[:i], ev.Player)
		case infer.EventCheck, infer.EventFold:
			if prior.Player == ev.Player {
				return true
			}
		}
	}
	return false
}

func foldedIn(events []infer.Event, player string) bool {
	for _, ev := range events {
		if ev.Type == infer.EventFold && ev.Player == player {
			return true
		}
	}
	return false
}
