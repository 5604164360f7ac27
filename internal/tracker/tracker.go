// Package tracker drives the poll, diff, aggregate, persist cycle against a
// snapshot provider at a fixed cadence.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/tablescribe/internal/hand"
	"github.com/lox/tablescribe/internal/infer"
	"github.com/lox/tablescribe/internal/store"
	"github.com/lox/tablescribe/internal/table"
)

// SnapshotProvider is the single capability the tracker needs from the
// outside world: the current raw table state on demand. The bridge client
// implements it; tests substitute fakes.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*table.RawSnapshot, error)
}

// Tracker owns all cross-tick state: the previous normalized snapshot and
// the aggregator's hand buffer. Single-threaded; one loop, no shared state.
type Tracker struct {
	provider SnapshotProvider
	store    *store.Store
	agg      *hand.Aggregator
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger
	events   *zerolog.Logger

	prev *table.Snapshot
}

// New creates a tracker polling provider every interval.
func New(provider SnapshotProvider, st *store.Store, logger *log.Logger, interval time.Duration, clock quartz.Clock) *Tracker {
	return &Tracker{
		provider: provider,
		store:    st,
		agg:      hand.NewAggregator(logger),
		clock:    clock,
		interval: interval,
		logger:   logger.WithPrefix("tracker"),
	}
}

// SetEventSink attaches a structured logger that receives every inferred
// action event as a JSON line.
func (t *Tracker) SetEventSink(sink *zerolog.Logger) {
	t.events = sink
}

// Run polls until ctx is cancelled, then flushes any in-progress hand
// exactly once before returning. Only persistence write failures are fatal;
// provider errors and incomplete snapshots skip the tick.
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Info("Tracking table state", "interval", t.interval)

	ticker := t.clock.NewTicker(t.interval, "tracker", "poll")
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Stop requested, flushing in-progress hand")
			return t.flush()
		case <-ticker.C:
			if err := t.tick(ctx); err != nil {
				return err
			}
		}
	}
}

// tick runs one poll cycle. Recoverable failures log and return nil so the
// loop keeps its cadence.
func (t *Tracker) tick(ctx context.Context) error {
	raw, err := t.provider.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		t.logger.Warn("Snapshot fetch failed, skipping tick", "error", err)
		return nil
	}

	snap, err := table.Normalize(raw, t.clock.Now())
	if err != nil {
		t.logger.Warn("Snapshot incomplete, skipping tick", "error", err)
		return nil
	}

	events := infer.Diff(t.prev, snap)
	t.report(events)

	rec, done := t.agg.Observe(events, snap)
	if done {
		if err := t.persist(rec); err != nil {
			return err
		}
	}

	t.prev = snap
	return nil
}

// flush finalizes whatever is buffered from the last known snapshot. A
// winnerless hand is finalized but the store will refuse it; that refusal
// must not fail shutdown.
func (t *Tracker) flush() error {
	rec, ok := t.agg.Flush(t.prev)
	if !ok {
		t.logger.Info("No in-progress hand to flush")
		return nil
	}
	return t.persist(rec)
}

// persist writes a finalized record. Write failures are fatal: without
// durable persistence there is no point continuing the run.
func (t *Tracker) persist(rec *hand.Record) error {
	written, err := t.store.Persist(rec)
	if err != nil {
		return fmt.Errorf("persist hand %s: %w", rec.ID, err)
	}
	if !written {
		t.logger.Info("Hand not persisted", "id", rec.ID, "winners", len(rec.Winners))
	}
	return nil
}

// report surfaces each inferred event: human-readable on the component
// logger, structured on the event sink when attached.
func (t *Tracker) report(events []infer.Event) {
	for _, ev := range events {
		t.logger.Info("Inferred event", "event", ev.String())
		if t.events == nil {
			continue
		}
		entry := t.events.Info().
			Str("type", ev.Type.String()).
			Time("captured_at", ev.CapturedAt)
		if ev.Player != "" {
			entry = entry.Str("player", ev.Player)
		}
		if ev.Type == infer.EventBet || ev.Type == infer.EventRaise {
			entry = entry.Float64("amount", ev.Amount).Float64("total_bet", ev.TotalBet)
		}
		if len(ev.Cards) > 0 {
			entry = entry.Strs("cards", ev.Cards)
		}
		if ev.Type == infer.EventNewHand {
			entry = entry.Int("dealer", ev.Dealer)
		}
		entry.Msg("action")
	}
}
