package infer

import "github.com/lox/tablescribe/internal/table"

// Diff compares two successive canonical snapshots and returns the ordered
// sequence of action events that occurred between them.
//
// Rules fire independently and concatenate in a fixed order: tracking start,
// dealer change, community card growth, per-player transitions (in current
// snapshot seat order), then winners. Within a rule, iteration follows the
// snapshot's own listing order, so output is deterministic for a given pair.
func Diff(prev *table.Snapshot, cur *table.Snapshot) []Event {
	// First tick: nothing to diff against.
	if prev == nil {
		return []Event{{Type: EventTrackingStarted, CapturedAt: cur.CapturedAt}}
	}

	var events []Event

	if cur.DealerPos != prev.DealerPos {
		events = append(events, Event{
			Type:       EventNewHand,
			Dealer:     cur.DealerPos,
			Blinds:     cur.Blinds,
			CapturedAt: cur.CapturedAt,
		})
	}

	if ev, ok := streetEvent(prev, cur); ok {
		events = append(events, ev)
	}

	events = append(events, playerEvents(prev, cur)...)

	if len(cur.Winners) > 0 && len(prev.Winners) == 0 {
		for _, w := range cur.Winners {
			events = append(events, Event{
				Type:       EventWin,
				Player:     w.Name,
				StackInfo:  w.StackInfo,
				CapturedAt: cur.CapturedAt,
			})
		}
	}

	return events
}

// streetEvent maps community card growth onto exactly one street event for
// the new board length. A poll gap that skips an intermediate street still
// yields a single event; skipped streets are not backfilled.
func streetEvent(prev, cur *table.Snapshot) (Event, bool) {
	if len(cur.Cards) <= len(prev.Cards) {
		return Event{}, false
	}
	switch len(cur.Cards) {
	case 3:
		return Event{
			Type:       EventFlop,
			Cards:      append([]string(nil), cur.Cards[:3]...),
			CapturedAt: cur.CapturedAt,
		}, true
	case 4:
		return Event{
			Type:       EventTurn,
			Cards:      []string{cur.Cards[3]},
			CapturedAt: cur.CapturedAt,
		}, true
	case 5:
		return Event{
			Type:       EventRiver,
			Cards:      []string{cur.Cards[4]},
			CapturedAt: cur.CapturedAt,
		}, true
	}
	return Event{}, false
}

// playerEvents derives fold/bet/raise/check transitions for every player
// present in both snapshots, joined by name.
func playerEvents(prev, cur *table.Snapshot) []Event {
	var events []Event
	for _, p := range cur.Players {
		before, ok := prev.PlayerNamed(p.Name)
		if !ok {
			continue
		}

		if before.Status != table.StatusFolded && p.Status == table.StatusFolded {
			events = append(events, Event{
				Type:       EventFold,
				Player:     p.Name,
				CapturedAt: cur.CapturedAt,
			})
		}

		switch {
		case p.Bet > before.Bet:
			typ := EventRaise
			if before.Bet == 0 {
				typ = EventBet
			}
			events = append(events, Event{
				Type:       typ,
				Player:     p.Name,
				Amount:     p.Bet - before.Bet,
				TotalBet:   p.Bet,
				CapturedAt: cur.CapturedAt,
			})
		case before.Bet == 0 && p.Bet == 0 && cur.CurrentPlayer != p.Name:
			// Re-fires every tick the player is idle with no bet in front;
			// the aggregator collapses the duplicates.
			events = append(events, Event{
				Type:       EventCheck,
				Player:     p.Name,
				CapturedAt: cur.CapturedAt,
			})
		}
	}
	return events
}
