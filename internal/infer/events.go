// Package infer derives poker action events by diffing successive canonical
// table snapshots. The diff is deterministic: a given pair of snapshots
// always produces the same ordered event sequence.
package infer

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/tablescribe/internal/table"
)

// EventType identifies the kind of inferred action event.
type EventType int

const (
	// EventTrackingStarted marks the first observed snapshot
	EventTrackingStarted EventType = iota
	// EventNewHand marks a dealer button move
	EventNewHand
	// EventFlop marks the first three community cards
	EventFlop
	// EventTurn marks the fourth community card
	EventTurn
	// EventRiver marks the fifth community card
	EventRiver
	// EventFold marks a player folding
	EventFold
	// EventCheck marks a player checking
	EventCheck
	// EventBet marks an opening bet
	EventBet
	// EventRaise marks a raise over a prior bet
	EventRaise
	// EventWin marks a hand winner appearing in the snapshot
	EventWin
	// EventHandComplete marks the end of a buffered hand
	EventHandComplete
)

// String returns the string representation of an event type.
func (t EventType) String() string {
	switch t {
	case EventTrackingStarted:
		return "tracking_started"
	case EventNewHand:
		return "new_hand"
	case EventFlop:
		return "flop"
	case EventTurn:
		return "turn"
	case EventRiver:
		return "river"
	case EventFold:
		return "fold"
	case EventCheck:
		return "check"
	case EventBet:
		return "bet"
	case EventRaise:
		return "raise"
	case EventWin:
		return "win"
	case EventHandComplete:
		return "hand_complete"
	default:
		return "unknown"
	}
}

// EventTypeFromString converts a string to an EventType.
func EventTypeFromString(s string) (EventType, error) {
	switch s {
	case "tracking_started":
		return EventTrackingStarted, nil
	case "new_hand":
		return EventNewHand, nil
	case "flop":
		return EventFlop, nil
	case "turn":
		return EventTurn, nil
	case "river":
		return EventRiver, nil
	case "fold":
		return EventFold, nil
	case "check":
		return EventCheck, nil
	case "bet":
		return EventBet, nil
	case "raise":
		return EventRaise, nil
	case "win":
		return EventWin, nil
	case "hand_complete":
		return EventHandComplete, nil
	default:
		return EventTrackingStarted, fmt.Errorf("unknown event type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(text []byte) error {
	parsed, err := EventTypeFromString(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Event is a single inferred action. Payload fields are populated per type:
// street events carry Cards, player actions carry Player (and Amount/TotalBet
// for bets and raises), new_hand carries Dealer and Blinds, win carries
// Player and StackInfo.
type Event struct {
	Type       EventType    `json:"type"`
	Player     string       `json:"player,omitempty"`
	Amount     float64      `json:"amount,omitempty"`
	TotalBet   float64      `json:"total_bet,omitempty"`
	Cards      []string     `json:"cards,omitempty"`
	Dealer     int          `json:"dealer,omitempty"`
	Blinds     table.Blinds `json:"blinds,omitempty"`
	StackInfo  string       `json:"stack_info,omitempty"`
	CapturedAt time.Time    `json:"captured_at,omitempty"`
}

// String renders a compact human-readable form for logs.
func (e Event) String() string {
	switch e.Type {
	case EventNewHand:
		return fmt.Sprintf("new_hand dealer=%d blinds=%g/%g", e.Dealer, e.Blinds.Small, e.Blinds.Big)
	case EventFlop, EventTurn, EventRiver:
		return fmt.Sprintf("%s %s", e.Type, strings.Join(e.Cards, " "))
	case EventFold, EventCheck:
		return fmt.Sprintf("%s %s", e.Type, e.Player)
	case EventBet, EventRaise:
		return fmt.Sprintf("%s %s %g (to %g)", e.Type, e.Player, e.Amount, e.TotalBet)
	case EventWin:
		if e.StackInfo != "" {
			return fmt.Sprintf("win %s (%s)", e.Player, e.StackInfo)
		}
		return fmt.Sprintf("win %s", e.Player)
	default:
		return e.Type.String()
	}
}
