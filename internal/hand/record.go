// Package hand accumulates inferred action events into per-hand records and
// decides when a hand is complete.
package hand

import (
	"time"

	"github.com/lox/tablescribe/internal/infer"
	"github.com/lox/tablescribe/internal/table"
)

// Stage is the furthest street observed for a hand.
type Stage int

const (
	// StagePreflop before any community cards
	StagePreflop Stage = iota
	// StageFlop after three community cards
	StageFlop
	// StageTurn after the fourth community card
	StageTurn
	// StageRiver after the fifth community card
	StageRiver
)

// String returns the string representation of a stage.
func (s Stage) String() string {
	switch s {
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	default:
		return "preflop"
	}
}

// StageFromString converts a string to a Stage.
func StageFromString(s string) Stage {
	switch s {
	case "flop":
		return StageFlop
	case "turn":
		return StageTurn
	case "river":
		return StageRiver
	default:
		return StagePreflop
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	*s = StageFromString(string(text))
	return nil
}

// StageForBoard maps a community card count onto the stage it implies.
func StageForBoard(cards int) Stage {
	switch {
	case cards >= 5:
		return StageRiver
	case cards == 4:
		return StageTurn
	case cards >= 3:
		return StageFlop
	default:
		return StagePreflop
	}
}

// Record is a finalized hand: the table state at completion plus the full
// ordered action log buffered while the hand was live. Records are frozen
// once built; only the store touches them afterwards.
type Record struct {
	ID          string         `json:"id"`
	GameType    string         `json:"game_type"`
	Blinds      table.Blinds   `json:"blinds"`
	DealerPos   int            `json:"dealer_pos"`
	Pot         float64        `json:"pot"`
	Cards       []string       `json:"cards,omitempty"`
	Stage       Stage          `json:"stage"`
	Players     []table.Player `json:"players"`
	Events      []infer.Event  `json:"events"`
	Winners     []table.Winner `json:"winners,omitempty"`
	ShownHands  []ShownHand    `json:"shown_hands,omitempty"`
	CompletedAt time.Time      `json:"completed_at"`
}

// ShownHand describes a hand revealed at showdown, evaluated against the
// board when enough cards are visible.
type ShownHand struct {
	Player      string   `json:"player"`
	HoleCards   []string `json:"hole_cards"`
	Description string   `json:"description,omitempty"`
}
