// Package table defines the canonical table state model that the rest of
// the tracker diffs and aggregates. Snapshots are normalized once at the
// provider boundary so downstream comparison is purely structural.
package table

import "time"

// Status represents a player's seat status within a hand.
type Status int

const (
	// StatusUnknown when the bridge reports a status we don't recognise
	StatusUnknown Status = iota
	// StatusActive player still contesting the pot
	StatusActive
	// StatusFolded player has mucked their hand
	StatusFolded
	// StatusAllIn player has committed their whole stack
	StatusAllIn
	// StatusSittingOut player is seated but not dealt in
	StatusSittingOut
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "allin"
	case StatusSittingOut:
		return "sitting-out"
	default:
		return "unknown"
	}
}

// StatusFromString converts a bridge status string to a Status.
func StatusFromString(s string) Status {
	switch s {
	case "active", "playing", "in-hand":
		return StatusActive
	case "folded", "fold":
		return StatusFolded
	case "allin", "all-in":
		return StatusAllIn
	case "sitting-out", "sitting_out", "away":
		return StatusSittingOut
	default:
		return StatusUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	*s = StatusFromString(string(text))
	return nil
}

// Blinds holds the table's blind structure.
type Blinds struct {
	Small float64 `json:"small"`
	Big   float64 `json:"big"`
}

// Player is one seat's state at capture time. Name is the only join key
// across snapshots; there is no stable player identifier on the wire.
type Player struct {
	Name        string   `json:"name"`
	Stack       float64  `json:"stack"`
	Bet         float64  `json:"bet"`
	Status      Status   `json:"status"`
	HoleCards   []string `json:"hole_cards,omitempty"`
	HandMessage string   `json:"hand_message,omitempty"`
}

// Winner records a hand winner and the bridge's stack delta description.
type Winner struct {
	Name      string `json:"name"`
	StackInfo string `json:"stack_info,omitempty"`
}

// Snapshot is the canonical, normalized table state captured on one tick.
// CapturedAt is metadata and excluded from equality.
type Snapshot struct {
	GameType      string    `json:"game_type"`
	Pot           float64   `json:"pot"`
	Cards         []string  `json:"cards"`
	Players       []Player  `json:"players"`
	DealerPos     int       `json:"dealer_pos"`
	CurrentPlayer string    `json:"current_player"`
	Blinds        Blinds    `json:"blinds"`
	Winners       []Winner  `json:"winners,omitempty"`
	OurTurn       bool      `json:"our_turn"`
	CapturedAt    time.Time `json:"captured_at"`

	byName map[string]int
}

// PlayerNamed looks up a player by name. The lookup map is built during
// normalization; snapshots constructed literally (tests) fall back to a scan.
func (s *Snapshot) PlayerNamed(name string) (Player, bool) {
	if s.byName != nil {
		if i, ok := s.byName[name]; ok {
			return s.Players[i], true
		}
		return Player{}, false
	}
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// indexPlayers builds the name lookup. Last entry wins if the bridge ever
// reports duplicate names; duplicate identities are a known limitation.
func (s *Snapshot) indexPlayers() {
	s.byName = make(map[string]int, len(s.Players))
	for i, p := range s.Players {
		s.byName[p.Name] = i
	}
}

// Equal reports whether two snapshots describe the same table state.
// Capture timestamps are ignored.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.GameType != o.GameType ||
		s.Pot != o.Pot ||
		s.DealerPos != o.DealerPos ||
		s.CurrentPlayer != o.CurrentPlayer ||
		s.Blinds != o.Blinds ||
		s.OurTurn != o.OurTurn {
		return false
	}
	if !equalStrings(s.Cards, o.Cards) {
		return false
	}
	if len(s.Players) != len(o.Players) {
		return false
	}
	for i := range s.Players {
		if !s.Players[i].equal(o.Players[i]) {
			return false
		}
	}
	if len(s.Winners) != len(o.Winners) {
		return false
	}
	for i := range s.Winners {
		if s.Winners[i] != o.Winners[i] {
			return false
		}
	}
	return true
}

func (p Player) equal(o Player) bool {
	return p.Name == o.Name &&
		p.Stack == o.Stack &&
		p.Bet == o.Bet &&
		p.Status == o.Status &&
		p.HandMessage == o.HandMessage &&
		equalStrings(p.HoleCards, o.HoleCards)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
