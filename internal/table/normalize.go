package table

import (
	"errors"
	"fmt"
	"time"
)

// ErrIncompleteSnapshot is returned when the bridge delivered a snapshot
// missing required fields. Callers should skip the tick and retry on the
// next cycle rather than abort the loop.
var ErrIncompleteSnapshot = errors.New("incomplete table snapshot")

// RawSnapshot is the wire form of a table snapshot as delivered by the
// bridge. Pot is a pointer so an absent field is distinguishable from an
// empty pot.
type RawSnapshot struct {
	GameType       string      `json:"game_type"`
	PotSize        *float64    `json:"pot_size"`
	CommunityCards []string    `json:"community_cards"`
	Players        []RawPlayer `json:"players"`
	DealerPosition int         `json:"dealer_position"`
	CurrentPlayer  string      `json:"current_player"`
	Blinds         Blinds      `json:"blinds"`
	Winners        []RawWinner `json:"winners"`
	OurTurn        bool        `json:"is_our_turn"`
}

// RawPlayer is the wire form of one seat.
type RawPlayer struct {
	Name        string   `json:"name"`
	Stack       float64  `json:"stack"`
	Bet         float64  `json:"bet"`
	Cards       []string `json:"cards"`
	Status      string   `json:"status"`
	HandMessage string   `json:"hand_message"`
}

// RawWinner is the wire form of a hand winner.
type RawWinner struct {
	Name      string `json:"name"`
	StackInfo string `json:"stack"`
}

// Normalize maps a raw bridge snapshot into the canonical form used for
// diffing. It fails with ErrIncompleteSnapshot when required fields are
// absent; card and status strings are converted to their stable canonical
// representations so downstream comparison is structural equality.
func Normalize(raw *RawSnapshot, capturedAt time.Time) (*Snapshot, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrIncompleteSnapshot)
	}
	if raw.PotSize == nil {
		return nil, fmt.Errorf("%w: missing pot size", ErrIncompleteSnapshot)
	}
	if len(raw.Players) == 0 {
		return nil, fmt.Errorf("%w: empty player list", ErrIncompleteSnapshot)
	}

	snap := &Snapshot{
		GameType:      raw.GameType,
		Pot:           *raw.PotSize,
		Cards:         NormalizeCards(raw.CommunityCards),
		Players:       make([]Player, len(raw.Players)),
		DealerPos:     raw.DealerPosition,
		CurrentPlayer: raw.CurrentPlayer,
		Blinds:        raw.Blinds,
		OurTurn:       raw.OurTurn,
		CapturedAt:    capturedAt,
	}
	for i, rp := range raw.Players {
		snap.Players[i] = Player{
			Name:        rp.Name,
			Stack:       rp.Stack,
			Bet:         rp.Bet,
			Status:      StatusFromString(rp.Status),
			HoleCards:   NormalizeCards(rp.Cards),
			HandMessage: rp.HandMessage,
		}
	}
	if len(raw.Winners) > 0 {
		snap.Winners = make([]Winner, len(raw.Winners))
		for i, rw := range raw.Winners {
			snap.Winners[i] = Winner{Name: rw.Name, StackInfo: rw.StackInfo}
		}
	}
	snap.indexPlayers()
	return snap, nil
}
