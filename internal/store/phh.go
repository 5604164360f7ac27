package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/tablescribe/internal/hand"
	"github.com/lox/tablescribe/internal/infer"
)

// phhHand is one hand in PHH TOML form. Only flat fields so each hand
// serializes cleanly under its own [hand_N] section.
type phhHand struct {
	Variant           string         `toml:"variant"`
	BlindsOrStraddles []float64      `toml:"blinds_or_straddles"`
	MinBet            float64        `toml:"min_bet"`
	StartingStacks    []float64      `toml:"starting_stacks"`
	Actions           []string       `toml:"actions"`
	Players           []string       `toml:"players"`
	HandID            string         `toml:"hand"`
	Metadata          map[string]any `toml:"metadata,omitempty"`
}

// ExportPHH renders the stored hands as a sectioned PHH session document,
// one [hand_N] table per record.
func ExportPHH(w io.Writer, records []hand.Record) error {
	for i := range records {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		enc := toml.NewEncoder(w)
		enc.Indent = "\t"
		section := map[string]phhHand{
			fmt.Sprintf("hand_%d", i+1): phhFromRecord(&records[i]),
		}
		if err := enc.Encode(section); err != nil {
			return fmt.Errorf("encode hand %d: %w", i+1, err)
		}
	}
	return nil
}

func phhFromRecord(rec *hand.Record) phhHand {
	players := make([]string, len(rec.Players))
	stacks := make([]float64, len(rec.Players))
	seats := make(map[string]int, len(rec.Players))
	for i, p := range rec.Players {
		players[i] = p.Name
		stacks[i] = p.Stack
		seats[p.Name] = i
	}

	winners := make([]string, len(rec.Winners))
	for i, w := range rec.Winners {
		winners[i] = w.Name
	}

	return phhHand{
		Variant:           "NT",
		BlindsOrStraddles: []float64{rec.Blinds.Small, rec.Blinds.Big},
		MinBet:            rec.Blinds.Big,
		StartingStacks:    stacks,
		Actions:           phhActions(rec, seats),
		Players:           players,
		HandID:            rec.ID,
		Metadata: map[string]any{
			"winners":   winners,
			"total_pot": rec.Pot,
			"stage":     rec.Stage.String(),
			"dealer":    rec.DealerPos,
		},
	}
}

// phhActions converts the buffered action log to PHH action strings.
// Tracking markers and win events have no PHH action form and are dropped.
func phhActions(rec *hand.Record, seats map[string]int) []string {
	var actions []string
	for _, ev := range rec.Events {
		switch ev.Type {
		case infer.EventFlop, infer.EventTurn, infer.EventRiver:
			actions = append(actions, "d db "+strings.Join(ev.Cards, ""))
		case infer.EventFold:
			if seat, ok := seats[ev.Player]; ok {
				actions = append(actions, fmt.Sprintf("p%d f", seat+1))
			}
		case infer.EventCheck:
			if seat, ok := seats[ev.Player]; ok {
				actions = append(actions, fmt.Sprintf("p%d cc", seat+1))
			}
		case infer.EventBet, infer.EventRaise:
			if seat, ok := seats[ev.Player]; ok {
				actions = append(actions, fmt.Sprintf("p%d cbr %s", seat+1, formatAmount(ev.TotalBet)))
			}
		}
	}
	return actions
}
