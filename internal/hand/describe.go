package hand

import (
	poker "github.com/paulhankin/poker"

	"github.com/lox/tablescribe/internal/table"
)

// shownHands collects hole cards revealed at showdown and, when enough
// cards are visible, attaches a best-hand description.
func shownHands(snap *table.Snapshot) []ShownHand {
	var shown []ShownHand
	for _, p := range snap.Players {
		if !cardsVisible(p.HoleCards) {
			continue
		}
		sh := ShownHand{
			Player:    p.Name,
			HoleCards: append([]string(nil), p.HoleCards...),
		}
		if desc, ok := describe(p.HoleCards, snap.Cards); ok {
			sh.Description = desc
		} else if p.HandMessage != "" {
			// Fall back to whatever the table UI reported.
			sh.Description = p.HandMessage
		}
		shown = append(shown, sh)
	}
	return shown
}

func cardsVisible(cards []string) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if c == "??" || c == "" {
			return false
		}
	}
	return true
}

// describe evaluates hole cards against the board. Needs at least a
// five-card combination to rank.
func describe(hole, board []string) (string, bool) {
	all := make([]poker.Card, 0, len(hole)+len(board))
	for _, c := range append(append([]string(nil), hole...), board...) {
		pc, ok := parseCard(c)
		if !ok {
			return "", false
		}
		all = append(all, pc)
	}
	if len(all) < 5 {
		return "", false
	}
	desc, err := poker.Describe(all)
	if err != nil {
		return "", false
	}
	return desc, true
}

// parseCard converts canonical two-character notation (Ah, Td) to a library
// card. The library numbers aces as rank 1.
func parseCard(card string) (poker.Card, bool) {
	var zero poker.Card
	if len(card) != 2 {
		return zero, false
	}

	var rank poker.Rank
	switch card[0] {
	case 'A':
		rank = poker.Rank(1)
	case 'K':
		rank = poker.Rank(13)
	case 'Q':
		rank = poker.Rank(12)
	case 'J':
		rank = poker.Rank(11)
	case 'T':
		rank = poker.Rank(10)
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = poker.Rank(card[0] - '0')
	default:
		return zero, false
	}

	var suit poker.Suit
	switch card[1] {
	case 'c':
		suit = poker.Club
	case 'd':
		suit = poker.Diamond
	case 'h':
		suit = poker.Heart
	case 's':
		suit = poker.Spade
	default:
		return zero, false
	}

	pc, err := poker.MakeCard(suit, rank)
	if err != nil {
		return zero, false
	}
	return pc, true
}
