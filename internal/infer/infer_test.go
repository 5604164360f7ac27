package infer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablescribe/internal/infer"
	"github.com/lox/tablescribe/internal/table"
)

func snapshot(mutate ...func(*table.Snapshot)) *table.Snapshot {
	s := &table.Snapshot{
		GameType: "NLHE",
		Pot:      3,
		Players: []table.Player{
			{Name: "Alice", Stack: 100, Status: table.StatusActive},
			{Name: "Bob", Stack: 100, Status: table.StatusActive},
			{Name: "Carol", Stack: 100, Status: table.StatusActive},
		},
		DealerPos:     1,
		CurrentPlayer: "Alice",
		Blinds:        table.Blinds{Small: 1, Big: 2},
		CapturedAt:    time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(s)
	}
	return s
}

func types(events []infer.Event) []infer.EventType {
	out := make([]infer.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestDiffFirstTick(t *testing.T) {
	events := infer.Diff(nil, snapshot())
	require.Len(t, events, 1)
	assert.Equal(t, infer.EventTrackingStarted, events[0].Type)
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	// All players idle but Alice is to act, Bob and Carol re-fire checks;
	// no other events for identical state.
	prev := snapshot()
	cur := snapshot()
	events := infer.Diff(prev, cur)
	assert.Equal(t, []infer.EventType{infer.EventCheck, infer.EventCheck}, types(events))
	assert.Equal(t, "Bob", events[0].Player)
	assert.Equal(t, "Carol", events[1].Player)
}

func TestDiffNoEventsWhenBetsOutstanding(t *testing.T) {
	withBets := func(s *table.Snapshot) {
		for i := range s.Players {
			s.Players[i].Bet = 10
		}
	}
	events := infer.Diff(snapshot(withBets), snapshot(withBets))
	assert.Empty(t, events)
}

func TestDiffNewHand(t *testing.T) {
	cur := snapshot(func(s *table.Snapshot) {
		s.DealerPos = 2
		s.CurrentPlayer = ""
		s.Players = nil
	})
	cur.Players = []table.Player{} // no shared players, isolate the dealer rule
	events := infer.Diff(snapshot(), cur)
	require.Len(t, events, 1)
	assert.Equal(t, infer.EventNewHand, events[0].Type)
	assert.Equal(t, 2, events[0].Dealer)
	assert.Equal(t, table.Blinds{Small: 1, Big: 2}, events[0].Blinds)
}

func TestDiffFlop(t *testing.T) {
	cur := snapshot(func(s *table.Snapshot) {
		s.Cards = []string{"Ah", "Kd", "2c"}
		s.CurrentPlayer = ""
		s.Players[0].Bet = 1 // suppress idle checks
		s.Players[1].Bet = 1
		s.Players[2].Bet = 1
	})
	prev := snapshot(func(s *table.Snapshot) {
		s.Players[0].Bet = 1
		s.Players[1].Bet = 1
		s.Players[2].Bet = 1
	})
	events := infer.Diff(prev, cur)
	require.Len(t, events, 1)
	assert.Equal(t, infer.EventFlop, events[0].Type)
	assert.Equal(t, []string{"Ah", "Kd", "2c"}, events[0].Cards)
}

func TestDiffTurnCarriesOnlyFourthCard(t *testing.T) {
	prev := snapshot(func(s *table.Snapshot) {
		s.Cards = []string{"Ah", "Kd", "2c"}
	})
	cur := snapshot(func(s *table.Snapshot) {
		s.Cards = []string{"Ah", "Kd", "2c", "7s"}
	})
	events := infer.Diff(prev, cur)
	require.NotEmpty(t, events)
	assert.Equal(t, infer.EventTurn, events[0].Type)
	assert.Equal(t, []string{"7s"}, events[0].Cards)
}

func TestDiffRiverCarriesOnlyFifthCard(t *testing.T) {
	prev := snapshot(func(s *table.Snapshot) {
		s.Cards = []string{"Ah", "Kd", "2c", "7s"}
	})
	cur := snapshot(func(s *table.Snapshot) {
		s.Cards = []string{"Ah", "Kd", "2c", "7s", "Jh"}
	})
	events := infer.Diff(prev, cur)
	require.NotEmpty(t, events)
	assert.Equal(t, infer.EventRiver, events[0].Type)
	assert.Equal(t, []string{"Jh"}, events[0].Cards)
}

func TestDiffPollGapEmitsSingleStreetEvent(t *testing.T) {
	// Board jumping 0 -> 5 in one tick emits only the river.
	cur := snapshot(func(s *table.Snapshot) {
		s.Cards = []string{"Ah", "Kd", "2c", "7s", "Jh"}
	})
	events := infer.Diff(snapshot(), cur)
	streets := 0
	for _, e := range events {
		switch e.Type {
		case infer.EventFlop, infer.EventTurn, infer.EventRiver:
			streets++
			assert.Equal(t, infer.EventRiver, e.Type)
		}
	}
	assert.Equal(t, 1, streets)
}

func TestDiffFold(t *testing.T) {
	cur := snapshot(func(s *table.Snapshot) {
		s.Players[1].Status = table.StatusFolded
	})
	events := infer.Diff(snapshot(), cur)
	var folds []infer.Event
	for _, e := range events {
		if e.Type == infer.EventFold {
			folds = append(folds, e)
		}
	}
	require.Len(t, folds, 1)
	assert.Equal(t, "Bob", folds[0].Player)
}

func TestDiffBetFromZero(t *testing.T) {
	cur := snapshot(func(s *table.Snapshot) {
		s.Players[0].Bet = 10
	})
	events := infer.Diff(snapshot(), cur)
	require.NotEmpty(t, events)
	assert.Equal(t, infer.EventBet, events[0].Type)
	assert.Equal(t, "Alice", events[0].Player)
	assert.Equal(t, 10.0, events[0].Amount)
	assert.Equal(t, 10.0, events[0].TotalBet)
}

func TestDiffRaiseCarriesDelta(t *testing.T) {
	prev := snapshot(func(s *table.Snapshot) {
		s.Players[0].Bet = 10
	})
	cur := snapshot(func(s *table.Snapshot) {
		s.Players[0].Bet = 35
	})
	events := infer.Diff(prev, cur)
	require.NotEmpty(t, events)
	assert.Equal(t, infer.EventRaise, events[0].Type)
	assert.Equal(t, 25.0, events[0].Amount)
	assert.Equal(t, 35.0, events[0].TotalBet)
}

func TestDiffWinners(t *testing.T) {
	cur := snapshot(func(s *table.Snapshot) {
		s.Winners = []table.Winner{
			{Name: "Bob", StackInfo: "+42"},
			{Name: "Carol", StackInfo: "+21"},
		}
		s.CurrentPlayer = ""
		s.Players[0].Bet = 1
		s.Players[1].Bet = 1
		s.Players[2].Bet = 1
	})
	prev := snapshot(func(s *table.Snapshot) {
		s.Players[0].Bet = 1
		s.Players[1].Bet = 1
		s.Players[2].Bet = 1
	})
	events := infer.Diff(prev, cur)
	require.Len(t, events, 2)
	assert.Equal(t, infer.EventWin, events[0].Type)
	assert.Equal(t, "Bob", events[0].Player)
	assert.Equal(t, "+42", events[0].StackInfo)
	assert.Equal(t, "Carol", events[1].Player)
}

func TestDiffWinnersOnlyOnTransition(t *testing.T) {
	withWinner := func(s *table.Snapshot) {
		s.Winners = []table.Winner{{Name: "Bob"}}
		s.Players[0].Bet = 1
		s.Players[1].Bet = 1
		s.Players[2].Bet = 1
	}
	events := infer.Diff(snapshot(withWinner), snapshot(withWinner))
	for _, e := range events {
		assert.NotEqual(t, infer.EventWin, e.Type)
	}
}

func TestDiffUnknownPlayerIgnored(t *testing.T) {
	cur := snapshot(func(s *table.Snapshot) {
		s.Players = append(s.Players, table.Player{Name: "Dave", Bet: 50, Status: table.StatusActive})
	})
	events := infer.Diff(snapshot(), cur)
	for _, e := range events {
		assert.NotEqual(t, "Dave", e.Player)
	}
}

func TestDiffRuleOrderIsStable(t *testing.T) {
	cur := snapshot(func(s *table.Snapshot) {
		s.DealerPos = 2
		s.Cards = []string{"Ah", "Kd", "2c"}
		s.Players[0].Bet = 10
		s.Winners = []table.Winner{{Name: "Carol"}}
	})
	events := infer.Diff(snapshot(), cur)
	require.GreaterOrEqual(t, len(events), 4)
	assert.Equal(t, infer.EventNewHand, events[0].Type)
	assert.Equal(t, infer.EventFlop, events[1].Type)
	assert.Equal(t, infer.EventBet, events[2].Type)
	assert.Equal(t, infer.EventWin, events[len(events)-1].Type)
}
