package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/tablescribe/cmd/tablescribe/shared"
	"github.com/lox/tablescribe/internal/config"
	"github.com/lox/tablescribe/internal/hand"
	"github.com/lox/tablescribe/internal/store"
)

// RenderCmd pretty-prints stored hands to stdout.
type RenderCmd struct {
	Config string `help:"Path to HCL config file" default:"tablescribe.hcl"`
	Limit  int    `help:"Maximum number of hands to render (0 = all)"`
}

type renderStyles struct {
	Header    lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Pot       lipgloss.Style
	Separator lipgloss.Style
}

func newRenderStyles() *renderStyles {
	return &renderStyles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0E0")).
			Bold(true),
		Pot: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

func (cmd RenderCmd) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}

	logger := shared.SetupLogger("error", false)
	st := store.New(cfg.Tracker.StorePath, logger)
	records := st.Load()
	if len(records) == 0 {
		return fmt.Errorf("no hands stored in %s", st.Path())
	}

	limit := cmd.Limit
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}

	styles := newRenderStyles()
	for i := 0; i < limit; i++ {
		renderHand(styles, i+1, &records[i])
	}
	return nil
}

func renderHand(styles *renderStyles, n int, rec *hand.Record) {
	fmt.Println(styles.Header.Render(fmt.Sprintf("Hand #%d  %s  %g/%g  dealer seat %d",
		n, rec.GameType, rec.Blinds.Small, rec.Blinds.Big, rec.DealerPos)))

	if len(rec.Cards) > 0 {
		fmt.Printf("  Board: %s  (%s)\n", renderCards(styles, rec.Cards), rec.Stage)
	}
	fmt.Printf("  Pot: %s\n", styles.Pot.Render(fmt.Sprintf("%g", rec.Pot)))

	for _, ev := range rec.Events {
		fmt.Printf("  %s\n", styles.Action.Render(ev.String()))
	}

	for _, w := range rec.Winners {
		line := "Winner: " + w.Name
		if w.StackInfo != "" {
			line += " (" + w.StackInfo + ")"
		}
		fmt.Printf("  %s\n", styles.Winner.Render(line))
	}
	for _, sh := range rec.ShownHands {
		desc := ""
		if sh.Description != "" {
			desc = " - " + sh.Description
		}
		fmt.Printf("  %s shows %s%s\n", sh.Player, renderCards(styles, sh.HoleCards), desc)
	}

	fmt.Println(styles.Separator.Render(strings.Repeat("─", 60)))
}

func renderCards(styles *renderStyles, cards []string) string {
	rendered := make([]string, len(cards))
	for i, c := range cards {
		if len(c) == 2 && (c[1] == 'h' || c[1] == 'd') {
			rendered[i] = styles.CardRed.Render(c)
		} else {
			rendered[i] = styles.CardBlack.Render(c)
		}
	}
	return strings.Join(rendered, " ")
}
