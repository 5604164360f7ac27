package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/tablescribe/internal/hand"
)

// csvHeader is the flat tabular form: one row per stored hand.
var csvHeader = []string{
	"game_type",
	"blinds",
	"dealer_position",
	"pot_size",
	"stage",
	"community_cards",
	"winners",
	"winner_stacks",
}

// ExportCSV writes every stored hand as one CSV row.
func ExportCSV(w io.Writer, records []hand.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range records {
		rec := &records[i]
		names := make([]string, len(rec.Winners))
		stacks := make([]string, len(rec.Winners))
		for j, win := range rec.Winners {
			names[j] = win.Name
			stacks[j] = win.StackInfo
		}

		row := []string{
			rec.GameType,
			formatBlinds(rec.Blinds.Small, rec.Blinds.Big),
			strconv.Itoa(rec.DealerPos),
			formatAmount(rec.Pot),
			rec.Stage.String(),
			strings.Join(rec.Cards, ","),
			strings.Join(names, ","),
			strings.Join(stacks, ","),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatBlinds(small, big float64) string {
	return formatAmount(small) + "/" + formatAmount(big)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
