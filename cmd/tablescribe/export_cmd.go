package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/tablescribe/cmd/tablescribe/shared"
	"github.com/lox/tablescribe/internal/config"
	"github.com/lox/tablescribe/internal/store"
)

// ExportCmd converts the stored hands into a flat export document.
type ExportCmd struct {
	Config string `help:"Path to HCL config file" default:"tablescribe.hcl"`
	Format string `help:"Export format" enum:"csv,phh" default:"csv"`
	Out    string `help:"Output path (- for stdout)"`
}

func (cmd ExportCmd) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Tracker.LogLevel, false)
	st := store.New(cfg.Tracker.StorePath, logger)
	records := st.Load()
	if len(records) == 0 {
		return fmt.Errorf("no hands stored in %s", st.Path())
	}

	out := cmd.Out
	if out == "" {
		out = cfg.Tracker.ExportPath
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch cmd.Format {
	case "phh":
		err = store.ExportPHH(w, records)
	default:
		err = store.ExportCSV(w, records)
	}
	if err != nil {
		return err
	}

	if out != "-" {
		logger.Info("Export written", "path", out, "format", cmd.Format, "hands", len(records))
	}
	return nil
}
