package main

import (
	"os"

	"github.com/coder/quartz"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/tablescribe/cmd/tablescribe/shared"
	"github.com/lox/tablescribe/internal/bridge"
	"github.com/lox/tablescribe/internal/config"
	"github.com/lox/tablescribe/internal/store"
	"github.com/lox/tablescribe/internal/tracker"
)

// TrackCmd runs the polling loop until interrupted.
type TrackCmd struct {
	Config    string `help:"Path to HCL config file" default:"tablescribe.hcl"`
	BridgeURL string `help:"Override the bridge websocket URL"`
	Store     string `help:"Override the hand store path"`
	Debug     bool   `help:"Enable debug logging"`
	JSON      bool   `help:"Emit inferred events as JSON lines on stdout"`
}

func (cmd TrackCmd) Run() error {
	// Optional .env for bridge/session settings kept out of the config file.
	_ = godotenv.Load()

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.BridgeURL != "" {
		cfg.Tracker.BridgeURL = cmd.BridgeURL
	}
	if cmd.Store != "" {
		cfg.Tracker.StorePath = cmd.Store
	}

	logger := shared.SetupLogger(cfg.Tracker.LogLevel, cmd.Debug)
	ctx := shared.SetupSignalHandler(logger)

	client := bridge.NewClient(cfg.Tracker.BridgeURL, logger)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	st := store.New(cfg.Tracker.StorePath, logger)
	tr := tracker.New(client, st, logger, cfg.Tracker.PollInterval(), quartz.NewReal())

	if cmd.JSON {
		sink := shared.SetupEventLogger(os.Stdout)
		tr.SetEventSink(&sink)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tr.Run(gctx)
	})
	return g.Wait()
}
