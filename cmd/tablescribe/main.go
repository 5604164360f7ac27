package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Track   TrackCmd         `cmd:"" help:"Poll the table bridge and record completed hands"`
	Export  ExportCmd        `cmd:"" help:"Export stored hands as CSV or PHH"`
	Render  RenderCmd        `cmd:"" help:"Pretty-print stored hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tablescribe"),
		kong.Description("Reconstructs poker hand histories by polling a live table"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
