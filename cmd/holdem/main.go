package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play a table of bots from an HCL config"`
	Simulate SimulateCmd      `cmd:"" help:"Run many independent tables concurrently"`
	Replay   ReplayCmd        `cmd:"" help:"Replay a JSON hand history and verify the result"`
	Export   ExportCmd        `cmd:"" help:"Convert JSON hand histories to PHH"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em table engine"),
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
