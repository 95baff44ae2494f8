package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sweephound/sweephound/cmd/sweephound/app"
)

const usage = `usage: sweephound <command> [flags]

Commands:
  import     Archive capture files into a sqlite session database
  analyze    Report the strongest signals in capture(s)
  compare    Diff a current scan against a baseline scan
  direction  Estimate a bearing from a directional session
  position   Estimate the emitter position from one or more vantage points
  multipath  Inspect a capture for reflection indicators
  movement   Classify tracked frequencies as stationary, fluctuating or mobile

Run 'sweephound <command> -h' for command flags.
`

func main() {
	var logLevel slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	commands := map[string]func([]string, *slog.Logger, *slog.LevelVar) error{
		"import":    app.RunImport,
		"analyze":   app.RunAnalyze,
		"compare":   app.RunCompare,
		"direction": app.RunDirection,
		"position":  app.RunPosition,
		"multipath": app.RunMultipath,
		"movement":  app.RunMovement,
	}

	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err := run(os.Args[2:], logger, &logLevel); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
