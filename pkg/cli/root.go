package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/gridrun/gridrun/pkg/logging"
	"github.com/gridrun/gridrun/pkg/store"
)

const (
	name           = "gridrun"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Root builds the top-level command with all subcommands attached.
func Root() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Expand experiment parameter spaces and launch the resulting runs",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `gridrun turns compact parameter declarations into concrete command
lines: explicit groups, numeric ranges, and fixed arguments are combined
into one command line per parameter group, then launched as child
processes or previewed without executing anything.

Parameters come from a YAML parameter file, from the command line, or
both styles separately:

  gridrun plan --param-file params.yaml
  gridrun run -e qpsk -g "--alpha 0.5" -r "--snr 0 30 5" -- input.dat

Run bookkeeping (experiments, runs, parameter groups) lives in a YAML
state file, .gridrun/state.yaml by default.`,
		Flags: []cli.Flag{
			logLevelFlag(),
			logFileFlag(),
			stateFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd.String("log-level"), cmd.String("log-file"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			planCmd(),
			runCmd(),
			actionCmd(),
		},
	}
}

// Execute runs the root command. This is called by main.main() and only
// needs to happen once.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := Root().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger configures slog after flag parsing so overrides like
// --log-level take effect before any command executes.
func initLogger(level, file string) {
	if file != "" {
		logging.SetDefaultStructuredLoggerWithFile(name, version, level, file)
		return
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
}

// openStore opens the state file named by the --state flag.
func openStore(cmd *cli.Command) (*store.FileStore, error) {
	return store.Open(cmd.String("state"))
}
