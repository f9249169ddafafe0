package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/gridrun/gridrun/pkg/params"
	"github.com/gridrun/gridrun/pkg/runner"
	"github.com/gridrun/gridrun/pkg/store"
)

// nThreadsOption is the runner parameter that overrides --n-threads when
// present in the fixed argument stream.
const nThreadsOption = "--n_threads"

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Expand parameters and launch a run of an experiment",
		ArgsUsage:             "[fixed arguments...]",
		Description: `Expand parameter declarations into groups, record a new run in the
state file, and execute one child process per group on the local
machine.

The command line of group n is the experiment's executable command and
executable, the group's arguments (positional slots in order, then
options sorted by name), and a trailing --storage_path pointing at the
group's directory. A single-group run executes directly in the run's
storage directory; multi-group runs get one group_<n> subdirectory per
group. Each group's stdout and stderr are captured next to its
group_info.yaml manifest.

# Examples

Run a parameter file with four worker processes:
  gridrun run -e qpsk --param-file params.yaml --n-threads 4

Sweep a range over a fixed input file:
  gridrun run -e qpsk -r "--snr 0 30 5" -- input.dat`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "experiment",
				Aliases:  []string{"e"},
				Required: true,
				Usage:    "name of the experiment to run",
			},
			paramFileFlag(),
			groupFlag(),
			rangeFlag(),
			&cli.StringFlag{
				Name:  "storage-path",
				Usage: "run storage directory (default: results/<experiment>/run_<id>)",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "free-form description recorded with the run",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "tag recorded with the run (can be repeated)",
			},
			&cli.IntFlag{
				Name:    "n-threads",
				Usage:   "maximum number of groups executing concurrently",
				Value:   1,
				Sources: cli.EnvVars("GRIDRUN_N_THREADS"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			groups, runnerParams, err := expandInputs(cmd)
			if err != nil {
				return fmt.Errorf("expanding parameters: %w", err)
			}

			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			experiment, err := st.GetExperiment(cmd.String("experiment"))
			if err != nil {
				return err
			}

			storagePath := cmd.String("storage-path")
			if storagePath == "" {
				storagePath = filepath.Join("results", experiment.Name,
					fmt.Sprintf("run_%d", st.NextRunID()))
			}

			run := &store.Run{
				ExperimentID: experiment.ID,
				StoragePath:  storagePath,
				Description:  cmd.String("description"),
				Tags:         cmd.StringSlice("tag"),
				Runner:       "local",
				RunnerParams: runnerParams,
				Groups:       groups,
			}
			runID, err := st.CreateRun(run)
			if err != nil {
				return fmt.Errorf("recording run: %w", err)
			}

			threads, err := resolveThreads(cmd.Int("n-threads"), runnerParams)
			if err != nil {
				return err
			}

			slog.Info("created run",
				"run", runID,
				"experiment", experiment.Name,
				"groups", len(groups),
				"storage", storagePath,
				"threads", threads)

			return runner.NewLocal(st, threads).Launch(ctx, experiment, run)
		},
	}
}

// resolveThreads applies an --n_threads runner parameter from the fixed
// argument stream over the flag value.
func resolveThreads(flagValue int, runnerParams params.Mapping) (int, error) {
	value, ok := runnerParams[nThreadsOption]
	if !ok {
		return flagValue, nil
	}
	threads, err := strconv.Atoi(value.First())
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", nThreadsOption, value.First(), err)
	}
	if threads < 1 {
		return 0, fmt.Errorf("invalid %s value %d: must be at least 1", nThreadsOption, threads)
	}
	return threads, nil
}
