package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gridrun/gridrun/pkg/dispatch"
)

func actionCmd() *cli.Command {
	return &cli.Command{
		Name:                  "action",
		EnableShellCompletion: true,
		Usage:                 "Execute an experiment action against a recorded run",
		Description: `Execute one of an experiment's registered actions (plotting,
evaluation, cleanup) against a run recorded in the state file.

Without --group-number the action applies to the run as a whole: it
receives only --storage_path pointing at the run's directory. With
--group-number n it additionally receives group n's arguments, and the
storage path points at the group's group_<n> subdirectory. A group
number outside the run's stored groups fails before anything executes.

The action's exit code becomes the command's exit code.

# Examples

Plot the whole run:
  gridrun action -e qpsk --run-id 7 -a plot

Evaluate group 1 only:
  gridrun action -e qpsk --run-id 7 -a evaluate --group-number 1`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "experiment",
				Aliases:  []string{"e"},
				Required: true,
				Usage:    "name of the experiment owning the action",
			},
			&cli.IntFlag{
				Name:     "run-id",
				Required: true,
				Usage:    "id of the run to apply the action to",
			},
			&cli.StringFlag{
				Name:     "action",
				Aliases:  []string{"a"},
				Required: true,
				Usage:    "name of the action to execute",
			},
			&cli.IntFlag{
				Name:  "group-number",
				Usage: "apply the action to this parameter group of the run",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}

			req := dispatch.Request{
				RunID:          cmd.Int("run-id"),
				ActionName:     cmd.String("action"),
				ExperimentName: cmd.String("experiment"),
			}
			if cmd.IsSet("group-number") {
				n := cmd.Int("group-number")
				req.GroupNumber = &n
			}

			code, err := dispatch.New(st).Dispatch(ctx, req)
			if err != nil {
				return err
			}
			if code != 0 {
				return cli.Exit(fmt.Sprintf("action exited with status %d", code), code)
			}
			return nil
		},
	}
}
