package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v3"

	"github.com/gridrun/gridrun/pkg/params"
	"github.com/gridrun/gridrun/pkg/serializer"
)

// Plan is the preview of an expansion: one entry per parameter group, in
// the order a run would execute them.
type Plan struct {
	RunnerParams params.Mapping `json:"runner_params,omitempty" yaml:"runner_params,omitempty"`
	Groups       []PlanGroup    `json:"groups" yaml:"groups"`
}

// PlanGroup is one expanded parameter group and the argument string it
// contributes to the command line.
type PlanGroup struct {
	Number     int            `json:"number" yaml:"number"`
	Parameters params.Mapping `json:"parameters" yaml:"parameters"`
	Args       string         `json:"args" yaml:"args"`
}

// TableHeader implements serializer.Tabler.
func (p *Plan) TableHeader() []string {
	return []string{"GROUP", "ARGS"}
}

// TableRows implements serializer.Tabler.
func (p *Plan) TableRows() [][]string {
	rows := make([][]string, len(p.Groups))
	for i, g := range p.Groups {
		rows[i] = []string{strconv.Itoa(g.Number), g.Args}
	}
	return rows
}

// buildPlan assembles the preview for a set of expanded groups.
func buildPlan(groups []params.Mapping, runnerParams params.Mapping) *Plan {
	p := &Plan{Groups: make([]PlanGroup, len(groups))}
	if len(runnerParams) > 0 {
		p.RunnerParams = runnerParams
	}
	for i, g := range groups {
		p.Groups[i] = PlanGroup{
			Number:     i,
			Parameters: g,
			Args:       shellquote.Join(g.CommandArgs()...),
		}
	}
	return p
}

func planCmd() *cli.Command {
	return &cli.Command{
		Name:                  "plan",
		EnableShellCompletion: true,
		Usage:                 "Preview the parameter groups an expansion produces",
		ArgsUsage:             "[fixed arguments...]",
		Description: `Expand parameter declarations and print the resulting groups without
touching the state file or executing anything.

Parameters come from a YAML parameter file or from the command line;
the two are mutually exclusive. On the command line, trailing arguments
are fixed arguments shared by every group, each --group flag adds one
explicit group, and each --range flag multiplies the result by one
numeric range.

# Examples

Preview a parameter file:
  gridrun plan --param-file params.yaml

Two explicit groups over a shared positional argument:
  gridrun plan -g "--alpha 0.1" -g "--alpha 0.2" -- input.dat

A range crossed with an explicit group, as a table:
  gridrun plan -g "--mode fast" -r "--alpha 0 1 0.5" --format table`,
		Flags: []cli.Flag{
			paramFileFlag(),
			groupFlag(),
			rangeFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			groups, runnerParams, err := expandInputs(cmd)
			if err != nil {
				return fmt.Errorf("expanding parameters: %w", err)
			}

			slog.Info("expansion complete", "groups", len(groups))

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()

			return ser.Serialize(buildPlan(groups, runnerParams))
		},
	}
}
