package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gridrun/gridrun/pkg/logging"
	"github.com/gridrun/gridrun/pkg/params"
	"github.com/gridrun/gridrun/pkg/serializer"
	"github.com/gridrun/gridrun/pkg/store"
)

// Flag constructors shared across commands. Each command gets its own flag
// instances; v3 flags carry parse state, so they must not be shared between
// command trees.
func logLevelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars("GRIDRUN_LOG_LEVEL", logging.EnvLogLevel),
	}
}

func logFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "log-file",
		Usage:   "write logs to this file (rotated) instead of stderr",
		Sources: cli.EnvVars("GRIDRUN_LOG_FILE"),
	}
}

func stateFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "state",
		Usage:   "path to the project state file",
		Value:   store.DefaultStatePath,
		Sources: cli.EnvVars("GRIDRUN_STATE"),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatYAML),
	}
}

func paramFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "param-file",
		Aliases: []string{"f"},
		Usage:   "YAML parameter file declaring fixed and varying arguments",
	}
}

func groupFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "one parameter group as a quoted argument string (can be repeated)",
	}
}

func rangeFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "range",
		Aliases: []string{"r"},
		Usage:   `numeric range "--name start stop step", half-open (can be repeated)`,
	}
}

// parseOutputFormat validates the --format flag value.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported values: %s)",
			format, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return format, nil
}

// expandInputs resolves a command's parameter inputs into expanded groups.
// A parameter file and command-line parameters are mutually exclusive:
// the file declares everything, including fixed arguments. On the
// command-line path, trailing arguments are the fixed stream and runner
// options are stripped out of it into the returned runner parameters.
func expandInputs(cmd *cli.Command) ([]params.Mapping, params.Mapping, error) {
	paramFile := cmd.String("param-file")
	fixed := cmd.Args().Slice()
	groups := cmd.StringSlice("group")
	ranges := cmd.StringSlice("range")

	if paramFile != "" {
		if len(fixed) > 0 || len(groups) > 0 || len(ranges) > 0 {
			return nil, nil, fmt.Errorf("--param-file cannot be combined with --group, --range, or trailing arguments")
		}
		doc, err := params.LoadDocument(paramFile)
		if err != nil {
			return nil, nil, err
		}
		expanded, err := params.Expand(doc)
		if err != nil {
			return nil, nil, err
		}
		return expanded, params.Mapping{}, nil
	}

	return params.ExpandCLI(fixed, groups, ranges)
}
