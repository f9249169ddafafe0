// Package cli implements the command-line interface for the gridrun tool.
//
// # Overview
//
// gridrun expands compact parameter declarations into concrete command
// lines and launches them as experiment runs. It is aimed at anyone
// sweeping a simulation or training script over a parameter space:
// declare the fixed arguments once, the varying ones as explicit groups
// or numeric ranges, and get one recorded child process per combination.
//
// # Commands
//
// plan - preview an expansion:
//
//	gridrun plan --param-file params.yaml [--format yaml|json|table]
//
// Expands the declared parameters and prints one entry per group without
// touching the state file or executing anything.
//
// run - expand and launch:
//
//	gridrun run -e qpsk -r "--snr 0 30 5" --n-threads 4 -- input.dat
//
// Records a new run in the state file and executes every group locally,
// bounded by --n-threads, capturing each group's output into its storage
// directory.
//
// action - apply a registered action to a run:
//
//	gridrun action -e qpsk --run-id 7 -a plot [--group-number 1]
//
// Executes one of the experiment's auxiliary executables against a
// recorded run or one of its parameter groups.
//
// # Global Flags
//
//	--log-level   Logging verbosity: debug, info, warn, error
//	--log-file    Write logs to a rotated file instead of stderr
//	--state       Path to the project state file (.gridrun/state.yaml)
//
// Each has a GRIDRUN_* environment variable equivalent.
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/params - parameter model, tokenization, and expansion
//   - pkg/store - experiment and run persistence
//   - pkg/runner - local process launching
//   - pkg/dispatch - action resolution and execution
//   - pkg/serializer - output formatting
//   - pkg/logging - structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/gridrun/gridrun/pkg/cli.version=1.0.0'"
package cli
