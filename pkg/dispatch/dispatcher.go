package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gridrun/gridrun/pkg/store"
)

// ErrGroupOutOfRange is returned when a requested group number does not
// exist among a run's stored parameter groups.
var ErrGroupOutOfRange = errors.New("group number out of range")

// StoragePathOption is the option appended to every assembled command so
// the child process knows where its run (or group) directory lives.
const StoragePathOption = "--storage_path"

// Request identifies one action execution: which run, which action of which
// experiment, and optionally which parameter group of the run.
type Request struct {
	RunID          int
	ActionName     string
	ExperimentName string

	// GroupNumber selects one of the run's stored parameter groups. When
	// nil, the action runs against the run as a whole: no group arguments
	// are passed and the storage path is the run's own directory.
	GroupNumber *int
}

// Dispatcher resolves an action against a run and executes it as a child
// process. It performs exactly one blocking execution per Dispatch call and
// never retries; running several groups concurrently is the caller's
// business, one Dispatch per group.
type Dispatcher struct {
	Store store.Store
	Exec  Execer
}

// New returns a Dispatcher over the given store using the os/exec executor.
func New(s store.Store) *Dispatcher {
	return &Dispatcher{Store: s, Exec: NewExecer()}
}

// Dispatch resolves the request, assembles the child command line, executes
// it synchronously, and returns the child's exit code.
//
// The assembled argv is [executable_command, executable], then the command
// assembler output for the selected group (empty when no group is given),
// then ["--storage_path", <resolved path>]. The resolved path is
// <run_storage_path>/group_<n> when a group number is given, the run
// storage path otherwise.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (int, error) {
	start := time.Now()
	defer func() {
		dispatchDuration.Observe(time.Since(start).Seconds())
	}()

	actionID, err := d.Store.FindActionID(req.ActionName, req.ExperimentName)
	if err != nil {
		dispatchFailures.Inc()
		return 0, err
	}
	action, err := d.Store.GetAction(actionID)
	if err != nil {
		dispatchFailures.Inc()
		return 0, err
	}
	experiment, err := d.Store.GetExperimentOfRun(req.RunID)
	if err != nil {
		dispatchFailures.Inc()
		return 0, err
	}
	run, err := d.Store.GetRun(req.RunID)
	if err != nil {
		dispatchFailures.Inc()
		return 0, err
	}
	groups, err := d.Store.GetParameterGroups(req.RunID)
	if err != nil {
		dispatchFailures.Inc()
		return 0, err
	}

	storagePath := run.StoragePath
	var groupArgs []string
	if req.GroupNumber != nil {
		n := *req.GroupNumber
		if n < 0 || n >= len(groups) {
			dispatchFailures.Inc()
			return 0, fmt.Errorf("run %d has %d stored groups, group %d: %w",
				req.RunID, len(groups), n, ErrGroupOutOfRange)
		}
		groupArgs = groups[n].CommandArgs()
		storagePath = filepath.Join(run.StoragePath, fmt.Sprintf("group_%d", n))
	}

	argv := make([]string, 0, 2+len(groupArgs)+2)
	argv = append(argv, action.ExecutableCommand, action.Executable)
	argv = append(argv, groupArgs...)
	argv = append(argv, StoragePathOption, storagePath)

	slog.Info("executing action",
		"action", action.Name,
		"run", req.RunID,
		"experiment", experiment.Name,
		"command", strings.Join(argv, " "))

	code, err := d.Exec.Run(ctx, "", argv, os.Stdout, os.Stderr)
	if err != nil {
		dispatchFailures.Inc()
		return code, fmt.Errorf("action %q failed to execute: %w", action.Name, err)
	}
	if code != 0 {
		slog.Warn("action exited with nonzero status", "action", action.Name, "code", code)
	}
	return code, nil
}
