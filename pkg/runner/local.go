package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gridrun/gridrun/pkg/dispatch"
	"github.com/gridrun/gridrun/pkg/params"
	"github.com/gridrun/gridrun/pkg/store"
)

// InfoFileName is the run manifest written at the root of a run's storage
// directory.
const InfoFileName = "info.yaml"

// GroupInfoFileName is the per-group manifest written into each group
// directory.
const GroupInfoFileName = "group_info.yaml"

// Local launches every group of a run as a child process on the local
// machine, at most Threads at a time. Each group's stdout and stderr are
// captured into files in its directory.
type Local struct {
	Exec    dispatch.Execer
	Store   store.Store
	Threads int

	// WorkDir is the working directory for the child processes. Empty
	// means the current directory.
	WorkDir string
}

// NewLocal returns a Local runner over the given store with the os/exec
// executor.
func NewLocal(s store.Store, threads int) *Local {
	return &Local{Exec: dispatch.NewExecer(), Store: s, Threads: threads}
}

// runInfo is the manifest shape of info.yaml.
type runInfo struct {
	RunID             int              `yaml:"run_id"`
	ExperimentID      int              `yaml:"experiment_id"`
	InvocationID      string           `yaml:"invocation_id"`
	ExecutableCommand string           `yaml:"executable_command"`
	Executable        string           `yaml:"executable"`
	StoragePath       string           `yaml:"storage_path"`
	WorkingDirectory  string           `yaml:"working_directory"`
	Commands          []string         `yaml:"commands"`
	Groups            []params.Mapping `yaml:"groups_of_parameters"`
	Directories       []string         `yaml:"directories"`
	StartTime         time.Time        `yaml:"start_time,omitempty"`
	EndTime           time.Time        `yaml:"end_time,omitempty"`
	Status            []string         `yaml:"status"`
}

// groupInfo is the manifest shape of group_info.yaml.
type groupInfo struct {
	Command    string         `yaml:"command"`
	Parameters params.Mapping `yaml:"parameters"`
}

// Launch prepares the run's directory structure and executes every group.
// A single-group run executes directly in the run's storage directory;
// multi-group runs get one group_<n> directory per group. Launch blocks
// until every group has exited. A group that exits nonzero marks the run
// as errored but does not stop the other groups.
func (l *Local) Launch(ctx context.Context, experiment *store.Experiment, run *store.Run) error {
	groups := run.Groups
	if len(groups) == 0 {
		slog.Warn("run has no parameter groups, nothing to launch", "run", run.ID)
		return nil
	}

	dirs, err := groupDirectories(run.StoragePath, len(groups))
	if err != nil {
		return err
	}

	commands := make([][]string, len(groups))
	for i, group := range groups {
		argv := []string{experiment.ExecutableCommand, experiment.Executable}
		argv = append(argv, group.CommandArgs()...)
		argv = append(argv, dispatch.StoragePathOption, dirs[i])
		commands[i] = argv
	}

	workDir := l.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
	}

	info := runInfo{
		RunID:             run.ID,
		ExperimentID:      experiment.ID,
		InvocationID:      uuid.New().String(),
		ExecutableCommand: experiment.ExecutableCommand,
		Executable:        experiment.Executable,
		StoragePath:       run.StoragePath,
		WorkingDirectory:  workDir,
		Commands:          joinCommands(commands),
		Groups:            groups,
		Directories:       dirs,
		StartTime:         time.Now().UTC(),
		Status:            fill(len(groups), store.StatusNotStarted),
	}
	if err := writeYAML(filepath.Join(run.StoragePath, InfoFileName), &info); err != nil {
		return err
	}
	for i, dir := range dirs {
		gi := groupInfo{Command: strings.Join(commands[i], " "), Parameters: groups[i]}
		if err := writeYAML(filepath.Join(dir, GroupInfoFileName), &gi); err != nil {
			return err
		}
	}

	if err := l.Store.UpdateRunStatus(run.ID, store.StatusRunning); err != nil {
		return err
	}
	slog.Info("launching run",
		"run", run.ID,
		"experiment", experiment.Name,
		"groups", len(groups),
		"threads", l.threads())

	var mu sync.Mutex
	status := fill(len(groups), store.StatusRunning)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.threads())
	for i := range groups {
		g.Go(func() error {
			start := time.Now()
			defer func() {
				groupDuration.Observe(time.Since(start).Seconds())
			}()

			code, execErr := l.runGroup(gctx, workDir, dirs[i], commands[i])
			mu.Lock()
			switch {
			case execErr != nil || code != 0:
				status[i] = store.StatusError
				groupFailures.Inc()
			default:
				status[i] = store.StatusFinished
			}
			mu.Unlock()
			if execErr != nil {
				slog.Error("group execution failed", "run", run.ID, "group", i, "error", execErr)
			} else if code != 0 {
				slog.Warn("group exited with nonzero status", "run", run.ID, "group", i, "code", code)
			}
			// Execution errors are recorded per group rather than
			// returned, so one broken group does not cancel the rest.
			return nil
		})
	}
	_ = g.Wait()

	info.EndTime = time.Now().UTC()
	info.Status = status
	if err := writeYAML(filepath.Join(run.StoragePath, InfoFileName), &info); err != nil {
		return err
	}

	final := store.StatusFinished
	for _, st := range status {
		if st == store.StatusError {
			final = store.StatusError
			break
		}
	}
	if err := l.Store.UpdateRunStatus(run.ID, final); err != nil {
		return err
	}
	slog.Info("run complete", "run", run.ID, "status", final)
	if final == store.StatusError {
		return fmt.Errorf("run %d: one or more groups exited with errors", run.ID)
	}
	return nil
}

// runGroup executes one group command with stdout/stderr captured into the
// group directory.
func (l *Local) runGroup(ctx context.Context, workDir, dir string, argv []string) (int, error) {
	stdout, err := os.Create(filepath.Join(dir, "stdout.txt"))
	if err != nil {
		return -1, fmt.Errorf("creating stdout capture: %w", err)
	}
	defer stdout.Close()
	stderr, err := os.Create(filepath.Join(dir, "stderr.txt"))
	if err != nil {
		return -1, fmt.Errorf("creating stderr capture: %w", err)
	}
	defer stderr.Close()

	slog.Info("running group command", "command", strings.Join(argv, " "))
	return l.Exec.Run(ctx, workDir, argv, stdout, stderr)
}

func (l *Local) threads() int {
	if l.Threads < 1 {
		return 1
	}
	return l.Threads
}

// groupDirectories creates and returns the storage directory per group: the
// run directory itself for a single group, group_<n> subdirectories
// otherwise.
func groupDirectories(storagePath string, n int) ([]string, error) {
	if n == 1 {
		if err := os.MkdirAll(storagePath, 0o755); err != nil {
			return nil, fmt.Errorf("creating run directory: %w", err)
		}
		return []string{storagePath}, nil
	}
	dirs := make([]string, n)
	for i := range dirs {
		dirs[i] = filepath.Join(storagePath, fmt.Sprintf("group_%d", i))
		if err := os.MkdirAll(dirs[i], 0o755); err != nil {
			return nil, fmt.Errorf("creating group directory: %w", err)
		}
	}
	return dirs, nil
}

func joinCommands(commands [][]string) []string {
	out := make([]string, len(commands))
	for i, c := range commands {
		out[i] = strings.Join(c, " ")
	}
	return out
}

func fill(n int, value string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
