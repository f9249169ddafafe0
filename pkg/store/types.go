package store

import (
	"errors"

	"github.com/gridrun/gridrun/pkg/params"
)

// ErrNotFound is returned when a lookup does not match any record.
var ErrNotFound = errors.New("not found")

// Experiment is one registered experiment: the executable it wraps and the
// actions that can be applied to its runs.
type Experiment struct {
	ID                int      `yaml:"id"`
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description,omitempty"`
	Path              string   `yaml:"path,omitempty"`
	ExecutableCommand string   `yaml:"executable_command"`
	Executable        string   `yaml:"executable"`
	Tags              []string `yaml:"tags,omitempty"`
	Actions           []Action `yaml:"actions,omitempty"`
}

// Action is an auxiliary executable attached to an experiment, applied to a
// finished or running run (plotting, evaluation, cleanup).
type Action struct {
	ID                int    `yaml:"id"`
	Name              string `yaml:"name"`
	Description       string `yaml:"description,omitempty"`
	ExecutableCommand string `yaml:"executable_command"`
	Executable        string `yaml:"executable"`
}

// Run is one recorded run of an experiment together with the parameter
// groups it was expanded into. Groups keep the expansion order; group n of
// the run lives in storage under group_<n>.
type Run struct {
	ID           int              `yaml:"id"`
	ExperimentID int              `yaml:"experiment_id"`
	Token        string           `yaml:"token,omitempty"`
	StoragePath  string           `yaml:"storage_path"`
	Description  string           `yaml:"description,omitempty"`
	Tags         []string         `yaml:"tags,omitempty"`
	Runner       string           `yaml:"runner,omitempty"`
	Status       string           `yaml:"status,omitempty"`
	RunnerParams params.Mapping   `yaml:"runner_params,omitempty"`
	Groups       []params.Mapping `yaml:"groups"`
}

// Run status values.
const (
	StatusNotStarted = "not_started"
	StatusRunning    = "running"
	StatusFinished   = "finished"
	StatusError      = "error"
	StatusCancelled  = "cancelled"
)

// Store is the narrow persistence surface the expansion and dispatch layers
// consume. Implementations must serve the read lookups from one consistent
// snapshot per open, so a run's group count cannot change between fetch and
// dispatch within an invocation.
type Store interface {
	// GetExperiment resolves an experiment by name.
	GetExperiment(name string) (*Experiment, error)

	// FindActionID resolves an action by name within an experiment.
	FindActionID(actionName, experimentName string) (int, error)

	// GetAction fetches an action by id.
	GetAction(id int) (*Action, error)

	// GetExperimentOfRun fetches the experiment owning a run.
	GetExperimentOfRun(runID int) (*Experiment, error)

	// GetRun fetches a run by id.
	GetRun(runID int) (*Run, error)

	// GetParameterGroups fetches the stored parameter groups of a run in
	// expansion order.
	GetParameterGroups(runID int) ([]params.Mapping, error)

	// CreateRun registers a new run and returns its id.
	CreateRun(run *Run) (int, error)

	// UpdateRunStatus records a run status transition.
	UpdateRunStatus(runID int, status string) error
}
