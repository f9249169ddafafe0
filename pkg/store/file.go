package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gridrun/gridrun/pkg/params"
)

// DefaultStatePath is where a project keeps its state file.
const DefaultStatePath = ".gridrun/state.yaml"

// state is the on-disk document shape.
type state struct {
	Experiments []Experiment `yaml:"experiments"`
	Runs        []Run        `yaml:"runs"`
}

// FileStore is a Store backed by a single YAML state file. The file is read
// once at Open; all lookups are served from that snapshot. Writes update the
// snapshot and rewrite the file under a lock.
type FileStore struct {
	path string

	mu    sync.Mutex
	state state
}

// Open loads the state file at path. A missing file is an error: the caller
// is expected to be inside an initialized project.
func Open(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no state file at %s: not a gridrun project (or point --state at one)", path)
		}
		return nil, fmt.Errorf("reading state file %s: %w", path, err)
	}
	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	return &FileStore{path: path, state: st}, nil
}

// GetExperiment resolves an experiment by name.
func (s *FileStore) GetExperiment(name string) (*Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Experiments {
		if s.state.Experiments[i].Name == name {
			exp := s.state.Experiments[i]
			return &exp, nil
		}
	}
	return nil, fmt.Errorf("experiment %q: %w", name, ErrNotFound)
}

// FindActionID resolves an action by name within an experiment.
func (s *FileStore) FindActionID(actionName, experimentName string) (int, error) {
	exp, err := s.GetExperiment(experimentName)
	if err != nil {
		return 0, err
	}
	for _, action := range exp.Actions {
		if action.Name == actionName {
			return action.ID, nil
		}
	}
	return 0, fmt.Errorf("action %q of experiment %q: %w", actionName, experimentName, ErrNotFound)
}

// GetAction fetches an action by id across all experiments.
func (s *FileStore) GetAction(id int) (*Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Experiments {
		for _, action := range s.state.Experiments[i].Actions {
			if action.ID == id {
				a := action
				return &a, nil
			}
		}
	}
	return nil, fmt.Errorf("action %d: %w", id, ErrNotFound)
}

// GetExperimentOfRun fetches the experiment owning a run.
func (s *FileStore) GetExperimentOfRun(runID int) (*Experiment, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Experiments {
		if s.state.Experiments[i].ID == run.ExperimentID {
			exp := s.state.Experiments[i]
			return &exp, nil
		}
	}
	return nil, fmt.Errorf("experiment of run %d: %w", runID, ErrNotFound)
}

// GetRun fetches a run by id.
func (s *FileStore) GetRun(runID int) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Runs {
		if s.state.Runs[i].ID == runID {
			run := s.state.Runs[i]
			return &run, nil
		}
	}
	return nil, fmt.Errorf("run %d: %w", runID, ErrNotFound)
}

// GetParameterGroups fetches the stored parameter groups of a run in
// expansion order.
func (s *FileStore) GetParameterGroups(runID int) ([]params.Mapping, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}
	return run.Groups, nil
}

// NextRunID returns the id the next created run will receive.
func (s *FileStore) NextRunID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunIDLocked()
}

func (s *FileStore) nextRunIDLocked() int {
	maxID := 0
	for i := range s.state.Runs {
		if s.state.Runs[i].ID > maxID {
			maxID = s.state.Runs[i].ID
		}
	}
	return maxID + 1
}

// CreateRun registers a new run, assigning its id and token, and persists
// the state file.
func (s *FileStore) CreateRun(run *Run) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run.ID = s.nextRunIDLocked()
	if run.Token == "" {
		run.Token = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = StatusNotStarted
	}
	s.state.Runs = append(s.state.Runs, *run)
	if err := s.saveLocked(); err != nil {
		return 0, err
	}
	return run.ID, nil
}

// UpdateRunStatus records a run status transition and persists it.
func (s *FileStore) UpdateRunStatus(runID int, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Runs {
		if s.state.Runs[i].ID == runID {
			s.state.Runs[i].Status = status
			return s.saveLocked()
		}
	}
	return fmt.Errorf("run %d: %w", runID, ErrNotFound)
}

func (s *FileStore) saveLocked() error {
	data, err := yaml.Marshal(&s.state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing state file %s: %w", s.path, err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
