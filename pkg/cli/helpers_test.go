package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/gridrun/gridrun/pkg/params"
	"github.com/gridrun/gridrun/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{
			name:       "valid yaml format",
			format:     "yaml",
			wantFormat: serializer.FormatYAML,
			wantErr:    false,
		},
		{
			name:       "valid json format",
			format:     "json",
			wantFormat: serializer.FormatJSON,
			wantErr:    false,
		},
		{
			name:       "valid table format",
			format:     "table",
			wantFormat: serializer.FormatTable,
			wantErr:    false,
		},
		{
			name:       "invalid format xml",
			format:     "xml",
			wantFormat: "",
			wantErr:    true,
		},
		{
			name:       "invalid format csv",
			format:     "csv",
			wantFormat: "",
			wantErr:    true,
		},
		{
			name:       "empty format",
			format:     "",
			wantFormat: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a minimal CLI command with the format flag
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			// Run the command with the test format
			err := cmd.Run(context.Background(), []string{"test"})
			if err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

// expandWith runs expandInputs against a minimal command carrying the
// expansion flags.
func expandWith(t *testing.T, args []string) ([]params.Mapping, params.Mapping, error) {
	t.Helper()
	var (
		groups       []params.Mapping
		runnerParams params.Mapping
		expandErr    error
	)
	cmd := &cli.Command{
		Flags: []cli.Flag{paramFileFlag(), groupFlag(), rangeFlag()},
		Action: func(_ context.Context, c *cli.Command) error {
			groups, runnerParams, expandErr = expandInputs(c)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
		t.Fatalf("failed to run command: %v", err)
	}
	return groups, runnerParams, expandErr
}

func TestExpandInputsGroupsAndFixed(t *testing.T) {
	groups, _, err := expandWith(t, []string{
		"--group=--alpha 0.1", "--group=--alpha 0.2", "--", "input.dat",
	})
	if err != nil {
		t.Fatalf("expandInputs() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expandInputs() produced %d groups, want 2", len(groups))
	}
	for i, alpha := range []string{"0.1", "0.2"} {
		if got := groups[i]["pos_0"].First(); got != "input.dat" {
			t.Errorf("group %d pos_0 = %q, want %q", i, got, "input.dat")
		}
		if got := groups[i]["--alpha"].First(); got != alpha {
			t.Errorf("group %d --alpha = %q, want %q", i, got, alpha)
		}
	}
}

func TestExpandInputsStripsRunnerParams(t *testing.T) {
	groups, runnerParams, err := expandWith(t, []string{
		"--", "input.dat", "--n_threads", "4",
	})
	if err != nil {
		t.Fatalf("expandInputs() error = %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expandInputs() produced %d groups, want 1", len(groups))
	}
	if _, ok := groups[0]["--n_threads"]; ok {
		t.Error("runner parameter leaked into the expanded group")
	}
	if got := runnerParams["--n_threads"].First(); got != "4" {
		t.Errorf("runner param --n_threads = %q, want %q", got, "4")
	}
}

func TestExpandInputsParamFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	doc := `fixed_args:
  options:
    --mode: fast
varying_args:
  groups:
    - options:
        --alpha: "0.1"
    - options:
        --alpha: "0.2"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	groups, _, err := expandWith(t, []string{"--param-file", path})
	if err != nil {
		t.Fatalf("expandInputs() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expandInputs() produced %d groups, want 2", len(groups))
	}
	if got := groups[0]["--mode"].First(); got != "fast" {
		t.Errorf("group 0 --mode = %q, want %q", got, "fast")
	}
}

func TestExpandInputsParamFileExclusive(t *testing.T) {
	_, _, err := expandWith(t, []string{
		"--param-file", "params.yaml", "--group=--alpha 0.1",
	})
	if err == nil {
		t.Fatal("expandInputs() accepted --param-file combined with --group")
	}
}
