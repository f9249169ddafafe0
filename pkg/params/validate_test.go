package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{
			name: "fixed only",
			src: `
fixed_args:
  options:
    --mode: fast
`,
		},
		{
			name:    "empty document",
			src:     `{}`,
			wantErr: true,
		},
		{
			name: "fixed args present but empty",
			src: `
fixed_args:
  options: {}
`,
			wantErr: true,
		},
		{
			name: "empty leaf value",
			src: `
fixed_args:
  options:
    --mode:
`,
			wantErr: true,
		},
		{
			name: "empty group entry",
			src: `
fixed_args:
  options:
    --mode: fast
varying_args:
  groups:
    - {}
`,
			wantErr: true,
		},
		{
			name: "positional collision between fixed and group",
			src: `
fixed_args:
  positional:
    0: input.dat
varying_args:
  groups:
    - positional:
        0: other.dat
`,
			wantErr: true,
		},
		{
			name: "positional collision between fixed and range",
			src: `
fixed_args:
  positional:
    1: input.dat
varying_args:
  range:
    positional:
      1: [0, 5, 1]
`,
			wantErr: true,
		},
		{
			name: "negative positional slot",
			src: `
fixed_args:
  positional:
    -1: input.dat
`,
			wantErr: true,
		},
		{
			name: "option collision between fixed and range",
			src: `
fixed_args:
  options:
    --alpha: 1
varying_args:
  range:
    options:
      --alpha: [0, 1, 0.5]
`,
			wantErr: true,
		},
		{
			name: "option collision between group and range",
			src: `
varying_args:
  groups:
    - options:
        --alpha: 1
  range:
    options:
      --alpha: [0, 1, 0.5]
`,
			wantErr: true,
		},
		{
			name: "option without prefix",
			src: `
fixed_args:
  options:
    alpha: 1
`,
			wantErr: true,
		},
		{
			name: "zero range step",
			src: `
varying_args:
  range:
    options:
      --alpha: [0, 1, 0]
`,
			wantErr: true,
		},
		{
			name: "disjoint groups may reuse keys across groups",
			src: `
fixed_args:
  positional:
    0: input.dat
varying_args:
  groups:
    - positional:
        1: a.dat
    - positional:
        1: b.dat
`,
		},
		{
			name: "empty groups list treated as absent",
			src: `
fixed_args:
  options:
    --mode: fast
varying_args:
  groups: []
`,
		},
		{
			name: "varying only",
			src: `
varying_args:
  range:
    options:
      --alpha: [0, 1, 0.5]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustParse(t, tt.src).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidDocument", err)
			}
		})
	}
}
