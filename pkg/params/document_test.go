package params

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`
fixed_args:
  positional:
    0: input.dat
  options:
    --mode: fast
varying_args:
  groups:
    - options:
        --alpha: 0.5
    - options:
        --alpha: 1
  range:
    positional:
      1: [0, 10, 5]
    options:
      --beta: [0, 1, 0.5]
`))
	require.NoError(t, err)

	require.NotNil(t, doc.FixedArgs)
	require.Equal(t, leaf("input.dat"), doc.FixedArgs.Positional[0])
	require.Equal(t, leaf("fast"), doc.FixedArgs.Options["--mode"])

	require.NotNil(t, doc.VaryingArgs)
	require.Len(t, doc.VaryingArgs.Groups, 2)
	// Scalars keep the rendering of the source document.
	require.Equal(t, leaf("0.5"), doc.VaryingArgs.Groups[0].Options["--alpha"])
	require.Equal(t, leaf("1"), doc.VaryingArgs.Groups[1].Options["--alpha"])

	specs := doc.VaryingArgs.Range.Specs()
	require.Equal(t, []RangeSpec{
		{Key: "pos_1", Start: 0, Stop: 10, Step: 5},
		{Key: "--beta", Start: 0, Stop: 1, Step: 0.5},
	}, specs)
}

func TestParseDocumentRangeOrderPreserved(t *testing.T) {
	doc, err := ParseDocument([]byte(`
varying_args:
  range:
    options:
      --gamma: [0, 1, 1]
      --alpha: [0, 1, 1]
      --beta: [0, 1, 1]
`))
	require.NoError(t, err)

	var keys []string
	for _, spec := range doc.VaryingArgs.Range.Specs() {
		keys = append(keys, spec.Key)
	}
	require.Equal(t, []string{"--gamma", "--alpha", "--beta"}, keys)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "range triple too short",
			src: `
varying_args:
  range:
    options:
      --alpha: [0, 1]
`,
		},
		{
			name: "range triple not numeric",
			src: `
varying_args:
  range:
    options:
      --alpha: [0, one, 0.5]
`,
		},
		{
			name: "non integer positional key",
			src: `
fixed_args:
  positional:
    first: input.dat
`,
		},
		{
			name: "unknown range section",
			src: `
varying_args:
  range:
    flags:
      --alpha: [0, 1, 0.5]
`,
		},
		{
			name: "positional range key not integer",
			src: `
varying_args:
  range:
    positional:
      one: [0, 1, 0.5]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.src))
			require.Error(t, err)
		})
	}
}
