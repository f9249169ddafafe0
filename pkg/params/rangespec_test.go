package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeSpecValues(t *testing.T) {
	tests := []struct {
		name string
		spec RangeSpec
		want []string
	}{
		{
			name: "simple half open",
			spec: RangeSpec{Key: "--alpha", Start: 0, Stop: 1, Step: 0.5},
			want: []string{"0.0", "0.5"},
		},
		{
			name: "integral steps",
			spec: RangeSpec{Key: "--n", Start: 1, Stop: 4, Step: 1},
			want: []string{"1.0", "2.0", "3.0"},
		},
		{
			name: "stop excluded",
			spec: RangeSpec{Key: "--n", Start: 0, Stop: 2, Step: 1},
			want: []string{"0.0", "1.0"},
		},
		{
			name: "start equals stop",
			spec: RangeSpec{Key: "--n", Start: 2, Stop: 2, Step: 1},
			want: nil,
		},
		{
			name: "start past stop",
			spec: RangeSpec{Key: "--n", Start: 5, Stop: 2, Step: 1},
			want: nil,
		},
		{
			name: "negative step yields nothing",
			spec: RangeSpec{Key: "--n", Start: 0, Stop: 5, Step: -1},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.spec.Values())
			require.Equal(t, len(tt.want), tt.spec.Count())
		})
	}
}

func TestRangeSpecCountMatchesCeil(t *testing.T) {
	// For step > 0 and start < stop the value count is ceil((stop-start)/step).
	specs := []RangeSpec{
		{Start: 0, Stop: 1, Step: 0.5},
		{Start: 0, Stop: 1, Step: 0.3},
		{Start: 2, Stop: 10, Step: 3},
		{Start: -1, Stop: 1, Step: 0.25},
	}
	for _, spec := range specs {
		want := int(math.Ceil((spec.Stop - spec.Start) / spec.Step))
		require.Equal(t, want, spec.Count(), "spec %+v", spec)
	}
}

func TestParseRangeString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RangeSpec
		wantErr bool
	}{
		{
			name:  "valid",
			input: "--alpha 0 1 0.5",
			want:  RangeSpec{Key: "--alpha", Start: 0, Stop: 1, Step: 0.5},
		},
		{
			name:  "surrounding whitespace",
			input: "  --beta 1 10 2  ",
			want:  RangeSpec{Key: "--beta", Start: 1, Stop: 10, Step: 2},
		},
		{
			name:    "three tokens rejected",
			input:   "--alpha 0 1",
			wantErr: true,
		},
		{
			name:    "five tokens rejected",
			input:   "--alpha 0 1 0.5 9",
			wantErr: true,
		},
		{
			name:    "positional name rejected",
			input:   "alpha 0 1 0.5",
			wantErr: true,
		},
		{
			name:    "non numeric bound rejected",
			input:   "--alpha 0 one 0.5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRangeString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRangeString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRangeString() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExpandRangesProduct(t *testing.T) {
	specs := []RangeSpec{
		{Key: "--a", Start: 0, Stop: 2, Step: 1},   // 2 values
		{Key: "--b", Start: 0, Stop: 1.5, Step: 0.5}, // 3 values
	}
	got := expandRanges(specs)
	require.Len(t, got, 6)
	for _, m := range got {
		require.Contains(t, m, "--a")
		require.Contains(t, m, "--b")
	}
	// New key's values run in the outer loop: the first partials appear
	// in order under each value of --b.
	require.Equal(t, "0.0", got[0]["--b"].First())
	require.Equal(t, "0.0", got[0]["--a"].First())
	require.Equal(t, "0.0", got[1]["--b"].First())
	require.Equal(t, "1.0", got[1]["--a"].First())
	require.Equal(t, "0.5", got[2]["--b"].First())
}

func TestExpandRangesEmptyRangeEmptiesProduct(t *testing.T) {
	specs := []RangeSpec{
		{Key: "--a", Start: 5, Stop: 2, Step: 1}, // empty
		{Key: "--b", Start: 0, Stop: 3, Step: 1},
	}
	require.Empty(t, expandRanges(specs))

	specs = []RangeSpec{
		{Key: "--a", Start: 0, Stop: 3, Step: 1},
		{Key: "--b", Start: 5, Stop: 2, Step: 1}, // empty
	}
	require.Empty(t, expandRanges(specs))
}
