package params

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeSpec describes one ranged parameter: the half-open numeric sequence
// start, start+step, start+2*step, ... < stop bound to a single key.
type RangeSpec struct {
	Key   string
	Start float64
	Stop  float64
	Step  float64
}

// Values renders the sequence. The sequence is empty when start >= stop;
// there is no wrapping and no error for that case. A non-positive step also
// yields an empty sequence rather than an unbounded one (the validator
// rejects zero steps before expansion is reached).
func (r RangeSpec) Values() []string {
	if r.Step <= 0 {
		return nil
	}
	var out []string
	for v := r.Start; v < r.Stop; v += r.Step {
		out = append(out, formatRangeValue(v))
	}
	return out
}

// Count returns the number of values the spec generates without rendering
// them.
func (r RangeSpec) Count() int {
	if r.Step <= 0 {
		return 0
	}
	n := 0
	for v := r.Start; v < r.Stop; v += r.Step {
		n++
	}
	return n
}

// formatRangeValue renders a range value as a float string: integral values
// carry a trailing ".0" ("0.0", "2.0") so fixed and ranged values of the
// same parameter stay visually distinct from integer literals.
func formatRangeValue(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ParseRangeString parses the CLI range form: exactly four whitespace
// separated tokens "<name> <start> <stop> <step>", where name must be an
// option. Rejected strings abort before any expansion is attempted.
func ParseRangeString(s string) (RangeSpec, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 4 {
		return RangeSpec{}, fmt.Errorf("range parameter %q not well formatted: expected \"<name> <start> <stop> <step>\"", s)
	}
	if !IsOption(fields[0]) {
		return RangeSpec{}, fmt.Errorf("range parameter %q is not an optional argument", fields[0])
	}
	var nums [3]float64
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return RangeSpec{}, fmt.Errorf("range parameter %q: %q is not numeric", s, f)
		}
		nums[i] = v
	}
	return RangeSpec{Key: fields[0], Start: nums[0], Stop: nums[1], Step: nums[2]}, nil
}

// expandRanges combines the specs into partial mappings by pairwise
// Cartesian product accumulated left to right: each new key multiplies the
// running set, iterating the new key's values in the outer loop and the
// existing partials in the inner loop. An empty range empties the whole
// product. Returns nil when no specs are given.
func expandRanges(specs []RangeSpec) []Mapping {
	var partials []Mapping
	for i, spec := range specs {
		values := spec.Values()
		next := make([]Mapping, 0, len(values)*max(1, len(partials)))
		if i == 0 {
			for _, v := range values {
				next = append(next, Mapping{spec.Key: Scalar(v)})
			}
		} else {
			for _, v := range values {
				for _, p := range partials {
					m := p.Clone()
					m[spec.Key] = Scalar(v)
					next = append(next, m)
				}
			}
		}
		partials = next
	}
	return partials
}
