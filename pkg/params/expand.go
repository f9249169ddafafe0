package params

import (
	"fmt"
)

// Expand turns a validated document into the ordered list of fully resolved
// argument mappings, one per run group. The order is deterministic for
// identical input: range groups in document order form the outer loop,
// explicit groups in document order the inner loop, and the fixed arguments
// are merged into every element.
//
// With neither ranges nor explicit groups the result is the single fixed
// mapping. A range whose sequence is empty contributes zero elements to the
// product, which may legally make the whole expansion empty.
func Expand(doc *Document) ([]Mapping, error) {
	if err := doc.Validate(); err != nil {
		expansionFailures.Inc()
		return nil, err
	}

	fixed := doc.FixedArgs.mapping()

	rangeGroups := expandRanges(doc.rangeSpecs())
	hasRanges := len(doc.rangeSpecs()) > 0

	var explicitGroups []Mapping
	if doc.VaryingArgs != nil {
		for i := range doc.VaryingArgs.Groups {
			explicitGroups = append(explicitGroups, doc.VaryingArgs.Groups[i].mapping())
		}
	}

	var out []Mapping
	switch {
	case !hasRanges && len(explicitGroups) == 0:
		out = []Mapping{fixed}
	case !hasRanges:
		for _, g := range explicitGroups {
			out = append(out, Merge(fixed, g))
		}
	case len(explicitGroups) == 0:
		for _, r := range rangeGroups {
			out = append(out, Merge(fixed, r))
		}
	default:
		for _, r := range rangeGroups {
			for _, g := range explicitGroups {
				out = append(out, Merge(fixed, r, g))
			}
		}
	}

	expansionsTotal.Inc()
	expansionGroups.Observe(float64(len(out)))
	return out, nil
}

// ExpandCLI performs the same expansion for raw command-line input: a fixed
// token stream, explicit group strings, and range strings. It returns the
// resolved mappings together with the runner parameters stripped from the
// fixed stream.
//
// Each group string is shell-split and tokenized with its positionals
// shifted past the fixed ones. Each range string multiplies the running
// result, new values in the outer loop, and must name an option that is not
// already present.
func ExpandCLI(fixedTokens, groupStrings, rangeStrings []string) ([]Mapping, Mapping, error) {
	fixed := Tokenize(fixedTokens, 0)
	runnerParams := ExtractRunnerParams(fixed, DefaultRunnerParams)

	parsed := []Mapping{fixed}
	if len(groupStrings) > 0 {
		parsed = parsed[:0]
		for _, group := range groupStrings {
			varying, err := TokenizeGroup(group, fixed)
			if err != nil {
				expansionFailures.Inc()
				return nil, nil, err
			}
			parsed = append(parsed, Merge(fixed, varying))
		}
	}

	for _, rangeString := range rangeStrings {
		spec, err := ParseRangeString(rangeString)
		if err != nil {
			expansionFailures.Inc()
			return nil, nil, err
		}
		if len(parsed) > 0 {
			if _, ok := parsed[0][spec.Key]; ok {
				expansionFailures.Inc()
				return nil, nil, fmt.Errorf("parameter %s already in the parsed parameters", spec.Key)
			}
		}
		next := make([]Mapping, 0, len(parsed))
		for _, value := range spec.Values() {
			for _, p := range parsed {
				m := p.Clone()
				m[spec.Key] = Scalar(value)
				next = append(next, m)
			}
		}
		parsed = next
	}

	expansionsTotal.Inc()
	expansionGroups.Observe(float64(len(parsed)))
	return parsed, runnerParams, nil
}
