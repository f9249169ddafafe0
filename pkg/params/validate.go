package params

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument tags every structural or uniqueness violation found by
// Validate. Callers match it with errors.Is.
var ErrInvalidDocument = errors.New("invalid parameter document")

// Validate checks the structural well-formedness of the document before any
// expansion runs. It returns nil or an error describing the first violation;
// any violation aborts the whole expansion, no partial result is produced.
//
// Checks, in order: at least one of fixed_args/varying_args carries content
// and no leaf value is empty; for every explicit group the positional slot
// indices drawn from fixed, that group, and all ranges are non-negative and
// mutually distinct; under the same union all option names begin with "--"
// and are mutually distinct.
func (d *Document) Validate() error {
	specs := d.rangeSpecs()

	hasFixed := !d.FixedArgs.empty()
	hasVarying := d.VaryingArgs != nil && (len(d.VaryingArgs.Groups) > 0 || len(specs) > 0)
	if !hasFixed && !hasVarying {
		return fmt.Errorf("%w: document defines neither fixed_args nor varying_args", ErrInvalidDocument)
	}
	if d.FixedArgs != nil && d.FixedArgs.empty() {
		return fmt.Errorf("%w: fixed_args is present but carries no arguments", ErrInvalidDocument)
	}

	if err := d.FixedArgs.validateLeaves("fixed_args"); err != nil {
		return err
	}
	var groups []ArgSet
	if d.VaryingArgs != nil {
		groups = d.VaryingArgs.Groups
	}
	for i := range groups {
		if groups[i].empty() {
			return fmt.Errorf("%w: varying_args.groups[%d] carries no arguments", ErrInvalidDocument, i)
		}
		if err := groups[i].validateLeaves(fmt.Sprintf("varying_args.groups[%d]", i)); err != nil {
			return err
		}
	}
	for _, spec := range specs {
		if spec.Step == 0 {
			return fmt.Errorf("%w: range %q has a zero step", ErrInvalidDocument, spec.Key)
		}
	}

	// Fixed and range contributions are shared across all groups, so each
	// explicit group is checked against them independently.
	check := func(group *ArgSet, label string) error {
		if err := checkPositionals(d.FixedArgs, group, specs, label); err != nil {
			return err
		}
		return checkOptions(d.FixedArgs, group, specs, label)
	}
	if len(groups) == 0 {
		return check(nil, "")
	}
	for i := range groups {
		if err := check(&groups[i], fmt.Sprintf("varying_args.groups[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (a *ArgSet) validateLeaves(label string) error {
	if a == nil {
		return nil
	}
	for n, v := range a.Positional {
		if v == "" {
			return fmt.Errorf("%w: %s.positional[%d] has an empty value", ErrInvalidDocument, label, n)
		}
	}
	for name, v := range a.Options {
		if v == "" {
			return fmt.Errorf("%w: %s.options[%s] has an empty value", ErrInvalidDocument, label, name)
		}
	}
	return nil
}

func checkPositionals(fixed, group *ArgSet, specs []RangeSpec, label string) error {
	seen := make(map[int]string)
	claim := func(n int, source string) error {
		if n < 0 {
			return fmt.Errorf("%w: %s uses negative positional slot %d", ErrInvalidDocument, source, n)
		}
		if prev, ok := seen[n]; ok {
			return fmt.Errorf("%w: positional slot %d used by both %s and %s", ErrInvalidDocument, n, prev, source)
		}
		seen[n] = source
		return nil
	}
	if fixed != nil {
		for n := range fixed.Positional {
			if err := claim(n, "fixed_args"); err != nil {
				return err
			}
		}
	}
	if group != nil {
		for n := range group.Positional {
			if err := claim(n, label); err != nil {
				return err
			}
		}
	}
	for _, spec := range specs {
		if n, ok := ParsePosKey(spec.Key); ok {
			if err := claim(n, "varying_args.range"); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkOptions(fixed, group *ArgSet, specs []RangeSpec, label string) error {
	seen := make(map[string]string)
	claim := func(name, source string) error {
		if !IsOption(name) {
			return fmt.Errorf("%w: %s option %q does not begin with %q", ErrInvalidDocument, source, name, OptionPrefix)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: option %s used by both %s and %s", ErrInvalidDocument, name, prev, source)
		}
		seen[name] = source
		return nil
	}
	if fixed != nil {
		for name := range fixed.Options {
			if err := claim(name, "fixed_args"); err != nil {
				return err
			}
		}
	}
	if group != nil {
		for name := range group.Options {
			if err := claim(name, label); err != nil {
				return err
			}
		}
	}
	for _, spec := range specs {
		if !IsOption(spec.Key) {
			continue
		}
		if err := claim(spec.Key, "varying_args.range"); err != nil {
			return err
		}
	}
	return nil
}
