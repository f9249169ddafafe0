package params

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Tokenize turns a flat sequence of CLI-style tokens into a Mapping.
//
// A token starting with "--" opens an option. The single next token is
// consumed as its value unless it also starts with "--" or the option token
// is last, in which case the option is a flag with an empty string value.
// The value token is never re-inspected beyond that one lookahead. Repeated
// occurrences of one option accumulate into a list. Any other token is a
// positional argument, assigned consecutive slot indices from posOffset in
// token order.
func Tokenize(tokens []string, posOffset int) Mapping {
	m := make(Mapping)
	pos := posOffset
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if IsOption(tok) {
			value := ""
			if i+1 < len(tokens) && !IsOption(tokens[i+1]) {
				value = tokens[i+1]
				i += 2
			} else {
				i++
			}
			if prev, ok := m[tok]; ok {
				m[tok] = prev.Append(value)
			} else {
				m[tok] = Scalar(value)
			}
			continue
		}
		m[PosKey(pos)] = Scalar(tok)
		pos++
		i++
	}
	return m
}

// TokenizeGroup parses one explicit group string from the command line. The
// string is split shell-style (quoting respected) and tokenized with a
// positional offset of one past the highest slot index the fixed arguments
// use, so group-local positionals append after the fixed ones and never
// collide with them.
func TokenizeGroup(group string, fixed Mapping) (Mapping, error) {
	tokens, err := shellquote.Split(group)
	if err != nil {
		return nil, fmt.Errorf("malformed group %q: %w", group, err)
	}
	return Tokenize(tokens, fixed.MaxPositionalIndex()+1), nil
}

// DefaultRunnerParams are the options stripped out of a raw fixed-argument
// stream and handed to the runner rather than the experiment executable.
var DefaultRunnerParams = []string{"--n_threads", "--submit_template"}

// ExtractRunnerParams removes the named options from m and returns them as
// a separate mapping. m is modified in place.
func ExtractRunnerParams(m Mapping, names []string) Mapping {
	out := make(Mapping)
	for _, name := range names {
		if v, ok := m[name]; ok {
			out[name] = v
			delete(m, name)
		}
	}
	return out
}
