package params

// CommandArgs flattens the mapping into the token list handed to a process
// launcher: positional values first in increasing slot order, then every
// option as its name followed by its value. A multi-valued option repeats
// the name once per value. Option order is lexicographic by name so the
// assembled command line is stable across invocations.
//
// This is the inverse of Tokenize applied to values rather than raw tokens:
// tokenizing the result reproduces the mapping (list-valued options
// reproduce the same name/value pairs, re-accumulated from scalars).
func (m Mapping) CommandArgs() []string {
	out := make([]string, 0, 2*len(m))
	for _, n := range m.positionalIndices() {
		out = append(out, m[PosKey(n)].First())
	}
	for _, name := range m.optionNames() {
		for _, value := range m[name].Items() {
			out = append(out, name, value)
		}
	}
	return out
}
