package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// OptionPrefix marks a key or token as an optional (named) argument.
const OptionPrefix = "--"

// posKeyPrefix is the serialized form of a positional slot key. A positional
// argument in slot 3 is stored under the key "pos_3".
const posKeyPrefix = "pos_"

// PosKey returns the mapping key for positional slot n.
func PosKey(n int) string {
	return posKeyPrefix + strconv.Itoa(n)
}

// ParsePosKey reports whether key names a positional slot and, if so,
// returns its index.
func ParsePosKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, posKeyPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsOption reports whether key names an optional argument.
func IsOption(key string) bool {
	return strings.HasPrefix(key, OptionPrefix)
}

// Value is the value of a single argument: a scalar, or an ordered list of
// scalars for an option that appears more than once (e.g. repeated --tag).
// The zero Value is an empty scalar, which is how flags are represented.
type Value struct {
	items []string
	list  bool
}

// Scalar returns a single-valued Value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// List returns a multi-valued Value.
func List(items ...string) Value {
	return Value{items: append([]string(nil), items...), list: true}
}

// IsList reports whether the value holds a list of scalars.
func (v Value) IsList() bool {
	return v.list
}

// First returns the scalar value, or the first list element.
func (v Value) First() string {
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

// Items returns every scalar held by the value, in order.
func (v Value) Items() []string {
	if len(v.items) == 0 {
		return []string{""}
	}
	return append([]string(nil), v.items...)
}

// Append returns a Value extended with one more scalar. Appending to a
// scalar converts it into a two-element list.
func (v Value) Append(s string) Value {
	if len(v.items) == 0 {
		return Value{items: []string{"", s}, list: true}
	}
	return Value{items: append(append([]string(nil), v.items...), s), list: true}
}

// Equal reports whether two values hold the same shape and scalars.
func (v Value) Equal(o Value) bool {
	if v.list != o.list {
		return false
	}
	a, b := v.Items(), o.Items()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	if v.list {
		return "[" + strings.Join(v.Items(), ", ") + "]"
	}
	return v.First()
}

// MarshalYAML renders a scalar as a plain YAML scalar and a list as a
// sequence, so stored parameter groups read naturally in state files.
func (v Value) MarshalYAML() (any, error) {
	if v.list {
		return v.Items(), nil
	}
	return v.First(), nil
}

// UnmarshalYAML accepts either a scalar node or a sequence of scalars.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Scalar(scalarText(node))
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, c := range node.Content {
			if c.Kind != yaml.ScalarNode {
				return fmt.Errorf("argument value list may only contain scalars, got %s", nodeKind(c))
			}
			items = append(items, scalarText(c))
		}
		*v = List(items...)
		return nil
	default:
		return fmt.Errorf("argument value must be a scalar or a list, got %s", nodeKind(node))
	}
}

// MarshalJSON mirrors the YAML shape for JSON output.
func (v Value) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	if v.list {
		sb.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(item))
		}
		sb.WriteByte(']')
		return []byte(sb.String()), nil
	}
	return []byte(strconv.Quote(v.First())), nil
}

// Mapping is one fully resolved set of parameters for one invocation.
// Keys are either positional slots ("pos_<n>") or option names ("--name").
// Mappings are produced by the tokenizer and the expander and are treated
// as immutable by every consumer.
type Mapping map[string]Value

// Clone returns a shallow copy of the mapping.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether two mappings hold the same keys and values.
func (m Mapping) Equal(o Mapping) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MaxPositionalIndex returns the highest positional slot index present in
// the mapping, or zero when the mapping has no positional arguments.
func (m Mapping) MaxPositionalIndex() int {
	maxIdx := 0
	for k := range m {
		if n, ok := ParsePosKey(k); ok && n > maxIdx {
			maxIdx = n
		}
	}
	return maxIdx
}

// positionalIndices returns the sorted slot indices present in the mapping.
func (m Mapping) positionalIndices() []int {
	var idx []int
	for k := range m {
		if n, ok := ParsePosKey(k); ok {
			idx = append(idx, n)
		}
	}
	sort.Ints(idx)
	return idx
}

// optionNames returns the sorted option names present in the mapping.
func (m Mapping) optionNames() []string {
	var names []string
	for k := range m {
		if IsOption(k) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Merge combines mappings key by key, later sources overriding earlier ones.
// The expander only ever merges collision-free sources (the validator
// rejects overlaps up front), so in practice no key is overridden.
func Merge(sources ...Mapping) Mapping {
	out := make(Mapping)
	for _, src := range sources {
		for k, v := range src {
			out[k] = v
		}
	}
	return out
}

// scalarText returns the textual form of a YAML scalar node, preserving the
// document's own rendering of numbers ("0.5" stays "0.5"). Null nodes read
// as the empty string, which the validator rejects as an absent leaf.
func scalarText(node *yaml.Node) string {
	if node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.DocumentNode:
		return "document"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
