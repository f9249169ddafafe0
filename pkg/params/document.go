package params

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the declarative description of one experiment's parameters.
// It is decoded from YAML once, validated exhaustively, expanded into an
// ordered list of Mappings, and then discarded.
//
// Top-level shape:
//
//	fixed_args:
//	  positional: {0: input.dat}
//	  options: {--mode: fast}
//	varying_args:
//	  groups:
//	    - positional: {...}
//	      options: {...}
//	  range:
//	    positional: {1: [0, 10, 1]}
//	    options: {--alpha: [0, 1, 0.5]}
type Document struct {
	FixedArgs   *ArgSet      `yaml:"fixed_args"`
	VaryingArgs *VaryingArgs `yaml:"varying_args"`
}

// ArgSet is a positional/options pair with scalar leaves. It backs both
// fixed_args and each entry of varying_args.groups.
type ArgSet struct {
	Positional map[int]leaf    `yaml:"positional"`
	Options    map[string]leaf `yaml:"options"`
}

// VaryingArgs holds the two varying axes: explicit parameter groups and
// numeric ranges.
type VaryingArgs struct {
	Groups []ArgSet   `yaml:"groups"`
	Range  *RangeArgs `yaml:"range"`
}

// RangeArgs is a positional/options pair whose leaves are [start, stop, step]
// triples. Decoding preserves document order: positional entries first, then
// options, each in the order they appear in the file. That order drives the
// Cartesian accumulation in the expander.
type RangeArgs struct {
	specs []RangeSpec
}

// Specs returns the range specs in document order.
func (r *RangeArgs) Specs() []RangeSpec {
	if r == nil {
		return nil
	}
	return r.specs
}

// UnmarshalYAML walks the mapping node by hand so the entry order of the
// source document survives into the spec list.
func (r *RangeArgs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("range must be a mapping, got %s", nodeKind(node))
	}
	r.specs = nil
	for i := 0; i+1 < len(node.Content); i += 2 {
		section, body := node.Content[i].Value, node.Content[i+1]
		switch section {
		case "positional":
			if err := r.decodeSection(body, true); err != nil {
				return err
			}
		case "options":
			if err := r.decodeSection(body, false); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown range section %q", section)
		}
	}
	return nil
}

func (r *RangeArgs) decodeSection(node *yaml.Node, positional bool) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("range section must be a mapping, got %s", nodeKind(node))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if positional {
			n, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("positional range key %q is not an integer", key)
			}
			key = PosKey(n)
		}
		triple, err := decodeTriple(valNode)
		if err != nil {
			return fmt.Errorf("range %q: %w", key, err)
		}
		r.specs = append(r.specs, RangeSpec{
			Key:   key,
			Start: triple[0],
			Stop:  triple[1],
			Step:  triple[2],
		})
	}
	return nil
}

func decodeTriple(node *yaml.Node) ([3]float64, error) {
	var out [3]float64
	if node.Kind != yaml.SequenceNode || len(node.Content) != 3 {
		return out, fmt.Errorf("expected a [start, stop, step] triple")
	}
	for i, c := range node.Content {
		v, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return out, fmt.Errorf("element %d (%q) is not numeric", i, c.Value)
		}
		out[i] = v
	}
	return out, nil
}

// leaf is a scalar document value. It keeps the source text of the node so
// numbers render exactly as written.
type leaf string

func (l *leaf) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("argument value must be a scalar, got %s", nodeKind(node))
	}
	*l = leaf(scalarText(node))
	return nil
}

// mapping converts an ArgSet into a Mapping.
func (a *ArgSet) mapping() Mapping {
	m := make(Mapping)
	if a == nil {
		return m
	}
	for n, v := range a.Positional {
		m[PosKey(n)] = Scalar(string(v))
	}
	for name, v := range a.Options {
		m[name] = Scalar(string(v))
	}
	return m
}

func (a *ArgSet) empty() bool {
	return a == nil || (len(a.Positional) == 0 && len(a.Options) == 0)
}

// ParseDocument decodes a parameter document from YAML bytes. Structural
// problems (wrong node kinds, malformed triples, non-integer positional
// keys) surface here; semantic problems surface in Validate.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed parameter document: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads and decodes a parameter document file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter file: %w", err)
	}
	return ParseDocument(data)
}

// rangeSpecs returns the document's range specs in document order, or nil.
func (d *Document) rangeSpecs() []RangeSpec {
	if d.VaryingArgs == nil {
		return nil
	}
	return d.VaryingArgs.Range.Specs()
}
