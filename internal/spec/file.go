package spec

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/jacoelho/jt/internal/value"
)

// ErrSpec is the sentinel error for spec document decoding failures.
var ErrSpec = errors.New("invalid spec")

// Kind selects how an input's source is resolved.
type Kind string

const (
	KindInline  Kind = "INLINE"
	KindFile    Kind = "FILE"
	KindCommand Kind = "COMMAND"
)

// Input declares one named data source of a spec document.
type Input struct {
	Name        string
	Kind        Kind
	Description string
	// Let holds the raw let clause; AddInput validates that it is a
	// mapping.
	Let any
	// Source is a template value for INLINE inputs and must be a
	// string (path or command line) for FILE and COMMAND inputs.
	Source any
	// Stdin controls whether a COMMAND input receives the JSON context
	// on standard input. Defaults to true.
	Stdin bool
	// Args are extra arguments appended to a COMMAND input's argv.
	Args []string
}

// File is one parsed spec document.
type File struct {
	Description string
	Uses        []string
	Inputs      []*Input
	// Output is nil when the document declares no output; an explicit
	// JSON null counts as absent.
	Output any
}

// Load parses a single spec document. YAML input is accepted alongside
// JSON.
func Load(data []byte) (*File, error) {
	parsed, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpec, err)
	}
	if len(parsed.Docs) == 0 || parsed.Docs[0].Body == nil {
		return nil, fmt.Errorf("%w: empty document", ErrSpec)
	}
	if len(parsed.Docs) > 1 {
		return nil, fmt.Errorf("%w: expected a single document", ErrSpec)
	}
	var file File
	if err := file.UnmarshalYAML(parsed.Docs[0].Body); err != nil {
		return nil, err
	}
	return &file, nil
}

// LoadFile reads and parses the spec document at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	file, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return file, nil
}

// UnmarshalYAML decodes a spec document body. Unknown fields are
// ignored.
func (f *File) UnmarshalYAML(node ast.Node) error {
	pairs, ok := mappingPairs(node)
	if !ok {
		return fmt.Errorf("%w: spec must be a mapping", ErrSpec)
	}
	for _, pair := range pairs {
		key, ok := pair.Key.(*ast.StringNode)
		if !ok {
			return fmt.Errorf("%w: spec field key must be a string", ErrSpec)
		}
		switch key.Value {
		case "description":
			s, ok := pair.Value.(*ast.StringNode)
			if !ok {
				return fmt.Errorf("%w: 'description' must be a string", ErrSpec)
			}
			f.Description = s.Value
		case "use":
			if isNull(pair.Value) {
				continue
			}
			seq, ok := pair.Value.(*ast.SequenceNode)
			if !ok {
				return fmt.Errorf("%w: 'use' must be a sequence of strings", ErrSpec)
			}
			for _, item := range seq.Values {
				s, ok := item.(*ast.StringNode)
				if !ok {
					return fmt.Errorf("%w: 'use' must be a sequence of strings", ErrSpec)
				}
				f.Uses = append(f.Uses, s.Value)
			}
		case "input":
			if isNull(pair.Value) {
				continue
			}
			seq, ok := pair.Value.(*ast.SequenceNode)
			if !ok {
				return fmt.Errorf("%w: 'input' must be a sequence", ErrSpec)
			}
			for _, item := range seq.Values {
				input := &Input{}
				if err := input.UnmarshalYAML(item); err != nil {
					return err
				}
				f.Inputs = append(f.Inputs, input)
			}
		case "output":
			v, err := value.FromNode(pair.Value)
			if err != nil {
				return fmt.Errorf("%w: invalid 'output': %v", ErrSpec, err)
			}
			f.Output = v
		}
	}
	return nil
}

// UnmarshalYAML decodes one input declaration. Unknown fields are
// ignored; stdin defaults to true.
func (i *Input) UnmarshalYAML(node ast.Node) error {
	pairs, ok := mappingPairs(node)
	if !ok {
		return fmt.Errorf("%w: input must be a mapping", ErrSpec)
	}
	i.Stdin = true
	var hasName, hasKind, hasSource bool
	for _, pair := range pairs {
		key, ok := pair.Key.(*ast.StringNode)
		if !ok {
			return fmt.Errorf("%w: input field key must be a string", ErrSpec)
		}
		switch key.Value {
		case "name":
			s, ok := pair.Value.(*ast.StringNode)
			if !ok {
				return fmt.Errorf("%w: input 'name' must be a string", ErrSpec)
			}
			i.Name = s.Value
			hasName = true
		case "kind":
			s, ok := pair.Value.(*ast.StringNode)
			if !ok {
				return fmt.Errorf("%w: input 'kind' must be a string", ErrSpec)
			}
			kind, err := parseKind(s.Value)
			if err != nil {
				return err
			}
			i.Kind = kind
			hasKind = true
		case "description":
			s, ok := pair.Value.(*ast.StringNode)
			if !ok {
				return fmt.Errorf("%w: input 'description' must be a string", ErrSpec)
			}
			i.Description = s.Value
		case "let":
			v, err := value.FromNode(pair.Value)
			if err != nil {
				return fmt.Errorf("%w: invalid 'let': %v", ErrSpec, err)
			}
			i.Let = v
		case "source":
			v, err := value.FromNode(pair.Value)
			if err != nil {
				return fmt.Errorf("%w: invalid 'source': %v", ErrSpec, err)
			}
			i.Source = v
			hasSource = true
		case "stdin":
			b, ok := pair.Value.(*ast.BoolNode)
			if !ok {
				return fmt.Errorf("%w: input 'stdin' must be a boolean", ErrSpec)
			}
			i.Stdin = b.Value
		case "args":
			if isNull(pair.Value) {
				continue
			}
			seq, ok := pair.Value.(*ast.SequenceNode)
			if !ok {
				return fmt.Errorf("%w: input 'args' must be a sequence of strings", ErrSpec)
			}
			for _, item := range seq.Values {
				s, ok := item.(*ast.StringNode)
				if !ok {
					return fmt.Errorf("%w: input 'args' must be a sequence of strings", ErrSpec)
				}
				i.Args = append(i.Args, s.Value)
			}
		}
	}
	if !hasName {
		return fmt.Errorf("%w: input missing 'name'", ErrSpec)
	}
	if !hasKind {
		return fmt.Errorf("%w: input '%s' missing 'kind'", ErrSpec, i.Name)
	}
	if !hasSource {
		return fmt.Errorf("%w: input '%s' missing 'source'", ErrSpec, i.Name)
	}
	return nil
}

func parseKind(s string) (Kind, error) {
	switch kind := Kind(s); kind {
	case KindInline, KindFile, KindCommand:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: unknown input kind '%s'", ErrSpec, s)
	}
}

func mappingPairs(node ast.Node) ([]*ast.MappingValueNode, bool) {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values, true
	case *ast.MappingValueNode:
		// goccy represents single-pair block mappings without the
		// enclosing MappingNode.
		return []*ast.MappingValueNode{n}, true
	default:
		return nil, false
	}
}

func isNull(node ast.Node) bool {
	_, ok := node.(*ast.NullNode)
	return ok
}
