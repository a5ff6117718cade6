package spec

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jacoelho/jt/internal/builtin"
	"github.com/jacoelho/jt/internal/value"
)

// ErrDoubleOutput reports a second output definition across a spec and
// its merged includes.
var ErrDoubleOutput = errors.New("double definition of output")

// maxUseDepth bounds 'use' include nesting so include cycles fail
// instead of recursing forever.
const maxUseDepth = 64

// Spec is the merged set of inputs and output a transform runs
// against, built from zero or more spec documents.
type Spec struct {
	inputs    map[string]*Input
	names     []string
	output    any
	hasOutput bool
	useDepth  int
}

func New() *Spec {
	return &Spec{inputs: make(map[string]*Input)}
}

// Input returns the declaration registered under name.
func (s *Spec) Input(name string) (*Input, bool) {
	input, ok := s.inputs[name]
	return input, ok
}

// Names returns registered input names in insertion order.
func (s *Spec) Names() []string {
	return slices.Clone(s.names)
}

func (s *Spec) Len() int {
	return len(s.inputs)
}

// Output returns the output template, if one was defined.
func (s *Spec) Output() (any, bool) {
	return s.output, s.hasOutput
}

// AddInput registers a declaration. Redeclaring a name is allowed only
// when the declaration is structurally identical to the registered
// one.
func (s *Spec) AddInput(input *Input) error {
	if builtin.IsBuiltin(input.Name) {
		return fmt.Errorf("can't define input '%s' because of the builtin function with the same name", input.Name)
	}
	if existing, ok := s.inputs[input.Name]; ok {
		if !existing.equal(input) {
			return fmt.Errorf("found conflicting definition of input '%s'", input.Name)
		}
		return nil
	}
	if input.Let != nil {
		if _, ok := input.Let.(*value.Object); !ok {
			return fmt.Errorf("wrong 'let' clause of input '%s': should be an object", input.Name)
		}
	}
	s.inputs[input.Name] = input
	s.names = append(s.names, input.Name)
	return nil
}

// SetOutput defines the output template. At most one output may be
// defined across a spec and all its merged includes.
func (s *Spec) SetOutput(output any) error {
	if s.hasOutput {
		return ErrDoubleOutput
	}
	s.output = output
	s.hasOutput = true
	return nil
}

// Merge applies file's includes, output and inputs to s in that order.
func (s *Spec) Merge(file *File) error {
	for _, use := range file.Uses {
		if err := s.AddUse(use); err != nil {
			return err
		}
	}
	if file.Output != nil {
		if err := s.SetOutput(file.Output); err != nil {
			return err
		}
	}
	for _, input := range file.Inputs {
		if err := s.AddInput(input); err != nil {
			return err
		}
	}
	return nil
}

// AddUse reads, parses and merges the spec document at path, following
// its own 'use' includes recursively.
func (s *Spec) AddUse(path string) error {
	if s.useDepth >= maxUseDepth {
		return fmt.Errorf("use depth exceeded at '%s'", path)
	}
	s.useDepth++
	defer func() { s.useDepth-- }()

	file, err := LoadFile(path)
	if err != nil {
		return err
	}
	return s.Merge(file)
}

// equal ignores Description: two declarations differing only in
// documentation do not conflict.
func (i *Input) equal(other *Input) bool {
	return i.Name == other.Name &&
		i.Kind == other.Kind &&
		i.Stdin == other.Stdin &&
		slices.Equal(i.Args, other.Args) &&
		value.Equal(i.Let, other.Let) &&
		value.Equal(i.Source, other.Source)
}
