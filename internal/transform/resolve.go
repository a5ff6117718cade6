package transform

import (
	"fmt"
	"os"

	"github.com/jacoelho/jt/internal/scope"
	"github.com/jacoelho/jt/internal/spec"
	"github.com/jacoelho/jt/internal/value"
)

// ResolveInput resolves name through the scope stack and the input
// registry, with ctx as the context value. Scope bindings shadow
// registry inputs. When the input declares let bindings they are
// evaluated against ctx, pushed as one frame, and popped again on
// every exit path.
func (t *Transformer) ResolveInput(name string, ctx any) (any, error) {
	if v, ok := t.scopes.Lookup(name); ok {
		return value.Clone(v), nil
	}
	input, ok := t.spec.Input(name)
	if !ok {
		return nil, fmt.Errorf("found reference to unknown input '%s'", name)
	}
	if t.depth >= maxResolveDepth {
		return nil, fmt.Errorf("input resolution depth exceeded while resolving '%s'", name)
	}
	t.depth++
	defer func() { t.depth-- }()

	if input.Let != nil {
		lets, ok := input.Let.(*value.Object)
		if !ok {
			return nil, fmt.Errorf("let clause of input '%s' is not an object", name)
		}
		frame := make(scope.Frame, lets.Len())
		for _, member := range *lets {
			bound, err := t.transformValue(member.Value, ctx)
			if err != nil {
				return nil, err
			}
			frame[member.Key] = bound
		}
		t.scopes.Push(frame)
		defer t.scopes.Pop()
	}
	return t.resolve(input, ctx)
}

func (t *Transformer) resolve(input *spec.Input, ctx any) (any, error) {
	attrs := []any{"input", input.Name, "kind", string(input.Kind)}
	if input.Description != "" {
		attrs = append(attrs, "description", input.Description)
	}
	t.logger.Debug("resolving input", attrs...)
	switch input.Kind {
	case spec.KindInline:
		return t.transformValue(input.Source, ctx)
	case spec.KindFile:
		path, ok := input.Source.(string)
		if !ok {
			return nil, fmt.Errorf("non-string provided as source for input '%s'", input.Name)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file for input '%s': %w", input.Name, err)
		}
		parsed, err := value.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON for input '%s': %w", input.Name, err)
		}
		return t.transformValue(parsed, ctx)
	case spec.KindCommand:
		command, ok := input.Source.(string)
		if !ok {
			return nil, fmt.Errorf("non-string provided as source for input '%s'", input.Name)
		}
		return t.runCommand(input, command, ctx)
	default:
		return nil, fmt.Errorf("unknown kind '%s' for input '%s'", input.Kind, input.Name)
	}
}
