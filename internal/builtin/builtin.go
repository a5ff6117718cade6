// Package builtin provides the fixed pipeline functions available in
// template expressions. Builtins shadow inputs of the same name.
package builtin

import (
	"log/slog"

	"github.com/jacoelho/jt/internal/value"
)

// Evaluator is the engine surface builtins call back into when an
// argument names an input to apply.
type Evaluator interface {
	// ResolveInput resolves the named input with ctx as its context
	// value.
	ResolveInput(name string, ctx any) (any, error)
	// Logger returns the diagnostics logger.
	Logger() *slog.Logger
}

// Func applies one pipeline stage to v. A false ok return means the
// builtin's preconditions were not met, which callers treat as a
// non-fatal failure of the surrounding expression. A non-nil error
// aborts the whole transform.
type Func func(ev Evaluator, v any, args []string) (result any, ok bool, err error)

var table = map[string]Func{
	"unwrap": Unwrap,
	"map":    Map,
	"ifelse": IfElse,
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := table[name]
	return fn, ok
}

// IsBuiltin reports whether name is a registered builtin.
func IsBuiltin(name string) bool {
	_, ok := table[name]
	return ok
}

// Unwrap turns a single-element array into its element. Arguments are
// ignored.
func Unwrap(_ Evaluator, v any, _ []string) (any, bool, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 1 {
		return nil, false, nil
	}
	return value.Clone(arr[0]), true, nil
}

// Map applies the input named by its single argument to every array
// element, the element becoming that input's context. An element whose
// resolution fails is kept untransformed, with a diagnostic.
func Map(ev Evaluator, v any, args []string) (any, bool, error) {
	arr, ok := v.([]any)
	if !ok || len(args) != 1 {
		return nil, false, nil
	}
	out := make([]any, 0, len(arr))
	for _, element := range arr {
		resolved, err := ev.ResolveInput(args[0], element)
		if err != nil {
			ev.Logger().Warn("failed to apply input transform", "input", args[0], "reason", err)
			out = append(out, value.Clone(element))
			continue
		}
		out = append(out, resolved)
	}
	return out, true, nil
}

// IfElse resolves its first argument's input when v is truthy and the
// second otherwise, with v as the context. A failed branch resolution
// aborts the transform.
func IfElse(ev Evaluator, v any, args []string) (any, bool, error) {
	if len(args) != 2 {
		return nil, false, nil
	}
	name := args[1]
	if value.Truthy(v) {
		name = args[0]
	}
	resolved, err := ev.ResolveInput(name, v)
	if err != nil {
		return nil, false, err
	}
	return resolved, true, nil
}
