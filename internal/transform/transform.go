// Package transform implements the template evaluator: the recursive
// tree walk that substitutes expression strings, resolves inputs by
// kind and applies transform pipelines.
package transform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/jp"

	"github.com/jacoelho/jt/internal/builtin"
	"github.com/jacoelho/jt/internal/expr"
	"github.com/jacoelho/jt/internal/ratelimit"
	"github.com/jacoelho/jt/internal/scope"
	"github.com/jacoelho/jt/internal/spec"
	"github.com/jacoelho/jt/internal/value"
)

// ErrNoOutput reports a transform attempted without an output
// template.
var ErrNoOutput = errors.New("no output specified")

// maxResolveDepth bounds mutually recursive input references so they
// fail instead of exhausting the stack.
const maxResolveDepth = 256

// Transformer evaluates an output template against a merged spec.
// A Transformer is single-use-at-a-time: Transform must not be called
// concurrently.
type Transformer struct {
	spec    *spec.Spec
	scopes  *scope.Stack
	logger  *slog.Logger
	limiter *ratelimit.Limiter
	runID   string
	stderr  io.Writer
	depth   int
}

// Options configures a Transformer.
type Options struct {
	// Logger receives soft-failure diagnostics and debug traces.
	Logger *slog.Logger
	// RateLimit caps command input spawns per second; 0 means
	// unlimited.
	RateLimit float64
	// CommandStderr receives standard error of command inputs.
	CommandStderr io.Writer
}

func New(s *spec.Spec, opts Options) *Transformer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stderr := opts.CommandStderr
	if stderr == nil {
		stderr = io.Discard
	}
	runID := uuid.New().String()
	return &Transformer{
		spec:    s,
		logger:  logger.With("run", runID),
		limiter: ratelimit.New(opts.RateLimit),
		runID:   runID,
		stderr:  stderr,
	}
}

// Logger returns the diagnostics logger.
func (t *Transformer) Logger() *slog.Logger {
	return t.logger
}

// Transform evaluates the spec's output template with input as the
// context value and returns the pretty-printed result. A nil input
// stands for "no input document": expressions referencing the context
// fall back to their literal text. Each call starts from a clean
// scope stack.
func (t *Transformer) Transform(input any) (string, error) {
	output, ok := t.spec.Output()
	if !ok {
		return "", ErrNoOutput
	}
	t.scopes = scope.New()
	t.depth = 0

	transformed, err := t.transformValue(output, input)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := value.Encode(&buf, transformed); err != nil {
		return "", fmt.Errorf("failed to produce output: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// transformValue rebuilds template recursively, evaluating every
// string leaf against root and preserving array order and mapping key
// order.
func (t *Transformer) transformValue(template, root any) (any, error) {
	switch v := template.(type) {
	case string:
		result, ok, err := t.evaluateString(v, root)
		if err != nil {
			return nil, err
		}
		if !ok {
			return v, nil
		}
		return result, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, element := range v {
			transformed, err := t.transformValue(element, root)
			if err != nil {
				return nil, err
			}
			out = append(out, transformed)
		}
		return out, nil
	case *value.Object:
		out := make(value.Object, 0, v.Len())
		for _, member := range *v {
			transformed, err := t.transformValue(member.Value, root)
			if err != nil {
				return nil, err
			}
			out = append(out, value.Member{Key: member.Key, Value: transformed})
		}
		return &out, nil
	default:
		return value.Clone(template), nil
	}
}

// evaluateString evaluates one template string. ok is false when the
// string is not an expression or the expression produced no value; in
// both cases the caller emits the original text unchanged. Errors
// abort the whole transform.
func (t *Transformer) evaluateString(text string, root any) (any, bool, error) {
	parsed, err := expr.Parse(text)
	if err != nil {
		return nil, false, nil
	}

	var current any
	if parsed.Input == "" {
		if root == nil {
			t.logger.Warn("no context value for reference", "expression", text)
			return nil, false, nil
		}
		current = value.Clone(root)
	} else {
		current, err = t.ResolveInput(parsed.Input, root)
		if err != nil {
			return nil, false, err
		}
	}

	if parsed.Path != "" {
		matches, err := t.query(parsed.Path, current)
		if err != nil {
			t.logger.Warn("failed to apply JSONPath expression", "path", parsed.Path, "reason", err)
			return nil, false, nil
		}
		current = matches
	}

	for _, transform := range parsed.Transforms {
		if fn, ok := builtin.Lookup(transform.Name); ok {
			next, ok, err := fn(t, current, transform.Args)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				t.logger.Warn("failed to apply builtin transform", "builtin", transform.Name)
				return nil, false, nil
			}
			current = next
			continue
		}
		next, err := t.ResolveInput(transform.Name, current)
		if err != nil {
			return nil, false, err
		}
		current = next
	}
	return current, true, nil
}

// query runs a JSONPath query rooted at base. Matches are always
// wrapped in an array, whatever their count.
func (t *Transformer) query(path string, base any) ([]any, error) {
	x, err := jp.ParseString("$" + path)
	if err != nil {
		return nil, err
	}
	matches := x.Get(base)
	out := make([]any, 0, len(matches))
	for _, match := range matches {
		out = append(out, value.Clone(match))
	}
	return out, nil
}
