package expr

import "errors"

// ErrNotExpression reports that a string does not start a template
// reference at all, as opposed to one that fails during evaluation.
var ErrNotExpression = errors.New("not a template expression")

// Expression is a parsed template reference of the form
// $input<jsonpath>[| transform[(args)]]*.
type Expression struct {
	// Input is the referenced input name; empty means the current
	// context value.
	Input string
	// Path is the JSONPath suffix without the leading root marker,
	// empty when the whole value is referenced.
	Path string
	// Transforms is the pipeline in application order.
	Transforms []Transform
}

// Transform is one pipeline stage.
type Transform struct {
	Name string
	// Args is nil when no parenthesized list was given; an empty pair
	// of parentheses yields a single empty argument.
	Args []string
}
