package value

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ErrInvalidDocument is the sentinel error for document decoding failures.
var ErrInvalidDocument = errors.New("invalid document")

// Parse decodes a single JSON document into the value model. YAML input
// is accepted as well since JSON is a YAML subset; mapping key order is
// preserved either way.
func Parse(data []byte) (any, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if len(file.Docs) > 1 {
		return nil, fmt.Errorf("%w: expected a single document", ErrInvalidDocument)
	}
	return FromNode(file.Docs[0].Body)
}

// ParseJSON decodes strict JSON only; YAML-specific syntax fails here.
func ParseJSON(data []byte) (any, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	return Parse(data)
}

// FromNode converts a decoded YAML node into the value model.
func FromNode(node ast.Node) (any, error) {
	switch n := node.(type) {
	case *ast.NullNode:
		return nil, nil
	case *ast.BoolNode:
		return n.Value, nil
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return v, nil
		case uint64:
			return v, nil
		default:
			return nil, fmt.Errorf("%w: unexpected integer value type %T", ErrInvalidDocument, n.Value)
		}
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.LiteralNode:
		return n.Value.Value, nil
	case *ast.SequenceNode:
		out := make([]any, 0, len(n.Values))
		for _, item := range n.Values {
			v, err := FromNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *ast.MappingNode:
		obj := make(Object, 0, len(n.Values))
		for _, pair := range n.Values {
			if err := appendPair(&obj, pair); err != nil {
				return nil, err
			}
		}
		return &obj, nil
	case *ast.MappingValueNode:
		// goccy represents single-pair block mappings without the
		// enclosing MappingNode.
		obj := make(Object, 0, 1)
		if err := appendPair(&obj, n); err != nil {
			return nil, err
		}
		return &obj, nil
	case *ast.TagNode:
		return FromNode(n.Value)
	default:
		return nil, fmt.Errorf("%w: unsupported value node %T", ErrInvalidDocument, node)
	}
}

func appendPair(obj *Object, pair *ast.MappingValueNode) error {
	key, ok := pair.Key.(*ast.StringNode)
	if !ok {
		return fmt.Errorf("%w: mapping key must be a string, got %T", ErrInvalidDocument, pair.Key)
	}
	v, err := FromNode(pair.Value)
	if err != nil {
		return err
	}
	obj.Set(key.Value, v)
	return nil
}
