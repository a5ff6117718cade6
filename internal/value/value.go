// Package value models JSON documents with mapping key order preserved.
//
// Values are represented as:
//
//	nil              null
//	bool             boolean
//	int64, uint64    integer numbers
//	float64          floating point numbers
//	string           strings
//	[]any            arrays
//	*Object          mappings
package value

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON mapping that preserves key insertion order.
type Object []Member

// Get returns the value for an exact key match.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	for _, member := range *o {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key in place or appends a new member.
func (o *Object) Set(key string, v any) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = v
			return
		}
	}
	*o = append(*o, Member{Key: key, Value: v})
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(*o)
}

// ValueForKey implements the jp.Keyed interface so JSONPath queries
// traverse ordered mappings directly.
func (o *Object) ValueForKey(key string) (any, bool) {
	return o.Get(key)
}

// SetValueForKey implements the jp.Keyed interface.
func (o *Object) SetValueForKey(key string, v any) {
	o.Set(key, v)
}

// RemoveValueForKey implements the jp.Keyed interface.
func (o *Object) RemoveValueForKey(key string) {
	for i := range *o {
		if (*o)[i].Key == key {
			*o = append((*o)[:i], (*o)[i+1:]...)
			return
		}
	}
}

// Keys implements the jp.Keyed interface; keys are returned in
// insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(*o))
	for i, member := range *o {
		keys[i] = member.Key
	}
	return keys
}

// Clone returns a deep copy of v. Scalars are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, element := range t {
			out[i] = Clone(element)
		}
		return out
	case *Object:
		out := make(Object, len(*t))
		for i, member := range *t {
			out[i] = Member{Key: member.Key, Value: Clone(member.Value)}
		}
		return &out
	default:
		return v
	}
}

// Equal reports structural equality. Mapping comparison ignores member
// order; integer comparison crosses the int64/uint64 boundary, floats
// only compare equal to floats.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int64, uint64, float64:
		return numberEqual(a, b)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, member := range *av {
			other, ok := bv.Get(member.Key)
			if !ok || !Equal(member.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numberEqual(a, b any) bool {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv
		case uint64:
			return av >= 0 && uint64(av) == bv
		}
	case uint64:
		switch bv := b.(type) {
		case int64:
			return bv >= 0 && av == uint64(bv)
		case uint64:
			return av == bv
		}
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	}
	return false
}

// Truthy reports the branch condition used by ifelse: null and false
// are false, numbers are true when non-zero, strings, arrays and
// mappings when non-empty.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case *Object:
		return t.Len() > 0
	default:
		return false
	}
}
