package value

import (
	"reflect"
	"testing"
)

func TestObject_GetSet(t *testing.T) {
	obj := &Object{}

	if _, ok := obj.Get("missing"); ok {
		t.Error("Get() on empty object should report missing")
	}

	obj.Set("a", int64(1))
	obj.Set("b", int64(2))
	obj.Set("a", int64(3))

	if got, ok := obj.Get("a"); !ok || got != int64(3) {
		t.Errorf("Get(a) = %v, %t, want 3, true", got, ok)
	}

	// Replacing a value keeps the original member position
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", got)
	}

	if obj.Len() != 2 {
		t.Errorf("Len() = %d, want 2", obj.Len())
	}
}

func TestObject_KeyedInterface(t *testing.T) {
	obj := &Object{
		{Key: "first", Value: int64(1)},
		{Key: "second", Value: int64(2)},
		{Key: "third", Value: int64(3)},
	}

	if v, ok := obj.ValueForKey("second"); !ok || v != int64(2) {
		t.Errorf("ValueForKey(second) = %v, %t, want 2, true", v, ok)
	}

	obj.SetValueForKey("fourth", int64(4))
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"first", "second", "third", "fourth"}) {
		t.Errorf("Keys() after set = %v", got)
	}

	obj.RemoveValueForKey("second")
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"first", "third", "fourth"}) {
		t.Errorf("Keys() after remove = %v", got)
	}

	obj.RemoveValueForKey("missing")
	if obj.Len() != 3 {
		t.Errorf("RemoveValueForKey(missing) changed length to %d", obj.Len())
	}
}

func TestClone(t *testing.T) {
	original := &Object{
		{Key: "numbers", Value: []any{int64(1), int64(2)}},
		{Key: "nested", Value: &Object{{Key: "x", Value: "y"}}},
	}

	cloned, ok := Clone(original).(*Object)
	if !ok {
		t.Fatalf("Clone() returned %T, want *Object", Clone(original))
	}

	if !Equal(original, cloned) {
		t.Fatal("Clone() should be structurally equal to original")
	}

	// Mutating the clone must not leak into the original
	arr := func(o *Object) []any {
		v, _ := o.Get("numbers")
		return v.([]any)
	}
	arr(cloned)[0] = int64(99)
	if arr(original)[0] != int64(1) {
		t.Error("mutating cloned array changed the original")
	}

	nested := func(o *Object) *Object {
		v, _ := o.Get("nested")
		return v.(*Object)
	}
	nested(cloned).Set("x", "changed")
	if got, _ := nested(original).Get("x"); got != "y" {
		t.Error("mutating cloned object changed the original")
	}
}

func TestClone_Scalars(t *testing.T) {
	for _, v := range []any{nil, true, int64(7), uint64(7), 1.5, "text"} {
		if got := Clone(v); got != v {
			t.Errorf("Clone(%v) = %v", v, got)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    any
		b    any
		want bool
	}{
		{name: "nulls", a: nil, b: nil, want: true},
		{name: "null_vs_false", a: nil, b: false, want: false},
		{name: "bools", a: true, b: true, want: true},
		{name: "strings", a: "x", b: "x", want: true},
		{name: "string_vs_number", a: "1", b: int64(1), want: false},
		{name: "int64_int64", a: int64(5), b: int64(5), want: true},
		{name: "int64_uint64_same", a: int64(5), b: uint64(5), want: true},
		{name: "uint64_int64_same", a: uint64(5), b: int64(5), want: true},
		{name: "negative_int64_vs_uint64", a: int64(-1), b: uint64(18446744073709551615), want: false},
		{name: "int_vs_float", a: int64(1), b: float64(1), want: false},
		{name: "floats", a: 1.5, b: 1.5, want: true},
		{
			name: "arrays_ordered",
			a:    []any{int64(1), int64(2)},
			b:    []any{int64(2), int64(1)},
			want: false,
		},
		{
			name: "arrays_equal",
			a:    []any{int64(1), "x"},
			b:    []any{int64(1), "x"},
			want: true,
		},
		{
			name: "objects_ignore_member_order",
			a:    &Object{{Key: "a", Value: int64(1)}, {Key: "b", Value: int64(2)}},
			b:    &Object{{Key: "b", Value: int64(2)}, {Key: "a", Value: int64(1)}},
			want: true,
		},
		{
			name: "objects_different_values",
			a:    &Object{{Key: "a", Value: int64(1)}},
			b:    &Object{{Key: "a", Value: int64(2)}},
			want: false,
		},
		{
			name: "objects_extra_key",
			a:    &Object{{Key: "a", Value: int64(1)}},
			b:    &Object{{Key: "a", Value: int64(1)}, {Key: "b", Value: int64(2)}},
			want: false,
		},
		{
			name: "nested",
			a:    &Object{{Key: "a", Value: []any{&Object{{Key: "x", Value: nil}}}}},
			b:    &Object{{Key: "a", Value: []any{&Object{{Key: "x", Value: nil}}}}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %t, want %t", got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal() reversed = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{name: "null", v: nil, want: false},
		{name: "false", v: false, want: false},
		{name: "true", v: true, want: true},
		{name: "zero_int", v: int64(0), want: false},
		{name: "nonzero_int", v: int64(-3), want: true},
		{name: "zero_uint", v: uint64(0), want: false},
		{name: "nonzero_uint", v: uint64(1), want: true},
		{name: "zero_float", v: float64(0), want: false},
		{name: "nonzero_float", v: 0.1, want: true},
		{name: "empty_string", v: "", want: false},
		{name: "string", v: "no", want: true},
		{name: "empty_array", v: []any{}, want: false},
		{name: "array", v: []any{false}, want: true},
		{name: "empty_object", v: &Object{}, want: false},
		{name: "object", v: &Object{{Key: "a", Value: nil}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%v) = %t, want %t", tt.v, got, tt.want)
			}
		})
	}
}
