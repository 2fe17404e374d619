// Package atom interns values into dense sequential identities.
package atom

import "github.com/teranos/dep5/errors"

// Table maps values of T to dense identities of type I, starting at zero.
type Table[T comparable, I ~int] struct {
	values []T
	ids    map[T]I
}

// New returns an empty table.
func New[T comparable, I ~int]() *Table[T, I] {
	return &Table[T, I]{ids: make(map[T]I)}
}

// GetOrCreate returns the identity of v, allocating the next one if v has not
// been seen.
func (t *Table[T, I]) GetOrCreate(v T) I {
	if id, ok := t.ids[v]; ok {
		return id
	}
	id := I(len(t.values))
	t.values = append(t.values, v)
	t.ids[v] = id
	return id
}

// Lookup returns the identity of v if it has been interned.
func (t *Table[T, I]) Lookup(v T) (I, bool) {
	id, ok := t.ids[v]
	return id, ok
}

// Value returns the value behind id.
func (t *Table[T, I]) Value(id I) (T, bool) {
	if int(id) < 0 || int(id) >= len(t.values) {
		var zero T
		return zero, false
	}
	return t.values[id], true
}

// MustValue is Value for identities known to come from this table. It panics
// on a foreign identity.
func (t *Table[T, I]) MustValue(id I) T {
	v, ok := t.Value(id)
	if !ok {
		panic(errors.AssertionFailedf("atom: identity %d not in table of %d values", int(id), len(t.values)))
	}
	return v
}

// Len returns the number of interned values.
func (t *Table[T, I]) Len() int { return len(t.values) }

// Each calls fn for every identity in ascending order.
func (t *Table[T, I]) Each(fn func(id I, v T)) {
	for i, v := range t.values {
		fn(I(i), v)
	}
}

// Transform builds a table of U with the same identities as t. fn must be
// injective over the values of t; Transform panics with an assertion failure
// if two identities map to equal outputs.
func Transform[T, U comparable, I ~int](t *Table[T, I], fn func(T) U) *Table[U, I] {
	out, err := TryTransform(t, func(v T) (U, error) { return fn(v), nil })
	if err != nil {
		panic(err)
	}
	return out
}

// TryTransform is Transform for a fallible fn. The first error from fn is
// returned wrapped with the identity it failed on. A non-injective fn still
// panics.
func TryTransform[T, U comparable, I ~int](t *Table[T, I], fn func(T) (U, error)) (*Table[U, I], error) {
	out := &Table[U, I]{
		values: make([]U, 0, len(t.values)),
		ids:    make(map[U]I, len(t.values)),
	}
	for i, v := range t.values {
		id := I(i)
		mapped, err := fn(v)
		if err != nil {
			return nil, errors.Wrapf(err, "transforming identity %d", i)
		}
		if prev, dup := out.ids[mapped]; dup {
			panic(errors.AssertionFailedf("atom: transform maps identities %d and %d to the same value", int(prev), i))
		}
		out.ids[mapped] = id
		out.values = append(out.values, mapped)
	}
	return out, nil
}
