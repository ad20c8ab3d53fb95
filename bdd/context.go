package bdd

import (
	"reflect"
	"sort"
)

// Context is the keyed store shared by the setup and every step of one scenario.
// Each key holds exactly one value; Set replaces both the value and its type.
type Context struct {
	values map[string]any
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Set stores value under key, replacing any previous value.
func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Has reports whether key holds a value.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns the stored keys in sorted order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (c *Context) Len() int {
	return len(c.values)
}

// Get returns the value stored under key as T.
// The stored value's dynamic type must be exactly T; no conversion is attempted,
// so an int is not an int64 and a concrete type does not satisfy an interface T.
func Get[T any](c *Context, key string) (T, error) {
	var zero T

	raw, ok := c.values[key]
	if !ok {
		return zero, &LookupError{Key: key, Want: reflect.TypeFor[T](), Err: ErrKeyNotFound}
	}

	want := reflect.TypeFor[T]()
	if raw == nil {
		if nilable(want) {
			return zero, nil
		}
		return zero, &LookupError{Key: key, Want: want, Err: ErrTypeMismatch}
	}

	got := reflect.TypeOf(raw)
	if got != want {
		return zero, &LookupError{Key: key, Want: want, Got: got, Err: ErrTypeMismatch}
	}

	return raw.(T), nil
}

// MustGet is like Get but panics with the lookup error.
// Inside a step the panic is reported as an exception.
func MustGet[T any](c *Context, key string) T {
	v, err := Get[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	default:
		return false
	}
}
