package orbitsdk

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

var errCyclicValue = errors.New("cyclic value")

// Canonicalizer is implemented by values that expand into a plain JSON value
// before encoding. The expansion may itself contain Canonicalizers.
type Canonicalizer interface {
	Canonical() any
}

type jsonMarshaler interface {
	MarshalJSON() ([]byte, error)
}

var (
	jsonMarshalerType = reflect.TypeOf((*jsonMarshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// MarshalPayload expands v and encodes it as JSON. Values with no JSON
// representation, cycles included, fail with a *SerializationError.
func MarshalPayload(v Canonicalizer) ([]byte, error) {
	w := &walker{seen: make(map[visit]struct{})}
	plain, err := w.canonicalize(v, "$")
	if err != nil {
		return nil, err
	}

	data, err := jsonMarshal(plain)
	if err != nil {
		return nil, &SerializationError{Path: "$", Err: err}
	}

	return data, nil
}

// visit identifies a map, slice or pointer on the path being walked
type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// walker expands a value tree into plain JSON values. seen holds the
// containers between the root and the current value only.
type walker struct {
	seen map[visit]struct{}
}

func (w *walker) enter(rv reflect.Value, path string) (func(), error) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.len = rv.Len()
	}

	if _, ok := w.seen[key]; ok {
		return nil, &SerializationError{Path: path, Err: errCyclicValue}
	}

	w.seen[key] = struct{}{}
	return func() { delete(w.seen, key) }, nil
}

func (w *walker) canonicalize(v any, path string) (any, error) {
	switch t := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return t, nil

	case float32:
		return t, checkFloat(float64(t), path)

	case float64:
		return t, checkFloat(t, path)

	case Canonicalizer:
		if isNilPointer(t) {
			return nil, nil
		}
		return w.canonicalize(t.Canonical(), path)
	}

	return w.canonicalizeValue(reflect.ValueOf(v), path)
}

// canonicalizeValue handles containers, pointers and structs, and rejects
// kinds JSON cannot carry.
func (w *walker) canonicalizeValue(rv reflect.Value, path string) (any, error) {
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return nil, &SerializationError{Path: path, Err: fmt.Errorf("unsupported type %s", rv.Type())}

	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
	}

	// types that encode themselves
	if rv.Type().Implements(jsonMarshalerType) || rv.Type().Implements(textMarshalerType) {
		return rv.Interface(), nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		leave, err := w.enter(rv, path)
		if err != nil {
			return nil, err
		}
		defer leave()
		return w.canonicalize(rv.Elem().Interface(), path)

	case reflect.Interface:
		return w.canonicalize(rv.Elem().Interface(), path)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, &SerializationError{Path: path, Err: fmt.Errorf("unsupported map key type %s", rv.Type().Key())}
		}

		leave, err := w.enter(rv, path)
		if err != nil {
			return nil, err
		}
		defer leave()

		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})

		out := make(map[string]any, len(keys))
		for _, k := range keys {
			val, err := w.canonicalize(rv.MapIndex(k).Interface(), path+"."+k.String())
			if err != nil {
				return nil, err
			}
			out[k.String()] = val
		}
		return out, nil

	case reflect.Slice, reflect.Array:
		// []byte encodes as base64
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface(), nil
		}

		if rv.Kind() == reflect.Slice && rv.Len() > 0 {
			leave, err := w.enter(rv, path)
			if err != nil {
				return nil, err
			}
			defer leave()
		}

		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			val, err := w.canonicalize(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil

	case reflect.Struct:
		// fields are checked here, encoding is left to the json tags
		typ := rv.Type()
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			tag := f.Tag.Get("json")
			if !f.IsExported() || tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			if name == "" {
				name = f.Name
			}
			if _, err := w.canonicalize(rv.Field(i).Interface(), path+"."+name); err != nil {
				return nil, err
			}
		}
		return rv.Interface(), nil
	}

	// named scalars
	return rv.Interface(), nil
}

func checkFloat(f float64, path string) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &SerializationError{Path: path, Err: errors.New("unsupported float value")}
	}
	return nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
