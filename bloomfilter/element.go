package bloomfilter

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Encoder turns an element into the bytes that get hashed.
// Elements with equal encodings are the same element to the filter.
type Encoder[E any] func(e E) ([]byte, error)

// Text encodes an element as the UTF-8 bytes of its textual form.
// Supported are strings, byte slices, encoding.TextMarshaler, fmt.Stringer
// and the boolean and numeric kinds. Nil values and anything else yield
// ErrInvalidElement.
func Text[E any](e E) ([]byte, error) {
	v := any(e)
	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidElement)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidElement, v)
		}
	}
	switch x := v.(type) {
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidElement, err)
		}
		return b, nil
	case fmt.Stringer:
		return utf8Bytes(x.String())
	}
	switch rv.Kind() {
	case reflect.String:
		return utf8Bytes(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), nil
		}
	case reflect.Bool:
		return strconv.AppendBool(nil, rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.AppendInt(nil, rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.AppendUint(nil, rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.AppendFloat(nil, rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.AppendFloat(nil, rv.Float(), 'g', -1, 64), nil
	case reflect.Complex64:
		return []byte(strconv.FormatComplex(rv.Complex(), 'g', -1, 64)), nil
	case reflect.Complex128:
		return []byte(strconv.FormatComplex(rv.Complex(), 'g', -1, 128)), nil
	}
	return nil, fmt.Errorf("%w: no stable text form for %T", ErrInvalidElement, v)
}

func utf8Bytes(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidElement, s)
	}
	return []byte(s), nil
}
