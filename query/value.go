package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// ValueType tags how a serialized condition value is parsed back into a
// native bind value at execution time.
type ValueType string

const (
	// Integer values bind as int64. Booleans are canonicalized to integer
	// 1/0 at encode time and are indistinguishable from integers downstream.
	Integer ValueType = "integer"
	// Float values bind as float64.
	Float ValueType = "float"
	// Text values bind as strings.
	Text ValueType = "text"
	// Null values bind as a true SQL NULL.
	Null ValueType = "null"
	// Column marks the value as a literal table.column reference used in
	// join predicates. It renders inline and is never bound as a parameter.
	Column ValueType = "column"
)

// Value is a condition value in its serialized form plus the type tag that
// reconstructs the native bind value.
type Value struct {
	Type ValueType
	Raw  string
}

// Encode converts a native value into its serialized form. The type tag is
// derived from the value's dynamic type, not from the target column; a
// mismatch between the two surfaces at bind time, not here.
func Encode(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{Type: Null, Raw: "null"}
	case bool:
		if x {
			return Value{Type: Integer, Raw: "1"}
		}
		return Value{Type: Integer, Raw: "0"}
	case int:
		return Value{Type: Integer, Raw: strconv.FormatInt(int64(x), 10)}
	case int8:
		return Value{Type: Integer, Raw: strconv.FormatInt(int64(x), 10)}
	case int16:
		return Value{Type: Integer, Raw: strconv.FormatInt(int64(x), 10)}
	case int32:
		return Value{Type: Integer, Raw: strconv.FormatInt(int64(x), 10)}
	case int64:
		return Value{Type: Integer, Raw: strconv.FormatInt(x, 10)}
	case uint:
		return Value{Type: Integer, Raw: strconv.FormatUint(uint64(x), 10)}
	case uint8:
		return Value{Type: Integer, Raw: strconv.FormatUint(uint64(x), 10)}
	case uint16:
		return Value{Type: Integer, Raw: strconv.FormatUint(uint64(x), 10)}
	case uint32:
		return Value{Type: Integer, Raw: strconv.FormatUint(uint64(x), 10)}
	case uint64:
		return Value{Type: Integer, Raw: strconv.FormatUint(x, 10)}
	case float32:
		return Value{Type: Float, Raw: strconv.FormatFloat(float64(x), 'g', -1, 32)}
	case float64:
		return Value{Type: Float, Raw: strconv.FormatFloat(x, 'g', -1, 64)}
	case string:
		return Value{Type: Text, Raw: x}
	case []byte:
		return Value{Type: Text, Raw: string(x)}
	case time.Time:
		return Value{Type: Text, Raw: x.Format(time.RFC3339)}
	}

	// Typed nil pointers encode as NULL like untyped nil; non-nil pointers
	// encode as their element.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Value{Type: Null, Raw: "null"}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return Value{Type: Text, Raw: s.String()}
	}
	if rv.Kind() == reflect.Pointer {
		return Encode(rv.Elem().Interface())
	}

	// Everything else round-trips through its JSON form as text.
	if b, err := json.Marshal(v); err == nil {
		return Value{Type: Text, Raw: string(b)}
	}
	return Value{Type: Text, Raw: fmt.Sprint(v)}
}

// ColumnRef builds a value holding a literal table.column reference.
func ColumnRef(ref string) Value {
	return Value{Type: Column, Raw: ref}
}

// Bind reconstructs the native bind value from the serialized form,
// dispatching on the type tag. A value whose serialized form does not parse
// under its claimed type is a CoercionError; it is propagated, not coerced.
func (v Value) Bind() (any, error) {
	switch v.Type {
	case Integer:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, &CoercionError{Raw: v.Raw, Type: v.Type, Cause: err}
		}
		return n, nil
	case Float:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return nil, &CoercionError{Raw: v.Raw, Type: v.Type, Cause: err}
		}
		return f, nil
	case Null:
		return nil, nil
	case Column:
		return nil, &CoercionError{Raw: v.Raw, Type: v.Type, Cause: errors.New("column reference cannot be bound")}
	default:
		return v.Raw, nil
	}
}
