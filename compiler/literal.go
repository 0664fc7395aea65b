package compiler

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// goLiteral renders v as a Go expression whose dynamic type is the type
// of v. Only unnamed builtin types and slices, arrays and maps of them
// are supported.
func goLiteral(v any) (string, bool) {
	if v == nil {
		return "nil", true
	}
	return literalOf(reflect.ValueOf(v))
}

func literalOf(rv reflect.Value) (string, bool) {
	t := rv.Type()
	if t.PkgPath() != "" {
		return "", false
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return "nil", true
		}
		return literalOf(rv.Elem())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.String:
		return strconv.Quote(rv.String()), true
	case reflect.Int:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return t.String() + "(" + strconv.FormatInt(rv.Int(), 10) + ")", true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return t.String() + "(" + strconv.FormatUint(rv.Uint(), 10) + ")", true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		return t.String() + "(" + strconv.FormatFloat(f, 'g', -1, t.Bits()) + ")", true
	case reflect.Slice, reflect.Array, reflect.Map:
		return compositeOf(rv)
	}
	return "", false
}

func compositeOf(rv reflect.Value) (string, bool) {
	typ, ok := typeExpr(rv.Type())
	if !ok {
		return "", false
	}
	if rv.Kind() != reflect.Array && rv.IsNil() {
		return typ + "(nil)", true
	}

	var elems []string
	if rv.Kind() == reflect.Map {
		for _, k := range rv.MapKeys() {
			key, ok := literalOf(k)
			if !ok {
				return "", false
			}
			val, ok := literalOf(rv.MapIndex(k))
			if !ok {
				return "", false
			}
			elems = append(elems, key+": "+val)
		}
		sort.Strings(elems)
	} else {
		for i := 0; i < rv.Len(); i++ {
			val, ok := literalOf(rv.Index(i))
			if !ok {
				return "", false
			}
			elems = append(elems, val)
		}
	}
	return typ + "{" + strings.Join(elems, ", ") + "}", true
}

// typeExpr renders an unnamed type.
func typeExpr(t reflect.Type) (string, bool) {
	if t.PkgPath() != "" {
		return "", false
	}
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any", true
		}
	case reflect.Bool, reflect.String, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return t.String(), true
	case reflect.Slice:
		elem, ok := typeExpr(t.Elem())
		return "[]" + elem, ok
	case reflect.Array:
		elem, ok := typeExpr(t.Elem())
		return fmt.Sprintf("[%d]%s", t.Len(), elem), ok
	case reflect.Map:
		key, ok := typeExpr(t.Key())
		if !ok {
			return "", false
		}
		elem, ok := typeExpr(t.Elem())
		return "map[" + key + "]" + elem, ok
	}
	return "", false
}
