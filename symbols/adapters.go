package symbols

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Value returns a Constructor that ignores its arguments and returns v.
func Value(v any) Constructor {
	return func(context.Context, Args) (any, error) { return v, nil }
}

// Func adapts a plain function called with positional arguments. fn may take
// a leading context.Context and must return one value, optionally followed by
// an error. Arguments are converted between numeric kinds when needed.
// Func panics if fn does not have a supported signature.
func Func(fn any) Constructor {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		panic(fmt.Sprintf("symbols: Func expects a function, got %T", fn))
	}
	if ft.NumOut() == 0 || ft.NumOut() > 2 || (ft.NumOut() == 2 && ft.Out(1) != errorType) {
		panic(fmt.Sprintf("symbols: unsupported signature %s", ft))
	}

	offset := 0
	if ft.NumIn() > 0 && ft.In(0) == contextType {
		offset = 1
	}
	params := ft.NumIn() - offset

	return func(ctx context.Context, args Args) (any, error) {
		if len(args.Keyword) > 0 {
			return nil, fmt.Errorf("symbols: %s does not accept keyword arguments", ft)
		}
		n := len(args.Positional)
		if ft.IsVariadic() {
			if n < params-1 {
				return nil, fmt.Errorf("symbols: %s expects at least %d arguments, got %d", ft, params-1, n)
			}
		} else if n != params {
			return nil, fmt.Errorf("symbols: %s expects %d arguments, got %d", ft, params, n)
		}

		in := make([]reflect.Value, 0, offset+n)
		if offset == 1 {
			in = append(in, reflect.ValueOf(&ctx).Elem())
		}
		for i, a := range args.Positional {
			var pt reflect.Type
			if ft.IsVariadic() && i >= params-1 {
				pt = ft.In(ft.NumIn() - 1).Elem()
			} else {
				pt = ft.In(offset + i)
			}
			v, err := convert(a, pt)
			if err != nil {
				return nil, fmt.Errorf("symbols: argument %d: %w", i, err)
			}
			in = append(in, v)
		}

		out := fv.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}
}

func convert(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		if t.Kind() == reflect.Interface {
			iv := reflect.New(t).Elem()
			iv.Set(v)
			return iv, nil
		}
		return v, nil
	}
	if numeric(v.Kind()) && numeric(t.Kind()) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", a, t)
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Options adapts a constructor that takes its keyword arguments as a struct.
// Keywords are matched to fields by their `wire` tag or, case-insensitively,
// by field name. Components passed by reference (pointers, interfaces, maps,
// slices, funcs, channels) are assigned as is; other values are decoded with
// weak typing, so "5s" decodes into a time.Duration.
func Options[T any, R any](fn func(context.Context, T) (R, error)) Constructor {
	return func(ctx context.Context, args Args) (any, error) {
		if len(args.Positional) > 0 {
			return nil, fmt.Errorf("symbols: options constructor does not accept positional arguments")
		}
		var opts T
		if err := decodeOptions(args.Keyword, &opts); err != nil {
			return nil, err
		}
		return fn(ctx, opts)
	}
}

func decodeOptions(kw map[string]any, out any) error {
	rv := reflect.ValueOf(out).Elem()
	plain := make(map[string]any, len(kw))
	direct := make(map[int]reflect.Value)

	for k, v := range kw {
		if rv.Kind() == reflect.Struct && v != nil {
			if i, ok := fieldByKey(rv.Type(), k); ok {
				ft := rv.Type().Field(i).Type
				if byReference(ft.Kind()) && reflect.TypeOf(v).AssignableTo(ft) {
					direct[i] = reflect.ValueOf(v)
					continue
				}
			}
		}
		plain[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "wire",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("symbols: %w", err)
	}
	if err := dec.Decode(plain); err != nil {
		return fmt.Errorf("symbols: decoding options: %w", err)
	}
	for i, v := range direct {
		rv.Field(i).Set(v)
	}
	return nil
}

func fieldByKey(t reflect.Type, key string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("wire"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if strings.EqualFold(name, key) {
			return i, true
		}
	}
	return 0, false
}

func byReference(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
