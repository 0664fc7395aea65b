package spec

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/validation"
)

// Default placeholder delimiters.
const (
	DefaultOpen  = "{"
	DefaultClose = "}"
)

// keySeparator separates locator and name in a component key.
const keySeparator = " "

// factorySeparator separates name and factory in a component key.
const factorySeparator = "."

// Parser classifies specification entries and parses their values.
type Parser struct {
	open  string
	close string
}

// Option configures a Parser.
type Option func(*Parser)

// WithDelimiters sets the placeholder delimiters.
func WithDelimiters(open, close string) Option {
	return func(p *Parser) {
		p.open = open
		p.close = close
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{open: DefaultOpen, close: DefaultClose}
	for _, opt := range opts {
		opt(p)
	}
	err := validation.New().
		Required("delimiters.open", p.open).
		Required("delimiters.close", p.close).
		Delimiter("delimiters.open", p.open).
		Delimiter("delimiters.close", p.close).
		Err()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses s with the default delimiters.
func Parse(s Spec) ([]*Entry, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.Parse(s)
}

// Parse classifies every item of s. Entries are returned in specification order.
func (p *Parser) Parse(s Spec) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(s))
	byName := make(map[string]string, len(s))
	for i, it := range s {
		e, err := p.parseKey(it.Key)
		if err != nil {
			return nil, err
		}
		if prev, ok := byName[e.Name]; ok {
			return nil, werrors.DuplicateName(e.Name, prev, it.Key)
		}
		byName[e.Name] = it.Key
		e.Index = i
		e.Raw = it.Value
		if e.Kind == Component {
			args, err := p.arguments(it.Key, it.Value)
			if err != nil {
				return nil, err
			}
			e.Args = args
		} else {
			e.Value = p.value(it.Value, true)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (p *Parser) parseKey(key string) (*Entry, error) {
	if key == "" {
		return nil, werrors.InvalidKey(key, "key must not be empty")
	}
	if !strings.Contains(key, keySeparator) {
		if err := p.checkName(key, key); err != nil {
			return nil, err
		}
		return &Entry{Key: key, Name: key, Kind: Constant}, nil
	}
	if strings.Count(key, keySeparator) > 1 {
		return nil, werrors.InvalidKey(key, "expected exactly one space between locator and name")
	}
	locator, rest, _ := strings.Cut(key, keySeparator)
	if locator == "" {
		return nil, werrors.InvalidKey(key, "missing constructor locator")
	}
	if rest == "" {
		return nil, werrors.InvalidKey(key, "missing entry name")
	}
	name, factory, hasFactory := strings.Cut(rest, factorySeparator)
	if name == "" {
		return nil, werrors.InvalidKey(key, "missing entry name")
	}
	if hasFactory {
		if factory == "" {
			return nil, werrors.InvalidKey(key, "missing factory name")
		}
		if strings.Contains(factory, factorySeparator) {
			return nil, werrors.InvalidKey(key, "nested factory methods are not supported")
		}
	}
	if err := p.checkName(key, name); err != nil {
		return nil, err
	}
	return &Entry{Key: key, Name: name, Kind: Component, Locator: locator, Factory: factory}, nil
}

func (p *Parser) checkName(key, name string) error {
	if strings.Contains(name, p.open) || strings.Contains(name, p.close) {
		return werrors.InvalidKey(key, "entry names must not contain placeholder delimiters")
	}
	return nil
}

// arguments normalizes a component value into positional and keyword arguments.
func (p *Parser) arguments(key string, raw any) (Arguments, error) {
	var args Arguments
	if raw == nil {
		return args, nil
	}
	if _, ok := raw.(string); ok {
		args.Positional = []Value{p.value(raw, false)}
		return args, nil
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if isBytes(rv) {
			break
		}
		for i := 0; i < rv.Len(); i++ {
			args.Positional = append(args.Positional, p.value(rv.Index(i).Interface(), false))
		}
		return args, nil
	case reflect.Map:
		type indexed struct {
			index int64
			value Value
		}
		var positional []indexed
		for _, k := range sortedKeys(rv) {
			val := p.value(rv.MapIndex(k).Interface(), false)
			kv := unwrap(k)
			switch {
			case kv.Kind() == reflect.String:
				args.Keyword = append(args.Keyword, Keyword{Name: kv.String(), Value: val})
			case isInt(kv):
				positional = append(positional, indexed{index: intOf(kv), value: val})
			default:
				return args, werrors.InvalidKey(key, fmt.Sprintf("argument keys must be integers or strings, got %s", kv.Type()))
			}
		}
		for _, pv := range positional {
			args.Positional = append(args.Positional, pv.value)
		}
		return args, nil
	}
	args.Positional = []Value{p.value(raw, false)}
	return args, nil
}

// value parses v. Templates are recognized only when interpolate is set.
func (p *Parser) value(v any, interpolate bool) Value {
	if s, ok := v.(string); ok {
		if name, ok := p.placeholder(s); ok {
			return Ref{Name: name}
		}
		if interpolate {
			if parts, ok := p.template(s); ok {
				return Template{Parts: parts}
			}
		}
		return Literal{Value: v}
	}
	if v == nil {
		return Literal{}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if isBytes(rv) {
			return Literal{Value: v}
		}
		items := make([]Value, rv.Len())
		dynamic := false
		for i := range items {
			items[i] = p.value(rv.Index(i).Interface(), interpolate)
			dynamic = dynamic || !isLiteral(items[i])
		}
		if !dynamic {
			return Literal{Value: v}
		}
		return List{Items: items}
	case reflect.Map:
		m := Map{Kind: mapKind(rv.Type().Key())}
		dynamic := false
		for _, k := range sortedKeys(rv) {
			val := p.value(rv.MapIndex(k).Interface(), interpolate)
			dynamic = dynamic || !isLiteral(val)
			m.Entries = append(m.Entries, MapEntry{Key: k.Interface(), Value: val})
		}
		if !dynamic {
			return Literal{Value: v}
		}
		return m
	}
	return Literal{Value: v}
}

// placeholder reports whether s is exactly one placeholder and returns its name.
func (p *Parser) placeholder(s string) (string, bool) {
	if len(s) <= len(p.open)+len(p.close) {
		return "", false
	}
	if !strings.HasPrefix(s, p.open) || !strings.HasSuffix(s, p.close) {
		return "", false
	}
	inner := s[len(p.open) : len(s)-len(p.close)]
	if strings.Contains(inner, p.open) || strings.Contains(inner, p.close) {
		return "", false
	}
	return inner, true
}

// template splits s into text and placeholder parts. It reports false when s
// holds no placeholder.
func (p *Parser) template(s string) ([]Part, bool) {
	var parts []Part
	found := false
	text := ""
	rest := s
	for {
		start := strings.Index(rest, p.open)
		if start < 0 {
			text += rest
			break
		}
		after := rest[start+len(p.open):]
		end := strings.Index(after, p.close)
		if end < 0 {
			text += rest
			break
		}
		inner := after[:end]
		if inner == "" || strings.Contains(inner, p.open) {
			text += rest[:start+len(p.open)]
			rest = after
			continue
		}
		text += rest[:start]
		if text != "" {
			parts = append(parts, Part{Text: text})
			text = ""
		}
		parts = append(parts, Part{Ref: inner})
		found = true
		rest = after[end+len(p.close):]
	}
	if text != "" {
		parts = append(parts, Part{Text: text})
	}
	return parts, found
}

func isLiteral(v Value) bool {
	_, ok := v.(Literal)
	return ok
}

func isBytes(rv reflect.Value) bool {
	return rv.Type().Elem().Kind() == reflect.Uint8
}

var (
	stringType = reflect.TypeOf("")
	intType    = reflect.TypeOf(0)
)

func mapKind(key reflect.Type) MapKind {
	switch key {
	case stringType:
		return StringKeys
	case intType:
		return IntKeys
	}
	return AnyKeys
}

func unwrap(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}
	return v
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func intOf(v reflect.Value) int64 {
	if v.CanInt() {
		return v.Int()
	}
	return int64(v.Uint())
}

// sortedKeys orders map keys: integers numerically, then strings, then
// anything else by its printed form.
func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	rank := func(v reflect.Value) int {
		v = unwrap(v)
		switch {
		case isInt(v):
			return 0
		case v.Kind() == reflect.String:
			return 1
		}
		return 2
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := unwrap(keys[i]), unwrap(keys[j])
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra < rb
		}
		switch ra {
		case 0:
			return intOf(a) < intOf(b)
		case 1:
			return a.String() < b.String()
		}
		return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
	})
	return keys
}
