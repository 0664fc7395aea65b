package compiler

import (
	"strings"
	"unicode"

	werrors "github.com/kbukum/wirekit/errors"
)

// reserved are the method names generated containers define themselves.
var reserved = map[string]bool{"Get": true, "Names": true, "Aio": true, "Close": true}

// methodName converts an entry name to an exported Go identifier:
// "db_pool" and "db-pool" become "DbPool".
func methodName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return "Entry"
	}
	if first := []rune(out)[0]; !unicode.IsUpper(first) {
		out = "E" + out
	}
	return out
}

// methodNames maps every entry name to its method name, rejecting
// collisions.
func methodNames(names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	owner := make(map[string]string, len(names))
	for _, name := range names {
		m := methodName(name)
		if reserved[m] {
			return nil, werrors.DuplicateName(m, name).
				WithDetail("reason", "method name is reserved")
		}
		if prev, ok := owner[m]; ok {
			return nil, werrors.DuplicateName(m, prev, name).
				WithDetail("reason", "entries map to the same method name")
		}
		owner[m] = name
		out[name] = m
	}
	return out, nil
}
