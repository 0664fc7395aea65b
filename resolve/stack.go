package resolve

import (
	"context"
)

type frameKey struct{}

// frame is one level of the resolution stack carried in a context.
type frame struct {
	table  *Table
	name   string
	global bool
	parent *frame
}

func currentFrame(ctx context.Context) *frame {
	f, _ := ctx.Value(frameKey{}).(*frame)
	return f
}

func withFrame(ctx context.Context, f *frame) context.Context {
	return context.WithValue(ctx, frameKey{}, f)
}

// holds reports whether t is already resolving name in this call chain.
func (f *frame) holds(t *Table, name string) bool {
	for ; f != nil; f = f.parent {
		if f.table == t && f.name == name {
			return true
		}
	}
	return false
}

// inGlobal reports whether the call chain holds t's container-wide lock.
func (f *frame) inGlobal(t *Table) bool {
	for ; f != nil; f = f.parent {
		if f.table == t && f.global {
			return true
		}
	}
	return false
}

// names returns the names t is resolving, outermost first.
func (f *frame) names(t *Table) []string {
	var out []string
	for ; f != nil; f = f.parent {
		if t == nil || f.table == t {
			out = append(out, f.name)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Stack returns the names being resolved in ctx, outermost first.
func Stack(ctx context.Context) []string {
	return currentFrame(ctx).names(nil)
}
