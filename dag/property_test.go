package dag

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/spec"
)

// randomSpec declares n components. Node i references a random subset of
// nodes with a lower index, so the graph is acyclic. When cycle > 0 node 0
// also references node cycle-1, closing a cycle over nodes 0..cycle-1.
func randomSpec(n, cycle int, seed int64) spec.Spec {
	rng := rand.New(rand.NewSource(seed))
	s := make(spec.Spec, 0, n)
	for i := 0; i < n; i++ {
		var refs []any
		if i > 0 && i < cycle {
			refs = append(refs, fmt.Sprintf("{n%d}", i-1))
		}
		for j := 0; j < i; j++ {
			if rng.Intn(3) == 0 {
				refs = append(refs, fmt.Sprintf("{n%d}", j))
			}
		}
		if i == 0 && cycle > 0 {
			refs = append(refs, fmt.Sprintf("{n%d}", cycle-1))
		}
		s = append(s, spec.Item{Key: fmt.Sprintf("pkg.T n%d", i), Value: refs})
	}
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	return s
}

func TestProperty_OrderRespectsDependencies(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("every entry follows its dependencies", prop.ForAll(
		func(n int, seed int64) bool {
			entries, err := spec.Parse(randomSpec(n, 0, seed))
			if err != nil {
				return false
			}
			g := New(entries)
			order, err := g.Order()
			if err != nil || len(order) != n {
				return false
			}
			pos := make(map[string]int, n)
			for i, name := range order {
				pos[name] = i
			}
			for _, name := range order {
				for _, d := range g.Dependencies(name) {
					if pos[d] >= pos[name] {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.Int64(),
	))
	properties.TestingRun(t)
}

func TestProperty_CycleIsReportedCompletely(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("every cycle member is named and the chain is closed", prop.ForAll(
		func(n, cycle int, seed int64) bool {
			if cycle > n {
				cycle = n
			}
			entries, err := spec.Parse(randomSpec(n, cycle, seed))
			if err != nil {
				return false
			}
			g := New(entries)
			_, err = g.Order()
			we, ok := werrors.AsWiringError(err)
			if !ok || we.Code != werrors.ErrCodeCircularDependency {
				return false
			}
			named := make(map[string]bool)
			for _, name := range we.Names {
				named[name] = true
			}
			for i := 0; i < cycle; i++ {
				if !named[fmt.Sprintf("n%d", i)] {
					return false
				}
			}
			chain := we.Chain
			if len(chain) < 2 || chain[0] != chain[len(chain)-1] {
				return false
			}
			for i := 0; i+1 < len(chain); i++ {
				if !contains(g.Dependencies(chain[i]), chain[i+1]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 12),
		gen.Int64(),
	))
	properties.TestingRun(t)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
