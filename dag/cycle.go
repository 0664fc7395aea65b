package dag

// findCycle walks the remaining nodes depth-first and returns the first
// chain that closes a cycle, such as [a b a]. It returns nil if none is found.
func (g *Graph) findCycle(nodes []string, remaining map[string]bool) []string {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(nodes))
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = onStack
		stack = append(stack, name)
		for _, d := range g.deps[name] {
			if !remaining[d] {
				continue
			}
			switch state[d] {
			case onStack:
				for i, s := range stack {
					if s == d {
						chain := make([]string, 0, len(stack)-i+1)
						chain = append(chain, stack[i:]...)
						return append(chain, d)
					}
				}
			case unvisited:
				if chain := visit(d); chain != nil {
					return chain
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, name := range nodes {
		if state[name] == unvisited {
			if chain := visit(name); chain != nil {
				return chain
			}
		}
	}
	return nil
}
