package fst

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Path is a sequence of arcs from the start state to a final state.
type Path []Arc

// Paths enumerates the accepting paths of A in depth-first order, calling
// visit for each of them. The path handed to visit is only valid during the
// call. Enumeration stops early if visit returns false.
//
// limit caps the number of paths visited, 0 meaning no limit. Paths returns
// true if enumeration was cut short by the limit. Arcs leading back to a state
// already on the current path are not followed, so enumeration terminates for
// cyclic automata as well.
func Paths(A *Automaton, visit func(Path) bool, limit int) (truncated bool) {
	if A.IsEmpty() {
		return false
	}
	type frame struct {
		state StateID
		next  int // next arc to follow
	}
	onPath := make([]bool, len(A.states))
	stack := arraystack.New()
	var path Path
	count := 0
	enter := func(s StateID) bool { // returns false to stop enumeration
		onPath[s] = true
		stack.Push(&frame{state: s})
		if A.states[s].final {
			if limit > 0 && count >= limit {
				truncated = true
				return false
			}
			count++
			if !visit(path) {
				return false
			}
		}
		return true
	}
	if !enter(A.start) {
		return
	}
	for !stack.Empty() {
		top, _ := stack.Peek()
		f := top.(*frame)
		arcs := A.states[f.state].arcs
		if f.next >= len(arcs) {
			stack.Pop()
			onPath[f.state] = false
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
			continue
		}
		a := arcs[f.next]
		f.next++
		if onPath[a.To] {
			tracer().Debugf("paths: skipping cycle at state %d", a.To)
			continue
		}
		path = append(path, a)
		if !enter(a.To) {
			return
		}
	}
	return
}

// CountPaths returns the number of accepting paths of A, up to limit.
func CountPaths(A *Automaton, limit int) int {
	n := 0
	Paths(A, func(Path) bool {
		n++
		return true
	}, limit)
	return n
}
