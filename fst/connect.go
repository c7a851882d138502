package fst

// Connect trims A to its useful part: states which are reachable from the start
// state and from which a final state is reachable. State order is preserved.
// If no successful path exists, the result has no states at all.
func Connect(A *Automaton) *Automaton {
	if A.IsEmpty() {
		return New()
	}
	access := make([]bool, len(A.states))
	stack := []StateID{A.start}
	access[A.start] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range A.states[s].arcs {
			if !access[a.To] {
				access[a.To] = true
				stack = append(stack, a.To)
			}
		}
	}
	reverse := make([][]StateID, len(A.states))
	for i, s := range A.states {
		for _, a := range s.arcs {
			reverse[a.To] = append(reverse[a.To], StateID(i))
		}
	}
	coaccess := make([]bool, len(A.states))
	for i, s := range A.states {
		if s.final {
			coaccess[i] = true
			stack = append(stack, StateID(i))
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, from := range reverse[s] {
			if !coaccess[from] {
				coaccess[from] = true
				stack = append(stack, from)
			}
		}
	}
	if !coaccess[A.start] {
		tracer().Debugf("connect: no successful path, automaton is empty")
		return New()
	}
	renumber := make([]StateID, len(A.states))
	B := New()
	for i := range A.states {
		if access[i] && coaccess[i] {
			renumber[i] = B.AddState()
			B.states[renumber[i]].final = A.states[i].final
		} else {
			renumber[i] = NoState
		}
	}
	for i, s := range A.states {
		if renumber[i] == NoState {
			continue
		}
		for _, a := range s.arcs {
			if renumber[a.To] != NoState {
				B.AddArc(renumber[i], a.In, a.Out, renumber[a.To])
			}
		}
	}
	B.SetStart(renumber[A.start])
	if B.NumStates() < A.NumStates() {
		tracer().Debugf("connect: %d of %d states kept", B.NumStates(), A.NumStates())
	}
	return B
}
