package fst

// Compose computes the relational composition of A and B: a pair (x, z) is
// in the result iff A maps x to some y and B maps y to z.
//
// Epsilons are handled by a sequencing filter, which is part of the composed
// state. With filter state 0 both automata may move; after B moved alone on an
// arc with epsilon input, A may not move alone again until both moved together.
// This admits exactly one interleaving of epsilon moves and prevents redundant
// paths.
//
// The result is trimmed. If no pair is in the relation, the result has no
// states.
func Compose(A, B *Automaton) *Automaton {
	if A.IsEmpty() || B.IsEmpty() {
		return New()
	}
	type cstate struct {
		a, b   StateID
		filter int8
	}
	C := New()
	ids := make(map[cstate]StateID)
	var queue []cstate // queue[i] is state i of C
	cid := func(cs cstate) StateID {
		if s, ok := ids[cs]; ok {
			return s
		}
		s := C.AddState()
		ids[cs] = s
		C.states[s].final = A.states[cs.a].final && B.states[cs.b].final
		queue = append(queue, cs)
		return s
	}
	C.SetStart(cid(cstate{A.start, B.start, 0}))
	for i := 0; i < len(queue); i++ {
		cs := queue[i]
		from := StateID(i)
		for _, ea := range A.states[cs.a].arcs {
			if ea.Out == Eps {
				if cs.filter == 0 { // A moves alone
					C.AddArc(from, ea.In, Eps, cid(cstate{ea.To, cs.b, 0}))
				}
				continue
			}
			for _, k := range B.arcsOn(cs.b, ea.Out) {
				eb := B.states[cs.b].arcs[k]
				C.AddArc(from, ea.In, eb.Out, cid(cstate{ea.To, eb.To, 0}))
			}
		}
		for _, k := range B.arcsOn(cs.b, Eps) { // B moves alone
			eb := B.states[cs.b].arcs[k]
			C.AddArc(from, Eps, eb.Out, cid(cstate{cs.a, eb.To, 1}))
		}
	}
	tracer().Debugf("compose: %d x %d states -> %d states", A.NumStates(), B.NumStates(), C.NumStates())
	return Connect(C)
}
