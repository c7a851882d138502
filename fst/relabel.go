package fst

// Relabel returns a copy of A where input labels are mapped by ipairs and
// output labels by opairs. Labels without an entry are kept. Either map may
// be nil.
func Relabel(A *Automaton, ipairs, opairs map[Label]Label) *Automaton {
	B := A.Copy()
	for i := range B.states {
		arcs := B.states[i].arcs
		for k := range arcs {
			if l, ok := ipairs[arcs[k].In]; ok {
				arcs[k].In = l
			}
			if l, ok := opairs[arcs[k].Out]; ok {
				arcs[k].Out = l
			}
		}
	}
	return B
}

// Project returns an acceptor for the input (output=false) or the output
// (output=true) tape of A.
func Project(A *Automaton, output bool) *Automaton {
	B := A.Copy()
	for i := range B.states {
		arcs := B.states[i].arcs
		for k := range arcs {
			if output {
				arcs[k].In = arcs[k].Out
			} else {
				arcs[k].Out = arcs[k].In
			}
		}
	}
	return B
}
