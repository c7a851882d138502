package fst

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/morphdcg"
	"github.com/npillmayer/morphdcg/fst/sparse"
)

// StateID identifies a state of an automaton. States are numbered from 0 in
// the order of creation.
type StateID int

// NoState is the start state of an automaton without a start.
const NoState StateID = -1

// Arc is a transition of an automaton. In and Out are the labels on the input
// and output tape, respectively.
type Arc struct {
	In, Out Label
	To      StateID
}

// IsEpsilon is true for (ε,ε)-arcs.
func (a Arc) IsEpsilon() bool {
	return a.In == Eps && a.Out == Eps
}

func (a Arc) String() string {
	return fmt.Sprintf("-%d:%d-> %d", a.In, a.Out, a.To)
}

type state struct {
	arcs  []Arc
	final bool
}

// Automaton is an unweighted finite-state transducer. An automaton where every
// arc has equal input and output labels is an acceptor.
type Automaton struct {
	states []state
	start  StateID
	mu     sync.Mutex        // guards index
	index  *sparse.IntMatrix // lazily built arc index (state × input label)
}

// New creates an empty automaton: no states, no start state.
func New() *Automaton {
	return &Automaton{start: NoState}
}

// AddState adds a new, non-final state and returns its ID.
func (A *Automaton) AddState() StateID {
	A.states = append(A.states, state{})
	A.index = nil
	return StateID(len(A.states) - 1)
}

// AddArc adds an arc from one state to another. Both states must exist.
func (A *Automaton) AddArc(from StateID, in, out Label, to StateID) {
	A.check("AddArc", from)
	A.check("AddArc", to)
	if in < 0 || out < 0 {
		morphdcg.Violation("AddArc", "negative label %d:%d", in, out)
	}
	A.states[from].arcs = append(A.states[from].arcs, Arc{In: in, Out: out, To: to})
	A.index = nil
}

// SetStart sets the start state.
func (A *Automaton) SetStart(s StateID) {
	A.check("SetStart", s)
	A.start = s
}

// SetFinal sets or clears the final flag of a state.
func (A *Automaton) SetFinal(s StateID, final bool) {
	A.check("SetFinal", s)
	A.states[s].final = final
}

// Start returns the start state, or NoState.
func (A *Automaton) Start() StateID {
	return A.start
}

// IsFinal is a predicate for state s.
func (A *Automaton) IsFinal(s StateID) bool {
	A.check("IsFinal", s)
	return A.states[s].final
}

// Arcs returns the arcs leaving state s. Clients must not modify the slice.
func (A *Automaton) Arcs(s StateID) []Arc {
	A.check("Arcs", s)
	return A.states[s].arcs
}

// NumStates returns the number of states.
func (A *Automaton) NumStates() int {
	return len(A.states)
}

// NumArcs returns the total number of arcs.
func (A *Automaton) NumArcs() int {
	n := 0
	for _, s := range A.states {
		n += len(s.arcs)
	}
	return n
}

// IsEmpty is true if the automaton accepts nothing because it has no start state.
// Trimmed automata without successful paths are always empty.
func (A *Automaton) IsEmpty() bool {
	return A.start == NoState || len(A.states) == 0
}

// Finals returns the final states in ascending order.
func (A *Automaton) Finals() []StateID {
	var finals []StateID
	for i, s := range A.states {
		if s.final {
			finals = append(finals, StateID(i))
		}
	}
	return finals
}

// Copy returns a deep copy of A.
func (A *Automaton) Copy() *Automaton {
	B := &Automaton{start: A.start, states: make([]state, len(A.states))}
	for i, s := range A.states {
		B.states[i].final = s.final
		B.states[i].arcs = append([]Arc(nil), s.arcs...)
	}
	return B
}

// IsAcceptor is true if every arc carries equal labels on both tapes.
func (A *Automaton) IsAcceptor() bool {
	for _, s := range A.states {
		for _, a := range s.arcs {
			if a.In != a.Out {
				return false
			}
		}
	}
	return true
}

// IsDeterministic is true if A has no (ε,ε)-arcs and no state has two arcs
// with the same label pair.
func (A *Automaton) IsDeterministic() bool {
	for _, s := range A.states {
		seen := make(map[uint64]bool, len(s.arcs))
		for _, a := range s.arcs {
			if a.IsEpsilon() {
				return false
			}
			k := pairKey(a.In, a.Out)
			if seen[k] {
				return false
			}
			seen[k] = true
		}
	}
	return true
}

// Labels returns every label used on either tape, sorted.
func (A *Automaton) Labels() []Label {
	set := make(map[Label]bool)
	for _, s := range A.states {
		for _, a := range s.arcs {
			set[a.In], set[a.Out] = true, true
		}
	}
	labels := make([]Label, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// Accepts simulates A on an input label sequence, ignoring the output tape.
// Arcs with epsilon input are followed without consuming input.
func (A *Automaton) Accepts(input []Label) bool {
	if A.IsEmpty() {
		return false
	}
	current := A.inputClosure([]StateID{A.start})
	for _, l := range input {
		var next []StateID
		for _, s := range current {
			for _, k := range A.arcsOn(s, l) {
				next = append(next, A.states[s].arcs[k].To)
			}
		}
		if len(next) == 0 {
			return false
		}
		current = A.inputClosure(next)
	}
	for _, s := range current {
		if A.states[s].final {
			return true
		}
	}
	return false
}

// inputClosure extends a set of states by everything reachable over arcs with
// epsilon input.
func (A *Automaton) inputClosure(states []StateID) []StateID {
	seen := make(map[StateID]bool, len(states))
	stack := make([]StateID, 0, len(states))
	for _, s := range states {
		if !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	closure := append([]StateID(nil), stack...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, k := range A.arcsOn(s, Eps) {
			to := A.states[s].arcs[k].To
			if !seen[to] {
				seen[to] = true
				stack = append(stack, to)
				closure = append(closure, to)
			}
		}
	}
	return closure
}

// arcsOn returns the positions of arcs leaving s with input label l.
func (A *Automaton) arcsOn(s StateID, l Label) []int32 {
	index := A.arcIndex()
	if int(l) >= index.N() {
		return nil
	}
	return index.Values(int(s), int(l))
}

// arcIndex returns the arc index, building it if necessary. Read-only
// operations may run concurrently on a shared automaton.
func (A *Automaton) arcIndex() *sparse.IntMatrix {
	A.mu.Lock()
	defer A.mu.Unlock()
	if A.index == nil {
		A.buildIndex()
	}
	return A.index
}

func (A *Automaton) buildIndex() {
	maxlabel := Label(0)
	for _, s := range A.states {
		for _, a := range s.arcs {
			if a.In > maxlabel {
				maxlabel = a.In
			}
		}
	}
	tracer().Debugf("building arc index of size %d x %d", len(A.states), maxlabel+1)
	A.index = sparse.NewIntMatrix(len(A.states), int(maxlabel)+1, sparse.DefaultNullValue)
	for i, s := range A.states {
		for k, a := range s.arcs {
			A.index.Add(i, int(a.In), int32(k))
		}
	}
}

func (A *Automaton) check(op string, s StateID) {
	if s < 0 || int(s) >= len(A.states) {
		morphdcg.Violation(op, "state %d does not exist (automaton has %d states)", s, len(A.states))
	}
}

// String lists all states and arcs with numeric labels, one state per line.
func (A *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "start %d\n", A.start)
	for i, s := range A.states {
		if s.final {
			fmt.Fprintf(&b, "(%d)", i)
		} else {
			fmt.Fprintf(&b, " %d ", i)
		}
		for _, a := range s.arcs {
			b.WriteString(" ")
			b.WriteString(a.String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pairKey(in, out Label) uint64 {
	return uint64(uint32(in))<<32 | uint64(uint32(out))
}

func pairOf(key uint64) (Label, Label) {
	return Label(int32(key >> 32)), Label(int32(uint32(key)))
}
