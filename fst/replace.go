package fst

import "fmt"

// CallLabeling determines what an arc entering a substituted automaton carries.
type CallLabeling int

const (
	// CallLabelBoth keeps the substituted label on both tapes of the entry arc.
	CallLabelBoth CallLabeling = iota
	// CallLabelNone makes the entry arc an (ε,ε)-arc.
	CallLabelNone
)

// RecursionError is returned by Replace if a label is reached again while its
// substitution is being expanded. Cycle lists the labels on the expansion
// stack, starting and ending with the recursive label.
type RecursionError struct {
	Cycle []Label
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("recursive substitution of label %d: %v", e.Cycle[0], e.Cycle)
}

// Replace builds a recursive transition network: every arc of base with label
// pair (L, L), where L is a key of subs, is replaced by a copy of subs[L].
// The arc entering the copy keeps the label L on both tapes, the final states
// of the copy get (ε,ε)-arcs to the target of the original arc. Substituted
// automata are expanded recursively; a recursive reference yields a
// *RecursionError.
//
// Final states of substituted automata are not final in the result.
func Replace(base *Automaton, subs map[Label]*Automaton) (*Automaton, error) {
	return ReplaceLabeled(base, subs, CallLabelBoth)
}

// ReplaceLabeled is Replace with configurable labeling of entry arcs.
// With CallLabelNone, replace is idempotent on a label once no arc carries it.
func ReplaceLabeled(base *Automaton, subs map[Label]*Automaton, labeling CallLabeling) (*Automaton, error) {
	if base.IsEmpty() {
		return New(), nil
	}
	r := &replacer{subs: subs, labeling: labeling, result: New()}
	start, finals, err := r.splice(base, nil)
	if err != nil {
		return nil, err
	}
	r.result.SetStart(start)
	for _, f := range finals {
		r.result.SetFinal(f, true)
	}
	tracer().Debugf("replace: %d states -> %d states", base.NumStates(), r.result.NumStates())
	return r.result, nil
}

// ReplaceRoot is Replace with base subs[root], where root counts as being
// expanded: an arc labelled (root, root) anywhere in the network is reported
// as recursion.
func ReplaceRoot(root Label, subs map[Label]*Automaton) (*Automaton, error) {
	base, ok := subs[root]
	if !ok || base.IsEmpty() {
		return New(), nil
	}
	r := &replacer{subs: subs, labeling: CallLabelBoth, result: New()}
	start, finals, err := r.splice(base, []Label{root})
	if err != nil {
		return nil, err
	}
	r.result.SetStart(start)
	for _, f := range finals {
		r.result.SetFinal(f, true)
	}
	return r.result, nil
}

type replacer struct {
	subs     map[Label]*Automaton
	labeling CallLabeling
	result   *Automaton
}

// splice copies A into the result and returns the copy's start state and its
// final states. stack holds the labels currently being expanded.
func (r *replacer) splice(A *Automaton, stack []Label) (StateID, []StateID, error) {
	offset := StateID(r.result.NumStates())
	for range A.states {
		r.result.AddState()
	}
	var finals []StateID
	for i, s := range A.states {
		from := offset + StateID(i)
		if s.final {
			finals = append(finals, from)
		}
		for _, a := range s.arcs {
			to := offset + a.To
			sub, ok := r.subs[a.In]
			if !ok || a.In != a.Out || a.In == Eps {
				r.result.AddArc(from, a.In, a.Out, to)
				continue
			}
			if onStack(stack, a.In) {
				cycle := append(append([]Label(nil), stack[indexOf(stack, a.In):]...), a.In)
				return NoState, nil, &RecursionError{Cycle: cycle}
			}
			if sub.IsEmpty() {
				continue // nothing to enter
			}
			substart, subfinals, err := r.splice(sub, append(stack, a.In))
			if err != nil {
				return NoState, nil, err
			}
			if r.labeling == CallLabelBoth {
				r.result.AddArc(from, a.In, a.In, substart)
			} else {
				r.result.AddArc(from, Eps, Eps, substart)
			}
			for _, f := range subfinals {
				r.result.AddArc(f, Eps, Eps, to)
			}
		}
	}
	return offset + A.start, finals, nil
}

func onStack(stack []Label, l Label) bool {
	return indexOf(stack, l) >= 0
}

func indexOf(stack []Label, l Label) int {
	for i, x := range stack {
		if x == l {
			return i
		}
	}
	return -1
}
