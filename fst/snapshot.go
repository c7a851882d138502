package fst

import (
	"github.com/npillmayer/morphdcg"
)

// Snapshot is a plain-data form of an automaton, suitable for encoding and
// hashing. Arcs are stored column-wise in state order.
type Snapshot struct {
	States  int
	Start   int
	Finals  []int
	ArcFrom []int
	ArcIn   []int
	ArcOut  []int
	ArcTo   []int
}

// Snapshot returns the plain-data form of A.
func (A *Automaton) Snapshot() Snapshot {
	snap := Snapshot{States: len(A.states), Start: int(A.start)}
	for _, f := range A.Finals() {
		snap.Finals = append(snap.Finals, int(f))
	}
	for i, s := range A.states {
		for _, a := range s.arcs {
			snap.ArcFrom = append(snap.ArcFrom, i)
			snap.ArcIn = append(snap.ArcIn, int(a.In))
			snap.ArcOut = append(snap.ArcOut, int(a.Out))
			snap.ArcTo = append(snap.ArcTo, int(a.To))
		}
	}
	return snap
}

// FromSnapshot re-creates an automaton. Inconsistent snapshots result in an
// error, never in a panic.
func FromSnapshot(snap Snapshot) (A *Automaton, err error) {
	n := len(snap.ArcFrom)
	if len(snap.ArcIn) != n || len(snap.ArcOut) != n || len(snap.ArcTo) != n {
		return nil, morphdcg.InvariantViolation{Op: "FromSnapshot", Msg: "arc columns differ in length"}
	}
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(morphdcg.InvariantViolation); ok {
				A, err = nil, iv
				return
			}
			panic(r)
		}
	}()
	A = New()
	for i := 0; i < snap.States; i++ {
		A.AddState()
	}
	if snap.Start != int(NoState) {
		A.SetStart(StateID(snap.Start))
	}
	for _, f := range snap.Finals {
		A.SetFinal(StateID(f), true)
	}
	for k := 0; k < n; k++ {
		A.AddArc(StateID(snap.ArcFrom[k]), Label(snap.ArcIn[k]), Label(snap.ArcOut[k]), StateID(snap.ArcTo[k]))
	}
	return A, nil
}
