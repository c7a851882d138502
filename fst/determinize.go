package fst

import (
	"sort"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/morphdcg"
)

// Determinize performs a subset construction over the label-pair alphabet of A.
// Each pair (input, output) is treated as a single letter, so for transducers
// the set of label-pair sequences is preserved. A must not contain
// (ε,ε)-arcs; call RemoveEpsilon first.
func Determinize(A *Automaton) *Automaton {
	if A.IsEmpty() {
		return New()
	}
	if A.hasEpsilonArcs() {
		morphdcg.Violation("Determinize", "automaton has (ε,ε)-arcs")
	}
	B := New()
	subsets := make(map[string]StateID)
	var queue [][]StateID // queue[i] is the subset for state i of B
	dstate := func(set *treeset.Set) StateID {
		members := subsetMembers(set)
		key := subsetKey(members)
		if s, ok := subsets[key]; ok {
			return s
		}
		s := B.AddState()
		subsets[key] = s
		for _, m := range members {
			if A.states[m].final {
				B.states[s].final = true
				break
			}
		}
		queue = append(queue, members)
		return s
	}
	start := treeset.NewWith(utils.IntComparator)
	start.Add(int(A.start))
	B.SetStart(dstate(start))
	for i := 0; i < len(queue); i++ {
		targets := make(map[uint64]*treeset.Set)
		for _, m := range queue[i] {
			for _, a := range A.states[m].arcs {
				k := pairKey(a.In, a.Out)
				set, ok := targets[k]
				if !ok {
					set = treeset.NewWith(utils.IntComparator)
					targets[k] = set
				}
				set.Add(int(a.To))
			}
		}
		keys := make([]uint64, 0, len(targets))
		for k := range targets {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			in, out := pairOf(k)
			B.AddArc(StateID(i), in, out, dstate(targets[k]))
		}
	}
	tracer().Debugf("determinize: %d states -> %d states", A.NumStates(), B.NumStates())
	return B
}

func subsetMembers(set *treeset.Set) []StateID {
	members := make([]StateID, 0, set.Size())
	for _, v := range set.Values() {
		members = append(members, StateID(v.(int)))
	}
	return members
}

func subsetKey(members []StateID) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(m)))
	}
	return b.String()
}
