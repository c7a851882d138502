package fst

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/npillmayer/morphdcg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// acceptor builds an acceptor for a list of words over single-character
// symbols, as a trie.
func acceptor(st *SymbolTable, words ...string) *Automaton {
	A := New()
	start := A.AddState()
	A.SetStart(start)
	for _, w := range words {
		s := start
		for _, r := range w {
			l := st.Define(string(r))
			next := A.AddState()
			A.AddArc(s, l, l, next)
			s = next
		}
		A.SetFinal(s, true)
	}
	return A
}

func labels(st *SymbolTable, w string) []Label {
	var ls []Label
	for _, r := range w {
		ls = append(ls, st.Define(string(r)))
	}
	return ls
}

// pathsOf renders all accepting paths as "in:out in:out ..." strings, sorted.
func pathsOf(st *SymbolTable, A *Automaton) []string {
	var result []string
	Paths(A, func(p Path) bool {
		var parts []string
		for _, a := range p {
			parts = append(parts, st.Name(a.In)+":"+st.Name(a.Out))
		}
		result = append(result, strings.Join(parts, " "))
		return true
	}, 0)
	sort.Strings(result)
	return result
}

func TestSymbolTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"noun", "b", "a", "_", "b"})
	if st.Size() != 4 {
		t.Errorf("expected 4 symbols (incl. epsilon), have %d: %v", st.Size(), st.Names())
	}
	if l, ok := st.Resolve(morphdcg.Epsilon); !ok || l != Eps {
		t.Errorf("expected epsilon to have label 0")
	}
	if l := st.MustResolve("a"); l != 1 {
		t.Errorf("expected 'a' to be labelled 1, is %d", l)
	}
	if l := st.MustResolve("noun"); l != 3 {
		t.Errorf("expected 'noun' to be labelled 3, is %d", l)
	}
	if !st.IsSurface(st.MustResolve("b")) || st.IsSurface(st.MustResolve("noun")) || st.IsSurface(Eps) {
		t.Errorf("surface/label partition is broken")
	}
	if st.Define("a") != 1 {
		t.Errorf("re-defining a name must return the existing label")
	}
}

func TestAddArcToMissingStatePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	defer func() {
		r := recover()
		if _, ok := r.(morphdcg.InvariantViolation); !ok {
			t.Errorf("expected an invariant violation, got %v", r)
		}
	}()
	A := New()
	s := A.AddState()
	A.AddArc(s, 1, 1, s+1)
}

func TestRemoveEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := NewSymbolTable()
	x := st.Define("x")
	A := New()
	s0, s1, s2 := A.AddState(), A.AddState(), A.AddState()
	A.SetStart(s0)
	A.AddArc(s0, Eps, Eps, s1)
	A.AddArc(s1, x, x, s2)
	A.AddArc(s1, Eps, Eps, s0) // epsilon cycle
	A.SetFinal(s2, true)
	A.SetFinal(s1, true)
	B := RemoveEpsilon(A)
	if B.hasEpsilonArcs() {
		t.Fatalf("expected no (ε,ε)-arcs after epsilon removal")
	}
	if !B.IsFinal(B.Start()) {
		t.Errorf("expected start state to become final")
	}
	if !B.Accepts([]Label{x}) || !B.Accepts(nil) {
		t.Errorf("expected language {ε, x} to be preserved")
	}
}

func TestDeterminize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := NewSymbolTable()
	A := acceptor(st, "ab", "ac", "a")
	if A.IsDeterministic() {
		t.Fatalf("trie with shared prefixes should not be deterministic")
	}
	D := Determinize(A)
	if !D.IsDeterministic() {
		t.Errorf("expected deterministic automaton")
	}
	for _, w := range []string{"ab", "ac", "a"} {
		if !D.Accepts(labels(st, w)) {
			t.Errorf("expected %q to be accepted", w)
		}
	}
	if D.Accepts(labels(st, "b")) || D.Accepts(nil) {
		t.Errorf("expected language not to grow")
	}
}

func TestDeterminizeKeepsOutputLabels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"a", "X", "Y"})
	a, X, Y := st.MustResolve("a"), st.MustResolve("X"), st.MustResolve("Y")
	A := New()
	s0, s1, s2 := A.AddState(), A.AddState(), A.AddState()
	A.SetStart(s0)
	A.AddArc(s0, a, X, s1)
	A.AddArc(s0, a, Y, s2)
	A.SetFinal(s1, true)
	A.SetFinal(s2, true)
	D := Determinize(A)
	if got := pathsOf(st, D); len(got) != 2 {
		t.Errorf("expected both pair paths to survive, have %v", got)
	}
}

func TestMinimize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := NewSymbolTable()
	M := Normalize(acceptor(st, "ab", "cb", "ad", "cd"))
	if M.NumStates() != 3 {
		t.Errorf("expected minimal automaton to have 3 states, has %d:\n%s", M.NumStates(), M)
	}
	if MM := Minimize(M); MM.NumStates() != M.NumStates() || MM.NumArcs() != M.NumArcs() {
		t.Errorf("expected minimization to be idempotent")
	}
	for _, w := range []string{"ab", "cb", "ad", "cd"} {
		if !M.Accepts(labels(st, w)) {
			t.Errorf("expected %q to be accepted", w)
		}
	}
}

func TestConnectEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	A := New()
	s0, s1 := A.AddState(), A.AddState()
	A.SetStart(s0)
	A.AddArc(s0, 1, 1, s1) // no final state at all
	if C := Connect(A); C.NumStates() != 0 || !C.IsEmpty() {
		t.Errorf("expected automaton without successful path to have no states")
	}
}

func TestComposeEpsilonFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"a", "b", "X"})
	a, b, X := st.MustResolve("a"), st.MustResolve("b"), st.MustResolve("X")
	A := New()
	s0, s1, s2 := A.AddState(), A.AddState(), A.AddState()
	A.SetStart(s0)
	A.AddArc(s0, a, Eps, s1)
	A.AddArc(s1, b, b, s2)
	A.SetFinal(s2, true)
	B := New()
	t0, t1, t2 := B.AddState(), B.AddState(), B.AddState()
	B.SetStart(t0)
	B.AddArc(t0, Eps, X, t1)
	B.AddArc(t1, b, b, t2)
	B.SetFinal(t2, true)
	C := Compose(A, B)
	got := pathsOf(st, C)
	if len(got) != 1 {
		t.Fatalf("expected exactly one path through composition, have %v", got)
	}
	if got[0] != "a:<eps> <eps>:X b:b" {
		t.Errorf("unexpected path %q", got[0])
	}
}

func TestComposeNoMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := NewSymbolTable()
	A := acceptor(st, "ab")
	B := acceptor(st, "ba")
	if C := Compose(A, B); C.NumStates() != 0 {
		t.Errorf("expected empty composition, have %d states", C.NumStates())
	}
}

func TestComposeTransducer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"a", "b", "N", "stem"})
	a, b := st.MustResolve("a"), st.MustResolve("b")
	N, stem := st.MustResolve("N"), st.MustResolve("stem")
	T := New()
	q0, q1, q2, q3 := T.AddState(), T.AddState(), T.AddState(), T.AddState()
	T.SetStart(q0)
	T.AddArc(q0, Eps, stem, q1)
	T.AddArc(q0, Eps, N, q1)
	T.AddArc(q1, a, Eps, q2)
	T.AddArc(q2, b, Eps, q3)
	T.SetFinal(q3, true)
	C := Compose(acceptor(st, "ab"), T)
	if got := pathsOf(st, C); len(got) != 2 {
		t.Errorf("expected 2 analyses, have %v", got)
	}
}

func TestReplace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"x", "y", "pre", "stem"})
	pre, stem := st.MustResolve("pre"), st.MustResolve("stem")
	base := New()
	s0, s1, s2 := base.AddState(), base.AddState(), base.AddState()
	base.SetStart(s0)
	base.AddArc(s0, pre, pre, s1)
	base.AddArc(s1, stem, stem, s2)
	base.SetFinal(s2, true)
	subs := map[Label]*Automaton{
		pre:  acceptor(st, "x"),
		stem: acceptor(st, "y"),
	}
	R, err := Replace(base, subs)
	if err != nil {
		t.Fatal(err)
	}
	R = Normalize(R)
	got := pathsOf(st, R)
	if len(got) != 1 || got[0] != "pre:pre x:x stem:stem y:y" {
		t.Errorf("unexpected paths after replace: %v", got)
	}
}

func TestReplaceIdempotentWithoutCallLabels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"x", "sub"})
	sub := st.MustResolve("sub")
	base := New()
	s0, s1 := base.AddState(), base.AddState()
	base.SetStart(s0)
	base.AddArc(s0, sub, sub, s1)
	base.SetFinal(s1, true)
	subs := map[Label]*Automaton{sub: acceptor(st, "x")}
	R1, err := ReplaceLabeled(base, subs, CallLabelNone)
	if err != nil {
		t.Fatal(err)
	}
	R2, err := ReplaceLabeled(R1, subs, CallLabelNone)
	if err != nil {
		t.Fatal(err)
	}
	if R1.NumStates() != R2.NumStates() || R1.NumArcs() != R2.NumArcs() {
		t.Errorf("expected second replace to be a no-op")
	}
}

func TestReplaceRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"A", "B"})
	A, B := st.MustResolve("A"), st.MustResolve("B")
	call := func(l Label) *Automaton {
		c := New()
		s0, s1 := c.AddState(), c.AddState()
		c.SetStart(s0)
		c.AddArc(s0, l, l, s1)
		c.SetFinal(s1, true)
		return c
	}
	subs := map[Label]*Automaton{A: call(B), B: call(A)}
	_, err := ReplaceRoot(A, subs)
	var rerr *RecursionError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected recursion error, got %v", err)
	}
	if len(rerr.Cycle) != 3 || rerr.Cycle[0] != A || rerr.Cycle[2] != A {
		t.Errorf("unexpected cycle %v", rerr.Cycle)
	}
}

func TestRelabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := SymbolTableFrom([]string{"a", "b", "c"})
	a, b, c := st.MustResolve("a"), st.MustResolve("b"), st.MustResolve("c")
	A := acceptor(st, "ab")
	R := Relabel(A, map[Label]Label{a: c}, map[Label]Label{b: Eps})
	got := pathsOf(st, R)
	if len(got) != 1 || got[0] != "c:a b:<eps>" {
		t.Errorf("unexpected relabeling %v", got)
	}
	if got := pathsOf(st, A); got[0] != "a:a b:b" {
		t.Errorf("relabel must not modify its argument")
	}
	if !A.IsAcceptor() || R.IsAcceptor() {
		t.Errorf("expected relabeling of a single tape to yield a transducer")
	}
	if P := Project(R, false); !P.IsAcceptor() || len(P.Finals()) != 1 {
		t.Errorf("expected projection to be an acceptor with one final state")
	}
}

func TestPathsLimitAndCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := NewSymbolTable()
	A := acceptor(st, "a", "b", "c")
	if n := CountPaths(A, 0); n != 3 {
		t.Errorf("expected 3 paths, have %d", n)
	}
	truncated := Paths(A, func(Path) bool { return true }, 2)
	if !truncated {
		t.Errorf("expected enumeration to be truncated at 2 paths")
	}
	if Paths(A, func(Path) bool { return true }, 3) {
		t.Errorf("enumeration with limit = #paths must not be truncated")
	}
	// a+ loop
	L := New()
	s0, s1 := L.AddState(), L.AddState()
	L.SetStart(s0)
	a := st.MustResolve("a")
	L.AddArc(s0, a, a, s1)
	L.AddArc(s1, a, a, s1)
	L.SetFinal(s1, true)
	if n := CountPaths(L, 0); n != 1 {
		t.Errorf("expected cycle to be cut, have %d paths", n)
	}
}

func TestSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := NewSymbolTable()
	A := Normalize(acceptor(st, "ab", "b"))
	B, err := FromSnapshot(A.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if A.String() != B.String() {
		t.Errorf("expected identical automata, have\n%s\nand\n%s", A, B)
	}
	broken := A.Snapshot()
	broken.ArcTo[0] = 99
	if _, err := FromSnapshot(broken); err == nil {
		t.Errorf("expected error for dangling arc in snapshot")
	}
}

func TestWriteDot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.fst")
	defer teardown()
	//
	st := NewSymbolTable()
	A := acceptor(st, "a")
	var buf bytes.Buffer
	if err := WriteDot(A, st, &buf, "test"); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	if !strings.HasPrefix(dot, `digraph "test" {`) || !strings.Contains(dot, `label="a:a"`) {
		t.Errorf("unexpected dot output:\n%s", dot)
	}
}
