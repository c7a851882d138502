package dcg

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/morphdcg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.dcg")
	defer teardown()
	//
	rules, err := Parse([]byte(`
	% comment --> [x].
	N --> pre, stem.   % trailing comment
	pre --> [x].
	stem --> [a,b].
	stem --> [ab c].
	`))
	if err != nil {
		t.Fatal(err)
	}
	if got := rules.NonTerminals["N"]; !reflect.DeepEqual(got, [][]string{{"pre", "stem"}}) {
		t.Errorf("unexpected rule for N: %v", got)
	}
	if got := rules.Terminals["stem"]; !reflect.DeepEqual(got, [][]string{{"a", "b"}, {"a", "b", "c"}}) {
		t.Errorf("unexpected alternatives for stem: %v", got)
	}
	if got := rules.Heads(); !reflect.DeepEqual(got, []string{"N", "pre", "stem"}) {
		t.Errorf("unexpected heads %v", got)
	}
}

func TestParseUnicodeGraphemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.dcg")
	defer teardown()
	//
	rules, err := Parse([]byte("stem --> [ä,ö,ŋ]."))
	if err != nil {
		t.Fatal(err)
	}
	if got := rules.Terminals["stem"]; !reflect.DeepEqual(got, [][]string{{"ä", "ö", "ŋ"}}) {
		t.Errorf("unexpected graphemes %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.dcg")
	defer teardown()
	//
	for _, tc := range []struct {
		name, input, want string
	}{
		{"missing arrow", "N pre, stem.", "line 1:"},
		{"missing dot", "N --> pre, stem", "end of input"},
		{"empty terminals", "\nstem --> [].", "line 2:"},
		{"dangling comma", "N --> pre, .", "expected category"},
		{"non-ascii category", "N --> präfix.", "unexpected input"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if err == nil {
				t.Fatalf("expected syntax error for %q", tc.input)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error to mention %q, is %q", tc.want, err.Error())
			}
		})
	}
}

func TestLoadTestGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.dcg")
	defer teardown()
	//
	rules, err := LoadFile("testdata/nouns.dcg")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(rules.NonTerminals["N"]); n != 3 {
		t.Errorf("expected 3 alternatives for N, have %d", n)
	}
	if got := rules.Undefined(); !reflect.DeepEqual(got, []string{"nroot"}) {
		t.Errorf("expected nroot to be the only undefined category, have %v", got)
	}
	f, err := os.Open("testdata/nouns.json")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	descr, err := LoadDescription(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(descr.Graphs) != 26 || descr.Graphs[0] != "a" {
		t.Errorf("expected graphemes a…z, have %v", descr.Graphs)
	}
	rns := descr.Renames("N")
	if len(rns) != 2 || rns[0] != (Rename{"nroot", "noun"}) || !rns[1].IsDeletion() {
		t.Errorf("unexpected renames %v", rns)
	}
	if err := rules.Validate(descr); err != nil {
		t.Errorf("expected test grammar to be valid, is: %v", err)
	}
}

func TestDescriptionGraphsAsList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.dcg")
	defer teardown()
	//
	d, err := LoadDescription(strings.NewReader(`{"graphs": ["a", "b"], "pos": ["N"], "bounds": []}`))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual([]string(d.Graphs), []string{"a", "b"}) {
		t.Errorf("unexpected graphemes %v", d.Graphs)
	}
	if !reflect.DeepEqual(d.Stems(), DefaultStemLabels) || !reflect.DeepEqual(d.Affixes(), DefaultAffixLabels) {
		t.Errorf("expected default stem and affix labels")
	}
}

func TestDescriptionCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.dcg")
	defer teardown()
	//
	for _, input := range []string{
		`{"graphs": "", "pos": ["N"]}`,
		`{"graphs": ["ab"], "pos": ["N"]}`,
		`{"graphs": "ab", "pos": []}`,
		`{"graphs": "ab", "pos": ["N", "N"]}`,
		`{"graphs": "ab", "pos": ["N"], "renamesyms": {"V": [["x", "y"]]}}`,
	} {
		if _, err := LoadDescription(strings.NewReader(input)); !morphdcg.IsGrammarError(err) {
			t.Errorf("expected grammar error for %s, got %v", input, err)
		}
	}
	if _, err := LoadDescription(strings.NewReader(`{"graphs": "ab", "pos": ["N"], "renamesyms": {"N": [["x"]]}}`)); err == nil {
		t.Errorf("expected error for malformed rename pair")
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.dcg")
	defer teardown()
	//
	descr := &Description{Graphs: Graphemes{"a", "b", "x"}, POS: []string{"N"}}
	for _, tc := range []struct {
		name  string
		rules *Rules
		d     *Description
	}{
		{"mixed rules", NewRules().AddNonTerminal("N", "stem").AddTerminal("N", "a"), descr},
		{"unknown grapheme", NewRules().AddNonTerminal("N", "stem").AddTerminal("stem", "z"), descr},
		{"single char reference", NewRules().AddNonTerminal("N", "s"), descr},
		{"epsilon reference", NewRules().AddNonTerminal("N", "_"), descr},
		{"empty alternative", NewRules().AddNonTerminal("N"), descr},
		{"root without rule", NewRules().AddNonTerminal("V", "stem"), descr},
		{"undeclared open class", NewRules().AddNonTerminal("N", "stem", "sfx").AddTerminal("sfx", "x"),
			&Description{Graphs: descr.Graphs, POS: descr.POS, Undefined: []string{"root"}}},
		{"rename to grapheme", NewRules().AddNonTerminal("N", "stem"),
			&Description{Graphs: descr.Graphs, POS: descr.POS,
				RenameSyms: map[string][]Rename{"N": {{"stem", "a"}}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rules.Validate(tc.d)
			if !morphdcg.IsGrammarError(err) {
				t.Errorf("expected grammar error, got %v", err)
			}
		})
	}
	ok := NewRules().AddNonTerminal("N", "pre", "stem").AddTerminal("pre", "x")
	if err := ok.Validate(&Description{Graphs: descr.Graphs, POS: descr.POS, Undefined: []string{"stem"}}); err != nil {
		t.Errorf("expected declared open class to be valid, got %v", err)
	}
	deleting := &Description{Graphs: descr.Graphs, POS: descr.POS,
		RenameSyms: map[string][]Rename{"N": {{"pre", "_"}, {"stem", ""}, {"sfx", "noun"}}}}
	if err := ok.Validate(deleting); err != nil {
		t.Errorf("expected renames to epsilon to be valid, got %v", err)
	}
}
