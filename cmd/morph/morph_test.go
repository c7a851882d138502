package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/morphdcg/morph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func loadTestGrammar(t *testing.T) *morph.Grammar {
	t.Helper()
	gf := grammarFlags{
		descr: "../../morph/testdata/nouns.json",
		dcg:   "../../morph/testdata/nouns.dcg",
	}
	g, err := gf.load()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSegments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.cli")
	defer teardown()
	//
	got := segments("<N><iv>u<npf>m<noun>ntu")
	want := []segment{{"N", ""}, {"iv", "u"}, {"npf", "m"}, {"noun", "ntu"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected segments %v", got)
	}
	if got := segments("ab<x>c"); !reflect.DeepEqual(got, []segment{{"", "ab"}, {"x", "c"}}) {
		t.Errorf("unexpected segments for leading graphemes %v", got)
	}
}

func TestGrammarFlagsNeedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.cli")
	defer teardown()
	//
	if _, err := (&grammarFlags{dcg: "x.dcg"}).load(); err == nil {
		t.Errorf("expected error for missing description")
	}
}

func TestPrinter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.cli")
	defer teardown()
	//
	g := loadTestGrammar(t)
	var out bytes.Buffer
	p := &printer{g: g, out: &out}
	if err := p.printAll(strings.NewReader("umntu\n\nxyz\n")); err != nil {
		t.Fatal(err)
	}
	want := "umntu\t<N><iv>u<noun>mntu <N><iv>u<npf>m<noun>ntu\nxyz\t\n"
	if out.String() != want {
		t.Errorf("unexpected output %q", out.String())
	}
	out.Reset()
	p.simpleguess = true
	if err := p.print("umntuni"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "umntuni\t<N>um{ntu}ni\n" {
		t.Errorf("unexpected simple guess output %q", out.String())
	}
}

func TestServer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphdcg.cli")
	defer teardown()
	//
	ts := httptest.NewServer(newServer(loadTestGrammar(t), time.Second).handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/parse?word=umntu")
	if err != nil {
		t.Fatal(err)
	}
	var pr parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || len(pr.Parses) != 2 {
		t.Errorf("unexpected response %d %+v", resp.StatusCode, pr)
	}

	resp, err = http.Get(ts.URL + "/api/parse?word=umntuni&simple=true")
	if err != nil {
		t.Fatal(err)
	}
	pr = parseResponse{}
	json.NewDecoder(resp.Body).Decode(&pr)
	resp.Body.Close()
	if pr.Best != "<N>um{ntu}ni" {
		t.Errorf("unexpected best guess %q", pr.Best)
	}

	for _, tc := range []struct {
		url    string
		status int
	}{
		{"/api/parse", http.StatusBadRequest},
		{"/api/parse?word=xyz", http.StatusNotFound},
		{"/api/parse?word=umntu&pos=V", http.StatusBadRequest},
		{"/api/parse/text", http.StatusMethodNotAllowed},
	} {
		resp, err := http.Get(ts.URL + tc.url)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Errorf("GET %s: expected status %d, have %d", tc.url, tc.status, resp.StatusCode)
		}
	}

	body := strings.NewReader(`{"words": ["umntu", "xyz"]}`)
	resp, err = http.Post(ts.URL+"/api/parse/text", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	var tr parseTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(tr.Results) != 2 || len(tr.Results[0].Parses) != 2 || len(tr.Results[1].Parses) != 0 {
		t.Errorf("unexpected text response %+v", tr)
	}

	resp, err = http.Get(ts.URL + "/api/categories")
	if err != nil {
		t.Fatal(err)
	}
	var cr categoriesResponse
	json.NewDecoder(resp.Body).Decode(&cr)
	resp.Body.Close()
	if !reflect.DeepEqual(cr.Categories, []string{"N"}) {
		t.Errorf("unexpected categories %v", cr.Categories)
	}
}
