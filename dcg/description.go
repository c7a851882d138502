package dcg

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/npillmayer/morphdcg"
)

// DefaultStemLabels are labels marking the start of a stem in simplified parses.
var DefaultStemLabels = []string{"noun", "verb", "adj", "adv", "st"}

// DefaultAffixLabels are labels marking the end of a stem in simplified parses.
var DefaultAffixLabels = []string{"cop", "loc", "pos", "prep", "pron", "ques", "rel", "pf", "sf"}

// Description configures the compilation of a grammar. It is an immutable
// value once compilation starts.
type Description struct {
	Graphs      Graphemes           `json:"graphs"`                // alphabet of surface symbols
	POS         []string            `json:"pos"`                   // root categories
	RenameSyms  map[string][]Rename `json:"renamesyms,omitempty"`  // per root category
	Bounds      []string            `json:"bounds,omitempty"`      // boundary labels
	Undefined   []string            `json:"undefined,omitempty"`   // declared open-class categories
	StemLabels  []string            `json:"stemlabels,omitempty"`  // default: DefaultStemLabels and open-class categories
	AffixLabels []string            `json:"affixlabels,omitempty"` // default: DefaultAffixLabels and terminal categories
}

// Rename maps a label to another label. A target of "_" or "" deletes the label.
type Rename struct {
	From, To string
}

// UnmarshalJSON reads a rename pair written as a 2-element array.
func (rn *Rename) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("rename must be a pair of symbols, is %v", pair)
	}
	rn.From, rn.To = pair[0], pair[1]
	return nil
}

// MarshalJSON writes a rename pair as a 2-element array.
func (rn Rename) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{rn.From, rn.To})
}

// IsDeletion is true if the target of the rename is epsilon.
func (rn Rename) IsDeletion() bool {
	return morphdcg.IsEpsilonName(rn.To)
}

// Graphemes is a list of surface symbols. In JSON it may be written as a list
// of single-character strings or as one string.
type Graphemes []string

// UnmarshalJSON reads a grapheme list from a string or from an array.
func (g *Graphemes) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*g = make(Graphemes, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			*g = append(*g, string(r))
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("graphs must be a string or a list of strings: %w", err)
	}
	*g = list
	return nil
}

// LoadDescription reads a description from JSON and checks it for consistency.
func LoadDescription(r io.Reader) (*Description, error) {
	d := &Description{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("reading grammar description: %w", err)
	}
	if err := d.Check(); err != nil {
		return nil, err
	}
	tracer().Infof("description: %d graphemes, root categories %v", len(d.Graphs), d.POS)
	return d, nil
}

// Check checks the description by itself. Consistency with a rule table is
// checked by Rules.Validate.
func (d *Description) Check() error {
	if len(d.Graphs) == 0 {
		return morphdcg.GrammarErrorf("", "", "description has no graphemes")
	}
	for _, g := range d.Graphs {
		if !morphdcg.IsSurface(g) {
			return morphdcg.GrammarErrorf("", g, "graphemes must be single characters")
		}
	}
	if len(d.POS) == 0 {
		return morphdcg.GrammarErrorf("", "", "description has no root categories")
	}
	roots := make(map[string]bool, len(d.POS))
	for _, pos := range d.POS {
		if roots[pos] {
			return morphdcg.GrammarErrorf(pos, "", "root category listed twice")
		}
		roots[pos] = true
	}
	for pos := range d.RenameSyms {
		if !roots[pos] {
			return morphdcg.GrammarErrorf(pos, "", "renaming given for a category which is not a root")
		}
	}
	return nil
}

// Alphabet returns the set of graphemes.
func (d *Description) Alphabet() map[string]bool {
	alphabet := make(map[string]bool, len(d.Graphs))
	for _, g := range d.Graphs {
		alphabet[g] = true
	}
	return alphabet
}

// Renames returns the rename pairs for a root category.
func (d *Description) Renames(pos string) []Rename {
	return d.RenameSyms[pos]
}

// RenameTargets returns all non-epsilon rename targets, sorted and unique.
func (d *Description) RenameTargets() []string {
	set := make(map[string]bool)
	for _, rns := range d.RenameSyms {
		for _, rn := range rns {
			if !rn.IsDeletion() {
				set[rn.To] = true
			}
		}
	}
	targets := make([]string, 0, len(set))
	for t := range set {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Stems returns the stem labels, falling back to the defaults.
func (d *Description) Stems() []string {
	if d.StemLabels != nil {
		return d.StemLabels
	}
	return DefaultStemLabels
}

// Affixes returns the affix labels, falling back to the defaults.
func (d *Description) Affixes() []string {
	if d.AffixLabels != nil {
		return d.AffixLabels
	}
	return DefaultAffixLabels
}
