package morph

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"
)

// ParseSimple returns simplified analyses of a word: stem labels become '{',
// affix labels become '}', and at most one pair of brackets remains, enclosing
// the stem.
func (g *Grammar) ParseSimple(word string, pos ...string) ([]string, error) {
	an, err := g.Analyze(context.Background(), word, pos...)
	if err != nil {
		return nil, err
	}
	return g.SimplifyAll(an.Parses), nil
}

// SimplifyAll simplifies a list of parses, removing duplicates. The result is sorted.
func (g *Grammar) SimplifyAll(parses []string) []string {
	set := make(map[string]bool, len(parses))
	simple := make([]string, 0, len(parses))
	for _, p := range parses {
		s := g.Simplify(p)
		if !set[s] {
			set[s] = true
			simple = append(simple, s)
		}
	}
	sort.Strings(simple)
	return simple
}

// Simplify reduces a single parse to its bracketed form.
func (g *Grammar) Simplify(parse string) string {
	s := g.simple.Replace(parse)
	s = strings.ReplaceAll(s, "{}", "")
	return balance(s)
}

// balance keeps the first '{' and the first '}' following it. Other brackets
// are dropped; a missing '}' is appended.
func balance(s string) string {
	open := strings.IndexByte(s, '{')
	if open < 0 {
		return strings.ReplaceAll(s, "}", "")
	}
	var b strings.Builder
	closed := false
	for i, r := range s {
		switch {
		case r == '{' && i != open:
			continue
		case r == '}' && (i < open || closed):
			continue
		case r == '}':
			closed = true
		}
		b.WriteRune(r)
	}
	if !closed {
		b.WriteByte('}')
	}
	return b.String()
}

// BestGuess returns the simplified analysis with the longest part outside the
// stem brackets. Ties are broken lexicographically. If the word has no
// analysis, BestGuess returns false.
func (g *Grammar) BestGuess(word string, pos ...string) (string, bool, error) {
	simple, err := g.ParseSimple(word, pos...)
	if err != nil || len(simple) == 0 {
		return "", false, err
	}
	return Best(simple), true, nil
}

// Best selects the simplified parse with the longest non-stem part from a
// sorted, non-empty list. Ties go to the first candidate.
func Best(simple []string) string {
	best, bestLen := simple[0], NonStemLen(simple[0])
	for _, s := range simple[1:] {
		if n := NonStemLen(s); n > bestLen {
			best, bestLen = s, n
		}
	}
	return best
}

// NonStemLen returns the number of characters of a simplified parse outside
// of the stem brackets.
func NonStemLen(simple string) int {
	return utf8.RuneCountInString(stemSpan.ReplaceAllString(simple, ""))
}
