package morph

import (
	"context"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/morphdcg/fst"
)

// Analysis is the result of analysing a word.
type Analysis struct {
	Word      string
	Parses    []string // sorted, without duplicates
	Truncated bool     // path enumeration hit the configured cap
}

// Parse returns all analyses of a word for the given root categories, or for
// all of them if none are given. A word without analysis yields an empty
// result, not an error.
func (g *Grammar) Parse(word string, pos ...string) ([]string, error) {
	an, err := g.Analyze(context.Background(), word, pos...)
	if err != nil {
		return nil, err
	}
	return an.Parses, nil
}

// Analyze is like Parse, but stops when ctx is done and reports truncation
// of path enumeration.
func (g *Grammar) Analyze(ctx context.Context, word string, pos ...string) (*Analysis, error) {
	roots, err := g.selectRoots(pos)
	if err != nil {
		return nil, err
	}
	an := &Analysis{Word: word, Parses: []string{}}
	input, ok := g.input(word)
	if !ok {
		return an, nil
	}
	parses := treeset.NewWith(utils.StringComparator)
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		C := fst.Compose(input, g.fsts[root])
		if C.IsEmpty() {
			tracer().Debugf("no analysis of %q as %s", word, root)
			continue
		}
		var cancelled error
		truncated := fst.Paths(C, func(p fst.Path) bool {
			if err := ctx.Err(); err != nil {
				cancelled = err
				return false
			}
			parses.Add(g.simplifyBounds(marker(root) + g.render(p)))
			return true
		}, g.opts.MaxPaths)
		if cancelled != nil {
			return nil, cancelled
		}
		if truncated {
			tracer().Infof("analysis of %q as %s truncated at %d paths", word, root, g.opts.MaxPaths)
			an.Truncated = true
		}
	}
	for _, p := range parses.Values() {
		an.Parses = append(an.Parses, p.(string))
	}
	return an, nil
}

// render writes a path as a parse string: output labels in angle brackets,
// followed by input graphemes.
func (g *Grammar) render(p fst.Path) string {
	var b strings.Builder
	for _, a := range p {
		if a.Out != fst.Eps {
			b.WriteString(marker(g.syms.Name(a.Out)))
		}
		if a.In != fst.Eps {
			b.WriteString(g.syms.Name(a.In))
		}
	}
	return b.String()
}

// simplifyBounds keeps only the first occurrence of every boundary label.
func (g *Grammar) simplifyBounds(parse string) string {
	for _, bound := range g.bounds {
		m := marker(bound)
		if i := strings.Index(parse, m); i >= 0 {
			head := parse[:i+len(m)]
			parse = head + strings.ReplaceAll(parse[len(head):], m, "")
		}
	}
	return parse
}
