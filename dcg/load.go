package dcg

import (
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/morphdcg"
	"github.com/pkg/errors"
)

// Load reads the text of a simplified DCG.
func Load(r io.Reader) (*Rules, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading DCG")
	}
	return Parse(input)
}

// LoadFile reads a simplified DCG from a file.
func LoadFile(path string) (*Rules, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading DCG %s", path)
	}
	rules, err := Parse(input)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return rules, nil
}

// Parse parses the text of a simplified DCG into a rule table. Syntax errors
// carry line and column of the offending token.
func Parse(input []byte) (*Rules, error) {
	sc, err := newScanner(input)
	if err != nil {
		return nil, errors.Wrap(err, "creating DCG scanner")
	}
	p := &parser{sc: sc}
	p.next()
	rules := NewRules()
	count := 0
	for p.tok.kind != EOF {
		if err := p.rule(rules); err != nil {
			return nil, err
		}
		count++
	}
	if len(sc.errs) > 0 {
		return nil, sc.errs[0]
	}
	tracer().Infof("DCG: %d rules for %d categories", count, len(rules.Heads()))
	return rules, nil
}

type parser struct {
	sc  *scanner
	tok token
}

func (p *parser) next() {
	p.tok = p.sc.NextToken()
}

// rule parses
//
//     head --> [graphemes] .
//     head --> category { , category } .
//
func (p *parser) rule(rules *Rules) error {
	head, err := p.expect(WORD)
	if err != nil {
		return err
	}
	if _, err = p.expect(ARROW); err != nil {
		return err
	}
	if p.tok.kind == TERMINALS {
		at := p.tok
		graphemes := splitTerminals(p.tok.lexeme)
		p.next()
		if _, err = p.expect(DOT); err != nil {
			return err
		}
		if len(graphemes) == 0 {
			return p.errorAt(at, "empty terminal list for %q", head.lexeme)
		}
		rules.AddTerminal(head.lexeme, graphemes...)
		return nil
	}
	var body []string
	for {
		c, err := p.expect(WORD)
		if err != nil {
			return err
		}
		body = append(body, c.lexeme)
		if p.tok.kind != COMMA {
			break
		}
		p.next()
	}
	if _, err = p.expect(DOT); err != nil {
		return err
	}
	rules.AddNonTerminal(head.lexeme, body...)
	return nil
}

func (p *parser) expect(kind morphdcg.TokType) (token, error) {
	if p.tok.kind != kind {
		return p.tok, p.errorAt(p.tok, "expected %s, found %s", tokenNames[kind], describe(p.tok))
	}
	t := p.tok
	p.next()
	return t, nil
}

// errorAt creates a syntax error for a token. Pending scanner errors take
// precedence, as they are usually the cause of follow-up syntax errors.
func (p *parser) errorAt(t token, format string, args ...interface{}) error {
	if len(p.sc.errs) > 0 {
		return p.sc.errs[0]
	}
	if t.kind == EOF {
		return errors.Errorf("at end of input: "+format, args...)
	}
	return errors.Errorf("line %d:%d: "+format, append([]interface{}{t.line, t.col}, args...)...)
}

func describe(t token) string {
	if t.kind == EOF {
		return tokenNames[EOF]
	}
	return tokenNames[t.kind] + " " + strconv.Quote(t.lexeme)
}

// splitTerminals splits a bracketed terminal list into graphemes. Commas and
// white space are separators.
func splitTerminals(lexeme string) []string {
	body := strings.TrimSuffix(strings.TrimPrefix(lexeme, "["), "]")
	var graphemes []string
	for _, r := range body {
		if r == ',' || unicode.IsSpace(r) {
			continue
		}
		graphemes = append(graphemes, string(r))
	}
	return graphemes
}
