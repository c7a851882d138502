package dcg

import (
	"strings"
	"sync"

	"github.com/npillmayer/morphdcg"
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of DCG text.
const (
	EOF morphdcg.TokType = iota - 1
	_
	WORD      // category name
	TERMINALS // bracketed list of graphemes
	ARROW     // -->
	COMMA
	DOT
)

var tokenNames = map[morphdcg.TokType]string{
	EOF:       "end of input",
	WORD:      "category",
	TERMINALS: "terminal list",
	ARROW:     "'-->'",
	COMMA:     "','",
	DOT:       "'.'",
}

// token is the token type produced by the DCG scanner.
type token struct {
	kind   morphdcg.TokType
	lexeme string
	span   morphdcg.Span
	line   int
	col    int
}

var _ morphdcg.Token = token{}

func (t token) TokType() morphdcg.TokType { return t.kind }
func (t token) Lexeme() string            { return t.lexeme }
func (t token) Span() morphdcg.Span       { return t.span }
func (t token) Line() int                 { return t.line }

// lexer is compiled once and shared by all scanners.
var lexer struct {
	once sync.Once
	lx   *lexmachine.Lexer
	err  error
}

func dcgLexer() (*lexmachine.Lexer, error) {
	lexer.once.Do(func() {
		lexer.lx, lexer.err = compileLexer()
	})
	return lexer.lx, lexer.err
}

func compileLexer() (*lexmachine.Lexer, error) {
	lx := lexmachine.NewLexer()
	lx.Add([]byte(`%[^\n]*`), skip)
	lx.Add([]byte(`( |\t|\n|\r)+`), skip)
	lx.Add([]byte(`([a-z]|[A-Z]|[0-9]|_)+`), makeToken(WORD))
	lx.Add([]byte(`\[[^\]]*\]`), makeToken(TERMINALS))
	for lit, kind := range map[string]morphdcg.TokType{"-->": ARROW, ",": COMMA, ".": DOT} {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lx.Add([]byte(r), makeToken(kind))
	}
	if err := lx.Compile(); err != nil {
		tracer().Errorf("error compiling DCG lexer DFA: %v", err)
		return nil, err
	}
	return lx, nil
}

// scanner tokenizes DCG text. Scanning errors are collected, the offending
// input is skipped.
type scanner struct {
	scanner *lexmachine.Scanner
	errs    []error
}

func newScanner(input []byte) (*scanner, error) {
	lx, err := dcgLexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner(input)
	if err != nil {
		return nil, err
	}
	return &scanner{scanner: s}, nil
}

// NextToken returns the next token of the input, or a token of type EOF.
func (sc *scanner) NextToken() token {
	tok, err, eof := sc.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			sc.errs = append(sc.errs, errors.Errorf("line %d:%d: unexpected input %q",
				ui.StartLine, ui.StartColumn, string(ui.Text)))
			sc.scanner.TC = ui.FailTC
		} else {
			sc.errs = append(sc.errs, errors.Wrap(err, "scanning DCG"))
			return token{kind: EOF}
		}
		tok, err, eof = sc.scanner.Next()
	}
	if eof {
		return token{kind: EOF}
	}
	t := tok.(*lexmachine.Token)
	tracer().Debugf("token %s %q at %d:%d", tokenNames[morphdcg.TokType(t.Type)], t.Lexeme, t.StartLine, t.StartColumn)
	return token{
		kind:   morphdcg.TokType(t.Type),
		lexeme: string(t.Lexeme),
		span:   morphdcg.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
		line:   t.StartLine,
		col:    t.StartColumn,
	}
}

// skip is a lexer action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a lexer action which wraps a scanned match into a token.
func makeToken(kind morphdcg.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}
