package morphdcg

import (
	"fmt"
	"unicode/utf8"
)

// Epsilon is the name of the empty symbol. It always has label 0 in symbol
// tables.
const Epsilon = "<eps>"

// IsSurface is a predicate: is a symbol with this name a surface symbol (a
// grapheme)? By convention surface symbols are exactly one character, all other
// symbols are labels (category and morph markers). Epsilon is neither.
func IsSurface(name string) bool {
	return !IsEpsilonName(name) && utf8.RuneCountInString(name) == 1
}

// IsEpsilonName returns true for the names which denote the empty symbol.
// Grammar descriptions may write epsilon as "_" (or leave it empty).
func IsEpsilonName(name string) bool {
	return name == Epsilon || name == "_" || name == ""
}

// --- Tokens ----------------------------------------------------------------

// TokType is a category type for a Token. Constants are defined by the
// scanners.
type TokType int

// Token represents input tokens of grammar text. Tokens are produced by the
// DCG scanner.
//
//    TokType = WORD         // token category
//    Lexeme  = "nstem"      // lexeme how it appeared in the input
//    Span    = 67…72        // occurred from position 67 in the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
	Line() int
}

// --- Spans ------------------------------------------------------------

// Span captures a run of input positions. A span denotes a start position and
// the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
