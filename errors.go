package morphdcg

import (
	"errors"
	"fmt"
)

// GrammarError is a fatal, compile-time error: the grammar references an
// unknown category, a name is used for terminal and non-terminal rules, or a
// surface symbol is used which is not part of the alphabet.
type GrammarError struct {
	Category string // category the problem was found in, if any
	Symbol   string // offending symbol, if any
	Msg      string
}

func (e *GrammarError) Error() string {
	switch {
	case e.Category != "" && e.Symbol != "":
		return fmt.Sprintf("grammar error in %q at symbol %q: %s", e.Category, e.Symbol, e.Msg)
	case e.Category != "":
		return fmt.Sprintf("grammar error in %q: %s", e.Category, e.Msg)
	case e.Symbol != "":
		return fmt.Sprintf("grammar error at symbol %q: %s", e.Symbol, e.Msg)
	}
	return "grammar error: " + e.Msg
}

// GrammarErrorf creates a GrammarError for a category and a symbol (both may be empty).
func GrammarErrorf(category, symbol string, format string, args ...interface{}) *GrammarError {
	return &GrammarError{
		Category: category,
		Symbol:   symbol,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// IsGrammarError is a predicate: does err wrap a GrammarError?
func IsGrammarError(err error) bool {
	var gerr *GrammarError
	return errors.As(err, &gerr)
}

// InvariantViolation is used as a panic value whenever an automaton is found
// in a malformed state, e.g. an arc references a non-existent state. It always
// indicates a bug, never a user error.
type InvariantViolation struct {
	Op  string
	Msg string
}

func (iv InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", iv.Op, iv.Msg)
}

// Violation panics with an InvariantViolation.
func Violation(op string, format string, args ...interface{}) {
	panic(InvariantViolation{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// ErrUnknownCategory is returned when a parse is requested for a category
// which has not been compiled.
var ErrUnknownCategory = errors.New("unknown category")
