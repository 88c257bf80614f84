// Package diag defines the structured diagnostics returned by the Feather
// lexer and parser.
//
// A parse produces either a complete tree or exactly one *Error: the first
// failure aborts the whole parse, with no recovery and no partial tree.
// The Error carries everything a caller needs to render the diagnostic with
// source context: the kind of failure, the position, the offending text and
// (for unexpected tokens) the set of alternatives that would have been
// accepted.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// LexError is an input sequence the lexer could not match to any token.
	LexError Kind = iota
	// UnexpectedToken is a token that matches no alternative at the current
	// parser state. Expected lists the alternatives that were accepted.
	UnexpectedToken
	// UnbalancedDelimiter is an opening bracket whose matching closer was not
	// found before the construct (or the input) ended.
	UnbalancedDelimiter
	// UnexpectedEndOfInput is the input ending where more tokens were required.
	UnexpectedEndOfInput
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case UnexpectedToken:
		return "unexpected token"
	case UnbalancedDelimiter:
		return "unbalanced delimiter"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	}
	return "unknown"
}

// Error is a single structured diagnostic.
type Error struct {
	Kind Kind
	Line int // 1-based
	Col  int // 1-based
	// Got is the offending text: the unrecognised input for LexError, the
	// observed token otherwise. Empty at end of input.
	Got string
	// Expected is the set of accepted alternatives, in display form
	// (e.g. "identifier", "'::'"). Empty for LexError.
	Expected []string
}

// Error renders the diagnostic as a single line: position, what was seen,
// and what would have been accepted.
func (e *Error) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Line, e.Col)
	switch e.Kind {
	case LexError:
		return fmt.Sprintf("%s: unrecognised input %q", pos, e.Got)
	case UnexpectedEndOfInput:
		return fmt.Sprintf("%s: unexpected end of input, expected %s", pos, orList(e.Expected))
	case UnbalancedDelimiter:
		return fmt.Sprintf("%s: unbalanced delimiter: got %q, expected %s", pos, e.Got, orList(e.Expected))
	default:
		return fmt.Sprintf("%s: unexpected %q, expected %s", pos, e.Got, orList(e.Expected))
	}
}

func orList(alts []string) string {
	if len(alts) == 0 {
		return "nothing"
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
}
