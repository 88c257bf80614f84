// Package lexer implements the Feather tokeniser.
//
// The token rules are declared as an ordered regular-expression table (the
// participle stateful lexer); [Lex] runs the table over one source file and
// returns the complete token slice, ending with an [ast.EOF] token.
//
// Design notes:
//   - Multi-character punctuation ('::', '->', '=>', '{{', '}}') is listed
//     before its single-character prefixes so the longer token wins.
//   - Whitespace and line comments are matched like any other rule and then
//     dropped by the post-filter; they may appear between any two tokens.
//   - Word runs (letters, digits, '_', ''') are classified after matching:
//     all-digits → universe literal, keyword text → keyword, else identifier.
//   - Input that matches no rule is a [diag.LexError] carrying the position;
//     the whole file is rejected.
package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/feather-lang/feather/ast"
	"github.com/feather-lang/feather/diag"
)

// rules is the ordered token table. First match wins, so every multi-char
// token precedes its prefix.
var rules = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Scope", Pattern: `::`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "DArrow", Pattern: `=>`},
	{Name: "LLBrace", Pattern: `\{\{`},
	{Name: "RRBrace", Pattern: `\}\}`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Star", Pattern: `\*`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Word", Pattern: `[\p{L}\p{N}_']+`},
})

// punct maps rule names to their token types. Word, Comment and Whitespace
// are handled separately.
var punct = map[string]ast.TokenType{
	"Scope":     ast.SCOPE,
	"Arrow":     ast.ARROW,
	"DArrow":    ast.DARROW,
	"LLBrace":   ast.LLBRACE,
	"RRBrace":   ast.RRBRACE,
	"Colon":     ast.COLON,
	"Assign":    ast.ASSIGN,
	"Semicolon": ast.SEMICOLON,
	"Comma":     ast.COMMA,
	"Slash":     ast.SLASH,
	"Star":      ast.ASTERISK,
	"LBrace":    ast.LBRACE,
	"RBrace":    ast.RBRACE,
	"LParen":    ast.LPAREN,
	"RParen":    ast.RPAREN,
}

// symbolNames maps the table's internal token ids back to rule names.
var symbolNames = lexer.SymbolsByRune(rules)

// Lex tokenises one source file and returns the full token slice, ending with
// an EOF token. Whitespace and comments are dropped. On unrecognised input it
// returns a *diag.Error of kind LexError and no tokens; the error position is
// where the unmatched input begins.
func Lex(filename, input string) ([]ast.Token, error) {
	lx, err := rules.LexString(filename, input)
	if err != nil {
		return nil, lexError(input, err)
	}

	var toks []ast.Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, lexError(input, err)
		}
		if t.EOF() {
			toks = append(toks, ast.Token{
				Type:   ast.EOF,
				Line:   t.Pos.Line,
				Col:    t.Pos.Column,
				Offset: t.Pos.Offset,
			})
			return toks, nil
		}

		name := symbolNames[t.Type]
		switch name {
		case "Comment", "Whitespace":
			continue
		case "Word":
			toks = append(toks, ast.Token{
				Type:    classifyWord(t.Value),
				Literal: t.Value,
				Line:    t.Pos.Line,
				Col:     t.Pos.Column,
				Offset:  t.Pos.Offset,
			})
		default:
			toks = append(toks, ast.Token{
				Type:    punct[name],
				Literal: t.Value,
				Line:    t.Pos.Line,
				Col:     t.Pos.Column,
				Offset:  t.Pos.Offset,
			})
		}
	}
}

// classifyWord resolves a word run to universe literal, keyword or
// identifier. Keywords win over identifier classification on exact match.
func classifyWord(word string) ast.TokenType {
	if isDigits(word) {
		return ast.UNIVERSE
	}
	return ast.LookupIdent(word)
}

// isDigits reports whether s consists only of ASCII decimal digits.
// A word with any non-digit character is an identifier, even if it starts
// with a digit.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// lexError converts a participle lexer error into a diag.Error. The position
// comes from the underlying error; the offending text is recovered from the
// input at that offset.
func lexError(input string, err error) error {
	if lerr, ok := err.(*lexer.Error); ok {
		got := ""
		if lerr.Pos.Offset >= 0 && lerr.Pos.Offset < len(input) {
			got = string([]rune(input[lerr.Pos.Offset:])[0])
		}
		return &diag.Error{
			Kind: diag.LexError,
			Line: lerr.Pos.Line,
			Col:  lerr.Pos.Column,
			Got:  got,
		}
	}
	return &diag.Error{Kind: diag.LexError, Got: err.Error()}
}
