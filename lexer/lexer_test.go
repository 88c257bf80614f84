// Package lexer_test contains integration-style tests for the Feather lexer.
//
// Tests are organised by category:
//   - TestLexer_Keywords        — all 17 Feather keywords
//   - TestLexer_Punctuation     — every punctuation token including multi-char ones
//   - TestLexer_BraceDepth      — '{{' / '}}' versus '{' / '}' disambiguation
//   - TestLexer_Universe        — universe literals and the digit/word boundary
//   - TestLexer_Identifiers     — plain identifiers, primes, unicode letters
//   - TestLexer_Comments        — line comments are skipped, adjacent tokens returned
//   - TestLexer_Position        — line and column tracking across newlines
//   - TestLexer_Errors          — unrecognised input is a structured LexError
//   - TestLexer_Program         — end-to-end definition snippet
package lexer_test

import (
	"testing"

	"github.com/feather-lang/feather/ast"
	"github.com/feather-lang/feather/diag"
	"github.com/feather-lang/feather/lexer"
)

// tokenCase is a single (type, literal) expectation used in table-driven tests.
type tokenCase struct {
	expectedType    ast.TokenType
	expectedLiteral string
}

// runCases lexes input and fails the test on any mismatch against want.
// want must include the trailing EOF.
func runCases(t *testing.T, input string, want []tokenCase) {
	t.Helper()
	toks, err := lexer.Lex("test.ftr", input)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	if len(toks) != len(want) {
		t.Fatalf("token count mismatch — got %d, want %d", len(toks), len(want))
	}
	for i, tc := range want {
		if toks[i].Type != tc.expectedType {
			t.Errorf("case %d: type mismatch — got %s, want %s (literal %q)", i, toks[i].Type, tc.expectedType, toks[i].Literal)
		}
		if toks[i].Literal != tc.expectedLiteral {
			t.Errorf("case %d: literal mismatch — got %q, want %q", i, toks[i].Literal, tc.expectedLiteral)
		}
	}
}

// ── Keywords ──────────────────────────────────────────────────────────────────

// TestLexer_Keywords verifies that every Feather keyword is recognised.
func TestLexer_Keywords(t *testing.T) {
	input := `module def fun for let Sort inst intro match return fix
ref loan as with take in`

	want := []tokenCase{
		{ast.MODULE, "module"},
		{ast.DEF, "def"},
		{ast.FUN, "fun"},
		{ast.FOR, "for"},
		{ast.LET, "let"},
		{ast.SORT, "Sort"},
		{ast.INST, "inst"},
		{ast.INTRO, "intro"},
		{ast.MATCH, "match"},
		{ast.RETURN, "return"},
		{ast.FIX, "fix"},
		{ast.REF, "ref"},
		{ast.LOAN, "loan"},
		{ast.AS, "as"},
		{ast.WITH, "with"},
		{ast.TAKE, "take"},
		{ast.IN, "in"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_KeywordBoundary checks that words extending a keyword are
// identifiers, not keyword + remainder, and that case matters: 'sort' is an
// identifier, only 'Sort' is the keyword.
func TestLexer_KeywordBoundary(t *testing.T) {
	input := `reference takeaway module2 sort Sorted instant`
	want := []tokenCase{
		{ast.IDENT, "reference"},
		{ast.IDENT, "takeaway"},
		{ast.IDENT, "module2"},
		{ast.IDENT, "sort"},
		{ast.IDENT, "Sorted"},
		{ast.IDENT, "instant"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Punctuation ───────────────────────────────────────────────────────────────

// TestLexer_Punctuation verifies every punctuation token, including the
// multi-character ones.
func TestLexer_Punctuation(t *testing.T) {
	input := `:: : = ; , / * { } {{ }} ( ) -> =>`
	want := []tokenCase{
		{ast.SCOPE, "::"},
		{ast.COLON, ":"},
		{ast.ASSIGN, "="},
		{ast.SEMICOLON, ";"},
		{ast.COMMA, ","},
		{ast.SLASH, "/"},
		{ast.ASTERISK, "*"},
		{ast.LBRACE, "{"},
		{ast.RBRACE, "}"},
		{ast.LLBRACE, "{{"},
		{ast.RRBRACE, "}}"},
		{ast.LPAREN, "("},
		{ast.RPAREN, ")"},
		{ast.ARROW, "->"},
		{ast.DARROW, "=>"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_BraceDepth checks longest-match behaviour on brace runs: '{{'
// wins over two '{' tokens, and a run of three braces is '{{' then '{'.
func TestLexer_BraceDepth(t *testing.T) {
	input := `{{{x}}}`
	want := []tokenCase{
		{ast.LLBRACE, "{{"},
		{ast.LBRACE, "{"},
		{ast.IDENT, "x"},
		{ast.RRBRACE, "}}"},
		{ast.RBRACE, "}"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_ScopeVsColon checks that '::' is one token even straddling
// identifiers, and that a lone ':' stays COLON.
func TestLexer_ScopeVsColon(t *testing.T) {
	input := `a::b x : T`
	want := []tokenCase{
		{ast.IDENT, "a"},
		{ast.SCOPE, "::"},
		{ast.IDENT, "b"},
		{ast.IDENT, "x"},
		{ast.COLON, ":"},
		{ast.IDENT, "T"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Universe literals ─────────────────────────────────────────────────────────

// TestLexer_Universe checks that all-digit words are universe literals and
// that any letter in the word makes it an identifier, wherever it appears.
func TestLexer_Universe(t *testing.T) {
	input := `0 42 007 0abc x0 v1'`
	want := []tokenCase{
		{ast.UNIVERSE, "0"},
		{ast.UNIVERSE, "42"},
		{ast.UNIVERSE, "007"},
		{ast.IDENT, "0abc"},
		{ast.IDENT, "x0"},
		{ast.IDENT, "v1'"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Identifiers ───────────────────────────────────────────────────────────────

// TestLexer_Identifiers checks plain identifier scanning, including primes,
// underscores and non-ASCII letters.
func TestLexer_Identifiers(t *testing.T) {
	input := `foo bar_baz _tmp x' naïve λx`
	want := []tokenCase{
		{ast.IDENT, "foo"},
		{ast.IDENT, "bar_baz"},
		{ast.IDENT, "_tmp"},
		{ast.IDENT, "x'"},
		{ast.IDENT, "naïve"},
		{ast.IDENT, "λx"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Comments ──────────────────────────────────────────────────────────────────

// TestLexer_Comments verifies that line comments are skipped entirely,
// including a comment between two real tokens and one ending at EOF without a
// newline.
func TestLexer_Comments(t *testing.T) {
	input := `// leading comment
def x // trailing comment
= y // no newline after this one`

	want := []tokenCase{
		{ast.DEF, "def"},
		{ast.IDENT, "x"},
		{ast.ASSIGN, "="},
		{ast.IDENT, "y"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Position tracking ─────────────────────────────────────────────────────────

// TestLexer_Position verifies that tokens carry correct line and column
// numbers across newlines and comments.
func TestLexer_Position(t *testing.T) {
	input := "def x\n// note\n  fun y"
	toks, err := lexer.Lex("test.ftr", input)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	type posCase struct {
		lit  string
		line int
		col  int
	}
	cases := []posCase{
		{"def", 1, 1},
		{"x", 1, 5},
		{"fun", 3, 3},
		{"y", 3, 7},
	}

	if len(toks) != len(cases)+1 { // trailing EOF
		t.Fatalf("token count mismatch — got %d, want %d", len(toks), len(cases)+1)
	}
	for i, c := range cases {
		tok := toks[i]
		if tok.Literal != c.lit {
			t.Errorf("case %d: literal — got %q, want %q", i, tok.Literal, c.lit)
		}
		if tok.Line != c.line {
			t.Errorf("case %d (%q): line — got %d, want %d", i, c.lit, tok.Line, c.line)
		}
		if tok.Col != c.col {
			t.Errorf("case %d (%q): col — got %d, want %d", i, c.lit, tok.Col, c.col)
		}
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

// TestLexer_Errors verifies that input matching no rule yields a LexError
// pointing at the offending character, and that no tokens are returned.
func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"at sign", `def x @ y`, 1, 7},
		{"hash", "x\n# nope", 2, 1},
		{"bracket", `[x]`, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := lexer.Lex("test.ftr", tt.input)
			if toks != nil {
				t.Errorf("got %d tokens, want none", len(toks))
			}
			derr, ok := err.(*diag.Error)
			if !ok {
				t.Fatalf("error type — got %T, want *diag.Error", err)
			}
			if derr.Kind != diag.LexError {
				t.Errorf("kind — got %s, want %s", derr.Kind, diag.LexError)
			}
			if derr.Line != tt.line || derr.Col != tt.col {
				t.Errorf("position — got %d:%d, want %d:%d", derr.Line, derr.Col, tt.line, tt.col)
			}
		})
	}
}

// ── End-to-end program snippet ────────────────────────────────────────────────

// TestLexer_Program tokenises a small complete definition and verifies the
// whole token stream: keywords, binders, erasure marker, braces, arms.
func TestLexer_Program(t *testing.T) {
	input := `module core::opt

def map : 0 Sort 1 =
  fun {a : Sort 0} -> match x return b {
    none -> intro opt / none {},
  }`

	want := []tokenCase{
		{ast.MODULE, "module"},
		{ast.IDENT, "core"},
		{ast.SCOPE, "::"},
		{ast.IDENT, "opt"},

		{ast.DEF, "def"},
		{ast.IDENT, "map"},
		{ast.COLON, ":"},
		{ast.UNIVERSE, "0"},
		{ast.SORT, "Sort"},
		{ast.UNIVERSE, "1"},
		{ast.ASSIGN, "="},

		{ast.FUN, "fun"},
		{ast.LBRACE, "{"},
		{ast.IDENT, "a"},
		{ast.COLON, ":"},
		{ast.SORT, "Sort"},
		{ast.UNIVERSE, "0"},
		{ast.RBRACE, "}"},
		{ast.ARROW, "->"},

		{ast.MATCH, "match"},
		{ast.IDENT, "x"},
		{ast.RETURN, "return"},
		{ast.IDENT, "b"},
		{ast.LBRACE, "{"},
		{ast.IDENT, "none"},
		{ast.ARROW, "->"},
		{ast.INTRO, "intro"},
		{ast.IDENT, "opt"},
		{ast.SLASH, "/"},
		{ast.IDENT, "none"},
		{ast.LBRACE, "{"},
		{ast.RBRACE, "}"},
		{ast.COMMA, ","},
		{ast.RBRACE, "}"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}
