// Package ast defines the token types and the Token struct used by the Feather lexer and parser.
//
// Tokens are the smallest meaningful units of a Feather source file. Every token carries its
// type, the exact literal text it was scanned from, and its source position (line, column,
// byte offset). Line and column are 1-based: the first character of a file is Line 1, Col 1.
package ast

// TokenType identifies the category of a scanned token.
// The zero value is ILLEGAL and marks an unset token; the lexer never produces it.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL is the zero value of TokenType. It is never emitted by the lexer
	// (unrecognised input is a lex error, not a token) and only appears in a
	// Token that was never filled in.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream. The parser stops when it sees EOF.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: a run of letters, digits, underscores and primes
	// containing at least one non-digit. Identifiers that match a keyword are
	// re-classified to their keyword type by the lexer before the token is
	// returned.
	IDENT
	// UNIVERSE is a type-universe level: a run consisting only of decimal
	// digits, e.g. the 0 in `Sort 0`. The same token doubles as the
	// usage-erasure marker when its literal is exactly "0" and it appears
	// directly after the ':' of a binder or definition.
	UNIVERSE

	// ── Keywords ───────────────────────────────────────────────────────────────

	// MODULE opens the single module header: module a::b
	MODULE
	// DEF introduces a top-level definition: def f : T = e
	DEF
	// FUN introduces a lambda: fun (x : T) => e
	FUN
	// FOR introduces a dependent function type: for (x : T) -> U
	FOR
	// LET introduces a local binding: let x = e; body
	LET
	// SORT is the universe former: Sort 0
	SORT
	// INST references an axiom or instance by qualified name: inst a::b::c
	INST
	// INTRO is constructor application: intro P a b / mk { f = e, }
	INTRO
	// MATCH opens a case analysis: match x return T { v -> e, }
	MATCH
	// RETURN separates a match subject from its return type.
	RETURN
	// FIX introduces a recursive definition: fix (x : T) => U with rec; body
	FIX
	// REF creates a reference; binds over a single non-application operand.
	REF
	// LOAN introduces a borrow: loan x as y with w; body
	LOAN
	// AS names the borrowed view inside a loan.
	AS
	// WITH names the loan witness, and separates a fix return type from its
	// recursion name.
	WITH
	// TAKE consumes a value linearly: take x { p -> e, }; body
	TAKE
	// IN is the membership relation, the loosest binary form: a in b
	IN

	// ── Punctuation ────────────────────────────────────────────────────────────

	// SCOPE is the path segment separator: a::b
	SCOPE
	// COLON separates a name from its type: x : T
	COLON
	// ASSIGN binds a value: def f : T = e, let x = e
	ASSIGN
	// SEMICOLON terminates the head of let, fix, loan and take.
	SEMICOLON
	// COMMA terminates each intro field, match arm and take proof.
	COMMA
	// SLASH separates intro parameters from the variant name.
	SLASH
	// ASTERISK is the dereference prefix: *x
	ASTERISK
	// LBRACE opens an implicit binder or a field/arm/proof list: {
	LBRACE
	// RBRACE closes what LBRACE opened: }
	RBRACE
	// LLBRACE opens a weak binder; a single token, not two braces: {{
	LLBRACE
	// RRBRACE closes a weak binder; a single token, not two braces: }}
	RRBRACE
	// LPAREN opens an explicit binder or a grouped expression: (
	LPAREN
	// RPAREN closes what LPAREN opened: )
	RPAREN
	// ARROW is the thin arrow accepted by fun and for, and required by match
	// arms and take proofs: ->
	ARROW
	// DARROW is the fat arrow accepted by fun and for, and required by fix: =>
	DARROW
)

// keywords maps the literal text of every Feather keyword to its TokenType.
// The lexer consults this map when it finishes scanning a word.
var keywords = map[string]TokenType{
	"module": MODULE,
	"def":    DEF,
	"fun":    FUN,
	"for":    FOR,
	"let":    LET,
	"Sort":   SORT,
	"inst":   INST,
	"intro":  INTRO,
	"match":  MATCH,
	"return": RETURN,
	"fix":    FIX,
	"ref":    REF,
	"loan":   LOAN,
	"as":     AS,
	"with":   WITH,
	"take":   TAKE,
	"in":     IN,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// tokenNames holds the display form of each token type as used in
// diagnostics: category names for the open classes, quoted literals for
// keywords and punctuation.
var tokenNames = map[TokenType]string{
	ILLEGAL:   "illegal",
	EOF:       "end of input",
	IDENT:     "identifier",
	UNIVERSE:  "universe literal",
	MODULE:    "'module'",
	DEF:       "'def'",
	FUN:       "'fun'",
	FOR:       "'for'",
	LET:       "'let'",
	SORT:      "'Sort'",
	INST:      "'inst'",
	INTRO:     "'intro'",
	MATCH:     "'match'",
	RETURN:    "'return'",
	FIX:       "'fix'",
	REF:       "'ref'",
	LOAN:      "'loan'",
	AS:        "'as'",
	WITH:      "'with'",
	TAKE:      "'take'",
	IN:        "'in'",
	SCOPE:     "'::'",
	COLON:     "':'",
	ASSIGN:    "'='",
	SEMICOLON: "';'",
	COMMA:     "','",
	SLASH:     "'/'",
	ASTERISK:  "'*'",
	LBRACE:    "'{'",
	RBRACE:    "'}'",
	LLBRACE:   "'{{'",
	RRBRACE:   "'}}'",
	LPAREN:    "'('",
	RPAREN:    "')'",
	ARROW:     "'->'",
	DARROW:    "'=>'",
}

// String returns the display form of the token type used in diagnostics,
// e.g. "identifier", "'::'", "end of input".
func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Feather lexer.
//
// Fields:
//   - Type    — the category of this token (see TokenType constants)
//   - Literal — the exact source text that was scanned
//   - Line    — 1-based source line number
//   - Col     — 1-based column of the first character of this token
//   - Offset  — byte offset of the first character of this token
//
// The source span of the token is [Offset, Offset+len(Literal)).
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
	Offset  int
}

// String returns the literal text of the token, useful for debugging and
// error messages. It does not replicate surrounding whitespace.
func (t Token) String() string {
	return t.Literal
}
