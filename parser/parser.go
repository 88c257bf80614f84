// Package parser implements the Feather recursive-descent parser.
//
// The parser reads the token slice produced by [lexer.Lex] and builds an
// [ast.SourceFile]. There are only two binary forms — application by
// juxtaposition and membership 'in' — so precedence is an explicit two-level
// climb rather than a table: application has no operator token and is
// detected by "the next token can start a primary expression".
//
// Usage:
//
//	file, err := parser.Parse("main.ftr", source)
//	if err != nil { ... } // *diag.Error
//
// There is no error recovery: the first failure aborts the parse and is
// returned as a single structured diagnostic. Downstream consumers
// (formatter, checker) require a fully well-formed tree, so a partial tree
// is never synthesised.
package parser

import (
	"strconv"

	"github.com/feather-lang/feather/ast"
	"github.com/feather-lang/feather/diag"
	"github.com/feather-lang/feather/lexer"
)

// Precedence levels for the two binary forms. Application binds tighter than
// membership; everything else is a primary expression above both.
const (
	precLowest = iota // entry point: accept both 'in' and application
	precIn            // inside an 'in' right-hand side: accept application only
)

// Parser holds all state needed to parse one token slice. A Parser is used
// for a single parse and holds no external resources; independent files can
// be parsed concurrently with independent Parsers.
type Parser struct {
	toks []ast.Token // always ends with an EOF token
	pos  int
}

// Parse tokenises and parses one source file: a module header followed by
// zero or more definitions. On failure it returns a *diag.Error and a nil
// tree.
func Parse(filename, input string) (*ast.SourceFile, error) {
	toks, err := lexer.Lex(filename, input)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseSourceFile()
}

// ParseExpr tokenises and parses a single standalone expression, requiring
// the whole input to be consumed. Intended for tooling and tests.
func ParseExpr(filename, input string) (ast.Expr, error) {
	toks, err := lexer.Lex(filename, input)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	e, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if !p.curIs(ast.EOF) {
		return nil, p.unexpected(p.cur(), ast.EOF.String())
	}
	return e, nil
}

// ── Token cursor ──────────────────────────────────────────────────────────────

// cur returns the current (next unconsumed) token. The slice always ends
// with EOF, so cur is defined at every position.
func (p *Parser) cur() ast.Token { return p.toks[p.pos] }

// advance consumes one token. It never moves past the trailing EOF.
func (p *Parser) advance() {
	if p.toks[p.pos].Type != ast.EOF {
		p.pos++
	}
}

// curIs reports whether the current token has the given type.
func (p *Parser) curIs(tt ast.TokenType) bool { return p.cur().Type == tt }

// expect consumes and returns the current token if it has the given type;
// otherwise it returns an UnexpectedToken (or UnexpectedEndOfInput)
// diagnostic naming the single accepted alternative.
func (p *Parser) expect(tt ast.TokenType) (ast.Token, error) {
	tok := p.cur()
	if tok.Type != tt {
		return tok, p.unexpected(tok, tt.String())
	}
	p.advance()
	return tok, nil
}

// expectCloser is expect for closing delimiters: a mismatch is an
// UnbalancedDelimiter, whatever the observed token (including EOF).
func (p *Parser) expectCloser(tt ast.TokenType) (ast.Token, error) {
	tok := p.cur()
	if tok.Type != tt {
		return tok, &diag.Error{
			Kind:     diag.UnbalancedDelimiter,
			Line:     tok.Line,
			Col:      tok.Col,
			Got:      tok.Literal,
			Expected: []string{tt.String()},
		}
	}
	p.advance()
	return tok, nil
}

// unexpected builds the diagnostic for a token that matches no alternative.
// At end of input the kind is UnexpectedEndOfInput instead.
func (p *Parser) unexpected(tok ast.Token, expected ...string) error {
	kind := diag.UnexpectedToken
	if tok.Type == ast.EOF {
		kind = diag.UnexpectedEndOfInput
	}
	return &diag.Error{
		Kind:     kind,
		Line:     tok.Line,
		Col:      tok.Col,
		Got:      tok.Literal,
		Expected: expected,
	}
}

// exprStart is the display set of every token that can begin an expression,
// used for diagnostics at expression positions.
var exprStart = []string{
	"identifier", "'fun'", "'for'", "'let'", "'Sort'", "'inst'", "'intro'",
	"'match'", "'fix'", "'ref'", "'*'", "'loan'", "'take'", "'('",
}

// canStartExpr reports whether a token of the given type can begin a primary
// expression. The expression climb terminates on any token for which this is
// false.
func canStartExpr(tt ast.TokenType) bool {
	switch tt {
	case ast.IDENT, ast.FUN, ast.FOR, ast.LET, ast.SORT, ast.INST, ast.INTRO,
		ast.MATCH, ast.FIX, ast.REF, ast.ASTERISK, ast.LOAN, ast.TAKE, ast.LPAREN:
		return true
	}
	return false
}

// ── Source file, module, definitions ──────────────────────────────────────────

// parseSourceFile parses `module path` followed by zero or more definitions,
// then requires end of input.
func (p *Parser) parseSourceFile() (*ast.SourceFile, error) {
	modTok, err := p.expect(ast.MODULE)
	if err != nil {
		return nil, err
	}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	file := &ast.SourceFile{Module: &ast.Module{Token: modTok, Path: path}}
	for p.curIs(ast.DEF) {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		file.Definitions = append(file.Definitions, def)
	}
	if !p.curIs(ast.EOF) {
		return nil, p.unexpected(p.cur(), ast.DEF.String(), ast.EOF.String())
	}
	return file, nil
}

// parseDefinition parses `def name : ['0'] type = body`.
func (p *Parser) parseDefinition() (*ast.Definition, error) {
	tok, err := p.expect(ast.DEF)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.COLON); err != nil {
		return nil, err
	}
	erased := p.eatErasure()
	typ, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.ASSIGN); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.Definition{
		Token:  tok,
		Name:   name.Literal,
		Erased: erased,
		Type:   typ,
		Body:   body,
	}, nil
}

// eatErasure consumes the usage-erasure marker if present: the literal token
// '0' directly after a ':'. Any other universe literal (including '00') is
// not a marker and is left for the expression parser to reject.
func (p *Parser) eatErasure() bool {
	if p.curIs(ast.UNIVERSE) && p.cur().Literal == "0" {
		p.advance()
		return true
	}
	return false
}

// parsePath parses `identifier ('::' identifier)*`. The separator is
// consumed greedily: every '::' must be followed by another segment.
func (p *Parser) parsePath() (*ast.Path, error) {
	first, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	path := &ast.Path{Token: first, Segments: []string{first.Literal}}
	for p.curIs(ast.SCOPE) {
		p.advance()
		seg, err := p.expect(ast.IDENT)
		if err != nil {
			return nil, err
		}
		path.Segments = append(path.Segments, seg.Literal)
	}
	return path, nil
}

// ── Binders ───────────────────────────────────────────────────────────────────

// parseBinder dispatches on the opening bracket — '(' explicit, '{' implicit,
// '{{' weak — then parses `name : ['0'] type` and the matching closer.
// The doubled brace is a single token, so implicit and weak cannot be
// conflated here.
func (p *Parser) parseBinder() (*ast.Binder, error) {
	tok := p.cur()
	var kind ast.BinderKind
	var closer ast.TokenType
	switch tok.Type {
	case ast.LPAREN:
		kind, closer = ast.ExplicitBinder, ast.RPAREN
	case ast.LBRACE:
		kind, closer = ast.ImplicitBinder, ast.RBRACE
	case ast.LLBRACE:
		kind, closer = ast.WeakBinder, ast.RRBRACE
	default:
		return nil, p.unexpected(tok, "'('", "'{'", "'{{'")
	}
	p.advance()

	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.COLON); err != nil {
		return nil, err
	}
	erased := p.eatErasure()
	typ, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectCloser(closer); err != nil {
		return nil, err
	}
	return &ast.Binder{
		Token:  tok,
		Kind:   kind,
		Name:   name.Literal,
		Erased: erased,
		Type:   typ,
	}, nil
}

// ── Expression climbing ───────────────────────────────────────────────────────

// parseExpression parses one primary expression and then extends it:
// application (another primary directly following) is tried first at every
// step; the 'in' keyword extends only when the caller's level permits it.
// Both chains associate to the left. The loop stops at the first token that
// can neither start a primary nor (at this level) be 'in'.
func (p *Parser) parseExpression(min int) (ast.Expr, error) {
	start := p.cur()
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case canStartExpr(p.cur().Type):
			arg, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = &ast.AppExpr{Token: start, Fn: left, Arg: arg}
		case p.curIs(ast.IN) && min < precIn:
			p.advance()
			right, err := p.parseExpression(precIn)
			if err != nil {
				return nil, err
			}
			left = &ast.InExpr{Token: start, Ref: left, Target: right}
		default:
			return left, nil
		}
	}
}

// parsePrimary parses one primary expression: a construct recognised by its
// leading token. Each keyword commits to exactly one construct, so no
// backtracking is needed.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur().Type {
	case ast.IDENT:
		tok := p.cur()
		p.advance()
		return &ast.LocalExpr{Token: tok, Name: tok.Literal}, nil
	case ast.FUN:
		return p.parseFun()
	case ast.FOR:
		return p.parseFor()
	case ast.LET:
		return p.parseLet()
	case ast.SORT:
		return p.parseSort()
	case ast.INST:
		return p.parseInst()
	case ast.INTRO:
		return p.parseIntro()
	case ast.MATCH:
		return p.parseMatch()
	case ast.FIX:
		return p.parseFix()
	case ast.REF:
		return p.parseRef()
	case ast.ASTERISK:
		return p.parseDeref()
	case ast.LOAN:
		return p.parseLoan()
	case ast.TAKE:
		return p.parseTake()
	case ast.LPAREN:
		return p.parseParen()
	default:
		return nil, p.unexpected(p.cur(), exprStart...)
	}
}

// ── Construct parsers ─────────────────────────────────────────────────────────

// parseFun parses `fun binder ('->'|'=>') body`. The fat arrow marks the
// total (many-times callable) spelling.
func (p *Parser) parseFun() (ast.Expr, error) {
	tok, err := p.expect(ast.FUN)
	if err != nil {
		return nil, err
	}
	binder, err := p.parseBinder()
	if err != nil {
		return nil, err
	}
	arrow := p.cur()
	if arrow.Type != ast.ARROW && arrow.Type != ast.DARROW {
		return nil, p.unexpected(arrow, "'->'", "'=>'")
	}
	p.advance()
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.FunExpr{
		Token:  tok,
		Binder: binder,
		Total:  arrow.Type == ast.DARROW,
		Body:   body,
	}, nil
}

// parseFor parses `for binder ('->'|'=>') body`. The arrow token kind is
// recorded verbatim; it does not change the parse shape.
func (p *Parser) parseFor() (ast.Expr, error) {
	tok, err := p.expect(ast.FOR)
	if err != nil {
		return nil, err
	}
	binder, err := p.parseBinder()
	if err != nil {
		return nil, err
	}
	arrow := p.cur()
	if arrow.Type != ast.ARROW && arrow.Type != ast.DARROW {
		return nil, p.unexpected(arrow, "'->'", "'=>'")
	}
	p.advance()
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.ForExpr{
		Token:  tok,
		Binder: binder,
		Arrow:  arrow.Type,
		Body:   body,
	}, nil
}

// parseLet parses `let name = bound ; body`. name is bound over body only.
func (p *Parser) parseLet() (ast.Expr, error) {
	tok, err := p.expect(ast.LET)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.ASSIGN); err != nil {
		return nil, err
	}
	bound, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.LetExpr{Token: tok, Name: name.Literal, Bound: bound, Body: body}, nil
}

// parseSort parses `Sort universe`.
func (p *Parser) parseSort() (ast.Expr, error) {
	tok, err := p.expect(ast.SORT)
	if err != nil {
		return nil, err
	}
	lit, err := p.expect(ast.UNIVERSE)
	if err != nil {
		return nil, err
	}
	u, err := strconv.ParseUint(lit.Literal, 10, 32)
	if err != nil {
		return nil, p.unexpected(lit, "universe literal")
	}
	return &ast.SortExpr{Token: tok, Universe: uint32(u)}, nil
}

// parseInst parses `inst path`.
func (p *Parser) parseInst() (ast.Expr, error) {
	tok, err := p.expect(ast.INST)
	if err != nil {
		return nil, err
	}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	return &ast.InstExpr{Token: tok, Path: path}, nil
}

// parseIntro parses constructor application:
//
//	intro path primary* '/' variant '{' (name '=' value ',')* '}'
//
// The positional parameters are primaries, never applications, so the list
// ends at the '/'. Each field carries its own trailing comma; the field list
// may be empty.
func (p *Parser) parseIntro() (ast.Expr, error) {
	tok, err := p.expect(ast.INTRO)
	if err != nil {
		return nil, err
	}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	var params []ast.Expr
	for canStartExpr(p.cur().Type) {
		param, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	if _, err := p.expect(ast.SLASH); err != nil {
		return nil, err
	}
	variant, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.LBRACE); err != nil {
		return nil, err
	}
	var fields []ast.Field
	for !p.curIs(ast.RBRACE) && !p.curIs(ast.EOF) {
		name, err := p.expect(ast.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.ASSIGN); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.COMMA); err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Token: name, Name: name.Literal, Value: value})
	}
	if _, err := p.expectCloser(ast.RBRACE); err != nil {
		return nil, err
	}
	return &ast.IntroExpr{
		Token:   tok,
		Path:    path,
		Params:  params,
		Variant: variant.Literal,
		Fields:  fields,
	}, nil
}

// parseMatch parses `match subject return type '{' (name '->' body ',')* '}'`.
// The arm list may be empty.
func (p *Parser) parseMatch() (ast.Expr, error) {
	tok, err := p.expect(ast.MATCH)
	if err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RETURN); err != nil {
		return nil, err
	}
	ret, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	arms, err := p.parseArmBlock()
	if err != nil {
		return nil, err
	}
	return &ast.MatchExpr{Token: tok, Subject: subject, Return: ret, Arms: arms}, nil
}

// parseArmBlock parses `'{' (name '->' body ',')* '}'`, shared by match arms
// and take proofs. Each arm carries its own trailing comma.
func (p *Parser) parseArmBlock() ([]ast.Arm, error) {
	if _, err := p.expect(ast.LBRACE); err != nil {
		return nil, err
	}
	var arms []ast.Arm
	for !p.curIs(ast.RBRACE) && !p.curIs(ast.EOF) {
		name, err := p.expect(ast.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.ARROW); err != nil {
			return nil, err
		}
		body, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.COMMA); err != nil {
			return nil, err
		}
		arms = append(arms, ast.Arm{Token: name, Name: name.Literal, Body: body})
	}
	if _, err := p.expectCloser(ast.RBRACE); err != nil {
		return nil, err
	}
	return arms, nil
}

// parseFix parses `fix binder '=>' type 'with' rec ';' body`. rec is bound
// for self-reference inside body.
func (p *Parser) parseFix() (ast.Expr, error) {
	tok, err := p.expect(ast.FIX)
	if err != nil {
		return nil, err
	}
	binder, err := p.parseBinder()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.DARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.WITH); err != nil {
		return nil, err
	}
	rec, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.FixExpr{
		Token:   tok,
		Binder:  binder,
		Return:  ret,
		RecName: rec.Literal,
		Body:    body,
	}, nil
}

// parseRef parses `ref operand` where operand is a single primary, never an
// application: ref f x is (ref f) x. The restriction keeps the borrowed
// operand syntactically atomic.
func (p *Parser) parseRef() (ast.Expr, error) {
	tok, err := p.expect(ast.REF)
	if err != nil {
		return nil, err
	}
	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.RefExpr{Token: tok, Operand: operand}, nil
}

// parseDeref parses `'*' operand` over a full expression — the documented
// asymmetry with ref.
func (p *Parser) parseDeref() (ast.Expr, error) {
	tok, err := p.expect(ast.ASTERISK)
	if err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.DerefExpr{Token: tok, Operand: operand}, nil
}

// parseLoan parses `loan name 'as' asName 'with' withName ';' body`.
func (p *Parser) parseLoan() (ast.Expr, error) {
	tok, err := p.expect(ast.LOAN)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.AS); err != nil {
		return nil, err
	}
	asName, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.WITH); err != nil {
		return nil, err
	}
	withName, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.LoanExpr{
		Token:    tok,
		Name:     name.Literal,
		AsName:   asName.Literal,
		WithName: withName.Literal,
		Body:     body,
	}, nil
}

// parseTake parses `take name '{' (proof '->' expr ',')* '}' ';' body`.
// The proof list may be empty.
func (p *Parser) parseTake() (ast.Expr, error) {
	tok, err := p.expect(ast.TAKE)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(ast.IDENT)
	if err != nil {
		return nil, err
	}
	proofs, err := p.parseArmBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.SEMICOLON); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.TakeExpr{Token: tok, Name: name.Literal, Proofs: proofs, Body: body}, nil
}

// parseParen parses `'(' expr ')'`, kept as a ParenExpr node so re-printing
// can decide whether the parentheses stay.
func (p *Parser) parseParen() (ast.Expr, error) {
	tok, err := p.expect(ast.LPAREN)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectCloser(ast.RPAREN); err != nil {
		return nil, err
	}
	return &ast.ParenExpr{Token: tok, Inner: inner}, nil
}
