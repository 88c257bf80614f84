// Package ast defines the Abstract Syntax Tree (AST) node types for the Feather language.
//
// Every source construct has a corresponding node type. The hierarchy is:
//
//	Node (interface)
//	  Expr (interface)
//	    LocalExpr, AppExpr, FunExpr, ForExpr, LetExpr
//	    SortExpr, InstExpr, IntroExpr, MatchExpr, FixExpr
//	    RefExpr, DerefExpr, LoanExpr, TakeExpr, InExpr, ParenExpr
//	  SourceFile, Module, Definition
//
// Each multi-child node exposes its children through named struct fields
// (Subject, Return, Bound, Body, …) rather than positional slices, so a
// formatter or checker can address a child by role. Positional information
// is stored on the Token field present in every node.
//
// Every node is constructed once by the parser and never mutated afterwards;
// each node exclusively owns its children.
package ast

import (
	"fmt"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Feather AST.
// Every node carries the token at which it starts (for error reporting).
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String returns a compact, human-readable representation of the node.
	// It is intended for debugging and test output; use the printer package
	// for a rendering that parses back to the same tree.
	String() string
}

// Expr is a Node in the expression grammar. Feather is expression-only:
// everything below a definition's ':' or '=' is an Expr.
type Expr interface {
	Node
	exprNode()
}

// ── Paths and binders ─────────────────────────────────────────────────────────

// Path is a qualified name: one or more identifier segments separated by '::'.
// The final segment is the local name; the preceding segments are the
// namespace prefix. Segments is never empty.
type Path struct {
	Token    Token    // the first segment's token
	Segments []string // at least one
}

// First returns the namespace prefix: every segment except the last.
func (p *Path) First() []string { return p.Segments[:len(p.Segments)-1] }

// Last returns the final segment, the local name.
func (p *Path) Last() string { return p.Segments[len(p.Segments)-1] }

func (p *Path) TokenLiteral() string { return p.Token.Literal }
func (p *Path) String() string       { return strings.Join(p.Segments, "::") }

// BinderKind distinguishes the three bracket forms a parameter can take.
type BinderKind int

const (
	// ExplicitBinder is written (x : T); the argument is given at each call.
	ExplicitBinder BinderKind = iota
	// ImplicitBinder is written {x : T}; the argument is solved eagerly.
	ImplicitBinder
	// WeakBinder is written {{x : T}}; the argument is solved only when a
	// later parameter forces it. Weak is not Implicit: the bracket depths
	// are distinct tokens and distinct binder kinds.
	WeakBinder
)

// String returns the lowercase name of the binder kind.
func (k BinderKind) String() string {
	switch k {
	case ExplicitBinder:
		return "explicit"
	case ImplicitBinder:
		return "implicit"
	case WeakBinder:
		return "weak"
	}
	return "unknown"
}

// Binder is one bracket-delimited parameter: a name, an optional erased-usage
// marker, and a type expression.
//
//	(x : T)     → Kind=ExplicitBinder
//	{x : 0 T}   → Kind=ImplicitBinder, Erased=true
//	{{x : T}}   → Kind=WeakBinder
type Binder struct {
	Token  Token // the opening bracket token
	Kind   BinderKind
	Name   string
	Erased bool
	Type   Expr
}

func (b *Binder) TokenLiteral() string { return b.Token.Literal }
func (b *Binder) String() string {
	open, close := "(", ")"
	switch b.Kind {
	case ImplicitBinder:
		open, close = "{", "}"
	case WeakBinder:
		open, close = "{{", "}}"
	}
	erased := ""
	if b.Erased {
		erased = "0 "
	}
	return fmt.Sprintf("%s%s : %s%s%s", open, b.Name, erased, b.Type.String(), close)
}

// ── Support types ─────────────────────────────────────────────────────────────

// Field is one named initializer in an intro block: name = value,
// The trailing comma belongs to the field, not to the list.
type Field struct {
	Token Token // the field name token
	Name  string
	Value Expr
}

// Arm is one clause of a match block (variant -> body,) or one proof
// obligation of a take block (name -> proof,). The trailing comma belongs to
// the arm, not to the list.
type Arm struct {
	Token Token // the arm name token
	Name  string
	Body  Expr
}

// ── Top-level nodes ───────────────────────────────────────────────────────────

// SourceFile is the root AST node produced by the parser: exactly one module
// header followed by the definitions in source order.
type SourceFile struct {
	Module      *Module
	Definitions []*Definition
}

func (f *SourceFile) TokenLiteral() string { return f.Module.TokenLiteral() }
func (f *SourceFile) String() string {
	var out strings.Builder
	out.WriteString(f.Module.String())
	for _, d := range f.Definitions {
		out.WriteString("\n")
		out.WriteString(d.String())
	}
	return out.String()
}

// Module is the file header naming the module: module a::b
type Module struct {
	Token Token // the 'module' token
	Path  *Path
}

func (m *Module) TokenLiteral() string { return m.Token.Literal }
func (m *Module) String() string       { return fmt.Sprintf("module %s", m.Path.String()) }

// Definition is one top-level typed binding: def f : T = e
// Erased is true when the usage marker '0' precedes the type.
type Definition struct {
	Token  Token // the 'def' token
	Name   string
	Erased bool
	Type   Expr
	Body   Expr
}

func (d *Definition) TokenLiteral() string { return d.Token.Literal }
func (d *Definition) String() string {
	erased := ""
	if d.Erased {
		erased = "0 "
	}
	return fmt.Sprintf("def %s : %s%s = %s", d.Name, erased, d.Type.String(), d.Body.String())
}

// ── Expressions ───────────────────────────────────────────────────────────────

// LocalExpr is a reference to a bound variable by name.
type LocalExpr struct {
	Token Token
	Name  string
}

func (e *LocalExpr) exprNode()            {}
func (e *LocalExpr) TokenLiteral() string { return e.Token.Literal }
func (e *LocalExpr) String() string       { return e.Name }

// AppExpr is function application by juxtaposition: f x.
// Application is left-associative and binds tighter than everything else, so
// f x y is AppExpr{Fn: AppExpr{f, x}, Arg: y}.
type AppExpr struct {
	Token Token // the first token of the whole application
	Fn    Expr
	Arg   Expr
}

func (e *AppExpr) exprNode()            {}
func (e *AppExpr) TokenLiteral() string { return e.Token.Literal }
func (e *AppExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.Fn.String(), e.Arg.String())
}

// FunExpr is a lambda: fun (x : T) -> body  or  fun (x : T) => body.
// Total records the arrow spelling: true for '=>' (callable many times, from
// behind a borrow), false for '->' (callable once).
type FunExpr struct {
	Token  Token // the 'fun' token
	Binder *Binder
	Total  bool
	Body   Expr
}

func (e *FunExpr) exprNode()            {}
func (e *FunExpr) TokenLiteral() string { return e.Token.Literal }
func (e *FunExpr) String() string {
	arrow := "->"
	if e.Total {
		arrow = "=>"
	}
	return fmt.Sprintf("fun %s %s %s", e.Binder.String(), arrow, e.Body.String())
}

// ForExpr is a dependent function type: for (x : T) -> U.
// It shares the binder/arrow shape of FunExpr but is a distinct node: ForExpr
// is a type former, FunExpr a term former. Arrow records which arrow token
// was written (ARROW or DARROW); the choice does not change the parse shape.
type ForExpr struct {
	Token  Token // the 'for' token
	Binder *Binder
	Arrow  TokenType
	Body   Expr
}

func (e *ForExpr) exprNode()            {}
func (e *ForExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ForExpr) String() string {
	arrow := "->"
	if e.Arrow == DARROW {
		arrow = "=>"
	}
	return fmt.Sprintf("for %s %s %s", e.Binder.String(), arrow, e.Body.String())
}

// LetExpr is a local binding scoped to its trailing body: let x = e; body
type LetExpr struct {
	Token Token // the 'let' token
	Name  string
	Bound Expr
	Body  Expr
}

func (e *LetExpr) exprNode()            {}
func (e *LetExpr) TokenLiteral() string { return e.Token.Literal }
func (e *LetExpr) String() string {
	return fmt.Sprintf("let %s = %s; %s", e.Name, e.Bound.String(), e.Body.String())
}

// SortExpr is a type universe at a fixed level: Sort 0.
type SortExpr struct {
	Token    Token // the 'Sort' token
	Universe uint32
}

func (e *SortExpr) exprNode()            {}
func (e *SortExpr) TokenLiteral() string { return e.Token.Literal }
func (e *SortExpr) String() string       { return fmt.Sprintf("Sort %d", e.Universe) }

// InstExpr references an axiom or instance by qualified name: inst a::b::c.
type InstExpr struct {
	Token Token // the 'inst' token
	Path  *Path
}

func (e *InstExpr) exprNode()            {}
func (e *InstExpr) TokenLiteral() string { return e.Token.Literal }
func (e *InstExpr) String() string       { return fmt.Sprintf("inst %s", e.Path.String()) }

// IntroExpr is constructor application: a type path, positional parameters
// (each a non-application expression), a variant tag, and named field
// initializers.
//
//	intro list::List T / cons { head = x, tail = xs, }
type IntroExpr struct {
	Token   Token // the 'intro' token
	Path    *Path
	Params  []Expr
	Variant string
	Fields  []Field
}

func (e *IntroExpr) exprNode()            {}
func (e *IntroExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IntroExpr) String() string {
	return fmt.Sprintf("intro %s / %s { ... }", e.Path.String(), e.Variant)
}

// MatchExpr is case analysis with an explicit return type:
//
//	match x return T { nil -> a, cons -> b, }
type MatchExpr struct {
	Token   Token // the 'match' token
	Subject Expr
	Return  Expr
	Arms    []Arm
}

func (e *MatchExpr) exprNode()            {}
func (e *MatchExpr) TokenLiteral() string { return e.Token.Literal }
func (e *MatchExpr) String() string {
	return fmt.Sprintf("match %s return %s { ... }", e.Subject.String(), e.Return.String())
}

// FixExpr is a recursive definition former. RecName is bound for
// self-reference inside Body:
//
//	fix (n : nat) => T with rec; body
type FixExpr struct {
	Token   Token // the 'fix' token
	Binder  *Binder
	Return  Expr
	RecName string
	Body    Expr
}

func (e *FixExpr) exprNode()            {}
func (e *FixExpr) TokenLiteral() string { return e.Token.Literal }
func (e *FixExpr) String() string {
	return fmt.Sprintf("fix %s => %s with %s; ...", e.Binder.String(), e.Return.String(), e.RecName)
}

// RefExpr creates a reference. Its operand is restricted to the
// non-application sub-grammar: ref f x parses as (ref f) x, never ref (f x).
type RefExpr struct {
	Token   Token // the 'ref' token
	Operand Expr
}

func (e *RefExpr) exprNode()            {}
func (e *RefExpr) TokenLiteral() string { return e.Token.Literal }
func (e *RefExpr) String() string       { return fmt.Sprintf("(ref %s)", e.Operand.String()) }

// DerefExpr dereferences a value: *x. Unlike ref, the operand is a full
// expression.
type DerefExpr struct {
	Token   Token // the '*' token
	Operand Expr
}

func (e *DerefExpr) exprNode()            {}
func (e *DerefExpr) TokenLiteral() string { return e.Token.Literal }
func (e *DerefExpr) String() string       { return fmt.Sprintf("(*%s)", e.Operand.String()) }

// LoanExpr introduces a borrow of Name under two derived names, scoped to
// Body:
//
//	loan x as y with w; body
type LoanExpr struct {
	Token    Token // the 'loan' token
	Name     string
	AsName   string
	WithName string
	Body     Expr
}

func (e *LoanExpr) exprNode()            {}
func (e *LoanExpr) TokenLiteral() string { return e.Token.Literal }
func (e *LoanExpr) String() string {
	return fmt.Sprintf("loan %s as %s with %s; %s", e.Name, e.AsName, e.WithName, e.Body.String())
}

// TakeExpr consumes Name linearly, discharging the named proof obligations,
// scoped to Body. Proofs may be empty:
//
//	take x { returned -> p, }; body
type TakeExpr struct {
	Token  Token // the 'take' token
	Name   string
	Proofs []Arm
	Body   Expr
}

func (e *TakeExpr) exprNode()            {}
func (e *TakeExpr) TokenLiteral() string { return e.Token.Literal }
func (e *TakeExpr) String() string {
	return fmt.Sprintf("take %s { ... }; %s", e.Name, e.Body.String())
}

// InExpr is the membership relation: reference in target.
// It is left-associative and binds looser than application, so
// a b in c is InExpr{Ref: AppExpr{a, b}, Target: c}.
type InExpr struct {
	Token  Token // the first token of the left operand
	Ref    Expr
	Target Expr
}

func (e *InExpr) exprNode()            {}
func (e *InExpr) TokenLiteral() string { return e.Token.Literal }
func (e *InExpr) String() string {
	return fmt.Sprintf("(%s in %s)", e.Ref.String(), e.Target.String())
}

// ParenExpr is explicit grouping. It is transparent to precedence but kept
// as a node so re-printing can decide whether to keep the parentheses.
type ParenExpr struct {
	Token Token // the '(' token
	Inner Expr
}

func (e *ParenExpr) exprNode()            {}
func (e *ParenExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ParenExpr) String() string       { return fmt.Sprintf("(%s)", e.Inner.String()) }
