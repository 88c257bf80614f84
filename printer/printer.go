// Package printer renders an AST back to Feather source text.
//
// The output is canonical: one definition per line block, single spaces
// between tokens, and a trailing comma after every list element. Parentheses
// are emitted exactly where the tree holds a ParenExpr node, so for any tree
// produced by the parser,
//
//	parser.ParseExpr(printer.Expr(e)) ≡ e   (under ast.Equal)
//
// holds without the printer re-deriving precedence.
package printer

import (
	"fmt"
	"strings"

	"github.com/feather-lang/feather/ast"
)

// File renders a complete source file: the module header, then each
// definition separated by a blank line. The result ends with a newline.
func File(f *ast.SourceFile) string {
	var out strings.Builder
	out.WriteString("module ")
	out.WriteString(f.Module.Path.String())
	out.WriteString("\n")
	for _, d := range f.Definitions {
		out.WriteString("\n")
		out.WriteString(Definition(d))
		out.WriteString("\n")
	}
	return out.String()
}

// Definition renders one `def name : type = body` binding on a single line.
func Definition(d *ast.Definition) string {
	erased := ""
	if d.Erased {
		erased = "0 "
	}
	return fmt.Sprintf("def %s : %s%s = %s", d.Name, erased, Expr(d.Type), Expr(d.Body))
}

// Expr renders one expression.
func Expr(e ast.Expr) string {
	var out strings.Builder
	writeExpr(&out, e)
	return out.String()
}

func writeExpr(out *strings.Builder, e ast.Expr) {
	switch e := e.(type) {
	case *ast.LocalExpr:
		out.WriteString(e.Name)
	case *ast.AppExpr:
		writeExpr(out, e.Fn)
		out.WriteString(" ")
		writeExpr(out, e.Arg)
	case *ast.FunExpr:
		out.WriteString("fun ")
		writeBinder(out, e.Binder)
		if e.Total {
			out.WriteString(" => ")
		} else {
			out.WriteString(" -> ")
		}
		writeExpr(out, e.Body)
	case *ast.ForExpr:
		out.WriteString("for ")
		writeBinder(out, e.Binder)
		if e.Arrow == ast.DARROW {
			out.WriteString(" => ")
		} else {
			out.WriteString(" -> ")
		}
		writeExpr(out, e.Body)
	case *ast.LetExpr:
		out.WriteString("let ")
		out.WriteString(e.Name)
		out.WriteString(" = ")
		writeExpr(out, e.Bound)
		out.WriteString("; ")
		writeExpr(out, e.Body)
	case *ast.SortExpr:
		fmt.Fprintf(out, "Sort %d", e.Universe)
	case *ast.InstExpr:
		out.WriteString("inst ")
		out.WriteString(e.Path.String())
	case *ast.IntroExpr:
		out.WriteString("intro ")
		out.WriteString(e.Path.String())
		for _, param := range e.Params {
			out.WriteString(" ")
			writeExpr(out, param)
		}
		out.WriteString(" / ")
		out.WriteString(e.Variant)
		out.WriteString(" ")
		writeFields(out, e.Fields)
	case *ast.MatchExpr:
		out.WriteString("match ")
		writeExpr(out, e.Subject)
		out.WriteString(" return ")
		writeExpr(out, e.Return)
		out.WriteString(" ")
		writeArms(out, e.Arms)
	case *ast.FixExpr:
		out.WriteString("fix ")
		writeBinder(out, e.Binder)
		out.WriteString(" => ")
		writeExpr(out, e.Return)
		out.WriteString(" with ")
		out.WriteString(e.RecName)
		out.WriteString("; ")
		writeExpr(out, e.Body)
	case *ast.RefExpr:
		out.WriteString("ref ")
		writeExpr(out, e.Operand)
	case *ast.DerefExpr:
		out.WriteString("*")
		writeExpr(out, e.Operand)
	case *ast.LoanExpr:
		out.WriteString("loan ")
		out.WriteString(e.Name)
		out.WriteString(" as ")
		out.WriteString(e.AsName)
		out.WriteString(" with ")
		out.WriteString(e.WithName)
		out.WriteString("; ")
		writeExpr(out, e.Body)
	case *ast.TakeExpr:
		out.WriteString("take ")
		out.WriteString(e.Name)
		out.WriteString(" ")
		writeArms(out, e.Proofs)
		out.WriteString("; ")
		writeExpr(out, e.Body)
	case *ast.InExpr:
		writeExpr(out, e.Ref)
		out.WriteString(" in ")
		writeExpr(out, e.Target)
	case *ast.ParenExpr:
		out.WriteString("(")
		writeExpr(out, e.Inner)
		out.WriteString(")")
	}
}

func writeBinder(out *strings.Builder, b *ast.Binder) {
	open, close := "(", ")"
	switch b.Kind {
	case ast.ImplicitBinder:
		open, close = "{", "}"
	case ast.WeakBinder:
		open, close = "{{", "}}"
	}
	out.WriteString(open)
	out.WriteString(b.Name)
	out.WriteString(" : ")
	if b.Erased {
		out.WriteString("0 ")
	}
	typ := Expr(b.Type)
	out.WriteString(typ)
	// A type ending in '}' must not touch a brace closer: '}}' would
	// re-lex as the single weak-binder closer.
	if close != ")" && strings.HasSuffix(typ, "}") {
		out.WriteString(" ")
	}
	out.WriteString(close)
}

// writeFields renders an intro field block; empty lists become {}.
func writeFields(out *strings.Builder, fields []ast.Field) {
	if len(fields) == 0 {
		out.WriteString("{}")
		return
	}
	out.WriteString("{ ")
	for _, f := range fields {
		out.WriteString(f.Name)
		out.WriteString(" = ")
		writeExpr(out, f.Value)
		out.WriteString(", ")
	}
	out.WriteString("}")
}

// writeArms renders a match arm or take proof block; empty lists become {}.
func writeArms(out *strings.Builder, arms []ast.Arm) {
	if len(arms) == 0 {
		out.WriteString("{}")
		return
	}
	out.WriteString("{ ")
	for _, a := range arms {
		out.WriteString(a.Name)
		out.WriteString(" -> ")
		writeExpr(out, a.Body)
		out.WriteString(", ")
	}
	out.WriteString("}")
}
