package main

import (
	"fmt"
	"strings"

	"github.com/feather-lang/feather/ast"
)

// dumpFile renders a source file as an indented tree, one node per line,
// with children labelled by their field role.
func dumpFile(f *ast.SourceFile) string {
	var out strings.Builder
	fmt.Fprintf(&out, "module %s\n", f.Module.Path)
	for _, d := range f.Definitions {
		erased := ""
		if d.Erased {
			erased = " erased"
		}
		fmt.Fprintf(&out, "def %s%s\n", d.Name, erased)
		out.WriteString(labelled("type", d.Type, 1))
		out.WriteString(labelled("body", d.Body, 1))
	}
	return out.String()
}

func dumpExpr(e ast.Expr, depth int) string {
	pad := strings.Repeat("  ", depth)
	switch e := e.(type) {
	case *ast.LocalExpr:
		return fmt.Sprintf("%slocal %s\n", pad, e.Name)
	case *ast.AppExpr:
		return fmt.Sprintf("%sapp\n", pad) +
			labelled("fn", e.Fn, depth+1) +
			labelled("arg", e.Arg, depth+1)
	case *ast.FunExpr:
		kind := "once"
		if e.Total {
			kind = "total"
		}
		return fmt.Sprintf("%sfun %s\n", pad, kind) +
			dumpBinder(e.Binder, depth+1) +
			labelled("body", e.Body, depth+1)
	case *ast.ForExpr:
		return fmt.Sprintf("%sfor\n", pad) +
			dumpBinder(e.Binder, depth+1) +
			labelled("body", e.Body, depth+1)
	case *ast.LetExpr:
		return fmt.Sprintf("%slet %s\n", pad, e.Name) +
			labelled("bound", e.Bound, depth+1) +
			labelled("body", e.Body, depth+1)
	case *ast.SortExpr:
		return fmt.Sprintf("%ssort %d\n", pad, e.Universe)
	case *ast.InstExpr:
		return fmt.Sprintf("%sinst %s\n", pad, e.Path)
	case *ast.IntroExpr:
		out := fmt.Sprintf("%sintro %s / %s\n", pad, e.Path, e.Variant)
		for _, p := range e.Params {
			out += labelled("param", p, depth+1)
		}
		for _, f := range e.Fields {
			out += labelled(f.Name, f.Value, depth+1)
		}
		return out
	case *ast.MatchExpr:
		out := fmt.Sprintf("%smatch\n", pad) +
			labelled("subject", e.Subject, depth+1) +
			labelled("return", e.Return, depth+1)
		for _, a := range e.Arms {
			out += labelled(a.Name, a.Body, depth+1)
		}
		return out
	case *ast.FixExpr:
		return fmt.Sprintf("%sfix with %s\n", pad, e.RecName) +
			dumpBinder(e.Binder, depth+1) +
			labelled("return", e.Return, depth+1) +
			labelled("body", e.Body, depth+1)
	case *ast.RefExpr:
		return fmt.Sprintf("%sref\n", pad) + dumpExpr(e.Operand, depth+1)
	case *ast.DerefExpr:
		return fmt.Sprintf("%sderef\n", pad) + dumpExpr(e.Operand, depth+1)
	case *ast.LoanExpr:
		return fmt.Sprintf("%sloan %s as %s with %s\n", pad, e.Name, e.AsName, e.WithName) +
			labelled("body", e.Body, depth+1)
	case *ast.TakeExpr:
		out := fmt.Sprintf("%stake %s\n", pad, e.Name)
		for _, p := range e.Proofs {
			out += labelled(p.Name, p.Body, depth+1)
		}
		return out + labelled("body", e.Body, depth+1)
	case *ast.InExpr:
		return fmt.Sprintf("%sin\n", pad) +
			labelled("ref", e.Ref, depth+1) +
			labelled("target", e.Target, depth+1)
	case *ast.ParenExpr:
		return dumpExpr(e.Inner, depth)
	}
	return fmt.Sprintf("%s?\n", pad)
}

func dumpBinder(b *ast.Binder, depth int) string {
	pad := strings.Repeat("  ", depth)
	erased := ""
	if b.Erased {
		erased = " erased"
	}
	return fmt.Sprintf("%sbinder %s %s%s\n", pad, b.Kind, b.Name, erased) +
		labelled("type", b.Type, depth+1)
}

// labelled prefixes a child dump with its role name.
func labelled(role string, e ast.Expr, depth int) string {
	pad := strings.Repeat("  ", depth)
	return fmt.Sprintf("%s%s:\n", pad, role) + dumpExpr(e, depth+1)
}
