package ast

// Structural equality for AST nodes, ignoring source positions. Used by the
// round-trip tests (parse ∘ print ∘ parse must give back the same tree) and
// available to any consumer that needs to compare trees from different
// renderings of the same program.

// EqualFile reports whether two source files are structurally equal.
func EqualFile(a, b *SourceFile) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !EqualPath(a.Module.Path, b.Module.Path) {
		return false
	}
	if len(a.Definitions) != len(b.Definitions) {
		return false
	}
	for i := range a.Definitions {
		if !EqualDefinition(a.Definitions[i], b.Definitions[i]) {
			return false
		}
	}
	return true
}

// EqualDefinition reports whether two definitions are structurally equal.
func EqualDefinition(a, b *Definition) bool {
	return a.Name == b.Name && a.Erased == b.Erased &&
		Equal(a.Type, b.Type) && Equal(a.Body, b.Body)
}

// EqualPath reports whether two paths have the same segments.
func EqualPath(a, b *Path) bool {
	if len(a.Segments) != len(b.Segments) {
		return false
	}
	for i := range a.Segments {
		if a.Segments[i] != b.Segments[i] {
			return false
		}
	}
	return true
}

func equalBinder(a, b *Binder) bool {
	return a.Kind == b.Kind && a.Name == b.Name && a.Erased == b.Erased &&
		Equal(a.Type, b.Type)
}

func equalArms(a, b []Arm) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Body, b[i].Body) {
			return false
		}
	}
	return true
}

func equalFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// Equal reports whether two expressions are structurally equal, ignoring
// every Token field. Two nils are equal; a nil is never equal to a non-nil.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *LocalExpr:
		b, ok := b.(*LocalExpr)
		return ok && a.Name == b.Name
	case *AppExpr:
		b, ok := b.(*AppExpr)
		return ok && Equal(a.Fn, b.Fn) && Equal(a.Arg, b.Arg)
	case *FunExpr:
		b, ok := b.(*FunExpr)
		return ok && a.Total == b.Total && equalBinder(a.Binder, b.Binder) && Equal(a.Body, b.Body)
	case *ForExpr:
		b, ok := b.(*ForExpr)
		return ok && a.Arrow == b.Arrow && equalBinder(a.Binder, b.Binder) && Equal(a.Body, b.Body)
	case *LetExpr:
		b, ok := b.(*LetExpr)
		return ok && a.Name == b.Name && Equal(a.Bound, b.Bound) && Equal(a.Body, b.Body)
	case *SortExpr:
		b, ok := b.(*SortExpr)
		return ok && a.Universe == b.Universe
	case *InstExpr:
		b, ok := b.(*InstExpr)
		return ok && EqualPath(a.Path, b.Path)
	case *IntroExpr:
		b, ok := b.(*IntroExpr)
		if !ok || !EqualPath(a.Path, b.Path) || a.Variant != b.Variant {
			return false
		}
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return equalFields(a.Fields, b.Fields)
	case *MatchExpr:
		b, ok := b.(*MatchExpr)
		return ok && Equal(a.Subject, b.Subject) && Equal(a.Return, b.Return) && equalArms(a.Arms, b.Arms)
	case *FixExpr:
		b, ok := b.(*FixExpr)
		return ok && a.RecName == b.RecName && equalBinder(a.Binder, b.Binder) &&
			Equal(a.Return, b.Return) && Equal(a.Body, b.Body)
	case *RefExpr:
		b, ok := b.(*RefExpr)
		return ok && Equal(a.Operand, b.Operand)
	case *DerefExpr:
		b, ok := b.(*DerefExpr)
		return ok && Equal(a.Operand, b.Operand)
	case *LoanExpr:
		b, ok := b.(*LoanExpr)
		return ok && a.Name == b.Name && a.AsName == b.AsName && a.WithName == b.WithName &&
			Equal(a.Body, b.Body)
	case *TakeExpr:
		b, ok := b.(*TakeExpr)
		return ok && a.Name == b.Name && equalArms(a.Proofs, b.Proofs) && Equal(a.Body, b.Body)
	case *InExpr:
		b, ok := b.(*InExpr)
		return ok && Equal(a.Ref, b.Ref) && Equal(a.Target, b.Target)
	case *ParenExpr:
		b, ok := b.(*ParenExpr)
		return ok && Equal(a.Inner, b.Inner)
	}
	return false
}
