package generate

import "traitgen/internal/ast"

// builder собирает производные generics для одного impl.
// Живёт ровно один вызов TraitAlias и финализируется один раз.
type builder struct {
	derived *ast.Generics
	done    bool
}

// newBuilder starts from a deep copy of the declared generics, so the trait
// definition keeps the original untouched.
func newBuilder(g *ast.Generics) *builder {
	derived := g.Clone()
	if derived == nil {
		derived = &ast.Generics{}
	}
	return &builder{derived: derived}
}

// addParam appends a generic parameter after the declared ones.
func (b *builder) addParam(p ast.GenericParam) *builder {
	b.derived.Params = append(b.derived.Params, p)
	return b
}

// addPredicate appends a predicate to the (possibly new) where clause.
func (b *builder) addPredicate(pred ast.WherePredicate) *builder {
	wc := b.derived.MakeWhereClause()
	wc.Predicates = append(wc.Predicates, pred)
	return b
}

// finish returns the derived generics. A builder is single-use.
func (b *builder) finish() *ast.Generics {
	if b.done {
		panic("generate: builder finished twice")
	}
	b.done = true
	return b.derived
}
