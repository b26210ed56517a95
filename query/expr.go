package query

import (
	"github.com/mml-format/go-mml/debug"

	"github.com/expr-lang/expr"
)

// WhereExpr narrows with a compiled boolean expression evaluated per
// node against the env {id, kind, attrs}, e.g.
//
//	q.WhereExpr(`kind == "leaf" && attrs.status in ["draft", "review"]`)
//
// Compilation errors are returned; evaluation errors and non-boolean
// results exclude the node.
func (q *Query) WhereExpr(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return q.filter(func(id string) bool {
		attrs, err := q.doc.Attributes(id)
		if err != nil {
			return false
		}
		kind, err := q.doc.KindOf(id)
		if err != nil {
			return false
		}
		env := map[string]any{
			"id":    id,
			"kind":  kind.String(),
			"attrs": attrs,
		}
		res, err := expr.Run(prg, env)
		if err != nil {
			if debug.Query() {
				debug.Logf("query: expr on %q: %v\n", id, err)
			}
			return false
		}
		b, ok := res.(bool)
		return ok && b
	}), nil
}
