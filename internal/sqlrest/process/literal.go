package process

import (
	"strconv"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// literalAtom lowers a parse-tree node into a scalar ir.Atom. Only
// A_Const (string/integer/float/boolean/null) and a TypeCast directly
// wrapping an A_Const are accepted — anything else (a column reference,
// a function call, a subquery, an expression) is rejected: SET and
// VALUES entries must be literal constants.
func literalAtom(node *pg_query.Node, context string) (ir.Atom, error) {
	if node == nil {
		return ir.NullAtom, errs.NewUnsupported("%s: expected a value", context)
	}

	switch n := node.Node.(type) {
	case *pg_query.Node_AConst:
		return atomFromAConst(n.AConst), nil
	case *pg_query.Node_TypeCast:
		if n.TypeCast == nil || n.TypeCast.Arg == nil {
			return ir.NullAtom, errs.NewUnsupported("%s: unsupported cast expression", context)
		}
		if ac, ok := n.TypeCast.Arg.Node.(*pg_query.Node_AConst); ok {
			return atomFromAConst(ac.AConst), nil
		}
		return ir.NullAtom, errs.NewUnsupported("%s: casts are only supported on literal constants", context)
	default:
		return ir.NullAtom, errs.NewUnsupported("%s: only literal constants are supported, not expressions, columns, or subqueries", context)
	}
}

func atomFromAConst(c *pg_query.A_Const) ir.Atom {
	if c == nil || c.Isnull {
		return ir.NullAtom
	}
	switch v := c.Val.(type) {
	case *pg_query.A_Const_Ival:
		return ir.NewAtom(float64(v.Ival.Ival))
	case *pg_query.A_Const_Fval:
		f, _ := strconv.ParseFloat(v.Fval.Fval, 64)
		return ir.NewAtom(f)
	case *pg_query.A_Const_Boolval:
		return ir.NewAtom(v.Boolval.Boolval)
	case *pg_query.A_Const_Sval:
		return ir.NewAtom(v.Sval.Sval)
	case *pg_query.A_Const_Bsval:
		return ir.NewAtom(v.Bsval.Bsval)
	default:
		return ir.NullAtom
	}
}

// stringValue reads the bare string from a String_ node, used for
// operator names, column-ref segments, and similar identifier-shaped
// parse-tree leaves.
func stringValue(node *pg_query.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	s, ok := node.Node.(*pg_query.Node_String_)
	if !ok || s.String_ == nil {
		return "", false
	}
	return s.String_.Sval, true
}
