package process

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// opMap maps the raw SQL comparison operator spelling the parser
// reports in A_Expr.Name to an IR FilterOperator. The "!~~"/"~~" pair
// covers (NOT) LIKE; "~~*"/"!~~*" covers
// (NOT) ILIKE — Postgres's grammar folds the NOT into the operator
// symbol itself rather than wrapping a BoolExpr.
var opMap = map[string]ir.FilterOperator{
	"=":  ir.OpEq,
	"<>": ir.OpNeq,
	"!=": ir.OpNeq,
	">":  ir.OpGt,
	">=": ir.OpGte,
	"<":  ir.OpLt,
	"<=": ir.OpLte,
	"~~":  ir.OpLike,
	"~~*": ir.OpILike,
	"@>":  ir.OpCs,
	"<@":  ir.OpCd,
	"&&":  ir.OpOv,
	"<<":  ir.OpSl,
	">>":  ir.OpSr,
	"&<":  ir.OpNxr,
	"&>":  ir.OpNxl,
	"-|-": ir.OpAdj,
}

var negatedOpMap = map[string]ir.FilterOperator{
	"!~~":  ir.OpLike,
	"!~~*": ir.OpILike,
}

// processWhereClause walks a WHERE clause into a Filter tree. Boolean
// AND/OR/NOT are honored; NOT is absorbed into the negate flag of the
// immediately enclosed node rather than introducing a wrapper node.
func processWhereClause(node *pg_query.Node) (*ir.Filter, error) {
	if node == nil {
		return nil, nil
	}
	f, err := processFilterNode(node)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func processFilterNode(node *pg_query.Node) (ir.Filter, error) {
	if node == nil {
		return ir.Filter{}, errs.NewUnsupported("empty filter expression")
	}

	switch n := node.Node.(type) {
	case *pg_query.Node_BoolExpr:
		return processBoolExpr(n.BoolExpr)
	case *pg_query.Node_AExpr:
		return processAExpr(n.AExpr)
	case *pg_query.Node_NullTest:
		return processNullTest(n.NullTest)
	case *pg_query.Node_BooleanTest:
		return processBooleanTest(n.BooleanTest)
	default:
		return ir.Filter{}, errs.NewUnsupported("unsupported WHERE clause expression")
	}
}

func processBoolExpr(b *pg_query.BoolExpr) (ir.Filter, error) {
	if b == nil {
		return ir.Filter{}, errs.NewUnsupported("empty boolean expression")
	}

	switch b.Boolop {
	case pg_query.BoolExprType_NOT_EXPR:
		if len(b.Args) != 1 {
			return ir.Filter{}, errs.NewUnsupported("NOT must wrap exactly one expression")
		}
		inner, err := processFilterNode(b.Args[0])
		if err != nil {
			return ir.Filter{}, err
		}
		inner.Negate = !inner.Negate
		return inner, nil

	case pg_query.BoolExprType_AND_EXPR, pg_query.BoolExprType_OR_EXPR:
		op := ir.LogicalAnd
		if b.Boolop == pg_query.BoolExprType_OR_EXPR {
			op = ir.LogicalOr
		}
		values := make([]ir.Filter, 0, len(b.Args))
		for _, arg := range b.Args {
			child, err := processFilterNode(arg)
			if err != nil {
				return ir.Filter{}, err
			}
			values = append(values, child)
		}
		if len(values) == 0 {
			return ir.Filter{}, errs.NewUnsupported("logical expression has no operands")
		}
		return ir.NewLogicalFilter(ir.LogicalFilter{Operator: op, Values: values}), nil

	default:
		return ir.Filter{}, errs.NewUnsupported("unsupported boolean expression")
	}
}

func processAExpr(a *pg_query.A_Expr) (ir.Filter, error) {
	if a == nil {
		return ir.Filter{}, errs.NewUnsupported("empty comparison expression")
	}

	column, err := columnRefName(a.Lexpr)
	if err != nil {
		return ir.Filter{}, err
	}

	switch a.Kind {
	case pg_query.A_Expr_Kind_AEXPR_IN:
		opName, _ := operatorName(a.Name)
		negate := opName == "<>"
		values, err := literalList(a.Rexpr, "IN clause")
		if err != nil {
			return ir.Filter{}, err
		}
		return ir.Filter{Negate: negate, Column: &ir.ColumnFilter{
			Column: column, Operator: ir.OpIn, Values: values,
		}}, nil

	case pg_query.A_Expr_Kind_AEXPR_LIKE, pg_query.A_Expr_Kind_AEXPR_ILIKE:
		opName, ok := operatorName(a.Name)
		if !ok {
			return ir.Filter{}, errs.NewUnsupported("unrecognized LIKE/ILIKE operator")
		}
		operator, negate := resolveOperator(opName)
		value, err := literalAtom(a.Rexpr, "LIKE/ILIKE value")
		if err != nil {
			return ir.Filter{}, err
		}
		return ir.Filter{Negate: negate, Column: &ir.ColumnFilter{
			Column: column, Operator: operator, Value: value,
		}}, nil

	case pg_query.A_Expr_Kind_AEXPR_OP:
		opName, ok := operatorName(a.Name)
		if !ok {
			return ir.Filter{}, errs.NewUnsupported("unrecognized comparison operator")
		}
		if opName == "@@" {
			return processFullTextSearch(column, a.Rexpr)
		}
		operator, negate := resolveOperator(opName)
		if operator == "" {
			return ir.Filter{}, errs.NewUnsupported("unsupported operator %q", opName)
		}
		value, err := literalAtom(a.Rexpr, "comparison value")
		if err != nil {
			return ir.Filter{}, err
		}
		return ir.Filter{Negate: negate, Column: &ir.ColumnFilter{
			Column: column, Operator: operator, Value: value,
		}}, nil

	default:
		return ir.Filter{}, errs.NewUnsupported("unsupported comparison expression kind")
	}
}

// ftsFuncMap maps the tsquery-building function on the right-hand side
// of @@ to the IR full-text operator variant: fts/plfts/phfts/wfts.
var ftsFuncMap = map[string]ir.FilterOperator{
	"to_tsquery":           ir.OpFts,
	"plainto_tsquery":      ir.OpPlfts,
	"phraseto_tsquery":     ir.OpPhfts,
	"websearch_to_tsquery": ir.OpWfts,
}

func processFullTextSearch(column string, rexpr *pg_query.Node) (ir.Filter, error) {
	if rexpr == nil {
		return ir.Filter{}, errs.NewUnsupported("full-text search: missing query expression")
	}
	fc, ok := rexpr.Node.(*pg_query.Node_FuncCall)
	if !ok || fc.FuncCall == nil {
		return ir.Filter{}, errs.NewUnsupported("full-text search: right-hand side must be a to_tsquery-family call")
	}
	funcName, ok := operatorName(fc.FuncCall.Funcname)
	if !ok {
		return ir.Filter{}, errs.NewUnsupported("full-text search: unrecognized query function")
	}
	operator, ok := ftsFuncMap[funcName]
	if !ok {
		return ir.Filter{}, errs.NewUnsupported("full-text search: unsupported query function %q", funcName)
	}
	if len(fc.FuncCall.Args) == 0 {
		return ir.Filter{}, errs.NewUnsupported("full-text search: %s requires a query argument", funcName)
	}
	value, err := literalAtom(fc.FuncCall.Args[len(fc.FuncCall.Args)-1], "full-text search query")
	if err != nil {
		return ir.Filter{}, err
	}
	return ir.Filter{Column: &ir.ColumnFilter{
		Column: column, Operator: operator, Value: value,
	}}, nil
}

func resolveOperator(opName string) (ir.FilterOperator, bool) {
	if op, ok := opMap[opName]; ok {
		return op, false
	}
	if op, ok := negatedOpMap[opName]; ok {
		return op, true
	}
	return "", false
}

func processNullTest(n *pg_query.NullTest) (ir.Filter, error) {
	if n == nil {
		return ir.Filter{}, errs.NewUnsupported("empty IS NULL test")
	}
	column, err := columnRefName(n.Arg)
	if err != nil {
		return ir.Filter{}, err
	}
	negate := n.Nulltesttype == pg_query.NullTestType_IS_NOT_NULL
	return ir.Filter{Negate: negate, Column: &ir.ColumnFilter{
		Column: column, Operator: ir.OpIs, Value: ir.NullAtom,
	}}, nil
}

func processBooleanTest(n *pg_query.BooleanTest) (ir.Filter, error) {
	if n == nil {
		return ir.Filter{}, errs.NewUnsupported("empty IS TRUE/FALSE test")
	}
	column, err := columnRefName(n.Arg)
	if err != nil {
		return ir.Filter{}, err
	}

	var value ir.Atom
	var negate bool
	switch n.Booltesttype {
	case pg_query.BoolTestType_IS_TRUE:
		value = ir.NewAtom(true)
	case pg_query.BoolTestType_IS_NOT_TRUE:
		value, negate = ir.NewAtom(true), true
	case pg_query.BoolTestType_IS_FALSE:
		value = ir.NewAtom(false)
	case pg_query.BoolTestType_IS_NOT_FALSE:
		value, negate = ir.NewAtom(false), true
	default:
		return ir.Filter{}, errs.NewUnsupported("unsupported IS <boolean> test")
	}
	return ir.Filter{Negate: negate, Column: &ir.ColumnFilter{
		Column: column, Operator: ir.OpIs, Value: value,
	}}, nil
}

// operatorName reads the single operator symbol out of an A_Expr.Name
// list: a []*Node of String_ segments, joined the same way a
// FuncCall.Funcname is read.
func operatorName(nameNodes []*pg_query.Node) (string, bool) {
	if len(nameNodes) == 0 {
		return "", false
	}
	return stringValue(nameNodes[len(nameNodes)-1])
}

// literalList lowers an IN (...) right-hand side, which the parser
// represents as a List of literal nodes, into a slice of atoms.
func literalList(node *pg_query.Node, context string) ([]ir.Atom, error) {
	if node == nil {
		return nil, errs.NewUnsupported("%s: missing value list", context)
	}
	list, ok := node.Node.(*pg_query.Node_List)
	if !ok || list.List == nil {
		return nil, errs.NewUnsupported("%s: expected a literal list", context)
	}
	values := make([]ir.Atom, 0, len(list.List.Items))
	for _, item := range list.List.Items {
		v, err := literalAtom(item, context)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// restrictToBasicOperators recursively validates an UPDATE/DELETE
// filter tree, rejecting any ColumnFilter whose operator is outside
// {eq, neq, gt, gte, lt, lte}. LogicalFilter nodes are traversed but
// not themselves restricted, so a negated OR of basic predicates is a
// legal UPDATE/DELETE WHERE clause.
func restrictToBasicOperators(f *ir.Filter) error {
	if f == nil {
		return nil
	}
	if f.Column != nil {
		if !ir.BasicOperators[f.Column.Operator] {
			return errs.NewUnsupported("UPDATE/DELETE filters only support basic operators (eq, neq, gt, gte, lt, lte), got %q", f.Column.Operator)
		}
		return nil
	}
	if f.Logical != nil {
		for i := range f.Logical.Values {
			if err := restrictToBasicOperators(&f.Logical.Values[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
