package process

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// aggregateFuncs is the set of aggregate functions the subset supports.
var aggregateFuncs = map[string]bool{
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
}

// processTargetList lowers a SELECT projection list into an ordered,
// non-empty list of Target. A lone unaliased "*" becomes the canonical
// ColumnTarget("*") marker.
func processTargetList(nodes []*pg_query.Node) ([]ir.Target, error) {
	targets := make([]ir.Target, 0, len(nodes))
	for _, node := range nodes {
		t, err := processTarget(node)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		return nil, errs.NewUnsupported("SELECT requires at least one target")
	}
	return targets, nil
}

func processTarget(node *pg_query.Node) (ir.Target, error) {
	resTarget, ok := node.Node.(*pg_query.Node_ResTarget)
	if !ok || resTarget.ResTarget == nil {
		return ir.Target{}, errs.NewUnsupported("unsupported SELECT target")
	}
	alias := resTarget.ResTarget.Name

	val := resTarget.ResTarget.Val
	if val == nil {
		return ir.Target{}, errs.NewUnsupported("empty SELECT target")
	}

	switch n := val.Node.(type) {
	case *pg_query.Node_ColumnRef:
		return columnTarget(n.ColumnRef, alias, "")
	case *pg_query.Node_TypeCast:
		return castTarget(n.TypeCast, alias)
	case *pg_query.Node_FuncCall:
		return funcCallTarget(n.FuncCall, alias)
	default:
		return ir.Target{}, errs.NewUnsupported("SELECT targets must be a column, cast, aggregate, or embedded relation")
	}
}

func castTarget(cast *pg_query.TypeCast, alias string) (ir.Target, error) {
	if cast == nil || cast.Arg == nil {
		return ir.Target{}, errs.NewUnsupported("empty cast target")
	}
	typeName := joinTypeName(cast.TypeName)

	switch n := cast.Arg.Node.(type) {
	case *pg_query.Node_ColumnRef:
		return columnTarget(n.ColumnRef, alias, typeName)
	case *pg_query.Node_FuncCall:
		t, err := funcCallTarget(n.FuncCall, alias)
		if err != nil {
			return ir.Target{}, err
		}
		if t.Aggregate != nil {
			t.Aggregate.Cast = typeName
		}
		return t, nil
	default:
		return ir.Target{}, errs.NewUnsupported("casts are only supported on columns or aggregates")
	}
}

func columnTarget(ref *pg_query.ColumnRef, alias, cast string) (ir.Target, error) {
	if ref == nil || len(ref.Fields) == 0 {
		return ir.Target{}, errs.NewUnsupported("empty column reference")
	}
	if len(ref.Fields) == 1 {
		if _, ok := ref.Fields[0].Node.(*pg_query.Node_AStar); ok {
			return ir.NewColumnTarget(ir.ColumnTarget{Name: "*", Alias: alias, Cast: cast}), nil
		}
	}
	segments := make([]string, 0, len(ref.Fields))
	for _, f := range ref.Fields {
		s, ok := stringValue(f)
		if !ok {
			return ir.Target{}, errs.NewUnsupported("unsupported column reference segment")
		}
		segments = append(segments, s)
	}
	name := segments[len(segments)-1]
	return ir.NewColumnTarget(ir.ColumnTarget{Name: name, Alias: alias, Cast: cast}), nil
}

func funcCallTarget(fc *pg_query.FuncCall, alias string) (ir.Target, error) {
	if fc == nil {
		return ir.Target{}, errs.NewUnsupported("empty function call target")
	}
	name, ok := operatorName(fc.Funcname)
	if !ok {
		return ir.Target{}, errs.NewUnsupported("unsupported function call target")
	}

	if aggregateFuncs[name] {
		column := "*"
		if !fc.AggStar {
			if len(fc.Args) != 1 {
				return ir.Target{}, errs.NewUnsupported("aggregate %s takes exactly one argument", name)
			}
			ref, ok := fc.Args[0].Node.(*pg_query.Node_ColumnRef)
			if !ok || ref.ColumnRef == nil {
				return ir.Target{}, errs.NewUnsupported("aggregate %s argument must be a column or *", name)
			}
			col, err := columnTarget(ref.ColumnRef, "", "")
			if err != nil {
				return ir.Target{}, err
			}
			column = col.Column.Name
		}
		return ir.NewAggregateTarget(ir.AggregateTarget{Func: name, Column: column, Alias: alias}), nil
	}

	// Not a recognized aggregate: treat as an embedded relation,
	// e.g. authors(id, name) nested inside a SELECT list.
	children, err := processEmbeddedTargets(fc.Args)
	if err != nil {
		return ir.Target{}, err
	}
	return ir.NewResourceTarget(ir.ResourceTarget{Name: name, Alias: alias, Targets: children}), nil
}

func processEmbeddedTargets(nodes []*pg_query.Node) ([]ir.Target, error) {
	targets := make([]ir.Target, 0, len(nodes))
	for _, node := range nodes {
		switch n := node.Node.(type) {
		case *pg_query.Node_ColumnRef:
			t, err := columnTarget(n.ColumnRef, "", "")
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		case *pg_query.Node_FuncCall:
			t, err := funcCallTarget(n.FuncCall, "")
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		default:
			return nil, errs.NewUnsupported("unsupported embedded relation target")
		}
	}
	if len(targets) == 0 {
		return nil, errs.NewUnsupported("embedded relation requires at least one target")
	}
	return targets, nil
}

func joinTypeName(t *pg_query.TypeName) string {
	if t == nil {
		return ""
	}
	var name string
	for _, n := range t.Names {
		s, ok := stringValue(n)
		if !ok {
			continue
		}
		if s == "pg_catalog" {
			continue
		}
		name = s
	}
	return name
}
