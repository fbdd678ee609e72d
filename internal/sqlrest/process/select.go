package process

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// ProcessSelect lowers a parsed SELECT statement into ir.Select.
// Fail-fast: the first unsupported construct aborts with an error
// naming it; no partial IR is ever returned.
func ProcessSelect(stmt *pg_query.SelectStmt) (ir.Statement, error) {
	if stmt == nil {
		return ir.Statement{}, errs.NewUnsupported("empty SELECT statement")
	}
	if stmt.Larg != nil || stmt.Rarg != nil || stmt.Op != pg_query.SetOperation_SETOP_NONE {
		return ir.Statement{}, errs.NewUnsupported("set operations (UNION/INTERSECT/EXCEPT) are not supported")
	}
	if stmt.WithClause != nil {
		return ir.Statement{}, errs.NewUnsupported("CTEs (WITH clauses) are not supported")
	}
	if len(stmt.ValuesLists) > 0 {
		return ir.Statement{}, errs.NewUnsupported("VALUES-only SELECT is not supported")
	}
	if stmt.GroupClause != nil || stmt.HavingClause != nil {
		return ir.Statement{}, errs.NewUnsupported("GROUP BY / HAVING are not supported")
	}
	if stmt.WindowClause != nil {
		return ir.Statement{}, errs.NewUnsupported("window functions are not supported")
	}
	if len(stmt.LockingClause) > 0 {
		return ir.Statement{}, errs.NewUnsupported("locking clauses (FOR UPDATE/SHARE) are not supported")
	}

	from, embed, err := processFromClause(stmt.FromClause)
	if err != nil {
		return ir.Statement{}, err
	}

	targetNodes := stmt.TargetList
	var embeddedNodes []*pg_query.Node
	if embed != nil {
		targetNodes, embeddedNodes = splitTargetsForEmbed(stmt.TargetList, embed)
	}

	targets, err := processTargetList(targetNodes)
	if err != nil {
		return ir.Statement{}, err
	}

	if embed != nil {
		if len(embeddedNodes) == 0 {
			return ir.Statement{}, errs.NewUnsupported("joined relation %q must be selected to be embedded", embed.name)
		}
		children, err := processTargetList(embeddedNodes)
		if err != nil {
			return ir.Statement{}, err
		}
		targets = append(targets, ir.NewResourceTarget(ir.ResourceTarget{Name: embed.name, Targets: children}))
	}

	filter, err := processWhereClause(stmt.WhereClause)
	if err != nil {
		return ir.Statement{}, err
	}

	sorts, err := processSortClause(stmt.SortClause)
	if err != nil {
		return ir.Statement{}, err
	}

	limit, err := processLimit(stmt.LimitOffset, stmt.LimitCount, stmt.LimitOption)
	if err != nil {
		return ir.Statement{}, err
	}

	return ir.NewSelect(ir.Select{
		From:    from,
		Targets: targets,
		Filter:  filter,
		Sorts:   sorts,
		Limit:   limit,
	}), nil
}

// processFromClause requires exactly one relation, or a single JOIN
// between two relations whose condition is a simple foreign-key
// equality — the only FROM-clause join shape this subset can express,
// since PostgREST has no JOIN of its own and represents it instead as
// a nested embedded resource in the SELECT projection.
func processFromClause(nodes []*pg_query.Node) (string, *embeddedJoin, error) {
	if len(nodes) == 0 {
		return "", nil, errs.NewUnsupported("SELECT requires a FROM clause")
	}
	if len(nodes) > 1 {
		return "", nil, errs.NewUnsupported("SELECT from multiple relations is not supported")
	}

	switch n := nodes[0].Node.(type) {
	case *pg_query.Node_RangeVar:
		if n.RangeVar == nil {
			return "", nil, errs.NewUnsupported("empty FROM relation")
		}
		return relationName(n.RangeVar), nil, nil
	case *pg_query.Node_JoinExpr:
		return processJoinExpr(n.JoinExpr)
	default:
		return "", nil, errs.NewUnsupported("FROM clause only supports a single relation or a foreign-key embedding JOIN")
	}
}

func relationName(rv *pg_query.RangeVar) string {
	if rv.Schemaname != "" {
		return rv.Schemaname + "." + rv.Relname
	}
	return rv.Relname
}

func processSortClause(nodes []*pg_query.Node) ([]ir.Sort, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	sorts := make([]ir.Sort, 0, len(nodes))
	for _, node := range nodes {
		sb, ok := node.Node.(*pg_query.Node_SortBy)
		if !ok || sb.SortBy == nil {
			return nil, errs.NewUnsupported("unsupported ORDER BY expression")
		}
		column, err := columnRefName(sb.SortBy.Node)
		if err != nil {
			return nil, err
		}

		s := ir.Sort{Column: column}
		switch sb.SortBy.SortbyDir {
		case pg_query.SortByDir_SORTBY_ASC:
			d := ir.SortAsc
			s.Direction = &d
		case pg_query.SortByDir_SORTBY_DESC:
			d := ir.SortDesc
			s.Direction = &d
		case pg_query.SortByDir_SORTBY_DEFAULT:
			// no explicit direction
		default:
			return nil, errs.NewUnsupported("USING sort operators are not supported")
		}

		switch sb.SortBy.SortbyNulls {
		case pg_query.SortByNulls_SORTBY_NULLS_FIRST:
			n := ir.NullsFirst
			s.Nulls = &n
		case pg_query.SortByNulls_SORTBY_NULLS_LAST:
			n := ir.NullsLast
			s.Nulls = &n
		}

		sorts = append(sorts, s)
	}
	return sorts, nil
}

func processLimit(offsetNode, countNode *pg_query.Node, option pg_query.LimitOption) (*ir.Limit, error) {
	if option == pg_query.LimitOption_LIMIT_OPTION_WITH_TIES {
		return nil, errs.NewUnsupported("FETCH ... WITH TIES is not supported")
	}
	if offsetNode == nil && countNode == nil {
		return nil, nil
	}

	limit := &ir.Limit{}
	if countNode != nil {
		n, err := literalInt(countNode, "LIMIT")
		if err != nil {
			return nil, err
		}
		limit.Count = &n
	}
	if offsetNode != nil {
		n, err := literalInt(offsetNode, "OFFSET")
		if err != nil {
			return nil, err
		}
		limit.Offset = &n
	}
	return limit, nil
}

func literalInt(node *pg_query.Node, context string) (int, error) {
	atom, err := literalAtom(node, context)
	if err != nil {
		return 0, err
	}
	f, ok := atom.Value().(float64)
	if !ok {
		return 0, errs.NewUnsupported("%s must be a non-negative integer literal", context)
	}
	n := int(f)
	if n < 0 || float64(n) != f {
		return 0, errs.NewUnsupported("%s must be a non-negative integer literal", context)
	}
	return n, nil
}
