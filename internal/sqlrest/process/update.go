package process

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// ProcessUpdate lowers a parsed UPDATE statement into ir.Update.
// SET values must be literal constants; WHERE is restricted to the
// basic operator set, with LogicalFilter nodes traversed but not
// themselves restricted.
func ProcessUpdate(stmt *pg_query.UpdateStmt) (ir.Statement, error) {
	if stmt == nil || stmt.Relation == nil {
		return ir.Statement{}, errs.NewUnsupported("empty UPDATE statement")
	}
	if stmt.WithClause != nil {
		return ir.Statement{}, errs.NewUnsupported("CTEs (WITH clauses) are not supported")
	}
	if len(stmt.FromClause) > 0 {
		return ir.Statement{}, errs.NewUnsupported("UPDATE ... FROM is not supported")
	}

	set, err := processSetClause(stmt.TargetList)
	if err != nil {
		return ir.Statement{}, err
	}
	if len(set) == 0 {
		return ir.Statement{}, errs.NewUnsupported("UPDATE requires at least one SET assignment")
	}

	filter, err := processWhereClause(stmt.WhereClause)
	if err != nil {
		return ir.Statement{}, err
	}
	if err := restrictToBasicOperators(filter); err != nil {
		return ir.Statement{}, err
	}

	returning, err := processReturning(stmt.ReturningList)
	if err != nil {
		return ir.Statement{}, err
	}

	return ir.NewUpdate(ir.Update{
		Table:     relationName(stmt.Relation),
		Set:       set,
		Filter:    filter,
		Returning: returning,
	}), nil
}

func processSetClause(nodes []*pg_query.Node) ([]ir.SetClause, error) {
	set := make([]ir.SetClause, 0, len(nodes))
	for _, node := range nodes {
		rt, ok := node.Node.(*pg_query.Node_ResTarget)
		if !ok || rt.ResTarget == nil || rt.ResTarget.Name == "" {
			return nil, errs.NewUnsupported("unsupported SET target")
		}
		value, err := literalAtom(rt.ResTarget.Val, "SET value")
		if err != nil {
			return nil, err
		}
		set = append(set, ir.SetClause{Column: rt.ResTarget.Name, Value: value})
	}
	return set, nil
}
