package process

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// ProcessDelete lowers a parsed DELETE statement into ir.Delete, with
// the same filter restriction and RETURNING handling as UPDATE, minus
// the SET clause.
func ProcessDelete(stmt *pg_query.DeleteStmt) (ir.Statement, error) {
	if stmt == nil || stmt.Relation == nil {
		return ir.Statement{}, errs.NewUnsupported("empty DELETE statement")
	}
	if stmt.WithClause != nil {
		return ir.Statement{}, errs.NewUnsupported("CTEs (WITH clauses) are not supported")
	}
	if len(stmt.UsingClause) > 0 {
		return ir.Statement{}, errs.NewUnsupported("DELETE ... USING is not supported")
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

	return ir.NewDelete(ir.Delete{
		From:      relationName(stmt.Relation),
		Filter:    filter,
		Returning: returning,
	}), nil
}
