// Package process implements the lowerer: it walks the parse tree for
// exactly one statement at a time and builds the Statement IR, enforcing
// the supported subset. The processor is fail-fast — the first
// unsupported construct aborts the statement and no partial IR is ever
// returned.
package process

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// Dispatch selects a processor by the parse-tree node's statement kind.
// Unknown-but-named kinds (e.g. EXPLAIN) fail with UnimplementedError;
// every other out-of-subset kind fails with UnsupportedError.
func Dispatch(node *pg_query.Node) (ir.Statement, error) {
	if node == nil {
		return ir.Statement{}, errs.NewUnsupported("empty statement")
	}

	switch n := node.Node.(type) {
	case *pg_query.Node_SelectStmt:
		return ProcessSelect(n.SelectStmt)
	case *pg_query.Node_InsertStmt:
		return ProcessInsert(n.InsertStmt)
	case *pg_query.Node_UpdateStmt:
		return ProcessUpdate(n.UpdateStmt)
	case *pg_query.Node_DeleteStmt:
		return ProcessDelete(n.DeleteStmt)
	case *pg_query.Node_ExplainStmt:
		return ir.Statement{}, errs.NewUnimplemented("EXPLAIN statements are not yet supported")
	case *pg_query.Node_TransactionStmt:
		return ir.Statement{}, errs.NewUnimplemented("transaction control statements are not yet supported")
	default:
		return ir.Statement{}, errs.NewUnsupported("%s statements are not supported", statementKindName(node))
	}
}

// statementKindName derives a human label for an out-of-subset node, for
// the UnsupportedError message.
func statementKindName(node *pg_query.Node) string {
	switch node.Node.(type) {
	case *pg_query.Node_CreateStmt:
		return "CREATE TABLE"
	case *pg_query.Node_DropStmt:
		return "DROP"
	case *pg_query.Node_AlterTableStmt:
		return "ALTER TABLE"
	case *pg_query.Node_TruncateStmt:
		return "TRUNCATE"
	case *pg_query.Node_GrantStmt:
		return "GRANT"
	case *pg_query.Node_CreateFunctionStmt:
		return "CREATE FUNCTION"
	case *pg_query.Node_VariableSetStmt:
		return "SET"
	default:
		return "this kind of"
	}
}
