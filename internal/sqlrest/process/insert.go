package process

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// ProcessInsert lowers a parsed INSERT statement into ir.Insert.
// INSERT ... SELECT, ON CONFLICT, and any non-constant VALUES entry
// are rejected with a specific UnsupportedError.
func ProcessInsert(stmt *pg_query.InsertStmt) (ir.Statement, error) {
	if stmt == nil || stmt.Relation == nil {
		return ir.Statement{}, errs.NewUnsupported("empty INSERT statement")
	}
	if stmt.OnConflictClause != nil {
		return ir.Statement{}, errs.NewUnsupported("ON CONFLICT is not supported")
	}
	if stmt.WithClause != nil {
		return ir.Statement{}, errs.NewUnsupported("CTEs (WITH clauses) are not supported")
	}

	columns, err := processInsertColumns(stmt.Cols)
	if err != nil {
		return ir.Statement{}, err
	}

	values, err := processInsertValues(stmt.SelectStmt)
	if err != nil {
		return ir.Statement{}, err
	}
	if len(columns) > 0 {
		for _, row := range values {
			if len(row) != len(columns) {
				return ir.Statement{}, errs.NewUnsupported("INSERT row width does not match column list")
			}
		}
	}

	returning, err := processReturning(stmt.ReturningList)
	if err != nil {
		return ir.Statement{}, err
	}

	return ir.NewInsert(ir.Insert{
		Into:      relationName(stmt.Relation),
		Columns:   columns,
		Values:    values,
		Returning: returning,
	}), nil
}

func processInsertColumns(nodes []*pg_query.Node) ([]string, error) {
	columns := make([]string, 0, len(nodes))
	for _, node := range nodes {
		rt, ok := node.Node.(*pg_query.Node_ResTarget)
		if !ok || rt.ResTarget == nil || rt.ResTarget.Name == "" {
			return nil, errs.NewUnsupported("unsupported INSERT column reference")
		}
		columns = append(columns, rt.ResTarget.Name)
	}
	return columns, nil
}

// processInsertValues unwraps the VALUES clause, which the parser
// represents as a SelectStmt whose ValuesLists holds one List per row.
// An embedded SELECT instead of VALUES (INSERT ... SELECT) fails
// explicitly.
func processInsertValues(node *pg_query.Node) ([][]ir.Atom, error) {
	if node == nil {
		return nil, errs.NewUnsupported("INSERT requires a VALUES clause")
	}
	sel, ok := node.Node.(*pg_query.Node_SelectStmt)
	if !ok || sel.SelectStmt == nil {
		return nil, errs.NewUnsupported("unsupported INSERT value source")
	}
	if len(sel.SelectStmt.ValuesLists) == 0 {
		return nil, errs.NewUnsupported("INSERT ... SELECT is not supported; only VALUES is")
	}

	rows := make([][]ir.Atom, 0, len(sel.SelectStmt.ValuesLists))
	var width = -1
	for _, rowNode := range sel.SelectStmt.ValuesLists {
		list, ok := rowNode.Node.(*pg_query.Node_List)
		if !ok || list.List == nil {
			return nil, errs.NewUnsupported("unsupported VALUES row")
		}
		row := make([]ir.Atom, 0, len(list.List.Items))
		for _, item := range list.List.Items {
			v, err := literalAtom(item, "INSERT value")
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, errs.NewUnsupported("INSERT VALUES rows must all have the same width")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processReturning lowers a RETURNING list: only simple column
// references are allowed; qualified references keep only their last
// segment.
func processReturning(nodes []*pg_query.Node) ([]string, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	columns := make([]string, 0, len(nodes))
	for _, node := range nodes {
		rt, ok := node.Node.(*pg_query.Node_ResTarget)
		if !ok || rt.ResTarget == nil {
			return nil, errs.NewUnsupported("unsupported RETURNING target")
		}
		if rt.ResTarget.Name != "" {
			return nil, errs.NewUnsupported("aliased RETURNING targets are not supported")
		}
		ref, ok := rt.ResTarget.Val.Node.(*pg_query.Node_ColumnRef)
		if !ok || ref.ColumnRef == nil {
			return nil, errs.NewUnsupported("RETURNING targets must be simple column references")
		}
		if len(ref.ColumnRef.Fields) == 1 {
			if _, ok := ref.ColumnRef.Fields[0].Node.(*pg_query.Node_AStar); ok {
				return nil, errs.NewUnsupported("RETURNING * is not supported")
			}
		}
		var name string
		for _, f := range ref.ColumnRef.Fields {
			s, ok := stringValue(f)
			if !ok {
				return nil, errs.NewUnsupported("unsupported RETURNING column reference")
			}
			name = s // keep only the last segment for qualified references
		}
		columns = append(columns, name)
	}
	return columns, nil
}
