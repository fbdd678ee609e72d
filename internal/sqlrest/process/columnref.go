package process

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
)

// columnRefName reads a (possibly qualified) column reference from the
// left-hand side of a comparison, joining schema/table/column segments
// with "." exactly as written; ColumnFilter keeps qualified names
// verbatim.
func columnRefName(node *pg_query.Node) (string, error) {
	if node == nil {
		return "", errs.NewUnsupported("missing column reference")
	}
	ref, ok := node.Node.(*pg_query.Node_ColumnRef)
	if !ok || ref.ColumnRef == nil {
		return "", errs.NewUnsupported("left-hand side of a filter must be a column reference")
	}

	segments := make([]string, 0, len(ref.ColumnRef.Fields))
	for _, field := range ref.ColumnRef.Fields {
		if _, ok := field.Node.(*pg_query.Node_AStar); ok {
			return "", errs.NewUnsupported("* is not a valid filter column")
		}
		s, ok := stringValue(field)
		if !ok {
			return "", errs.NewUnsupported("unsupported column reference segment")
		}
		segments = append(segments, s)
	}
	if len(segments) == 0 {
		return "", errs.NewUnsupported("empty column reference")
	}
	return strings.Join(segments, "."), nil
}
