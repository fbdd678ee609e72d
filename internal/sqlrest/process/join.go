package process

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
)

// embeddedJoin describes a FROM-clause JOIN that this subset recognizes
// as a foreign-key embedding: qualifier is the name columns in the
// SELECT list use to refer to the joined relation (its alias if
// aliased, else its table name), and name is the relation name
// rendered as the embed's key in the nested ResourceTarget.
type embeddedJoin struct {
	qualifier string
	name      string
}

// processJoinExpr recognizes a single INNER or LEFT JOIN between two
// plain relations whose ON condition is a foreign-key equality, and
// lowers it to an embedded-resource descriptor instead of rejecting it
// outright — the only shape of FROM-clause join PostgREST's nested
// embedding can represent. Everything else (RIGHT/FULL joins,
// NATURAL/USING joins, non-equality conditions, conditions not
// qualified by both relations, or a join nested inside another join)
// is unsupported.
func processJoinExpr(je *pg_query.JoinExpr) (string, *embeddedJoin, error) {
	if je == nil {
		return "", nil, errs.NewUnsupported("empty JOIN expression")
	}
	if je.Jointype != pg_query.JoinType_JOIN_INNER && je.Jointype != pg_query.JoinType_JOIN_LEFT {
		return "", nil, errs.NewUnsupported("only INNER and LEFT JOINs are supported, as foreign-key embeddings")
	}
	if je.IsNatural || len(je.UsingClause) > 0 {
		return "", nil, errs.NewUnsupported("NATURAL and USING joins are not supported")
	}
	if je.Larg == nil || je.Rarg == nil {
		return "", nil, errs.NewUnsupported("JOIN requires two relations")
	}

	left, ok := je.Larg.Node.(*pg_query.Node_RangeVar)
	if !ok || left.RangeVar == nil {
		return "", nil, errs.NewUnsupported("JOIN is only supported between two simple relations")
	}
	right, ok := je.Rarg.Node.(*pg_query.Node_RangeVar)
	if !ok || right.RangeVar == nil {
		return "", nil, errs.NewUnsupported("JOIN is only supported between two simple relations")
	}

	leftRef := relationRef(left.RangeVar)
	rightRef := relationRef(right.RangeVar)
	if err := verifyForeignKeyEquality(je.Quals, leftRef, rightRef); err != nil {
		return "", nil, err
	}

	return relationName(left.RangeVar), &embeddedJoin{
		qualifier: rightRef,
		name:      right.RangeVar.Relname,
	}, nil
}

// relationRef returns the name a relation's columns are qualified with
// elsewhere in the statement: its alias if aliased, else its table
// name.
func relationRef(rv *pg_query.RangeVar) string {
	if rv.Alias != nil && rv.Alias.Aliasname != "" {
		return rv.Alias.Aliasname
	}
	return rv.Relname
}

// verifyForeignKeyEquality checks that qual is a single "=" comparison
// between a column qualified by leftRef and a column qualified by
// rightRef, in either order — the shape of a foreign-key join
// condition, e.g. books.author_id = authors.id.
func verifyForeignKeyEquality(qual *pg_query.Node, leftRef, rightRef string) error {
	if qual == nil {
		return errs.NewUnsupported("JOIN requires an ON condition")
	}
	expr, ok := qual.Node.(*pg_query.Node_AExpr)
	if !ok || expr.AExpr == nil || expr.AExpr.Kind != pg_query.A_Expr_Kind_AEXPR_OP {
		return errs.NewUnsupported("JOIN condition must be a simple foreign-key equality")
	}
	opName, ok := operatorName(expr.AExpr.Name)
	if !ok || opName != "=" {
		return errs.NewUnsupported("JOIN condition must be an equality comparison")
	}

	leftCol, err := columnRefName(expr.AExpr.Lexpr)
	if err != nil {
		return err
	}
	rightCol, err := columnRefName(expr.AExpr.Rexpr)
	if err != nil {
		return err
	}

	leftQual, leftOK := splitQualifier(leftCol)
	rightQual, rightOK := splitQualifier(rightCol)
	if !leftOK || !rightOK {
		return errs.NewUnsupported("JOIN condition columns must be qualified with their table name")
	}

	refs := map[string]bool{leftRef: true, rightRef: true}
	if leftQual == rightQual || !refs[leftQual] || !refs[rightQual] {
		return errs.NewUnsupported("JOIN condition must equate a column from each joined relation")
	}
	return nil
}

// splitQualifier splits a "table.column"-shaped name into its
// qualifier, failing if the name carries no qualifier at all.
func splitQualifier(qualified string) (string, bool) {
	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return "", false
	}
	return qualified[:idx], true
}

// splitTargetsForEmbed partitions a raw SELECT target list into the
// targets that belong to the primary relation and the targets
// qualified by the embedded relation, so each half can be lowered
// independently: the embedded half becomes the children of a nested
// ResourceTarget instead of top-level columns.
func splitTargetsForEmbed(nodes []*pg_query.Node, embed *embeddedJoin) (primary, embedded []*pg_query.Node) {
	for _, node := range nodes {
		if qualifiesEmbed(node, embed.qualifier) {
			embedded = append(embedded, node)
		} else {
			primary = append(primary, node)
		}
	}
	return primary, embedded
}

func qualifiesEmbed(node *pg_query.Node, qualifier string) bool {
	resTarget, ok := node.Node.(*pg_query.Node_ResTarget)
	if !ok || resTarget.ResTarget == nil {
		return false
	}
	q, ok := targetQualifier(resTarget.ResTarget.Val)
	return ok && q == qualifier
}

func targetQualifier(node *pg_query.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	switch n := node.Node.(type) {
	case *pg_query.Node_ColumnRef:
		return columnRefQualifier(n.ColumnRef)
	case *pg_query.Node_TypeCast:
		if n.TypeCast == nil {
			return "", false
		}
		return targetQualifier(n.TypeCast.Arg)
	default:
		return "", false
	}
}

func columnRefQualifier(ref *pg_query.ColumnRef) (string, bool) {
	if ref == nil || len(ref.Fields) < 2 {
		return "", false
	}
	return stringValue(ref.Fields[0])
}
