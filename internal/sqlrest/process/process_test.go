package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/parse"
)

func dispatch(t *testing.T, sql string) ir.Statement {
	t.Helper()
	node, err := parse.Parse(sql)
	require.NoError(t, err)
	stmt, err := Dispatch(node)
	require.NoError(t, err)
	return stmt
}

func dispatchErr(t *testing.T, sql string) error {
	t.Helper()
	node, err := parse.Parse(sql)
	require.NoError(t, err)
	_, err = Dispatch(node)
	return err
}

func TestProcessSelect_Basic(t *testing.T) {
	stmt := dispatch(t, "select * from books")
	require.NotNil(t, stmt.Select)
	assert.Equal(t, "books", stmt.Select.From)
	assert.True(t, ir.IsStar(stmt.Select.Targets))
	assert.Nil(t, stmt.Select.Filter)
}

func TestProcessSelect_TargetsFilterSortLimit(t *testing.T) {
	stmt := dispatch(t, "select title, author from books where id = 1 order by title desc limit 10")
	sel := stmt.Select
	require.NotNil(t, sel)

	require.Len(t, sel.Targets, 2)
	assert.Equal(t, "title", sel.Targets[0].Column.Name)
	assert.Equal(t, "author", sel.Targets[1].Column.Name)

	require.NotNil(t, sel.Filter)
	require.NotNil(t, sel.Filter.Column)
	assert.Equal(t, "id", sel.Filter.Column.Column)
	assert.Equal(t, ir.OpEq, sel.Filter.Column.Operator)
	assert.Equal(t, float64(1), sel.Filter.Column.Value.Value())

	require.Len(t, sel.Sorts, 1)
	assert.Equal(t, "title", sel.Sorts[0].Column)
	require.NotNil(t, sel.Sorts[0].Direction)
	assert.Equal(t, ir.SortDesc, *sel.Sorts[0].Direction)

	require.NotNil(t, sel.Limit)
	require.NotNil(t, sel.Limit.Count)
	assert.Equal(t, 10, *sel.Limit.Count)
}

func TestProcessSelect_EmbeddedResource(t *testing.T) {
	stmt := dispatch(t, "select title, author(name) from books")
	sel := stmt.Select
	require.Len(t, sel.Targets, 2)
	require.NotNil(t, sel.Targets[1].Resource)
	assert.Equal(t, "author", sel.Targets[1].Resource.Name)
	require.Len(t, sel.Targets[1].Resource.Targets, 1)
	assert.Equal(t, "name", sel.Targets[1].Resource.Targets[0].Column.Name)
}

func TestProcessSelect_Aggregate(t *testing.T) {
	stmt := dispatch(t, "select count(*) from books")
	sel := stmt.Select
	require.Len(t, sel.Targets, 1)
	require.NotNil(t, sel.Targets[0].Aggregate)
	assert.Equal(t, "count", sel.Targets[0].Aggregate.Func)
	assert.Equal(t, "*", sel.Targets[0].Aggregate.Column)
}

func TestProcessSelect_JoinLowersToEmbeddedResource(t *testing.T) {
	stmt := dispatch(t, "select title, authors.name from books join authors on books.author_id = authors.id")
	sel := stmt.Select
	require.NotNil(t, sel)
	assert.Equal(t, "books", sel.From)
	require.Len(t, sel.Targets, 2)
	assert.Equal(t, "title", sel.Targets[0].Column.Name)
	require.NotNil(t, sel.Targets[1].Resource)
	assert.Equal(t, "authors", sel.Targets[1].Resource.Name)
	require.Len(t, sel.Targets[1].Resource.Targets, 1)
	assert.Equal(t, "name", sel.Targets[1].Resource.Targets[0].Column.Name)
}

func TestProcessSelect_JoinWithAliasLowersToEmbeddedResource(t *testing.T) {
	stmt := dispatch(t, "select b.title, a.name from books b join authors a on b.author_id = a.id")
	sel := stmt.Select
	require.NotNil(t, sel)
	assert.Equal(t, "books", sel.From)
	require.Len(t, sel.Targets, 2)
	require.NotNil(t, sel.Targets[1].Resource)
	assert.Equal(t, "authors", sel.Targets[1].Resource.Name)
}

func TestProcessSelect_RejectsNonEqualityJoinCondition(t *testing.T) {
	err := dispatchErr(t, "select title, authors.name from books join authors on books.author_id > authors.id")
	require.Error(t, err)
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessSelect_RejectsJoinWithoutEmbeddedSelection(t *testing.T) {
	err := dispatchErr(t, "select title from books join authors on books.author_id = authors.id")
	require.Error(t, err)
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessSelect_RejectsRightJoin(t *testing.T) {
	err := dispatchErr(t, "select title, authors.name from books right join authors on books.author_id = authors.id")
	require.Error(t, err)
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessSelect_RejectsJoinUsing(t *testing.T) {
	err := dispatchErr(t, "select title, authors.name from books join authors using (author_id)")
	require.Error(t, err)
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessSelect_RejectsThreeWayJoin(t *testing.T) {
	err := dispatchErr(t, "select title from books join authors on books.author_id = authors.id join publishers on books.publisher_id = publishers.id")
	require.Error(t, err)
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessSelect_RejectsCTE(t *testing.T) {
	err := dispatchErr(t, "with recent as (select * from books) select * from recent")
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessSelect_RejectsGroupBy(t *testing.T) {
	err := dispatchErr(t, "select author, count(*) from books group by author")
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessSelect_LogicalFilter(t *testing.T) {
	stmt := dispatch(t, "select * from books where (rating > 4 and year < 2000) or author = 'asimov'")
	sel := stmt.Select
	require.NotNil(t, sel.Filter)
	require.NotNil(t, sel.Filter.Logical)
	assert.Equal(t, ir.LogicalOr, sel.Filter.Logical.Operator)
	require.Len(t, sel.Filter.Logical.Values, 2)

	and := sel.Filter.Logical.Values[0]
	require.NotNil(t, and.Logical)
	assert.Equal(t, ir.LogicalAnd, and.Logical.Operator)
	require.Len(t, and.Logical.Values, 2)
}

func TestProcessSelect_NotIn(t *testing.T) {
	stmt := dispatch(t, "select * from books where id not in (1, 2, 3)")
	f := stmt.Select.Filter
	require.NotNil(t, f.Column)
	assert.True(t, f.Negate)
	assert.Equal(t, ir.OpIn, f.Column.Operator)
	assert.Len(t, f.Column.Values, 3)
}

func TestProcessSelect_NotLike(t *testing.T) {
	stmt := dispatch(t, "select * from books where title not like '%foo%'")
	f := stmt.Select.Filter
	require.NotNil(t, f.Column)
	assert.True(t, f.Negate)
	assert.Equal(t, ir.OpLike, f.Column.Operator)
}

func TestProcessSelect_FullTextSearch(t *testing.T) {
	stmt := dispatch(t, "select * from books where body @@ plainto_tsquery('old man')")
	f := stmt.Select.Filter
	require.NotNil(t, f.Column)
	assert.Equal(t, ir.OpPlfts, f.Column.Operator)
	assert.Equal(t, "old man", f.Column.Value.Value())
}

func TestProcessSelect_IsNull(t *testing.T) {
	stmt := dispatch(t, "select * from books where deleted_at is null")
	f := stmt.Select.Filter
	require.NotNil(t, f.Column)
	assert.Equal(t, ir.OpIs, f.Column.Operator)
	assert.True(t, f.Column.Value.IsNull())
	assert.False(t, f.Negate)
}

func TestProcessInsert_MultiRow(t *testing.T) {
	stmt := dispatch(t, "insert into books (title, year) values ('X', 1999), ('Y', 2001) returning id")
	ins := stmt.Insert
	require.NotNil(t, ins)
	assert.Equal(t, "books", ins.Into)
	assert.Equal(t, []string{"title", "year"}, ins.Columns)
	require.Len(t, ins.Values, 2)
	assert.Equal(t, "X", ins.Values[0][0].Value())
	assert.Equal(t, float64(1999), ins.Values[0][1].Value())
	assert.Equal(t, []string{"id"}, ins.Returning)
}

func TestProcessInsert_RejectsOnConflict(t *testing.T) {
	err := dispatchErr(t, "insert into books (title) values ('X') on conflict do nothing")
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessInsert_RejectsInsertSelect(t *testing.T) {
	err := dispatchErr(t, "insert into books (title) select title from drafts")
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessUpdate_Basic(t *testing.T) {
	stmt := dispatch(t, "update books set year = 2000 where id = 1 returning id, year")
	upd := stmt.Update
	require.NotNil(t, upd)
	assert.Equal(t, "books", upd.Table)
	require.Len(t, upd.Set, 1)
	assert.Equal(t, "year", upd.Set[0].Column)
	assert.Equal(t, float64(2000), upd.Set[0].Value.Value())
	assert.Equal(t, []string{"id", "year"}, upd.Returning)
}

func TestProcessUpdate_RejectsNonBasicOperator(t *testing.T) {
	err := dispatchErr(t, "update books set year = 2000 where title like '%foo%'")
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestProcessUpdate_AllowsNegatedOrOfBasicPredicates(t *testing.T) {
	stmt := dispatch(t, "update books set year = 2000 where not (id = 1 or id = 2)")
	require.NotNil(t, stmt.Update.Filter)
	assert.NotNil(t, stmt.Update.Filter.Logical)
	assert.True(t, stmt.Update.Filter.Negate)
}

func TestProcessDelete_Basic(t *testing.T) {
	stmt := dispatch(t, "delete from books where id = 1")
	del := stmt.Delete
	require.NotNil(t, del)
	assert.Equal(t, "books", del.From)
	require.NotNil(t, del.Filter.Column)
	assert.Equal(t, ir.OpEq, del.Filter.Column.Operator)
}

func TestProcessDelete_RejectsUsing(t *testing.T) {
	err := dispatchErr(t, "delete from books using authors where books.author_id = authors.id")
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestDispatch_Unimplemented(t *testing.T) {
	err := dispatchErr(t, "explain select * from books")
	var unimplemented *errs.UnimplementedError
	require.ErrorAs(t, err, &unimplemented)
}
