package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest"
)

func translate(t *testing.T, sql string) HTTPRequest {
	t.Helper()
	stmt, err := sqlrest.Translate(context.Background(), sql)
	require.NoError(t, err)
	req, err := ToHTTPRequest(stmt)
	require.NoError(t, err)
	return req
}

// TestScenarios exercises the six golden scenarios end to end.
func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		method   string
		path     string
		fullPath string
		body     string
	}{
		{
			name:     "select star",
			sql:      "select * from books",
			method:   "GET",
			path:     "/books",
			fullPath: "/books",
		},
		{
			name:     "select with filter order and limit",
			sql:      "select title, author from books where id = 1 order by title desc limit 10",
			method:   "GET",
			path:     "/books",
			fullPath: "/books?select=title,author&id=eq.1&order=title.desc&limit=10",
		},
		{
			name:     "or of and, non-flattened",
			sql:      "select * from books where (rating > 4 and year < 2000) or author = 'asimov'",
			method:   "GET",
			path:     "/books",
			fullPath: "/books?or=(and(rating.gt.4,year.lt.2000),author.eq.asimov)",
		},
		{
			name:     "multi row insert",
			sql:      "insert into books (title, year) values ('X', 1999), ('Y', 2001) returning id",
			method:   "POST",
			path:     "/books",
			fullPath: "/books?select=id",
			body:     `[{"title":"X","year":1999},{"title":"Y","year":2001}]`,
		},
		{
			name:     "update with returning",
			sql:      "update books set year = 2000 where id = 1 returning id, year",
			method:   "PATCH",
			path:     "/books",
			fullPath: "/books?select=id,year&id=eq.1",
			body:     `{"year":2000}`,
		},
		{
			name:     "delete",
			sql:      "delete from books where id = 1",
			method:   "DELETE",
			path:     "/books",
			fullPath: "/books?id=eq.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := translate(t, tt.sql)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.fullPath, req.FullPath())
			if tt.body != "" {
				assert.JSONEq(t, tt.body, string(req.Body))
			} else {
				assert.Empty(t, req.Body)
			}
		})
	}
}

func TestFullPath_EqualsPathWhenNoParams(t *testing.T) {
	req := translate(t, "select * from books")
	assert.Equal(t, req.Path, req.FullPath())
	assert.Empty(t, req.Params)
}

func TestFullPath_DiffersWhenParamsPresent(t *testing.T) {
	req := translate(t, "select * from books where id = 1")
	assert.NotEqual(t, req.Path, req.FullPath())
}

func TestLimitZeroAndOffsetZero_EmitLiterally(t *testing.T) {
	req := translate(t, "select * from books limit 0 offset 0")
	values := map[string]string{}
	for _, p := range req.Params {
		values[p.Key] = p.Value
	}
	assert.Equal(t, "0", values["limit"])
	assert.Equal(t, "0", values["offset"])
}

func TestEmptyReturning_NoSelectParam(t *testing.T) {
	req := translate(t, "delete from books where id = 1")
	for _, p := range req.Params {
		assert.NotEqual(t, "select", p.Key)
	}
}

func TestRootFlattening_NestedAndFlattensRecursively(t *testing.T) {
	req := translate(t, "select * from books where id = 1 and year > 2000 and author = 'x'")
	keys := make([]string, 0, len(req.Params))
	for _, p := range req.Params {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"id", "year", "author"}, keys)
}

func TestRootFlattening_NegatedRootAndDoesNotFlatten(t *testing.T) {
	req := translate(t, "select * from books where not (id = 1 and year > 2000)")
	require.Len(t, req.Params, 1)
	assert.Equal(t, "and", req.Params[0].Key)
	assert.Equal(t, "not.(id.eq.1,year.gt.2000)", req.Params[0].Value)
}

func TestInsert_SingleRow_IsObjectNotArray(t *testing.T) {
	req := translate(t, "insert into books (title) values ('X')")
	assert.Equal(t, `{"title":"X"}`, string(req.Body))
}

func TestFormatHTTP(t *testing.T) {
	req := translate(t, "select * from books where id = 1")
	out := FormatHTTP(req, "http://localhost:3000")
	assert.Contains(t, out, "GET /books?id=eq.1 HTTP/1.1")
	assert.Contains(t, out, "Host: localhost:3000")
}

func TestFormatCurl_GetUsesDashG(t *testing.T) {
	req := translate(t, "select * from books where id = 1")
	out := FormatCurl(req, "http://localhost:3000")
	assert.Contains(t, out, "-G")
	assert.Contains(t, out, `-d "id=eq.1"`)
}

func TestFormatCurl_DeleteUsesXDelete(t *testing.T) {
	req := translate(t, "delete from books where id = 1")
	out := FormatCurl(req, "http://localhost:3000")
	assert.Contains(t, out, "-X DELETE")
}

func TestFormatCurl_BodyEscapesSingleQuotes(t *testing.T) {
	req := translate(t, "insert into books (title) values ('it''s here')")
	out := FormatCurl(req, "http://localhost:3000")
	assert.Contains(t, out, `it'"'"'s here`)
}

func TestRenderCode_JavaScript(t *testing.T) {
	req := translate(t, "select * from books where id = 1")
	code, err := RenderCode(req, LangJavaScript)
	require.NoError(t, err)
	assert.Contains(t, code, "fetch(")
	assert.Contains(t, code, `"GET"`)
}

func TestRenderCode_UnsupportedLanguage(t *testing.T) {
	req := translate(t, "select * from books")
	_, err := RenderCode(req, Language("python"))
	assert.Error(t, err)
}

func TestRenderSelectParam_EmbeddedAndAggregate(t *testing.T) {
	req := translate(t, "select title, author(name), count(*) from books")
	values := map[string]string{}
	for _, p := range req.Params {
		values[p.Key] = p.Value
	}
	assert.Equal(t, "title,author(name),*.count()", values["select"])
}
