package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
)

func TestParse_ValidStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{name: "select", sql: "select * from books"},
		{name: "insert", sql: "insert into books (title) values ('X')"},
		{name: "update", sql: "update books set title = 'X' where id = 1"},
		{name: "delete", sql: "delete from books where id = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.sql)
			require.NoError(t, err)
			assert.NotNil(t, node)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	node, err := Parse("select * fro books")
	assert.Nil(t, node)
	require.Error(t, err)

	var parseErr *errs.ParsingError
	require.ErrorAs(t, err, &parseErr)
	assert.NotEmpty(t, parseErr.Hint)
}

func TestParse_EmptyStatement(t *testing.T) {
	node, err := Parse("")
	assert.Nil(t, node)
	require.Error(t, err)

	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestParse_MultipleStatements(t *testing.T) {
	node, err := Parse("select * from books; select * from authors")
	assert.Nil(t, node)
	require.Error(t, err)

	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestClassifyHint(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "missing comma", message: `syntax error at or near ","`, want: "did you forget a comma?"},
		{name: "truncated input", message: "syntax error at end of input", want: "statement looks truncated — missing a closing parenthesis or clause?"},
		{name: "unterminated string", message: "unterminated quoted string at or near \"'x\"", want: "check for a missing closing quote"},
		{name: "unrecognized message falls back", message: "some other parser complaint", want: "check the statement near the reported position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyHint(tt.message))
		})
	}
}
