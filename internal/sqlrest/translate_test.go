package sqlrest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
)

func TestTranslate_Success(t *testing.T) {
	stmt, err := Translate(context.Background(), "select * from books")
	require.NoError(t, err)
	require.NotNil(t, stmt.Select)
	assert.Equal(t, "books", stmt.Select.From)
}

func TestTranslate_ParseError(t *testing.T) {
	_, err := Translate(context.Background(), "select * fro books")
	var parseErr *errs.ParsingError
	require.ErrorAs(t, err, &parseErr)
}

func TestTranslate_UnsupportedStatement(t *testing.T) {
	_, err := Translate(context.Background(), "create table books (id int)")
	var unsupported *errs.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestTranslate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Translate(ctx, "select * from books")
	assert.ErrorIs(t, err, context.Canceled)
}
