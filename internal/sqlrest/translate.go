// Package sqlrest turns a single SQL statement into a PostgREST-style
// HTTP request description: parse it with the real PostgreSQL grammar,
// lower the parse tree into the Statement IR, then render the IR as an
// HTTPRequest.
package sqlrest

import (
	"context"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/parse"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/process"
)

// Translate parses sql and lowers it into Statement IR. It is the single
// entry point the CLI and any embedding caller use; everything else in
// this module is reachable only through it or through the render package
// it hands its result to.
//
// ctx carries no deadline semantics today — parsing and lowering are pure
// CPU work with no I/O — but it is threaded through so a future caller
// can cancel a pathological parse without changing this signature.
func Translate(ctx context.Context, sql string) (ir.Statement, error) {
	if err := ctx.Err(); err != nil {
		return ir.Statement{}, err
	}

	node, err := parse.Parse(sql)
	if err != nil {
		return ir.Statement{}, err
	}

	stmt, err := process.Dispatch(node)
	if err != nil {
		return ir.Statement{}, err
	}
	return stmt, nil
}
