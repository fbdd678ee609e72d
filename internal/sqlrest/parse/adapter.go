// Package parse is the parse-tree adapter: it invokes the SQL parser
// and hands exactly one statement node to the processor dispatcher.
package parse

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
)

// Parse invokes the SQL parser on sql and returns the single raw
// statement node it produced. Fails with *errs.ParsingError if the
// parser rejects the input, or *errs.UnsupportedError if it returns
// zero or more than one statement.
func Parse(sql string) (*pg_query.Node, error) {
	result, err := pg_query.Parse(sql)
	if err != nil {
		return nil, &errs.ParsingError{
			Message:        err.Error(),
			CursorPosition: cursorPosition(err),
			Hint:           classifyHint(err.Error()),
		}
	}

	switch len(result.Stmts) {
	case 0:
		return nil, errs.NewUnsupported("Expected a statement, but received none")
	case 1:
		return result.Stmts[0].Stmt, nil
	default:
		return nil, errs.NewUnsupported("Expected a single statement, but received multiple")
	}
}

// cursorPosition extracts the parser's byte offset from a pg_query
// error, if it carries one, via duck typing since the underlying
// *pg_query.Error type isn't exported from the parser package.
func cursorPosition(err error) int {
	type cursorer interface {
		Cursorpos() int32
	}
	if c, ok := err.(cursorer); ok {
		return int(c.Cursorpos())
	}
	return 0
}

// hintRules maps substrings of a parser error message to a short
// actionable hint. Matched in order; first match wins. Extend this
// table, don't build a generic classifier — the parser's vocabulary of
// syntax errors is small and stable.
var hintRules = []struct {
	substr string
	hint   string
}{
	{"syntax error at or near \",\"", "did you forget a comma?"},
	{"syntax error at end of input", "statement looks truncated — missing a closing parenthesis or clause?"},
	{"unterminated quoted string", "check for a missing closing quote"},
	{"syntax error at or near \"(\"", "check for an extra or misplaced parenthesis"},
	{"syntax error at or near \")\"", "check for a missing or misplaced parenthesis"},
	{"zero-length delimited identifier", "quoted identifiers can't be empty"},
}

func classifyHint(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range hintRules {
		if strings.Contains(lower, strings.ToLower(rule.substr)) {
			return rule.hint
		}
	}
	return "check the statement near the reported position"
}
