package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// renderRootFilter is the key algorithm: at the root of a filter tree, a
// non-negated AND is flattened into one top-level parameter per child,
// recursively. Anything else — a negated AND, any OR, any ColumnFilter —
// renders as a single (key, value) pair. Flattening happens only at the
// root; a nested AND always renders in nested and(...) form.
func renderRootFilter(f ir.Filter) (ParamList, error) {
	if f.Logical != nil && f.Logical.Operator == ir.LogicalAnd && !f.Negate {
		var params ParamList
		for _, child := range f.Logical.Values {
			childParams, err := renderRootFilter(child)
			if err != nil {
				return nil, err
			}
			params = append(params, childParams...)
		}
		return params, nil
	}

	key, value, err := renderFilterPair(f)
	if err != nil {
		return nil, err
	}
	return ParamList{{Key: key, Value: value}}, nil
}

// renderFilterPair renders f as a single (key, value) pair in nested
// form: a ColumnFilter becomes column=[not.]op.literal; a LogicalFilter
// becomes and/or=[not.](child,child,…), each child rendered recursively
// in this same nested form — it never flattens below the root.
func renderFilterPair(f ir.Filter) (key, value string, err error) {
	switch {
	case f.Column != nil:
		return renderColumnFilter(*f.Column, f.Negate)
	case f.Logical != nil:
		return renderLogicalFilter(*f.Logical, f.Negate)
	default:
		return "", "", errs.NewRender("empty filter node")
	}
}

func renderColumnFilter(c ir.ColumnFilter, negate bool) (key, value string, err error) {
	opValue, err := renderOperand(c)
	if err != nil {
		return "", "", err
	}
	if negate {
		return c.Column, "not." + opValue, nil
	}
	return c.Column, opValue, nil
}

func renderOperand(c ir.ColumnFilter) (string, error) {
	if c.Operator == ir.OpIn {
		parts := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			parts = append(parts, encodeAtom(v))
		}
		return string(c.Operator) + ".(" + strings.Join(parts, ",") + ")", nil
	}
	return string(c.Operator) + "." + encodeAtom(c.Value), nil
}

func renderLogicalFilter(l ir.LogicalFilter, negate bool) (key, value string, err error) {
	parts := make([]string, 0, len(l.Values))
	for _, child := range l.Values {
		nested, err := renderNested(child)
		if err != nil {
			return "", "", err
		}
		parts = append(parts, nested)
	}
	value = "(" + strings.Join(parts, ",") + ")"
	if negate {
		value = "not." + value
	}
	return string(l.Operator), value, nil
}

// renderNested renders a filter as one element inside a logical
// operator's parenthesized child list: a ColumnFilter becomes
// "column.op.value", and a nested logical child serializes as
// and(...)/or(...) rather than flattening.
func renderNested(f ir.Filter) (string, error) {
	if f.Logical != nil {
		parts := make([]string, 0, len(f.Logical.Values))
		for _, child := range f.Logical.Values {
			nested, err := renderNested(child)
			if err != nil {
				return "", err
			}
			parts = append(parts, nested)
		}
		inner := string(f.Logical.Operator) + "(" + strings.Join(parts, ",") + ")"
		if f.Negate {
			return "not." + inner, nil
		}
		return inner, nil
	}
	if f.Column != nil {
		key, value, err := renderColumnFilter(*f.Column, f.Negate)
		if err != nil {
			return "", err
		}
		return key + "." + value, nil
	}
	return "", errs.NewRender("empty filter node")
}

// encodeAtom formats an atom as a filter literal. Comma, parenthesis,
// and dot are left unencoded since they are filter-value syntax; a
// string value containing a comma, dot, colon, parenthesis, or double
// quote is wrapped in double quotes per PostgREST convention.
func encodeAtom(a ir.Atom) string {
	if a.IsNull() {
		return "null"
	}
	switch v := a.Value().(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return quoteIfNeeded(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",.:()\"") {
		escaped := strings.ReplaceAll(s, `"`, `\"`)
		return `"` + escaped + `"`
	}
	return s
}
