package render

import (
	"strings"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// renderSelectParam renders a projection list into PostgREST's select=
// syntax: comma-separated items, with embedded resources nested in
// parentheses, aliases prefixed as "alias:", and casts appended as
// "::type".
func renderSelectParam(targets []ir.Target) (string, error) {
	var b strings.Builder
	for i, t := range targets {
		if i > 0 {
			b.WriteByte(',')
		}
		item, err := renderTarget(t)
		if err != nil {
			return "", err
		}
		b.WriteString(item)
	}
	return b.String(), nil
}

func renderTarget(t ir.Target) (string, error) {
	switch {
	case t.Column != nil:
		return renderColumnTarget(*t.Column), nil
	case t.Aggregate != nil:
		return renderAggregateTarget(*t.Aggregate), nil
	case t.Resource != nil:
		return renderResourceTarget(*t.Resource)
	default:
		return "", errs.NewRender("empty projection target")
	}
}

func renderColumnTarget(c ir.ColumnTarget) string {
	var b strings.Builder
	if c.Alias != "" {
		b.WriteString(c.Alias)
		b.WriteByte(':')
	}
	b.WriteString(c.Name)
	if c.Cast != "" {
		b.WriteString("::")
		b.WriteString(c.Cast)
	}
	return b.String()
}

func renderAggregateTarget(a ir.AggregateTarget) string {
	var b strings.Builder
	if a.Alias != "" {
		b.WriteString(a.Alias)
		b.WriteByte(':')
	}
	b.WriteString(a.Column)
	b.WriteString(".")
	b.WriteString(a.Func)
	b.WriteString("()")
	if a.Cast != "" {
		b.WriteString("::")
		b.WriteString(a.Cast)
	}
	return b.String()
}

func renderResourceTarget(r ir.ResourceTarget) (string, error) {
	var b strings.Builder
	if r.Alias != "" {
		b.WriteString(r.Alias)
		b.WriteByte(':')
	}
	b.WriteString(r.Name)
	b.WriteByte('(')
	inner, err := renderSelectParam(r.Targets)
	if err != nil {
		return "", err
	}
	b.WriteString(inner)
	b.WriteByte(')')
	return b.String(), nil
}
