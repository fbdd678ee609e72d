// Package render turns Statement IR into a PostgREST-shaped HTTP request
// description: method, path, ordered query parameters, and an optional
// JSON body.
package render

import (
	"fmt"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// Param is one key/value query parameter. Order matters: PostgREST
// itself doesn't care, but stable output makes the renderer's tests and
// the CLI's output deterministic.
type Param struct {
	Key   string
	Value string
}

// ParamList is an ordered multimap — the same column can legally appear
// more than once (e.g. two range filters on the same column), so this is
// a slice, not a map.
type ParamList []Param

// Add appends a key/value pair, preserving insertion order.
func (p *ParamList) Add(key, value string) {
	*p = append(*p, Param{Key: key, Value: value})
}

// HTTPRequest is the rendered request: enough to format as a raw
// HTTP request line, a curl command, or client code.
type HTTPRequest struct {
	Method string
	Path   string // resource path, e.g. "/books"
	Params ParamList
	Body   []byte // nil for GET/DELETE
}

// ToHTTPRequest renders a Statement into its HTTPRequest form.
// Exactly one of stmt's fields is populated.
func ToHTTPRequest(stmt ir.Statement) (HTTPRequest, error) {
	switch {
	case stmt.Select != nil:
		return renderSelect(stmt.Select)
	case stmt.Insert != nil:
		return renderInsert(stmt.Insert)
	case stmt.Update != nil:
		return renderUpdate(stmt.Update)
	case stmt.Delete != nil:
		return renderDelete(stmt.Delete)
	default:
		return HTTPRequest{}, errs.NewRender("empty statement has no rendering")
	}
}

func renderSelect(s *ir.Select) (HTTPRequest, error) {
	req := HTTPRequest{Method: "GET", Path: "/" + s.From}

	if !ir.IsStar(s.Targets) {
		sel, err := renderSelectParam(s.Targets)
		if err != nil {
			return HTTPRequest{}, err
		}
		req.Params.Add("select", sel)
	}

	if s.Filter != nil {
		filterParams, err := renderRootFilter(*s.Filter)
		if err != nil {
			return HTTPRequest{}, err
		}
		req.Params = append(req.Params, filterParams...)
	}

	if len(s.Sorts) > 0 {
		req.Params.Add("order", renderOrder(s.Sorts))
	}

	if s.Limit != nil {
		if s.Limit.Count != nil {
			req.Params.Add("limit", fmt.Sprintf("%d", *s.Limit.Count))
		}
		if s.Limit.Offset != nil {
			req.Params.Add("offset", fmt.Sprintf("%d", *s.Limit.Offset))
		}
	}

	return req, nil
}

func renderInsert(ins *ir.Insert) (HTTPRequest, error) {
	req := HTTPRequest{Method: "POST", Path: "/" + ins.Into}

	body, err := renderInsertBody(ins)
	if err != nil {
		return HTTPRequest{}, err
	}
	req.Body = body

	if len(ins.Returning) > 0 {
		req.Params.Add("select", renderReturning(ins.Returning))
	}
	return req, nil
}

func renderUpdate(u *ir.Update) (HTTPRequest, error) {
	req := HTTPRequest{Method: "PATCH", Path: "/" + u.Table}

	body, err := renderSetBody(u.Set)
	if err != nil {
		return HTTPRequest{}, err
	}
	req.Body = body

	if len(u.Returning) > 0 {
		req.Params.Add("select", renderReturning(u.Returning))
	}
	if u.Filter != nil {
		filterParams, err := renderRootFilter(*u.Filter)
		if err != nil {
			return HTTPRequest{}, err
		}
		req.Params = append(req.Params, filterParams...)
	}
	return req, nil
}

func renderDelete(d *ir.Delete) (HTTPRequest, error) {
	req := HTTPRequest{Method: "DELETE", Path: "/" + d.From}

	if d.Filter != nil {
		filterParams, err := renderRootFilter(*d.Filter)
		if err != nil {
			return HTTPRequest{}, err
		}
		req.Params = append(req.Params, filterParams...)
	}
	if len(d.Returning) > 0 {
		req.Params.Add("select", renderReturning(d.Returning))
	}
	return req, nil
}

func renderReturning(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out
}

func renderOrder(sorts []ir.Sort) string {
	out := ""
	for i, s := range sorts {
		if i > 0 {
			out += ","
		}
		out += s.Column
		if s.Direction != nil {
			out += "." + string(*s.Direction)
		}
		if s.Nulls != nil {
			if *s.Nulls == ir.NullsFirst {
				out += ".nullsfirst"
			} else {
				out += ".nullslast"
			}
		}
	}
	return out
}
