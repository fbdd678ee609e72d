package render

import (
	"fmt"
	"strings"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/errs"
)

// Language identifies a client-code target for RenderCode. JavaScript is
// the only language implemented; this exists as the seam the other
// example clients in this ecosystem plug into.
type Language string

// LangJavaScript is the only supported RenderCode target.
const LangJavaScript Language = "javascript"

// RenderCode emits a short fetch()-style snippet reproducing req. It is
// built directly from the rendered HTTPRequest, not from a second walk
// over the Statement IR.
func RenderCode(req HTTPRequest, lang Language) (string, error) {
	switch lang {
	case LangJavaScript:
		return renderJavaScript(req), nil
	default:
		return "", errs.NewRender("%s client code is not supported", lang)
	}
}

func renderJavaScript(req HTTPRequest) string {
	var b strings.Builder
	path := req.FullPath()
	fmt.Fprintf(&b, "fetch(%q, {\n", path)
	fmt.Fprintf(&b, "  method: %q,\n", req.Method)
	if len(req.Body) > 0 {
		b.WriteString("  headers: { \"Content-Type\": \"application/json\" },\n")
		fmt.Fprintf(&b, "  body: JSON.stringify(%s),\n", string(req.Body))
	}
	b.WriteString("})")
	return b.String()
}
