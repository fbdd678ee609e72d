package render

import (
	"net/url"
	"strings"
)

// FullPath renders req's path with its query parameters appended,
// deterministic given Path and Params.
func (req HTTPRequest) FullPath() string {
	if len(req.Params) == 0 {
		return req.Path
	}
	var b strings.Builder
	b.WriteString(req.Path)
	b.WriteByte('?')
	for i, p := range req.Params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(encodeParamValue(p.Value))
	}
	return b.String()
}

// encodeParamValue percent-encodes a filter/order/select value while
// leaving comma, parenthesis, and dot unescaped — those are filter
// syntax, not data.
func encodeParamValue(v string) string {
	escaped := url.QueryEscape(v)
	escaped = strings.ReplaceAll(escaped, "%2C", ",")
	escaped = strings.ReplaceAll(escaped, "%28", "(")
	escaped = strings.ReplaceAll(escaped, "%29", ")")
	escaped = strings.ReplaceAll(escaped, "%2E", ".")
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return escaped
}

// FormatHTTP renders req as a raw HTTP request line plus headers and
// body. baseURL supplies the Host header, and its path, if any, is
// prepended to the request path.
func FormatHTTP(req HTTPRequest, baseURL string) string {
	host := hostOf(baseURL)
	prefix := ""
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		prefix = strings.TrimRight(u.Path, "/")
	}
	var b strings.Builder
	b.WriteString(req.Method)
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(req.FullPath())
	b.WriteString(" HTTP/1.1\n")
	b.WriteString("Host: ")
	b.WriteString(host)
	b.WriteByte('\n')
	if len(req.Body) > 0 {
		b.WriteString("Content-Type: application/json\n\n")
		b.Write(req.Body)
	}
	return b.String()
}

// FormatCurl renders req as a multi-line curl invocation.
func FormatCurl(req HTTPRequest, baseURL string) string {
	lines := []string{"curl"}
	if req.Method == "DELETE" {
		lines = append(lines, "-X DELETE")
	} else if req.Method != "GET" {
		lines = append(lines, "-X "+req.Method)
	}
	lines = append(lines, `"`+strings.TrimRight(baseURL, "/")+req.Path+`"`)

	if req.Method == "GET" && len(req.Params) > 0 {
		lines = append(lines, "-G")
		for _, p := range req.Params {
			lines = append(lines, `-d "`+p.Key+"="+encodeParamValue(p.Value)+`"`)
		}
	} else if len(req.Params) > 0 {
		for _, p := range req.Params {
			lines = append(lines, `-d "`+p.Key+"="+encodeParamValue(p.Value)+`"`)
		}
	}

	if len(req.Body) > 0 {
		lines = append(lines, `-H "Content-Type: application/json"`)
		lines = append(lines, "-d '"+shellSingleQuote(string(req.Body))+"'")
	}

	return strings.Join(lines, " \\\n")
}

// shellSingleQuote escapes a string for safe embedding inside single
// quotes in a shell command line: each embedded single quote ends the
// quoted segment, emits an escaped quote, then reopens it.
func shellSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'"'"'`)
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}
