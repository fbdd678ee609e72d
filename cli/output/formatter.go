// Package output provides output formatting for the sqlrest CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/render"
)

// Format is an output rendering mode.
type Format string

const (
	FormatHTTPWire Format = "http"
	FormatCurl     Format = "curl"
	FormatCode     Format = "code"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "http", "":
		return FormatHTTPWire, nil
	case "curl":
		return FormatCurl, nil
	case "code":
		return FormatCode, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid: http, curl, code, json, yaml)", s)
	}
}

// Formatter renders an HTTPRequest in the configured format.
type Formatter struct {
	Format Format
	Quiet  bool
	Writer io.Writer
}

// NewFormatter creates a new formatter.
func NewFormatter(format Format, quiet bool) *Formatter {
	return &Formatter{Format: format, Quiet: quiet, Writer: os.Stdout}
}

// requestView is the JSON/YAML-serializable shape of a rendered request.
// RequestID stamps a fresh uuid per invocation so output can be
// correlated across logs.
type requestView struct {
	RequestID string            `json:"request_id" yaml:"request_id"`
	Method    string            `json:"method" yaml:"method"`
	Path      string            `json:"path" yaml:"path"`
	Params    map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Body      json.RawMessage   `json:"body,omitempty" yaml:"body,omitempty"`
}

// PrintRequest renders req according to the formatter's mode.
func (f *Formatter) PrintRequest(req render.HTTPRequest, baseURL, lang string) error {
	if f.Quiet {
		return nil
	}

	switch f.Format {
	case FormatCurl:
		_, err := fmt.Fprintln(f.Writer, render.FormatCurl(req, baseURL))
		return err
	case FormatCode:
		code, err := render.RenderCode(req, render.Language(lang))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.Writer, code)
		return err
	case FormatJSON:
		return f.printJSON(toView(req))
	case FormatYAML:
		return f.printYAML(toView(req))
	default:
		_, err := fmt.Fprintln(f.Writer, render.FormatHTTP(req, baseURL))
		return err
	}
}

func toView(req render.HTTPRequest) requestView {
	params := make(map[string]string, len(req.Params))
	for _, p := range req.Params {
		params[p.Key] = p.Value
	}
	view := requestView{RequestID: uuid.NewString(), Method: req.Method, Path: req.Path, Params: params}
	if len(req.Body) > 0 {
		view.Body = json.RawMessage(req.Body)
	}
	return view
}

func (f *Formatter) printJSON(data interface{}) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (f *Formatter) printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(f.Writer)
	encoder.SetIndent(2)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(data)
}

// PrintError prints an error message.
func (f *Formatter) PrintError(message string) {
	fmt.Fprintln(os.Stderr, "Error:", message)
}
