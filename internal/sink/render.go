package sink

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Template delimiters. "<%=" is accepted as a synonym for "<%" so that
// lodash-style placeholders in third-party files render, and Liquid's
// {{ }} markup passes through untouched.
const (
	leftDelim  = "<%"
	rightDelim = "%>"
	lodashLeft = "<%="
)

// Render executes data as a template. Every entry in vars is reachable both
// as a field of the dot value and as a zero-argument function, so
// "<%= .cssDir %>" and "<%= cssDir %>" are equivalent.
func Render(name string, data []byte, vars map[string]any) ([]byte, error) {
	funcs := sprig.TxtFuncMap()
	for k, v := range vars {
		v := v
		funcs[k] = func() any { return v }
	}

	src := strings.ReplaceAll(string(data), lodashLeft, leftDelim)
	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Funcs(funcs).
		Option("missingkey=error").
		Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
