package closure

import (
	"net/url"
	"strings"
)

const (
	outputFormatText        = "text"
	outputInfoCompiledCode  = "compiled_code"
	formURLEncodedMediaType = "application/x-www-form-urlencoded"
)

type formField struct {
	key   string
	value string
}

type request struct {
	sourceCode       string
	compilationLevel CompilationLevel
	outputFormat     string
	outputInfo       string
}

func newRequest(sourceCode string, level CompilationLevel) *request {
	return &request{
		sourceCode:       sourceCode,
		compilationLevel: level,
		outputFormat:     outputFormatText,
		outputInfo:       outputInfoCompiledCode,
	}
}

// fields are in the order the service documents them, js_code first.
func (r *request) fields() []formField {
	return []formField{
		{key: "js_code", value: r.sourceCode},
		{key: "compilation_level", value: string(r.compilationLevel)},
		{key: "output_format", value: r.outputFormat},
		{key: "output_info", value: r.outputInfo},
	}
}

// encode builds the form body by hand since url.Values.Encode sorts by key.
func (r *request) encode() string {
	var builder strings.Builder

	for i, field := range r.fields() {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(field.key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(field.value))
	}

	return builder.String()
}
