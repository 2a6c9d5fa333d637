package render

import (
	"fmt"
	"reflect"
	"strings"
	"text/template"
)

// FuncMap returns the functions available to every README template
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"default":     defaultValue,
		"deref":       deref,
		"trimNewline": trimNewline,
		"escapePipes": escapePipes,
		"code":        code,
		"codeList":    codeList,
		"join":        strings.Join,
	}
}

// deref returns the text behind strings, fmt.Stringer values and pointers to
// them. nil pointers yield an empty string.
func deref(value any) string {
	if value == nil {
		return ""
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

// defaultValue returns fallback when value is nil or empty
func defaultValue(fallback string, value any) string {
	if s := deref(value); s != "" {
		return s
	}
	return fallback
}

// trimNewline turns multi-line text into a single line
func trimNewline(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", " ")
}

// escapePipes keeps text from breaking out of a markdown table cell
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// code wraps s in a markdown code span
func code(s string) string {
	if s == "" {
		return "`\"\"`"
	}
	s = escapePipes(trimNewline(s))
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

func codeList(values []string) string {
	spans := make([]string, 0, len(values))
	for _, v := range values {
		spans = append(spans, code(v))
	}
	return strings.Join(spans, ", ")
}
