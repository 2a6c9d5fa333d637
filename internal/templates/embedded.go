package templates

import (
	"embed"
	"fmt"
)

//go:embed *.tmpl
var EmbeddedTemplates embed.FS

const (
	// Entrypoint renders the README then the optional footer
	Entrypoint = "entrypoint.md.tmpl"
	// Macros defines the named templates shared by every README template
	Macros = "macros.md.tmpl"
	// Readme is the built-in README, used when no override is found
	Readme = "README.md.tmpl"
)

// GetTemplate returns the content of a specific template
func GetTemplate(templateName string) (string, error) {
	content, err := EmbeddedTemplates.ReadFile(templateName)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", templateName, err)
	}
	return string(content), nil
}

// MustGetTemplate is like GetTemplate but panics when the template is missing.
// Built-in templates ship inside the binary, so a missing one is a broken build.
func MustGetTemplate(templateName string) string {
	content, err := GetTemplate(templateName)
	if err != nil {
		panic(err)
	}
	return content
}
