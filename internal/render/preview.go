package render

import (
	"github.com/charmbracelet/glamour"
)

// PreviewOptions configures the terminal preview
type PreviewOptions struct {
	// Style is a glamour standard style ("dark", "light", "notty"...).
	// Empty or "auto" picks one from the terminal.
	Style string
	// Width is the word wrap width (0 for glamour's default)
	Width int
}

// Preview renders markdown for display in a terminal
func Preview(markdown []byte, opts PreviewOptions) (string, error) {
	var rendererOpts []glamour.TermRendererOption
	if opts.Style == "" || opts.Style == "auto" {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	}

	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", err
	}

	return renderer.Render(string(markdown))
}
