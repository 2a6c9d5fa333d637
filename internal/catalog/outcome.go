package catalog

// Outcome is the result of loading one catalog entry: either the component
// was loaded, or it was rejected and Diagnostics explains why.
type Outcome struct {
	// Component is set if and only if the entry was loaded
	Component *Component
	// Diagnostics holds one message per document that failed to parse
	Diagnostics []string
	// Source is the file the outcome was read from, when loaded from disk
	Source string
}

// Loaded returns the outcome of a successfully parsed component
func Loaded(c *Component) Outcome {
	return Outcome{Component: c}
}

// Rejected returns the outcome of an entry without any valid document
func Rejected(diagnostics []string) Outcome {
	if diagnostics == nil {
		diagnostics = []string{}
	}
	return Outcome{Diagnostics: diagnostics}
}

// IsLoaded reports whether the entry holds a component
func (o Outcome) IsLoaded() bool {
	return o.Component != nil
}
