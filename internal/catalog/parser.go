package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errMissingSpec   = errors.New("missing field `spec`")
	errMissingInputs = errors.New("missing field `spec.inputs`")
)

// header mirrors Component with optional fields so that absent keys can be
// told apart from empty ones.
type header struct {
	Spec *Spec `yaml:"spec"`
}

// document is one candidate document of a YAML stream
type document struct {
	// line is the 0-based line of the stream the document starts at
	line int
	text string
}

// Parse scans the YAML stream in content and returns the first document
// shaped like a component header. Documents that do not match, including
// documents with syntax errors, are recorded as diagnostics; documents after
// the first match are never decoded.
func Parse(content string) Outcome {
	diagnostics := make([]string, 0)

	n := 0
	for _, doc := range splitDocuments(content) {
		// Pad with the preceding lines so error positions match the stream
		var node yaml.Node
		err := yaml.Unmarshal([]byte(strings.Repeat("\n", doc.line)+doc.text), &node)
		if err == nil && node.Kind == 0 {
			// Only blank lines, comments or directives
			continue
		}

		n++
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("document %d: %v", n, err))
			continue
		}

		component, err := decodeComponent(&node)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("document %d: %v", n, err))
			continue
		}
		return Loaded(component)
	}

	return Rejected(diagnostics)
}

// splitDocuments cuts a YAML stream on the document markers found at the
// start of a line. YAML forbids these markers inside a document, so a syntax
// error in one document never leaks into its neighbours.
func splitDocuments(content string) []document {
	var (
		docs       []document
		current    strings.Builder
		start      int
		hasContent bool
	)

	flush := func(next int) {
		if current.Len() > 0 {
			docs = append(docs, document{line: start, text: current.String()})
		}
		current.Reset()
		start = next
		hasContent = false
	}

	for i, line := range strings.SplitAfter(content, "\n") {
		switch {
		case isMarker(line, "---"):
			// A start marker following directives or comments opens the
			// document they belong to
			if hasContent {
				flush(i)
			}
			current.WriteString(line)
			hasContent = true

		case isMarker(line, "..."):
			current.WriteString(line)
			flush(i + 1)

		default:
			current.WriteString(line)
			if trimmed := strings.TrimSpace(line); trimmed != "" &&
				!strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(line, "%") {
				hasContent = true
			}
		}
	}
	flush(0)

	return docs
}

// isMarker reports whether line starts with the document marker
func isMarker(line, marker string) bool {
	line = strings.TrimRight(line, "\r\n")
	return line == marker ||
		strings.HasPrefix(line, marker+" ") ||
		strings.HasPrefix(line, marker+"\t")
}

// decodeComponent decodes a single document into a Component
func decodeComponent(node *yaml.Node) (*Component, error) {
	var doc header
	if err := node.Decode(&doc); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, errors.New(strings.Join(typeErr.Errors, "; "))
		}
		return nil, err
	}

	if doc.Spec == nil {
		return nil, errMissingSpec
	}
	if doc.Spec.Inputs == nil {
		return nil, errMissingInputs
	}

	return &Component{Spec: *doc.Spec}, nil
}
