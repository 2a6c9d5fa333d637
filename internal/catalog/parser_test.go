package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestParse_SingleDocument(t *testing.T) {
	content := `
spec:
  inputs:
    stage:
      default: test
      description: The stage to run the job in
      type: string
    environment:
      options: [staging, production]
`
	outcome := Parse(content)
	require.True(t, outcome.IsLoaded())
	assert.Empty(t, outcome.Diagnostics)

	inputs := outcome.Component.Spec.Inputs
	require.Len(t, inputs, 2)
	assert.Equal(t, Input{
		Default:     ptr(Literal{Value: "test", Tag: "!!str"}),
		Description: ptr("The stage to run the job in"),
		Type:        ptr("string"),
	}, inputs["stage"])
	assert.Equal(t, Input{Options: []string{"staging", "production"}}, inputs["environment"])
	assert.Equal(t, []string{"environment", "stage"}, outcome.Component.Spec.InputNames())
}

func TestParse_FirstMatchWins(t *testing.T) {
	content := `
spec: not-a-mapping
---
spec:
  inputs:
    first:
      default: one
---
spec:
  inputs:
    second:
      default: two
`
	outcome := Parse(content)
	require.True(t, outcome.IsLoaded())
	assert.Contains(t, outcome.Component.Spec.Inputs, "first")
	assert.NotContains(t, outcome.Component.Spec.Inputs, "second")
	// Diagnostics are only kept on rejected outcomes
	assert.Empty(t, outcome.Diagnostics)
}

func TestParse_AllDocumentsRejected(t *testing.T) {
	content := `
stages: [build, test]
---
spec:
  inputs: [not, a, mapping]
`
	outcome := Parse(content)
	assert.False(t, outcome.IsLoaded())
	require.Len(t, outcome.Diagnostics, 2)
	assert.Contains(t, outcome.Diagnostics[0], "document 1")
	assert.Contains(t, outcome.Diagnostics[0], "`spec`")
	assert.Contains(t, outcome.Diagnostics[1], "document 2")
	assert.Contains(t, outcome.Diagnostics[1], "cannot unmarshal")
}

func TestParse_EmptyInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty string", ""},
		{"blank lines", "\n\n"},
		{"comments only", "# nothing to see here\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Parse(tt.content)
			assert.False(t, outcome.IsLoaded())
			assert.NotNil(t, outcome.Diagnostics)
			assert.Empty(t, outcome.Diagnostics)
		})
	}
}

func TestParse_UnknownFieldsTolerated(t *testing.T) {
	content := `
foo: bar
spec:
  unknown: true
  inputs:
    name:
      regex: ^[a-z]+$
      default: app
`
	outcome := Parse(content)
	require.True(t, outcome.IsLoaded())
	assert.Equal(t, ptr(Literal{Value: "app", Tag: "!!str"}), outcome.Component.Spec.Inputs["name"].Default)
}

func TestParse_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no spec", "include: other.yml\n", "missing field `spec`"},
		{"empty spec", "spec: {}\n", "missing field `spec.inputs`"},
		{"null inputs", "spec:\n  inputs:\n", "missing field `spec.inputs`"},
		{"scalar document", "hello\n", "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Parse(tt.content)
			assert.False(t, outcome.IsLoaded())
			require.Len(t, outcome.Diagnostics, 1)
			assert.Contains(t, outcome.Diagnostics[0], tt.want)
		})
	}
}

func TestParse_EmptyInputsIsLoaded(t *testing.T) {
	outcome := Parse("spec:\n  inputs: {}\n")
	require.True(t, outcome.IsLoaded())
	assert.Empty(t, outcome.Component.Spec.Inputs)
}

func TestParse_SyntaxErrorStaysInItsDocument(t *testing.T) {
	content := `
spec:
  inputs:
    a: [unclosed
---
spec:
  inputs: {}
`
	outcome := Parse(content)
	require.True(t, outcome.IsLoaded())
	assert.Empty(t, outcome.Component.Spec.Inputs)
}

func TestParse_LaterSyntaxErrorDoesNotHideMatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"tab", "spec: {inputs: {}}\n---\n\tbad: [\n"},
		{"reserved indicator", "spec: {inputs: {}}\n---\n@bad\n"},
		{"backtick", "spec: {inputs: {}}\n---\n`bad`\n"},
		{"document end marker", "spec: {inputs: {}}\n...\n@bad\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Parse(tt.content)
			assert.True(t, outcome.IsLoaded())
		})
	}
}

func TestParse_OneDiagnosticPerDocument(t *testing.T) {
	outcome := Parse("a: b\n---\n@bad\n")
	assert.False(t, outcome.IsLoaded())
	require.Len(t, outcome.Diagnostics, 2)
	assert.Contains(t, outcome.Diagnostics[0], "document 1: missing field `spec`")
	assert.Contains(t, outcome.Diagnostics[1], "document 2: ")
	// Positions refer to the whole stream
	assert.Contains(t, outcome.Diagnostics[1], "line 3")
}

func TestSplitDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []document
	}{
		{"single", "a: 1\n", []document{{0, "a: 1\n"}}},
		{
			"leading marker and comments",
			"# head\n---\na: 1\n---\nb: 2\n",
			[]document{{0, "# head\n---\na: 1\n"}, {3, "---\nb: 2\n"}},
		},
		{
			"end marker",
			"a: 1\n...\nb: 2\n",
			[]document{{0, "a: 1\n...\n"}, {2, "b: 2\n"}},
		},
		{
			"marker with content",
			"a: 1\n--- {b: 2}\n",
			[]document{{0, "a: 1\n"}, {1, "--- {b: 2}\n"}},
		},
		{
			"indented dashes are content",
			"a: |\n  ---\n  text\n",
			[]document{{0, "a: |\n  ---\n  text\n"}},
		},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitDocuments(tt.content))
		})
	}
}

func TestParse_DefaultLiterals(t *testing.T) {
	content := `
spec:
  inputs:
    enabled:
      type: boolean
      default: false
    retries:
      type: number
      default: 3
    quoted:
      type: boolean
      default: "true"
    empty:
      default: ""
    unset:
      description: no default
`
	outcome := Parse(content)
	require.True(t, outcome.IsLoaded())

	inputs := outcome.Component.Spec.Inputs
	assert.Equal(t, &Literal{Value: "false", Tag: "!!bool"}, inputs["enabled"].Default)
	assert.Equal(t, &Literal{Value: "3", Tag: "!!int"}, inputs["retries"].Default)
	assert.Equal(t, &Literal{Value: "true", Tag: "!!str"}, inputs["quoted"].Default)
	require.NotNil(t, inputs["empty"].Default)
	assert.Equal(t, "", inputs["empty"].Default.String())
	assert.Nil(t, inputs["unset"].Default)
}

func TestParse_CollectionDefaultRejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"sequence", "spec:\n  inputs:\n    tags:\n      default: [x, y]\n"},
		{"mapping", "spec:\n  inputs:\n    vars:\n      default: {k: v}\n"},
		{"alias to sequence", "x: &v [1, 2]\nspec:\n  inputs:\n    a:\n      default: *v\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Parse(tt.content)
			assert.False(t, outcome.IsLoaded())
			require.Len(t, outcome.Diagnostics, 1)
			assert.Contains(t, outcome.Diagnostics[0], "expected a scalar")
		})
	}
}

func TestParse_AliasDefaultResolved(t *testing.T) {
	content := `
x: &stage build
spec:
  inputs:
    stage:
      default: *stage
`
	outcome := Parse(content)
	require.True(t, outcome.IsLoaded())
	assert.Equal(t, &Literal{Value: "build", Tag: "!!str"}, outcome.Component.Spec.Inputs["stage"].Default)
}
