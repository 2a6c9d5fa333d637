package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raskyld/gitlab-components-docs/internal/catalog"
)

func TestDeref(t *testing.T) {
	var nilString *string
	var nilLiteral *catalog.Literal

	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "", deref(nilString))
	assert.Equal(t, "", deref(nilLiteral))
	assert.Equal(t, "text", deref(ptr("text")))
	assert.Equal(t, "3", deref(ptr(catalog.Literal{Value: "3", Tag: "!!int"})))
	assert.Equal(t, "42", deref(42))
}

func TestDefaultValue(t *testing.T) {
	var unset *string
	assert.Equal(t, "string", defaultValue("string", unset))
	assert.Equal(t, "string", defaultValue("string", ptr("")))
	assert.Equal(t, "boolean", defaultValue("string", ptr("boolean")))
}

func TestCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"main", "`main`"},
		{"", "`\"\"`"},
		{"a|b", "`a\\|b`"},
		{"echo `id`", "`` echo `id` ``"},
		{"two\nlines\n", "`two lines`"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, code(tt.in))
		})
	}
}

func TestCodeList(t *testing.T) {
	assert.Equal(t, "", codeList(nil))
	assert.Equal(t, "`a`, `b`", codeList([]string{"a", "b"}))
}

func TestTrimNewlineAndEscape(t *testing.T) {
	assert.Equal(t, "first second", trimNewline("first\nsecond\n"))
	assert.Equal(t, `a \| b`, escapePipes("a | b"))
}
