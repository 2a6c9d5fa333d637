package catalog

import (
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Component represents the header document of a component template
type Component struct {
	Spec Spec `yaml:"spec"`
}

// Spec contains the inputs declared by a component
type Spec struct {
	Inputs map[string]Input `yaml:"inputs"`
}

// Input defines a single input of a component. Every field is optional.
type Input struct {
	Default     *Literal `yaml:"default"`
	Description *string  `yaml:"description"`
	Options     []string `yaml:"options"`
	Type        *string  `yaml:"type"`
}

// InputNames returns the input names in ascending order
func (s Spec) InputNames() []string {
	return slices.Sorted(maps.Keys(s.Inputs))
}

// Literal is a scalar input default: its source text and its resolved YAML
// tag (!!str, !!bool, !!int, !!float, ...). The tag tells a quoted "true"
// from the boolean true.
type Literal struct {
	Value string
	Tag   string
}

// UnmarshalYAML implements yaml.Unmarshaler. Aliases are resolved to the
// scalar they point to; sequences and mappings are rejected.
func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return l.UnmarshalYAML(node.Alias)
	}

	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{fmt.Sprintf(
			"line %d: cannot unmarshal %s into a default value, expected a scalar", node.Line, node.ShortTag())}}
	}

	*l = Literal{Value: node.Value, Tag: node.ShortTag()}
	return nil
}

// String returns the literal text
func (l Literal) String() string {
	return l.Value
}
