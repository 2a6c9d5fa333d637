package render

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raskyld/gitlab-components-docs/internal/catalog"
)

func ptr[T any](v T) *T {
	return &v
}

func testData() Data {
	return Data{
		CatalogName:        "My Catalog",
		CatalogDescription: "Reusable jobs.",
		Components: map[string]*catalog.Component{
			"lint": {Spec: catalog.Spec{Inputs: map[string]catalog.Input{}}},
			"build": {Spec: catalog.Spec{Inputs: map[string]catalog.Input{
				"stage": {
					Default:     ptr(catalog.Literal{Value: "test", Tag: "!!str"}),
					Description: ptr("The stage\nof the job\n"),
				},
				"env": {
					Type:    ptr("string"),
					Options: []string{"staging", "production"},
				},
			}}},
		},
	}
}

const wantBuiltin = "# My Catalog\n" +
	"\n" +
	"Reusable jobs.\n" +
	"\n" +
	"## Components\n" +
	"\n" +
	"[[_TOC_]]\n" +
	"\n" +
	"### build\n" +
	"\n" +
	"| Name | Type | Description | Default | Options |\n" +
	"| --- | --- | --- | --- | --- |\n" +
	"| `env` | `string` |  |  | `staging`, `production` |\n" +
	"| `stage` | `string` | The stage of the job | `test` |  |\n" +
	"\n" +
	"### lint\n" +
	"\n" +
	"This component has no inputs.\n"

func TestEngine_BuiltinReadme(t *testing.T) {
	engine := New(Options{Fs: afero.NewMemMapFs(), Dir: "/work", Pattern: "README.md.tmpl"})
	assert.Empty(t, engine.Source())

	out, err := engine.RenderBytes(testData())
	require.NoError(t, err)
	assert.Equal(t, wantBuiltin, string(out))
}

func TestEngine_Footer(t *testing.T) {
	engine := New(Options{})

	data := testData()
	data.FooterEnabled = true
	data.Version = "1.2.3"

	out, err := engine.RenderBytes(data)
	require.NoError(t, err)
	assert.Equal(t, wantBuiltin+
		"\n---\n\n"+
		"Generated with [raskyld/gitlab-components-docs](https://github.com/raskyld/gitlab-components-docs) :purple_heart:\n"+
		"\n"+
		"Version: `1.2.3`.\n", string(out))
}

func TestEngine_Deterministic(t *testing.T) {
	engine := New(Options{})

	first, err := engine.RenderBytes(testData())
	require.NoError(t, err)
	for range 10 {
		again, err := engine.RenderBytes(testData())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_Override(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work/docs", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/work/docs/b.md.tmpl", []byte("B\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/work/docs/a.md.tmpl", []byte(
		"{{ .CatalogName }}\n{{ range $name, $c := .Components }}{{ $name }}:{{ len $c.Spec.Inputs }}\n{{ end }}",
	), 0o644))

	engine := New(Options{Fs: fsys, Dir: "/work", Pattern: "docs/*.md.tmpl"})
	assert.Equal(t, filepath.Join("/work", "docs", "a.md.tmpl"), engine.Source())

	out, err := engine.RenderBytes(testData())
	require.NoError(t, err)
	assert.Equal(t, "My Catalog\nbuild:2\nlint:0\n", string(out))
}

func TestEngine_OverrideCanUseMacros(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/work/README.md.tmpl", []byte(
		`{{ template "inputs_table" (index .Components "lint").Spec.Inputs }}`,
	), 0o644))

	engine := New(Options{Fs: fsys, Dir: "/work", Pattern: "README.md.tmpl"})
	out, err := engine.RenderBytes(testData())
	require.NoError(t, err)
	assert.Equal(t, "This component has no inputs.\n", string(out))
}

func TestEngine_BrokenOverrideFallsBack(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/work/README.md.tmpl", []byte("{{ .Unclosed"), 0o644))

	engine := New(Options{Fs: fsys, Dir: "/work", Pattern: "README.md.tmpl"})
	assert.Empty(t, engine.Source())

	out, err := engine.RenderBytes(testData())
	require.NoError(t, err)
	assert.Equal(t, wantBuiltin, string(out))
}

func TestEngine_OverrideExecutionError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/work/README.md.tmpl", []byte("{{ .NoSuchField }}"), 0o644))

	engine := New(Options{Fs: fsys, Dir: "/work", Pattern: "README.md.tmpl"})
	_, err := engine.RenderBytes(testData())
	assert.Error(t, err)
}

func TestComponents_KeepsLoadedOnly(t *testing.T) {
	c := catalog.NewCatalog()
	c.Add("ok", catalog.Loaded(&catalog.Component{}))
	c.Add("broken", catalog.Rejected([]string{"document 1: missing field `spec`"}))

	components := Components(c)
	assert.Len(t, components, 1)
	assert.Contains(t, components, "ok")
}
