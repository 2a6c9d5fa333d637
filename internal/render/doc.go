// Package render turns a loaded catalog into its markdown documentation.
//
// Templates use text/template. The entrypoint and the inputs_table macro are
// built in; the README body can be overridden by a template file found next to
// the catalog, and falls back to a built-in default otherwise.
package render
