// Package catalog loads the GitLab CI/CD components of a catalog.
//
// A catalog is a directory (conventionally templates/) whose immediate
// children are components: either a YAML file, or a directory holding a
// template.yml. Each component file may contain several YAML documents; the
// first one declaring spec.inputs is the component header.
//
// Loading never fails because of a single component. Unreadable entries are
// logged and left out, unparsable ones end up in the Catalog as rejected
// outcomes carrying one diagnostic per document that did not match.
package catalog
