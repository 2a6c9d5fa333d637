package render

import "github.com/raskyld/gitlab-components-docs/internal/catalog"

// Data holds the values available to README templates
type Data struct {
	CatalogName        string
	CatalogDescription string
	// Components holds the loaded components by name. Templates ranging over
	// it visit components in name order.
	Components    map[string]*catalog.Component
	FooterEnabled bool
	Version       string
}

// Components returns the loaded components of c. Rejected entries are left out.
func Components(c *catalog.Catalog) map[string]*catalog.Component {
	components := make(map[string]*catalog.Component)
	for _, entry := range c.Entries() {
		if entry.Outcome.IsLoaded() {
			components[entry.Name] = entry.Outcome.Component
		}
	}
	return components
}
