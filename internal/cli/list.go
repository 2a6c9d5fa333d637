package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raskyld/gitlab-components-docs/internal/catalog"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the entries of the catalog",
		Long:    "List every entry of the templates directory with its status and the number of inputs it declares.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.scan()
			if err != nil {
				return err
			}
			printCatalog(a.stdout, a.cfg.CatalogName, result)
			return nil
		},
	}
}

// printCatalog writes one aligned row per entry
func printCatalog(w io.Writer, title string, c *catalog.Catalog) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if c.Len() == 0 {
		fmt.Fprintln(w, detailStyle.Render("No entries found."))
		return
	}

	width := len("NAME")
	for _, name := range c.Names() {
		width = max(width, len(name))
	}
	width += 2

	fmt.Fprintln(w,
		headerStyle.Width(width).Render("NAME")+
			headerStyle.Width(10).Render("STATUS")+
			headerStyle.Render("INPUTS"))

	for _, entry := range c.Entries() {
		status, inputs := errorStyle.Width(10).Render("rejected"), detailStyle.Render("-")
		if entry.Outcome.IsLoaded() {
			status = successStyle.Width(10).Render("loaded")
			inputs = strconv.Itoa(len(entry.Outcome.Component.Spec.Inputs))
		}
		fmt.Fprintln(w, nameStyle.Width(width).Render(entry.Name)+status+inputs)
	}
}
