package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskyld/gitlab-components-docs/internal/render"
)

func newPreviewCmd(a *app) *cobra.Command {
	var opts render.PreviewOptions

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the README in the terminal",
		Long:  "Render the README without writing it and display it formatted for the terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.renderReadme()
			if err != nil {
				return err
			}

			out, err := render.Preview(content, opts)
			if err != nil {
				return fmt.Errorf("failed to render preview: %w", err)
			}

			_, err = fmt.Fprint(a.stdout, out)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Style, "style", "auto", "Glamour style: auto, dark, light, notty...")
	cmd.Flags().IntVar(&opts.Width, "width", 100, "Word wrap width")

	return cmd
}
