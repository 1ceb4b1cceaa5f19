package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vk/aplab/internal/catalog"
)

func newTopicsCommand(outW io.Writer) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Print the topic catalog in navigation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Default(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load topic catalog: %w", err)
			}
			return printCatalog(outW, cat, lang)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "Locale for display names.")
	return cmd
}

func printCatalog(w io.Writer, cat *catalog.Catalog, lang string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cat.Categories {
		fmt.Fprintf(tw, "%s\t\t\n", c.Name(lang))
		for _, t := range c.Topics {
			fmt.Fprintf(tw, "  %s\t%s\t\n", t.Name(lang), t.Locator)
		}
	}
	return tw.Flush()
}
