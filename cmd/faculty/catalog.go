package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kfs-ai/faculty-web/internal/i18n"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the translation catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report keys missing from either language",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := i18n.LoadCatalog(i18n.English)
			if err != nil {
				return err
			}

			missing := catalog.MissingKeys()
			out := cmd.OutOrStdout()
			total := 0
			for _, lang := range i18n.Languages {
				keys := missing[lang]
				total += len(keys)
				fmt.Fprintf(out, "%s (%s): %d keys, %d missing\n",
					lang, lang.Config().Name, len(catalog.Keys(lang)), len(keys))
				if len(keys) > 0 {
					fmt.Fprintf(out, "  %s\n", strings.Join(keys, "\n  "))
				}
			}

			if total > 0 {
				return fmt.Errorf("%d translation keys missing", total)
			}
			return nil
		},
	})
	return cmd
}
