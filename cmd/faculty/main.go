package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kfs-ai/faculty-web/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "faculty",
		Short: "Faculty of AI website",
		Long: `Bilingual (English/Arabic) website of the Faculty of Artificial
Intelligence, Kafrelsheikh University.`,
		Version:       version.GetInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newRoutesCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo().Full())
		},
	})
	return root
}
