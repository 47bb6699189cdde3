package main

import (
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kfs-ai/faculty-web/internal/routing"
)

func newRoutesCmd() *cobra.Command {
	var (
		file   string
		method string
	)

	loadTable := func() (*routing.Table, error) {
		if file == "" {
			return routing.DefaultTable()
		}
		return routing.LoadTable(file)
	}

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table in match order",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "route table %s\n", table.Name())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tMETHOD\tPATH\tHANDLER\tDESCRIPTION")
			for i, r := range table.Routes() {
				m := r.GetMethod()
				if r.IsCatchAll() {
					m = "ANY"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, m, r.Path, r.Handler, r.Description)
			}
			return w.Flush()
		},
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "route table YAML to inspect instead of the built-in one")

	match := &cobra.Command{
		Use:   "match <path>",
		Short: "Show which page a path resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}
			r := table.Match(method, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", method, args[0], r.Handler)
			return nil
		},
	}
	match.Flags().StringVarP(&method, "method", "X", http.MethodGet, "request method")

	cmd.AddCommand(match)
	return cmd
}
