package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/autom8ter/shinyoracle"
	"github.com/autom8ter/shinyoracle/util"
	"github.com/spf13/cobra"
)

func casesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "list the cases of the registry",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := f.cases
			if path == "" && f.config != "" {
				cfg, err := shinyoracle.LoadConfigFile(f.config)
				if err != nil {
					return err
				}
				path = cfg.CasesFile
			}
			cases, err := loadCases(path)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tCOLLECTION\tWHERE\tDESCRIPTION")
			for _, c := range cases {
				where := "-"
				if len(c.Where) > 0 {
					where = util.JSONString(c.Where)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Type, c.Collection, where, c.Description)
			}
			return w.Flush()
		},
	}
}
