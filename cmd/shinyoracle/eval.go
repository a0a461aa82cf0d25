package main

import (
	"fmt"

	"github.com/autom8ter/shinyoracle"
	"github.com/autom8ter/shinyoracle/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

func evalCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <id>",
		Short: "evaluate a single case and print its expected result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()
			cases, err := loadCases(cfg.CasesFile)
			if err != nil {
				return err
			}
			for _, c := range cases {
				if c.ID != args[0] {
					continue
				}
				result, err := shinyoracle.New(cfg, nil, logger).Evaluate(cmd.Context(), c)
				if err != nil {
					return err
				}
				bits, err := result.MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Print(string(pretty.Pretty(bits)))
				return nil
			}
			return errors.New(errors.InvalidArgument, "unknown case: %s", args[0])
		},
	}
}
