package main

import (
	"os"

	"github.com/autom8ter/shinyoracle"
	"github.com/spf13/cobra"
)

func generateCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "evaluate every case and write the expected results report",
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			ctx := cmd.Context()
			report, err := shinyoracle.New(cfg, nil, logger).Run(ctx, cases)
			if err != nil {
				return err
			}
			if err := report.WriteFile(cfg.Output); err != nil {
				logger.Error(ctx, "failed to write report", err, map[string]any{"output": cfg.Output})
				return err
			}
			return shinyoracle.WriteSummary(os.Stdout, report, cfg.Output)
		},
	}
}
