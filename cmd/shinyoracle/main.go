package main

import (
	"fmt"
	"os"

	"github.com/autom8ter/shinyoracle"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

type flags struct {
	config    string
	dataDir   string
	cases     string
	output    string
	workers   int
	preload   bool
	logLevel  string
	changedFn func(name string) bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "shinyoracle",
		Short:         "compute expected results of ShinyDB query-correctness cases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&f.config, "config", "c", "", "path to a yaml or json config file")
	cmd.PersistentFlags().StringVarP(&f.dataDir, "data-dir", "d", "", "directory holding the json collections")
	cmd.PersistentFlags().StringVar(&f.cases, "cases", "", "yaml or json case registry (defaults to the embedded cases)")
	cmd.PersistentFlags().StringVarP(&f.output, "output", "o", "", "path of the generated report")
	cmd.PersistentFlags().IntVarP(&f.workers, "workers", "w", 0, "number of cases evaluated concurrently")
	cmd.PersistentFlags().BoolVar(&f.preload, "preload", false, "load every sample collection before running, failing when one is missing")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.changedFn = func(name string) bool {
		return cmd.PersistentFlags().Changed(name)
	}
	cmd.AddCommand(initCmd(f), generateCmd(f), casesCmd(f), evalCmd(f))
	return cmd
}

// loadConfig loads the config file, if any, and applies flag overrides
func (f *flags) loadConfig() (shinyoracle.Config, error) {
	var cfg shinyoracle.Config
	if f.config != "" {
		loaded, err := shinyoracle.LoadConfigFile(f.config)
		if err != nil {
			return shinyoracle.Config{}, err
		}
		cfg = loaded
	}
	if f.changedFn("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if f.changedFn("cases") {
		cfg.CasesFile = f.cases
	}
	if f.changedFn("output") {
		cfg.Output = f.output
	}
	if f.changedFn("workers") {
		cfg.Workers = f.workers
	}
	if f.changedFn("preload") {
		cfg.Preload = f.preload
	}
	if f.changedFn("log-level") {
		cfg.LogLevel = f.logLevel
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return shinyoracle.Config{}, err
	}
	return cfg, nil
}

func loadCases(path string) ([]shinyoracle.Case, error) {
	if path == "" {
		return shinyoracle.DefaultCases(), nil
	}
	return shinyoracle.LoadCasesFile(path)
}

func newLogger(cfg shinyoracle.Config) (shinyoracle.Logger, error) {
	return shinyoracle.NewLogger(cfg.LogLevel, map[string]any{
		"run_id": ksuid.New().String(),
	})
}
