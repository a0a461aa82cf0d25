package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/autom8ter/shinyoracle"
	"github.com/autom8ter/shinyoracle/testutil"
)

func execute(args ...string) error {
	cmd := rootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestCLI(t *testing.T) {
	project := t.TempDir()
	dataDir := t.TempDir()
	collections := testutil.Collections()
	assert.NoError(t, testutil.WriteCollections(dataDir, collections))

	t.Run("init", func(t *testing.T) {
		assert.NoError(t, execute("init", "--path", project, "--workers", "2"))
		cfg, err := shinyoracle.LoadConfigFile(filepath.Join(project, "shinyoracle.yaml"))
		assert.NoError(t, err)
		assert.Equal(t, "src/json", cfg.DataDir)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, filepath.Join(project, "cases.yaml"), cfg.CasesFile)
		assert.Equal(t, "vendorproduct.json", cfg.Collections["vendorproducts"])
		cases, err := shinyoracle.LoadCasesFile(cfg.CasesFile)
		assert.NoError(t, err)
		assert.Len(t, cases, 50)
	})
	t.Run("generate", func(t *testing.T) {
		output := filepath.Join(project, "expected.json")
		assert.NoError(t, execute(
			"generate",
			"--config", filepath.Join(project, "shinyoracle.yaml"),
			"--data-dir", dataDir,
			"--output", output,
			"--log-level", "error",
		))
		bits, err := os.ReadFile(output)
		assert.NoError(t, err)
		assert.Equal(t, int64(len(collections["orders"])), gjson.GetBytes(bits, `1\.1.value`).Int())
		assert.Equal(t, "order", gjson.GetBytes(bits, `6\.1.type`).String())
	})
	t.Run("generate with a missing collection", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "expected.json")
		assert.Error(t, execute("generate", "--data-dir", t.TempDir(), "--output", output, "--log-level", "error"))
		_, err := os.Stat(output)
		assert.True(t, os.IsNotExist(err))
	})
	t.Run("generate requires a data dir", func(t *testing.T) {
		assert.Error(t, execute("generate"))
	})
	t.Run("init from a json registry", func(t *testing.T) {
		registry := filepath.Join(t.TempDir(), "cases.json")
		assert.NoError(t, os.WriteFile(registry, []byte(`[
			{"id": "1.10", "collection": "orders", "type": "count", "where": [{"field": "EmployeeID", "op": "eq", "value": 289}]},
			{"id": "9.1", "collection": "vendors", "type": "group_aggregate", "group_by": ["CreditRating"], "aggregates": [{"as": "n", "function": "count"}]}
		]`), 0644))
		path := t.TempDir()
		assert.NoError(t, execute("init", "--path", path, "--cases", registry, "--preload"))
		bits, err := os.ReadFile(filepath.Join(path, "cases.yaml"))
		assert.NoError(t, err)
		cases, err := shinyoracle.LoadCases(bits)
		assert.NoError(t, err)
		assert.Len(t, cases, 2)
		assert.Equal(t, "1.10", cases[0].ID)
		assert.Equal(t, "n", cases[1].Aggregates[0].Name())
		cfg, err := shinyoracle.LoadConfigFile(filepath.Join(path, "shinyoracle.yaml"))
		assert.NoError(t, err)
		assert.True(t, cfg.Preload)
	})
	t.Run("generate with preload", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "expected.json")
		assert.NoError(t, execute("generate", "--data-dir", dataDir, "--output", output, "--preload", "--log-level", "error"))
		assert.NoError(t, os.Remove(filepath.Join(dataDir, "productsubcategories.json")))
		assert.Error(t, execute("generate", "--data-dir", dataDir, "--output", output, "--preload", "--log-level", "error"))
		assert.NoError(t, execute("generate", "--data-dir", dataDir, "--output", output, "--log-level", "error"))
	})
	t.Run("cases", func(t *testing.T) {
		assert.NoError(t, execute("cases"))
		assert.NoError(t, execute("cases", "--config", filepath.Join(project, "shinyoracle.yaml")))
	})
	t.Run("eval", func(t *testing.T) {
		assert.NoError(t, execute("eval", "9.4", "--data-dir", dataDir, "--log-level", "error"))
		assert.Error(t, execute("eval", "99.1", "--data-dir", dataDir, "--log-level", "error"))
		assert.Error(t, execute("eval", "--data-dir", dataDir))
	})
}
