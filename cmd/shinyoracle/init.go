package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/autom8ter/shinyoracle"
	"github.com/autom8ter/shinyoracle/util"
	"github.com/spf13/cobra"
)

const configTemplate = `# shinyoracle config
data_dir: {{ .dataDir | default "src/json" | quote }}
cases_file: {{ .casesFile | quote }}
output: {{ .output | default .defaultOutput | quote }}
workers: {{ .workers | default .defaultWorkers }}
preload: {{ .preload }}
log_level: {{ .logLevel | default .defaultLogLevel | lower | quote }}
{{- if .collections }}
collections:
{{- range $name, $file := .collections }}
  {{ $name }}: {{ $file | quote }}
{{- end }}
{{- end }}
`

func initCmd(fl *flags) *cobra.Command {
	var projectPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "create a new shinyoracle project with a config file and an editable case registry",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := os.MkdirAll(projectPath, 0755); err != nil {
				return err
			}
			casesFile := filepath.Join(projectPath, "cases.yaml")
			registry, err := projectRegistry(fl.cases)
			if err != nil {
				return err
			}
			if err := os.WriteFile(casesFile, registry, 0644); err != nil {
				return err
			}
			tmpl, err := template.New("config").Funcs(sprig.TxtFuncMap()).Parse(configTemplate)
			if err != nil {
				return err
			}
			f, err := os.Create(filepath.Join(projectPath, "shinyoracle.yaml"))
			if err != nil {
				return err
			}
			defer f.Close()
			if err := tmpl.Execute(f, map[string]any{
				"dataDir":         fl.dataDir,
				"casesFile":       casesFile,
				"output":          fl.output,
				"defaultOutput":   filepath.Join(projectPath, shinyoracle.DefaultOutput),
				"workers":         fl.workers,
				"defaultWorkers":  shinyoracle.DefaultWorkers,
				"preload":         fl.preload,
				"logLevel":        fl.logLevel,
				"defaultLogLevel": shinyoracle.DefaultLogLevel,
				"collections":     shinyoracle.DefaultCollectionFiles,
			}); err != nil {
				return err
			}
			fmt.Printf("new project created: %v\n", projectPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&projectPath, "path", "p", ".", "path to project directory")
	return cmd
}

// projectRegistry returns the yaml registry of a new project. A --cases registry is validated and
// rewritten as yaml, otherwise the embedded registry is used.
func projectRegistry(path string) ([]byte, error) {
	if path == "" {
		return shinyoracle.DefaultRegistry(), nil
	}
	cases, err := shinyoracle.LoadCasesFile(path)
	if err != nil {
		return nil, err
	}
	bits, err := json.Marshal(cases)
	if err != nil {
		return nil, err
	}
	return util.JSONToYAML(bits)
}
