package shinyoracle

import (
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/model"
	"github.com/samber/lo"
)

const summaryTemplate = `Generated {{ len .Entries }} test expectations → {{ .Path }}
{{- range .Entries }}
  {{ .ID }}: {{ if eq .Type "count" "doc_count" }}{{ .Type }} = {{ .Result.Count }}
{{- else if eq .Type "aggregate" }}aggregate = {{ .Result.Aggregate | toJson }}
{{- else if eq .Type "group_aggregate" }}group_aggregate ({{ .Result.Groups.Len }} groups)
{{- else if eq .Type "order" }}order = [{{ .Values | join ", " }}]
{{- end }}
{{- end }}
`

var summary = template.Must(template.New("summary").Funcs(sprig.TxtFuncMap()).Parse(summaryTemplate))

type summaryEntry struct {
	ID     string
	Type   string
	Result Result
	Values []string
}

// WriteSummary writes a human readable summary of the report, one line per case in numeric id order
func WriteSummary(w io.Writer, report *Report, path string) error {
	entries := lo.Map(report.IDs(), func(id string, _ int) summaryEntry {
		result, _ := report.Get(id)
		return summaryEntry{
			ID:     id,
			Type:   string(result.Type),
			Result: result,
			Values: lo.Map(result.Values, func(v model.Value, _ int) string {
				return v.String()
			}),
		}
	})
	if err := summary.Execute(w, map[string]any{
		"Entries": entries,
		"Path":    path,
	}); err != nil {
		return errors.Wrap(err, errors.Internal, "failed to write summary")
	}
	return nil
}
