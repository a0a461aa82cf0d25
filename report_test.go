package shinyoracle_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/autom8ter/shinyoracle"
	"github.com/autom8ter/shinyoracle/model"
)

func newTestReport() *shinyoracle.Report {
	report := shinyoracle.NewReport()
	report.Set("1.10", shinyoracle.Result{Type: shinyoracle.ResultTypeCount, Count: 7})
	report.Set("1.2", shinyoracle.Result{Type: shinyoracle.ResultTypeCount, Count: 19185})
	report.Set("10.1", shinyoracle.Result{Type: shinyoracle.ResultTypeDocCount, Count: 1})
	report.Set("6.3", shinyoracle.Result{
		Type:   shinyoracle.ResultTypeOrder,
		Field:  "EmployeeID",
		Values: []model.Value{model.Int(259), model.Int(260), model.Int(261)},
	})
	report.Set("8.3", shinyoracle.Result{
		Type:      shinyoracle.ResultTypeAggregate,
		Aggregate: model.AggregateResult{"min_total": model.Float(1.5185)},
	})
	return report
}

func TestReport(t *testing.T) {
	report := newTestReport()
	t.Run("ids", func(t *testing.T) {
		assert.Equal(t, 5, report.Len())
		assert.Equal(t, []string{"1.2", "1.10", "6.3", "8.3", "10.1"}, report.IDs())
	})
	t.Run("get", func(t *testing.T) {
		r, ok := report.Get("1.2")
		assert.True(t, ok)
		assert.Equal(t, 19185, r.Count)
		_, ok = report.Get("2.1")
		assert.False(t, ok)
	})
	t.Run("json", func(t *testing.T) {
		bits, err := report.MarshalJSON()
		assert.NoError(t, err)
		assert.True(t, gjson.ValidBytes(bits))
		assert.Equal(t, int64(19185), gjson.GetBytes(bits, `1\.2.value`).Int())
		assert.Equal(t, "EmployeeID", gjson.GetBytes(bits, `6\.3.field`).String())
		assert.Equal(t, 1.5185, gjson.GetBytes(bits, `8\.3.value.min_total`).Float())
		// keys are sorted and indented by two spaces
		expected := `{
  "1.10": {
    "type": "count",
    "value": 7
  },
  "1.2": {
    "type": "count",
    "value": 19185
  },
  "10.1": {
    "type": "doc_count",
    "value": 1
  },
  "6.3": {
    "field": "EmployeeID",
    "type": "order",
    "values": [
      259,
      260,
      261
    ]
  },
  "8.3": {
    "type": "aggregate",
    "value": {
      "min_total": 1.5185
    }
  }
}
`
		assert.Equal(t, expected, string(bits))
	})
	t.Run("write", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		n, err := report.WriteTo(buf)
		assert.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)

		path := filepath.Join(t.TempDir(), "expected.json")
		assert.NoError(t, report.WriteFile(path))
		bits, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, buf.String(), string(bits))
	})
	t.Run("unencodable", func(t *testing.T) {
		r := shinyoracle.NewReport()
		r.Set("1.1", shinyoracle.Result{Type: "histogram"})
		path := filepath.Join(t.TempDir(), "expected.json")
		assert.Error(t, r.WriteFile(path))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}
