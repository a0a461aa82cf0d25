package shinyoracle

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/internal/safe"
	"github.com/tidwall/pretty"
)

var reportFormat = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: true,
}

// Report maps case ids to their expected results. It is safe for concurrent use.
type Report struct {
	results *safe.Map[Result]
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{results: safe.NewMap[Result](nil)}
}

// Set sets the result of the case
func (r *Report) Set(id string, result Result) {
	r.results.Set(id, result)
}

// Get returns the result of the case
func (r *Report) Get(id string) (Result, bool) {
	return r.results.Get(id)
}

// Len returns the number of results
func (r *Report) Len() int {
	return r.results.Len()
}

// IDs returns the case ids in numeric dotted order
func (r *Report) IDs() []string {
	ids := r.results.Keys()
	SortIDs(ids)
	return ids
}

// MarshalJSON encodes the report as key sorted, two space indented json
func (r *Report) MarshalJSON() ([]byte, error) {
	bits, err := json.Marshal(r.results.AsMap())
	if err != nil {
		return nil, errors.Wrap(err, errors.Internal, "failed to encode report")
	}
	return pretty.PrettyOptions(bits, reportFormat), nil
}

// WriteTo writes the encoded report to w
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bits, err := r.MarshalJSON()
	if err != nil {
		return 0, err
	}
	return io.Copy(w, bytes.NewReader(bits))
}

// WriteFile writes the encoded report to path. Nothing is written if the report cannot be encoded.
func (r *Report) WriteFile(path string) error {
	bits, err := r.MarshalJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, bits, 0644); err != nil {
		return errors.Wrap(err, errors.Internal, "failed to write report: %s", path)
	}
	return nil
}
