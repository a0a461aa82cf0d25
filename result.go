package shinyoracle

import (
	"encoding/json"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/model"
	"github.com/tidwall/sjson"
)

// Result is the expected result of a single case
type Result struct {
	// Type is the shape of the result
	Type ResultType
	// Count is the document count of count and doc_count results
	Count int
	// Field is the sort field of order results
	Field string
	// Values are the sort field values of order results
	Values []model.Value
	// Aggregate holds the aggregates of aggregate results
	Aggregate model.AggregateResult
	// Groups holds the per group aggregates of group_aggregate results
	Groups model.GroupAggregateResult
}

// MarshalJSON encodes the result in the shape of its type
func (r Result) MarshalJSON() ([]byte, error) {
	bits, err := sjson.SetBytes([]byte(`{}`), "type", string(r.Type))
	if err != nil {
		return nil, err
	}
	switch r.Type {
	case ResultTypeCount, ResultTypeDocCount:
		return sjson.SetBytes(bits, "value", r.Count)
	case ResultTypeOrder:
		values := r.Values
		if values == nil {
			values = []model.Value{}
		}
		raw, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		if bits, err = sjson.SetBytes(bits, "field", r.Field); err != nil {
			return nil, err
		}
		return sjson.SetRawBytes(bits, "values", raw)
	case ResultTypeAggregate:
		aggregate := r.Aggregate
		if aggregate == nil {
			aggregate = model.AggregateResult{}
		}
		raw, err := json.Marshal(aggregate)
		if err != nil {
			return nil, err
		}
		return sjson.SetRawBytes(bits, "value", raw)
	case ResultTypeGroupAggregate:
		raw, err := json.Marshal(r.Groups)
		if err != nil {
			return nil, err
		}
		return sjson.SetRawBytes(bits, "value", raw)
	default:
		return nil, errors.New(errors.Internal, "unsupported result type: %s", r.Type)
	}
}

// String returns the result as a json string
func (r Result) String() string {
	bits, _ := r.MarshalJSON()
	return string(bits)
}
