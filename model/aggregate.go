package model

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/huandu/xstrings"
	"github.com/samber/lo"
)

// AggregateFunction is a scalar summary computed over a document sequence
type AggregateFunction string

const (
	// AggregateCount counts the documents
	AggregateCount AggregateFunction = "count"
	// AggregateSum calculates the sum
	AggregateSum AggregateFunction = "sum"
	// AggregateAvg calculates the arithmetic mean
	AggregateAvg AggregateFunction = "avg"
	// AggregateMin calculates the min
	AggregateMin AggregateFunction = "min"
	// AggregateMax calculates the max
	AggregateMax AggregateFunction = "max"
)

var enumValues_AggregateFunction = []interface{}{
	"count",
	"sum",
	"avg",
	"min",
	"max",
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *AggregateFunction) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var ok bool
	for _, expected := range enumValues_AggregateFunction {
		if reflect.DeepEqual(v, expected) {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid value (expected one of %#v): %#v", enumValues_AggregateFunction, v)
	}
	*j = AggregateFunction(v)
	return nil
}

// Aggregate is an aggregate function applied to a field and written to an output name
type Aggregate struct {
	// As is the output name. Defaults to count or <function>_<snake_case(field)>.
	As string `json:"as,omitempty"`
	// Function is the aggregate function
	Function AggregateFunction `json:"function" validate:"required"`
	// Field is the numeric source field. Ignored by count.
	Field string `json:"field,omitempty"`
}

// Name returns the output name of the aggregate
func (a Aggregate) Name() string {
	if a.As != "" {
		return a.As
	}
	if a.Function == AggregateCount || a.Field == "" {
		return string(a.Function)
	}
	return fmt.Sprintf("%s_%s", a.Function, xstrings.ToSnakeCase(a.Field))
}

// Validate validates the aggregate
func (a Aggregate) Validate() error {
	if _, err := getReducer(a.Function); err != nil {
		return err
	}
	if a.Function != AggregateCount && a.Field == "" {
		return errors.New(errors.InvalidArgument, "aggregate %s requires a field", a.Function)
	}
	return nil
}

// AggregateResult maps aggregate output names to their values
type AggregateResult map[string]Value

type reducer func(values []Value) (Value, error)

func getReducer(function AggregateFunction) (reducer, error) {
	switch function {
	case AggregateCount:
		return countReducer, nil
	case AggregateSum:
		return sumReducer, nil
	case AggregateAvg:
		return avgReducer, nil
	case AggregateMin:
		return extremeReducer(AggregateMin, -1), nil
	case AggregateMax:
		return extremeReducer(AggregateMax, 1), nil
	default:
		return nil, errors.New(errors.InvalidArgument, "unsupported aggregate function: %s", function)
	}
}

func countReducer(values []Value) (Value, error) {
	return Int(int64(len(values))), nil
}

// sumReducer keeps an integer sum while every value is an integer and falls back to float
// accumulation on the first float or on overflow
func sumReducer(values []Value) (Value, error) {
	if len(values) == 0 {
		return Value{}, errors.New(errors.UndefinedAggregate, "sum of an empty sequence")
	}
	var (
		isum    int64
		fsum    float64
		isFloat bool
	)
	for _, v := range values {
		if !isFloat && v.Kind() == KindInt {
			next := isum + v.Int64()
			if (v.Int64() > 0 && next < isum) || (v.Int64() < 0 && next > isum) {
				isFloat = true
				fsum = float64(isum) + v.Float64()
				continue
			}
			isum = next
			continue
		}
		if !isFloat {
			isFloat = true
			fsum = float64(isum)
		}
		fsum += v.Float64()
	}
	if isFloat {
		return Float(fsum), nil
	}
	return Int(isum), nil
}

func avgReducer(values []Value) (Value, error) {
	if len(values) == 0 {
		return Value{}, errors.New(errors.UndefinedAggregate, "avg of an empty sequence")
	}
	var sum float64
	for _, v := range values {
		sum += v.Float64()
	}
	return Float(sum / float64(len(values))), nil
}

// extremeReducer returns the first minimum (direction -1) or maximum (direction 1) in input order
func extremeReducer(function AggregateFunction, direction int) reducer {
	return func(values []Value) (Value, error) {
		if len(values) == 0 {
			return Value{}, errors.New(errors.UndefinedAggregate, "%s of an empty sequence", function)
		}
		extreme := values[0]
		for _, v := range values[1:] {
			cmp, err := v.Compare(extreme)
			if err != nil {
				return Value{}, err
			}
			if cmp == direction {
				extreme = v
			}
		}
		return extreme, nil
	}
}

func numericValues(docs Documents, field string) ([]Value, error) {
	values, err := docs.Values(field)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if !v.IsNumeric() {
			return nil, errors.New(errors.TypeMismatch, "aggregate field must be numeric: %s is %s", field, v.Kind())
		}
	}
	return values, nil
}

// Reduce computes a single aggregate over the documents
func Reduce(docs Documents, field string, function AggregateFunction) (Value, error) {
	result, err := AggregateDocs(docs, []Aggregate{{As: "value", Function: function, Field: field}})
	if err != nil {
		return Value{}, err
	}
	return result["value"], nil
}

// AggregateDocs computes every aggregate over the documents. Each distinct source field is extracted
// exactly once so aggregates over the same field are drawn from the identical value set.
func AggregateDocs(docs Documents, aggregates []Aggregate) (AggregateResult, error) {
	names := lo.Map(aggregates, func(a Aggregate, _ int) string {
		return a.Name()
	})
	if len(lo.Uniq(names)) != len(names) {
		return nil, errors.New(errors.InvalidArgument, "duplicate aggregate output names: %v", names)
	}
	for _, a := range aggregates {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	fields := lo.Uniq(lo.Map(lo.Filter(aggregates, func(a Aggregate, _ int) bool {
		return a.Function != AggregateCount
	}), func(a Aggregate, _ int) string {
		return a.Field
	}))
	extracted := map[string][]Value{}
	for _, field := range fields {
		values, err := numericValues(docs, field)
		if err != nil {
			return nil, err
		}
		extracted[field] = values
	}
	result := AggregateResult{}
	for i, a := range aggregates {
		reduce, _ := getReducer(a.Function)
		var (
			value Value
			err   error
		)
		if a.Function == AggregateCount {
			value = Int(int64(len(docs)))
		} else {
			value, err = reduce(extracted[a.Field])
		}
		if err != nil {
			return nil, errors.Wrap(err, "", "aggregate %s", names[i])
		}
		result[names[i]] = value
	}
	return result, nil
}
