package model

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/spf13/cast"
)

// WhereOp is an operator used to compare a value to a documents field value in a where clause
type WhereOp string

const (
	// WhereOpEq matches on equality
	WhereOpEq WhereOp = "eq"
	// WhereOpNeq matches on inequality
	WhereOpNeq WhereOp = "neq"
	// WhereOpGt matches on greater than
	WhereOpGt WhereOp = "gt"
	// WhereOpGte matches on greater than or equal to
	WhereOpGte WhereOp = "gte"
	// WhereOpLt matches on less than
	WhereOpLt WhereOp = "lt"
	// WhereOpLte matches on less than or equal to
	WhereOpLte WhereOp = "lte"
	// WhereOpBetween matches on an inclusive [low, high] range
	WhereOpBetween WhereOp = "between"
)

var enumValues_WhereOp = []interface{}{
	"eq",
	"neq",
	"gt",
	"gte",
	"lt",
	"lte",
	"between",
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *WhereOp) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var ok bool
	for _, expected := range enumValues_WhereOp {
		if reflect.DeepEqual(v, expected) {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid value (expected one of %#v): %#v", enumValues_WhereOp, v)
	}
	*j = WhereOp(v)
	return nil
}

// Where is a field-level filter. A list of wheres is a conjunction.
type Where struct {
	// Field is the document field to compare
	Field string `json:"field" validate:"required"`
	// Op is an operator used to compare the field against the value
	Op WhereOp `json:"op" validate:"required"`
	// Value is the literal to compare against. between expects a [low, high] pair.
	Value any `json:"value"`
}

// Predicate is a pure boolean test over a single document
type Predicate interface {
	// Match returns true if the document passes the predicate
	Match(d Document) (bool, error)
}

// Evaluate evaluates the predicate against the document
func Evaluate(p Predicate, d Document) (bool, error) {
	if p == nil {
		return true, nil
	}
	return p.Match(d)
}

type eqPredicate struct {
	field  string
	value  Value
	negate bool
}

func (e eqPredicate) Match(d Document) (bool, error) {
	v, err := d.Get(e.field)
	if err != nil {
		return false, err
	}
	return v.Equal(e.value) != e.negate, nil
}

// Eq returns a predicate matching documents whose field equals the value
func Eq(field string, value any) (Predicate, error) {
	v, err := ValueOf(value)
	if err != nil {
		return nil, errors.Wrap(err, "", "where %s eq", field)
	}
	return eqPredicate{field: field, value: v}, nil
}

type comparePredicate struct {
	field string
	op    WhereOp
	value Value
}

func (c comparePredicate) Match(d Document) (bool, error) {
	v, err := d.Get(c.field)
	if err != nil {
		return false, err
	}
	if !v.IsNumeric() {
		return false, errors.New(errors.TypeMismatch, "operator %s requires a numeric field: %s is %s", c.op, c.field, v.Kind())
	}
	cmp, err := v.Compare(c.value)
	if err != nil {
		return false, err
	}
	switch c.op {
	case WhereOpGt:
		return cmp > 0, nil
	case WhereOpGte:
		return cmp >= 0, nil
	case WhereOpLt:
		return cmp < 0, nil
	default:
		return cmp <= 0, nil
	}
}

// Compare returns a predicate comparing the field against the value with the operator.
// neq is allowed on every kind, the ordering operators require numbers.
func Compare(field string, op WhereOp, value any) (Predicate, error) {
	v, err := ValueOf(value)
	if err != nil {
		return nil, errors.Wrap(err, "", "where %s %s", field, op)
	}
	switch op {
	case WhereOpEq:
		return eqPredicate{field: field, value: v}, nil
	case WhereOpNeq:
		return eqPredicate{field: field, value: v, negate: true}, nil
	case WhereOpGt, WhereOpGte, WhereOpLt, WhereOpLte:
		if !v.IsNumeric() {
			return nil, errors.New(errors.TypeMismatch, "operator %s requires a numeric literal: %s", op, v.Kind())
		}
		return comparePredicate{field: field, op: op, value: v}, nil
	default:
		return nil, errors.New(errors.InvalidArgument, "invalid operator: %s", op)
	}
}

type rangePredicate struct {
	field     string
	low, high Value
}

func (r rangePredicate) Match(d Document) (bool, error) {
	v, err := d.Get(r.field)
	if err != nil {
		return false, err
	}
	if !v.IsNumeric() {
		return false, errors.New(errors.TypeMismatch, "operator between requires a numeric field: %s is %s", r.field, v.Kind())
	}
	lo, err := r.low.Compare(v)
	if err != nil {
		return false, err
	}
	hi, err := v.Compare(r.high)
	if err != nil {
		return false, err
	}
	return lo <= 0 && hi <= 0, nil
}

// Between returns a predicate matching low <= field <= high
func Between(field string, low, high any) (Predicate, error) {
	l, err := ValueOf(low)
	if err != nil {
		return nil, errors.Wrap(err, "", "where %s between", field)
	}
	h, err := ValueOf(high)
	if err != nil {
		return nil, errors.Wrap(err, "", "where %s between", field)
	}
	if !l.IsNumeric() || !h.IsNumeric() {
		return nil, errors.New(errors.TypeMismatch, "operator between requires numeric bounds: %s", field)
	}
	return rangePredicate{field: field, low: l, high: h}, nil
}

type andPredicate []Predicate

func (a andPredicate) Match(d Document) (bool, error) {
	for _, p := range a {
		pass, err := p.Match(d)
		if err != nil {
			return false, err
		}
		if !pass {
			return false, nil
		}
	}
	return true, nil
}

// And returns the conjunction of the predicates, evaluated left to right with short circuiting
func And(predicates ...Predicate) Predicate {
	return andPredicate(predicates)
}

// Predicate compiles the where clause
func (w Where) Predicate() (Predicate, error) {
	if w.Field == "" {
		return nil, errors.New(errors.InvalidArgument, "empty required field: 'where.field'")
	}
	if w.Op != WhereOpBetween {
		return Compare(w.Field, w.Op, w.Value)
	}
	bounds, err := cast.ToSliceE(w.Value)
	if err != nil || len(bounds) != 2 {
		return nil, errors.New(errors.InvalidArgument, "between expects a [low, high] pair: %s", w.Field)
	}
	return Between(w.Field, bounds[0], bounds[1])
}

// WhereToPredicate compiles the where clauses into a single conjunction
func WhereToPredicate(wheres []Where) (Predicate, error) {
	var predicates []Predicate
	for _, w := range wheres {
		p, err := w.Predicate()
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}
	return And(predicates...), nil
}

// Filter returns the documents passing the predicate, in input order
func (d Documents) Filter(p Predicate) (Documents, error) {
	filtered := Documents{}
	for _, doc := range d {
		pass, err := Evaluate(p, doc)
		if err != nil {
			return nil, err
		}
		if pass {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

// Where filters the documents by the where clauses
func (d Documents) Where(wheres []Where) (Documents, error) {
	p, err := WhereToPredicate(wheres)
	if err != nil {
		return nil, err
	}
	return d.Filter(p)
}
