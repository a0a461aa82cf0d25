package shinyoracle

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/model"
	"github.com/autom8ter/shinyoracle/util"
	"github.com/samber/lo"
)

// ResultType is the shape of a case's expected result
type ResultType string

const (
	// ResultTypeCount is the number of documents returned by the query
	ResultTypeCount ResultType = "count"
	// ResultTypeDocCount is the number of documents matching a lookup
	ResultTypeDocCount ResultType = "doc_count"
	// ResultTypeOrder is the ordered values of the sort field
	ResultTypeOrder ResultType = "order"
	// ResultTypeAggregate is a set of named aggregates over the query results
	ResultTypeAggregate ResultType = "aggregate"
	// ResultTypeGroupAggregate is a set of named aggregates per group
	ResultTypeGroupAggregate ResultType = "group_aggregate"
)

var enumValues_ResultType = []interface{}{
	"count",
	"doc_count",
	"order",
	"aggregate",
	"group_aggregate",
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *ResultType) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var ok bool
	for _, expected := range enumValues_ResultType {
		if reflect.DeepEqual(v, expected) {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid value (expected one of %#v): %#v", enumValues_ResultType, v)
	}
	*j = ResultType(v)
	return nil
}

// Case is a declarative query-correctness case. The pipeline is filter, order, paginate and then
// either count, project the sort field, aggregate or group and aggregate.
type Case struct {
	// ID is the dotted case id, ex: 9.4
	ID string `json:"id" validate:"required"`
	// Description describes the case
	Description string `json:"description,omitempty"`
	// Collection is the name of the collection the case queries
	Collection string `json:"collection" validate:"required"`
	// Type is the shape of the expected result
	Type ResultType `json:"type" validate:"required"`
	// Where is a conjunction of field filters
	Where []model.Where `json:"where,omitempty" validate:"dive"`
	// OrderBy orders the filtered documents
	OrderBy *model.OrderBy `json:"order_by,omitempty"`
	// Skip drops leading documents after ordering
	Skip int `json:"skip,omitempty"`
	// Limit keeps at most limit documents after skipping
	Limit *int `json:"limit,omitempty"`
	// GroupBy is the group key of a group_aggregate case
	GroupBy []string `json:"group_by,omitempty"`
	// Aggregates are the aggregates of an aggregate or group_aggregate case
	Aggregates []model.Aggregate `json:"aggregates,omitempty" validate:"dive"`
}

// Page returns the case's pagination bounds
func (c Case) Page() model.Page {
	return model.Page{Skip: c.Skip, Limit: c.Limit}
}

// Predicate compiles the case's where clauses into a predicate
func (c Case) Predicate() (model.Predicate, error) {
	return model.WhereToPredicate(c.Where)
}

// Validate validates the case's structure and the rules of its result type
func (c Case) Validate() error {
	if err := util.ValidateStruct(c); err != nil {
		return err
	}
	if _, err := parseID(c.ID); err != nil {
		return err
	}
	if err := c.Page().Validate(); err != nil {
		return err
	}
	if _, err := c.Predicate(); err != nil {
		return err
	}
	if c.OrderBy != nil {
		switch c.OrderBy.Direction {
		case "", model.OrderByDirectionAsc, model.OrderByDirectionDesc:
		default:
			return errors.New(errors.InvalidArgument, "case %s: invalid order_by direction: %s", c.ID, c.OrderBy.Direction)
		}
	}
	for _, a := range c.Aggregates {
		if err := a.Validate(); err != nil {
			return errors.Wrap(err, "", "case %s", c.ID)
		}
	}
	names := lo.Map(c.Aggregates, func(a model.Aggregate, _ int) string {
		return a.Name()
	})
	if len(lo.Uniq(names)) != len(names) {
		return errors.New(errors.InvalidArgument, "case %s: duplicate aggregate names: %v", c.ID, names)
	}
	switch c.Type {
	case ResultTypeCount, ResultTypeDocCount:
		if len(c.Aggregates) > 0 || len(c.GroupBy) > 0 {
			return errors.New(errors.InvalidArgument, "case %s: %s cases do not accept aggregates or group_by", c.ID, c.Type)
		}
	case ResultTypeOrder:
		if c.OrderBy == nil {
			return errors.New(errors.InvalidArgument, "case %s: order cases require order_by", c.ID)
		}
		if len(c.Aggregates) > 0 || len(c.GroupBy) > 0 {
			return errors.New(errors.InvalidArgument, "case %s: order cases do not accept aggregates or group_by", c.ID)
		}
	case ResultTypeAggregate:
		if len(c.Aggregates) == 0 {
			return errors.New(errors.InvalidArgument, "case %s: aggregate cases require aggregates", c.ID)
		}
		if len(c.GroupBy) > 0 {
			return errors.New(errors.InvalidArgument, "case %s: aggregate cases do not accept group_by", c.ID)
		}
	case ResultTypeGroupAggregate:
		if len(c.GroupBy) == 0 || len(c.Aggregates) == 0 {
			return errors.New(errors.InvalidArgument, "case %s: group_aggregate cases require group_by and aggregates", c.ID)
		}
	default:
		return errors.New(errors.InvalidArgument, "case %s: unsupported type: %s", c.ID, c.Type)
	}
	return nil
}

func parseID(id string) ([]int, error) {
	var components []int
	for _, part := range strings.Split(id, ".") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, errors.New(errors.InvalidArgument, "invalid case id: %q (expected dotted integers, ex: 9.4)", id)
		}
		components = append(components, n)
	}
	return components, nil
}

// CompareIDs orders case ids by their numeric dotted components (1.2 < 1.10 < 2.1). Ids that are
// not dotted integers order after valid ids by code point.
func CompareIDs(a, b string) int {
	ac, aerr := parseID(a)
	bc, berr := parseID(b)
	switch {
	case aerr != nil && berr != nil:
		return strings.Compare(a, b)
	case aerr != nil:
		return 1
	case berr != nil:
		return -1
	}
	for i := 0; i < len(ac) && i < len(bc); i++ {
		if ac[i] != bc[i] {
			if ac[i] < bc[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ac) < len(bc):
		return -1
	case len(ac) > len(bc):
		return 1
	}
	return 0
}

// SortIDs sorts case ids in place by CompareIDs
func SortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return CompareIDs(ids[i], ids[j]) < 0
	})
}
