package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/autom8ter/shinyoracle/errors"
)

// OrderByDirection indicates whether results should be sorted in ascending or descending order
type OrderByDirection string

const (
	// OrderByDirectionAsc sorts in ascending order
	OrderByDirectionAsc OrderByDirection = "asc"
	// OrderByDirectionDesc sorts in descending order
	OrderByDirectionDesc OrderByDirection = "desc"
)

var enumValues_OrderByDirection = []interface{}{
	"asc",
	"desc",
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *OrderByDirection) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var ok bool
	for _, expected := range enumValues_OrderByDirection {
		if reflect.DeepEqual(v, expected) {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid value (expected one of %#v): %#v", enumValues_OrderByDirection, v)
	}
	*j = OrderByDirection(v)
	return nil
}

// OrderBy orders documents by a field and a direction. An empty direction is ascending.
type OrderBy struct {
	// Field is the field to sort on
	Field string `json:"field" validate:"required"`
	// Direction is the sort direction
	Direction OrderByDirection `json:"direction,omitempty"`
}

// OrderByDocs returns a stably sorted copy of the documents. Documents with equal keys keep their
// input order in both directions.
func OrderByDocs(docs Documents, orderBy OrderBy) (Documents, error) {
	if orderBy.Field == "" {
		return nil, errors.New(errors.InvalidArgument, "empty required field: 'order_by.field'")
	}
	keys, err := docs.Values(orderBy.Field)
	if err != nil {
		return nil, err
	}
	// every key must be comparable with the first so the comparator below cannot fail
	for _, k := range keys {
		if _, err := keys[0].Compare(k); err != nil {
			return nil, errors.Wrap(err, "", "order by %s", orderBy.Field)
		}
	}
	desc := orderBy.Direction == OrderByDirectionDesc
	index := make([]int, len(docs))
	for i := range index {
		index[i] = i
	}
	sort.SliceStable(index, func(i, j int) bool {
		cmp, _ := keys[index[i]].Compare(keys[index[j]])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	sorted := make(Documents, len(docs))
	for i, idx := range index {
		sorted[i] = docs[idx]
	}
	return sorted, nil
}
