package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/samber/lo"
)

// GroupKeyDelimiter joins the components of a composite group key
const GroupKeyDelimiter = ","

// Group is a partition of documents sharing the same key values
type Group struct {
	// Key holds the key field values of the group in declaration order
	Key []Value
	// Documents are the members of the group in input order
	Documents Documents
}

// Name returns the stringified group key
func (g Group) Name() string {
	parts := lo.Map(g.Key, func(v Value, _ int) string {
		return v.String()
	})
	return strings.Join(parts, GroupKeyDelimiter)
}

// Groups are partitions in first-seen key order
type Groups []Group

// identity returns a canonical encoding under which two keys are identical iff every component is Equal
func identity(key []Value) string {
	var b strings.Builder
	for _, v := range key {
		switch {
		case v.isNumberLike():
			b.WriteString(numericIdentity(v))
		default:
			b.WriteString("s:")
			b.WriteString(strconv.Itoa(len(v.Text())))
			b.WriteString(":")
			b.WriteString(v.Text())
		}
		b.WriteByte(0)
	}
	return b.String()
}

func validateGroupBy(fields []string) error {
	if len(fields) == 0 {
		return errors.New(errors.InvalidArgument, "empty group by fields")
	}
	if lo.Contains(fields, "") {
		return errors.New(errors.InvalidArgument, "empty group by field name")
	}
	if len(lo.Uniq(fields)) != len(fields) {
		return errors.New(errors.InvalidArgument, "duplicate group by fields: %v", fields)
	}
	return nil
}

// GroupByDocs partitions the documents by the values of the fields in a single left to right pass.
// Groups are returned in the order their keys were first seen.
func GroupByDocs(docs Documents, fields []string) (Groups, error) {
	if err := validateGroupBy(fields); err != nil {
		return nil, err
	}
	var (
		groups Groups
		index  = map[string]int{}
	)
	for _, doc := range docs {
		key := make([]Value, 0, len(fields))
		for _, field := range fields {
			v, err := doc.Get(field)
			if err != nil {
				return nil, errors.Wrap(err, "", "group by %s", field)
			}
			key = append(key, v)
		}
		id := identity(key)
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Documents = append(groups[i].Documents, doc)
	}
	return groups, nil
}

// GroupAggregateResult maps stringified group keys to the aggregates of each group
type GroupAggregateResult struct {
	// Keys are the stringified group keys in discovery order
	Keys []string
	// Values are the aggregates of each group
	Values map[string]AggregateResult
}

// Len returns the number of groups
func (g GroupAggregateResult) Len() int {
	return len(g.Keys)
}

// MarshalJSON encodes the result as a json object keyed by group
func (g GroupAggregateResult) MarshalJSON() ([]byte, error) {
	if g.Values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(g.Values)
}

// GroupAggregateDocs partitions the documents by the fields and computes the aggregates of every group
func GroupAggregateDocs(docs Documents, fields []string, aggregates []Aggregate) (GroupAggregateResult, error) {
	groups, err := GroupByDocs(docs, fields)
	if err != nil {
		return GroupAggregateResult{}, err
	}
	result := GroupAggregateResult{Values: map[string]AggregateResult{}}
	for _, group := range groups {
		name := group.Name()
		if _, ok := result.Values[name]; ok {
			return GroupAggregateResult{}, errors.New(errors.InvalidArgument, "distinct groups share the key %q", name)
		}
		aggregated, err := AggregateDocs(group.Documents, aggregates)
		if err != nil {
			return GroupAggregateResult{}, errors.Wrap(err, "", "group %s", name)
		}
		result.Keys = append(result.Keys, name)
		result.Values[name] = aggregated
	}
	return result, nil
}
