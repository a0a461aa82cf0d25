package shinyoracle

import (
	"github.com/autom8ter/shinyoracle/model"
)

// CaseBuilder is a utility for creating cases via chainable methods
type CaseBuilder struct {
	c *Case
}

// NewCaseBuilder creates a new CaseBuilder instance
func NewCaseBuilder(id string, typ ResultType) *CaseBuilder {
	return &CaseBuilder{c: &Case{ID: id, Type: typ}}
}

// Case returns the built case
func (b *CaseBuilder) Case() Case {
	return *b.c
}

// Describe sets the case description
func (b *CaseBuilder) Describe(description string) *CaseBuilder {
	b.c.Description = description
	return b
}

// From sets the collection the case queries
func (b *CaseBuilder) From(collection string) *CaseBuilder {
	b.c.Collection = collection
	return b
}

// Where adds the Where clause(s) to the case
func (b *CaseBuilder) Where(where ...model.Where) *CaseBuilder {
	b.c.Where = append(b.c.Where, where...)
	return b
}

// OrderBy sets the OrderBy clause of the case
func (b *CaseBuilder) OrderBy(ob model.OrderBy) *CaseBuilder {
	b.c.OrderBy = &ob
	return b
}

// Skip sets the number of leading documents to drop
func (b *CaseBuilder) Skip(skip int) *CaseBuilder {
	b.c.Skip = skip
	return b
}

// Limit sets the maximum number of documents to keep
func (b *CaseBuilder) Limit(limit int) *CaseBuilder {
	b.c.Limit = &limit
	return b
}

// GroupBy adds the GroupBy field(s) to the case
func (b *CaseBuilder) GroupBy(groups ...string) *CaseBuilder {
	b.c.GroupBy = append(b.c.GroupBy, groups...)
	return b
}

// Aggregate adds the aggregate(s) to the case
func (b *CaseBuilder) Aggregate(aggregates ...model.Aggregate) *CaseBuilder {
	b.c.Aggregates = append(b.c.Aggregates, aggregates...)
	return b
}
