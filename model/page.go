package model

import "github.com/autom8ter/shinyoracle/errors"

// Page bounds a sequence of documents
type Page struct {
	// Skip is the number of leading documents to drop
	Skip int `json:"skip,omitempty"`
	// Limit is the maximum number of documents to keep. nil keeps everything after Skip.
	Limit *int `json:"limit,omitempty"`
}

// Validate returns an InvalidArgument error for negative bounds
func (p Page) Validate() error {
	if p.Skip < 0 {
		return errors.New(errors.InvalidArgument, "negative skip: %d", p.Skip)
	}
	if p.Limit != nil && *p.Limit < 0 {
		return errors.New(errors.InvalidArgument, "negative limit: %d", *p.Limit)
	}
	return nil
}

// Paginate returns the documents within the page. Skip is clamped to the length of the input.
func Paginate(docs Documents, page Page) (Documents, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	skip := page.Skip
	if skip > len(docs) {
		skip = len(docs)
	}
	remaining := docs[skip:]
	if page.Limit != nil && *page.Limit < len(remaining) {
		remaining = remaining[:*page.Limit]
	}
	paged := make(Documents, len(remaining))
	copy(paged, remaining)
	return paged, nil
}
