package shinyoracle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/internal/safe"
	"github.com/autom8ter/shinyoracle/model"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

// Source supplies named document collections
type Source interface {
	// Load returns the named collection. Failures are SourceLoadFailure errors.
	Load(ctx context.Context, name string) (model.Collection, error)
}

// ParseCollection parses a json array of objects into a collection
func ParseCollection(name string, content []byte) (model.Collection, error) {
	if !gjson.ValidBytes(content) {
		return model.Collection{}, errors.New(errors.SourceLoadFailure, "collection %s: malformed json", name)
	}
	parsed := gjson.ParseBytes(content)
	if !parsed.IsArray() {
		return model.Collection{}, errors.New(errors.SourceLoadFailure, "collection %s: expected a json array of documents", name)
	}
	var (
		docs  = model.Documents{}
		index int
		err   error
	)
	parsed.ForEach(func(_, value gjson.Result) bool {
		var doc model.Document
		doc, err = model.NewDocumentFromResult(value)
		if err != nil {
			err = errors.Wrap(err, errors.SourceLoadFailure, "collection %s: document %d", name, index)
			return false
		}
		docs = append(docs, doc)
		index++
		return true
	})
	if err != nil {
		return model.Collection{}, err
	}
	return model.Collection{Name: name, Documents: docs}, nil
}

// DirSource loads collections from json files in a directory. Each collection is read at most once.
type DirSource struct {
	dir    string
	files  map[string]string
	cache  *safe.Map[model.Collection]
	group  singleflight.Group
	logger Logger
}

// NewDirSource creates a DirSource reading dir/<name>.json unless files overrides the file name
func NewDirSource(dir string, files map[string]string, logger Logger) *DirSource {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &DirSource{
		dir:    dir,
		files:  files,
		cache:  safe.NewMap[model.Collection](nil),
		logger: logger,
	}
}

// Path returns the file path of the named collection
func (s *DirSource) Path(name string) string {
	if file, ok := s.files[name]; ok {
		return filepath.Join(s.dir, file)
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", name))
}

// Load returns the named collection, reading it from disk on first use
func (s *DirSource) Load(ctx context.Context, name string) (model.Collection, error) {
	if c, ok := s.cache.Get(name); ok {
		return c, nil
	}
	v, err, _ := s.group.Do(name, func() (interface{}, error) {
		if c, ok := s.cache.Get(name); ok {
			return c, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.SourceLoadFailure, "collection %s", name)
		}
		path := s.Path(name)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.SourceLoadFailure, "collection %s: failed to read %s", name, path)
		}
		c, err := ParseCollection(name, content)
		if err != nil {
			return nil, err
		}
		if !s.cache.SetIfAbsent(name, c) {
			c, _ = s.cache.Get(name)
			return c, nil
		}
		s.logger.Debug(ctx, "loaded collection", map[string]any{
			"collection": name,
			"path":       path,
			"documents":  len(c.Documents),
		})
		return c, nil
	})
	if err != nil {
		return model.Collection{}, err
	}
	return v.(model.Collection), nil
}

// MemorySource serves collections held in memory
type MemorySource struct {
	collections *safe.Map[model.Collection]
}

// NewMemorySource creates a MemorySource from the collections
func NewMemorySource(collections ...model.Collection) *MemorySource {
	m := &MemorySource{collections: safe.NewMap[model.Collection](nil)}
	for _, c := range collections {
		m.collections.Set(c.Name, c)
	}
	return m
}

// Load returns the named collection
func (m *MemorySource) Load(ctx context.Context, name string) (model.Collection, error) {
	c, ok := m.collections.Get(name)
	if !ok {
		return model.Collection{}, errors.New(errors.SourceLoadFailure, "unknown collection: %s", name)
	}
	return c, nil
}
