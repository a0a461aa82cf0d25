package shinyoracle

import (
	"context"
	"sort"
	"time"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/model"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Oracle computes the expected results of query-correctness cases
type Oracle struct {
	cfg    Config
	source Source
	logger Logger
}

// New creates an Oracle. The source defaults to a DirSource over cfg.DataDir and the logger to a nop logger.
func New(cfg Config, source Source, logger Logger) *Oracle {
	cfg.SetDefaults()
	if logger == nil {
		logger = NewNopLogger()
	}
	if source == nil {
		source = NewDirSource(cfg.DataDir, cfg.Collections, logger)
	}
	return &Oracle{
		cfg:    cfg,
		source: source,
		logger: logger,
	}
}

// Evaluate computes the expected result of a single case. The collection is filtered, ordered and
// paginated before the result is shaped by the case type.
func (o *Oracle) Evaluate(ctx context.Context, c Case) (Result, error) {
	result, err := o.evaluate(ctx, c)
	if err != nil {
		return Result{}, errors.Wrap(err, "", "case %s (collection %s)", c.ID, c.Collection)
	}
	return result, nil
}

func (o *Oracle) evaluate(ctx context.Context, c Case) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	collection, err := o.source.Load(ctx, c.Collection)
	if err != nil {
		return Result{}, err
	}
	predicate, err := c.Predicate()
	if err != nil {
		return Result{}, err
	}
	docs, err := collection.Documents.Filter(predicate)
	if err != nil {
		return Result{}, err
	}
	if c.OrderBy != nil {
		docs, err = model.OrderByDocs(docs, *c.OrderBy)
		if err != nil {
			return Result{}, err
		}
	}
	docs, err = model.Paginate(docs, c.Page())
	if err != nil {
		return Result{}, err
	}
	switch c.Type {
	case ResultTypeCount, ResultTypeDocCount:
		return Result{Type: c.Type, Count: len(docs)}, nil
	case ResultTypeOrder:
		values, err := docs.Values(c.OrderBy.Field)
		if err != nil {
			return Result{}, err
		}
		return Result{Type: c.Type, Field: c.OrderBy.Field, Values: values}, nil
	case ResultTypeAggregate:
		aggregate, err := model.AggregateDocs(docs, c.Aggregates)
		if err != nil {
			return Result{}, err
		}
		return Result{Type: c.Type, Aggregate: aggregate}, nil
	case ResultTypeGroupAggregate:
		groups, err := model.GroupAggregateDocs(docs, c.GroupBy, c.Aggregates)
		if err != nil {
			return Result{}, err
		}
		return Result{Type: c.Type, Groups: groups}, nil
	default:
		return Result{}, errors.New(errors.InvalidArgument, "unsupported type: %s", c.Type)
	}
}

// Run evaluates the cases concurrently and returns the report. The first failure aborts the run and
// no partial report is returned.
func (o *Oracle) Run(ctx context.Context, cases []Case) (*Report, error) {
	start := time.Now()
	ids := lo.Map(cases, func(c Case, _ int) string {
		return c.ID
	})
	if len(lo.Uniq(ids)) != len(ids) {
		return nil, errors.New(errors.InvalidArgument, "duplicate case ids")
	}
	collections := lo.Uniq(lo.Map(cases, func(c Case, _ int) string {
		return c.Collection
	}))
	if o.cfg.Preload {
		collections = o.preloaded(collections)
	}
	if err := o.load(ctx, collections); err != nil {
		o.logger.Error(ctx, "failed to load collections", err, map[string]any{
			"collections": collections,
		})
		return nil, err
	}
	report := NewReport()
	egp, ctx := errgroup.WithContext(ctx)
	egp.SetLimit(o.cfg.Workers)
	for _, c := range cases {
		c := c
		egp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := o.Evaluate(ctx, c)
			if err != nil {
				return err
			}
			o.logger.Debug(ctx, "evaluated case", map[string]any{
				"case":       c.ID,
				"collection": c.Collection,
				"type":       c.Type,
			})
			report.Set(c.ID, result)
			return nil
		})
	}
	if err := egp.Wait(); err != nil {
		o.logger.Error(ctx, "oracle run failed", err, nil)
		return nil, err
	}
	o.logger.Info(ctx, "oracle run complete", map[string]any{
		"cases":       report.Len(),
		"collections": len(collections),
		"duration":    time.Since(start).String(),
	})
	return report, nil
}

// preloaded adds the default and configured collections to those queried by the cases
func (o *Oracle) preloaded(queried []string) []string {
	names := append([]string{}, DefaultCollections...)
	configured := lo.Keys(o.cfg.Collections)
	sort.Strings(configured)
	names = append(names, configured...)
	return lo.Uniq(append(names, queried...))
}

// load loads every collection before any case is evaluated
func (o *Oracle) load(ctx context.Context, collections []string) error {
	egp, ctx := errgroup.WithContext(ctx)
	egp.SetLimit(o.cfg.Workers)
	for _, name := range collections {
		name := name
		egp.Go(func() error {
			_, err := o.source.Load(ctx, name)
			return err
		})
	}
	return egp.Wait()
}
