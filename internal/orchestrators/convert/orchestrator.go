// Package convert implements the conversion of a source item document into
// one JSON file per item
package convert

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/osrs-items/internal/entities/items"
	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
	"github.com/KirkDiggler/osrs-items/internal/errors"
	"github.com/KirkDiggler/osrs-items/internal/pkg/clock"
	itemsrepo "github.com/KirkDiggler/osrs-items/internal/repositories/items"
)

// DefaultWorkers is used when Config.Workers is zero
const DefaultWorkers = 8

// Service defines the interface for item conversion
type Service interface {
	// Convert hydrates every item of a source document and saves each one.
	// Nothing is saved unless every item hydrates.
	Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error)
}

// ConvertInput is the source document. It holds either a single item object
// or an object of item objects keyed by item ID.
type ConvertInput struct {
	Data []byte
}

// ConvertOutput reports what was written
type ConvertOutput struct {
	Count   int
	IDs     []int // ascending
	Elapsed time.Duration
}

// Config holds the dependencies for the convert orchestrator
type Config struct {
	Repository itemsrepo.Repository
	Clock      clock.Clock

	// Workers bounds the number of concurrent saves
	Workers int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Workers < 0 {
		vb.Field("Workers", "cannot be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	repo    itemsrepo.Repository
	clock   clock.Clock
	workers int
}

// NewOrchestrator creates a new convert orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:    cfg.Repository,
		clock:   cfg.Clock,
		workers: cfg.Workers,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.workers == 0 {
		o.workers = DefaultWorkers
	}
	return o, nil
}

func (o *orchestrator) Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	start := o.clock.Now()

	doc, err := jsonmap.ParseObject(input.Data)
	if err != nil {
		return nil, err
	}

	records, err := hydrateDocument(doc)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.InvalidArgument("document holds no items")
	}

	slog.InfoContext(ctx, "Converting items",
		"count", len(records),
		"workers", o.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for _, record := range records {
		record := record
		g.Go(func() error {
			if _, err := o.repo.Save(gctx, itemsrepo.SaveInput{Record: record}); err != nil {
				return errors.Wrapf(err, "failed to save item %d", record.ID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "Conversion failed", "error", err)
		return nil, err
	}

	ids := make([]int, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}

	out := &ConvertOutput{
		Count:   len(records),
		IDs:     ids,
		Elapsed: o.clock.Since(start),
	}

	slog.InfoContext(ctx, "Items converted",
		"count", out.Count,
		"elapsed", out.Elapsed)

	return out, nil
}

// hydrateDocument builds every record of doc, sorted by ID. A document with
// an "id" key is one item; anything else is keyed by item ID.
func hydrateDocument(doc map[string]any) ([]*items.ItemRecord, error) {
	if _, single := doc["id"]; single {
		record, err := items.FromJSON(doc)
		if err != nil {
			return nil, err
		}
		return []*items.ItemRecord{record}, nil
	}

	sb := errors.NewShapeBuilder()
	records := make([]*items.ItemRecord, 0, len(doc))
	for key, raw := range doc {
		id, err := strconv.Atoi(key)
		if err != nil {
			sb.Field(key, "is not an item ID")
			continue
		}

		obj, ok := raw.(map[string]any)
		if !ok {
			sb.Fieldf(key, "expected object, got %s", jsonmap.TypeName(raw))
			continue
		}

		record, err := items.FromJSON(obj)
		if err != nil {
			sb.Merge(key, err)
			continue
		}
		if record.ID != id {
			sb.Fieldf(key, "holds item %d", record.ID)
			continue
		}
		records = append(records, record)
	}

	if err := sb.Build(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeShapeMismatch, "invalid document: %d of %d items failed",
			len(doc)-len(records), len(doc))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}
