package items

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/KirkDiggler/osrs-items/internal/entities/items"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

const (
	fileExt = ".json"

	// DefaultCacheTTL is used when Config.CacheTTL is zero
	DefaultCacheTTL = 10 * time.Minute

	errNegativeID = "item ID cannot be negative"
)

type fileRepository struct {
	dir    string
	pretty bool
	cache  *expirable.LRU[int, *items.ItemRecord]
}

// FileConfig contains configuration for the file-backed repository.
type FileConfig struct {
	// Dir holds one <id>.json file per record and must already exist
	Dir string

	// Pretty indents written files
	Pretty bool

	// CacheSize is the number of decoded records kept in memory; zero disables the cache
	CacheSize int

	// CacheTTL bounds how long a cached record is served
	CacheTTL time.Duration
}

// Validate validates the FileConfig.
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("dir", cfg.Dir, vb)
	if cfg.CacheSize < 0 {
		vb.Field("cache_size", "cannot be negative")
	}
	if cfg.CacheTTL < 0 {
		vb.Field("cache_ttl", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.FailedPreconditionf("directory %s does not exist", cfg.Dir)
		}
		return errors.IOFailuref(err, "failed to stat %s", cfg.Dir)
	}
	if !info.IsDir() {
		return errors.FailedPreconditionf("%s is not a directory", cfg.Dir)
	}
	return nil
}

// NewFile creates a new repository storing records under cfg.Dir
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo := &fileRepository{
		dir:    cfg.Dir,
		pretty: cfg.Pretty,
	}

	if cfg.CacheSize > 0 {
		ttl := cfg.CacheTTL
		if ttl == 0 {
			ttl = DefaultCacheTTL
		}
		repo.cache = expirable.NewLRU[int, *items.ItemRecord](cfg.CacheSize, nil, ttl)
	}

	return repo, nil
}

func (r *fileRepository) path(id int) string {
	return filepath.Join(r.dir, items.FileName(id))
}

func (r *fileRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.ID < 0 {
		return nil, errors.InvalidArgument(errNegativeID)
	}

	if r.cache != nil {
		if record, ok := r.cache.Get(input.ID); ok {
			slog.DebugContext(ctx, "item served from cache", "item_id", input.ID)
			return &GetOutput{Record: record}, nil
		}
	}

	path := r.path(input.ID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("item %d not found", input.ID).WithMeta("item_id", input.ID)
		}
		return nil, errors.IOFailuref(err, "failed to read item %d", input.ID).WithMeta("path", path)
	}

	record, err := items.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path).WithMeta("path", path)
	}
	if record.ID != input.ID {
		return nil, errors.ShapeMismatchf("file %s holds item %d", path, record.ID).
			WithMeta("item_id", input.ID).
			WithMeta("path", path)
	}

	if r.cache != nil {
		r.cache.Add(input.ID, record)
	}

	return &GetOutput{Record: record}, nil
}

func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Record == nil {
		return nil, errors.InvalidArgument("record is required")
	}
	if input.Record.ID < 0 {
		return nil, errors.InvalidArgument(errNegativeID)
	}
	if err := input.Record.Validate(); err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Remove(input.Record.ID)
	}

	if err := input.Record.ExportJSON(r.pretty, r.dir); err != nil {
		slog.ErrorContext(ctx, "failed to save item",
			"item_id", input.Record.ID,
			"error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "item saved", "item_id", input.Record.ID)

	return &SaveOutput{Path: r.path(input.Record.ID)}, nil
}

func (r *fileRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.ID < 0 {
		return nil, errors.InvalidArgument(errNegativeID)
	}

	if r.cache != nil {
		r.cache.Remove(input.ID)
	}

	path := r.path(input.ID)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("item %d not found", input.ID).WithMeta("item_id", input.ID)
		}
		return nil, errors.IOFailuref(err, "failed to delete item %d", input.ID).WithMeta("path", path)
	}

	return &DeleteOutput{}, nil
}

func (r *fileRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to list %s", r.dir)
	}

	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(entry.Name(), fileExt))
		if err != nil || id < 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return &ListOutput{IDs: ids}, nil
}
