package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
)

// DictionaryResolver resolves symbolic status/category names against the
// operator-managed dictionary table, caching whole categories in memory.
// Any writer of the dictionary table must call Invalidate.
type DictionaryResolver interface {
	// ResolveValue returns the canonical stored value for name within
	// category. Unknown names resolve to themselves: reference data is
	// operator-managed and may lag the code, so availability wins over
	// strict validation here. The fallback is logged.
	ResolveValue(ctx context.Context, category, name string) (string, error)
	// ResolveDefault returns the entry with the lowest display order.
	// An empty category is fatal misconfiguration.
	ResolveDefault(ctx context.Context, category string) (string, error)
	// ResolveAll returns every value in the category in display order.
	ResolveAll(ctx context.Context, category string) ([]string, error)
	// Invalidate drops the named categories from the cache, or the whole
	// cache when called with no arguments.
	Invalidate(categories ...string)
}

// categoryCache holds one fully-populated category. Immutable once built;
// invalidation replaces it wholesale, never edits it.
type categoryCache struct {
	values  map[string]string
	ordered []string
}

type dictionaryResolver struct {
	repo   repositories.DictionaryRepository
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]*categoryCache
	group singleflight.Group
}

func NewDictionaryResolver(repo repositories.DictionaryRepository, logger *zap.Logger) DictionaryResolver {
	return &dictionaryResolver{
		repo:   repo,
		logger: logger,
		cache:  make(map[string]*categoryCache),
	}
}

// category returns the cached category, populating it from the store on
// miss. Concurrent misses for the same category collapse into a single
// store query.
func (r *dictionaryResolver) category(ctx context.Context, category string) (*categoryCache, error) {
	r.mu.RLock()
	cached, ok := r.cache[category]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := r.group.Do(category, func() (interface{}, error) {
		// A racing caller may have populated while we queued on the group.
		r.mu.RLock()
		cached, ok := r.cache[category]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		entries, err := r.repo.ListByCategory(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("populate dictionary category %q: %w", category, err)
		}

		built := &categoryCache{
			values:  make(map[string]string, len(entries)),
			ordered: make([]string, 0, len(entries)),
		}
		for _, entry := range entries {
			if _, dup := built.values[entry.Name]; dup {
				continue
			}
			built.values[entry.Name] = entry.Name
			built.ordered = append(built.ordered, entry.Name)
		}

		r.mu.Lock()
		r.cache[category] = built
		r.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*categoryCache), nil
}

// ResolveValue implements DictionaryResolver.
func (r *dictionaryResolver) ResolveValue(ctx context.Context, category, name string) (string, error) {
	cached, err := r.category(ctx, category)
	if err != nil {
		return "", err
	}
	if value, ok := cached.values[name]; ok {
		return value, nil
	}
	r.logger.Warn("dictionary value not configured, falling back to symbolic name",
		zap.String("category", category),
		zap.String("name", name))
	return name, nil
}

// ResolveDefault implements DictionaryResolver.
func (r *dictionaryResolver) ResolveDefault(ctx context.Context, category string) (string, error) {
	cached, err := r.category(ctx, category)
	if err != nil {
		return "", err
	}
	if len(cached.ordered) == 0 {
		r.logger.Error("dictionary category has no entries; operator setup required",
			zap.String("category", category))
		return "", fmt.Errorf("category %q: %w", category, models.ErrMissingDictionaryDefault)
	}
	return cached.ordered[0], nil
}

// ResolveAll implements DictionaryResolver.
func (r *dictionaryResolver) ResolveAll(ctx context.Context, category string) ([]string, error) {
	cached, err := r.category(ctx, category)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(cached.ordered))
	copy(values, cached.ordered)
	return values, nil
}

// Invalidate implements DictionaryResolver.
func (r *dictionaryResolver) Invalidate(categories ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(categories) == 0 {
		r.cache = make(map[string]*categoryCache)
		return
	}
	for _, category := range categories {
		delete(r.cache, category)
	}
}
