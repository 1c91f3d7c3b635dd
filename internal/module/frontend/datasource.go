// Package frontend serves the public read facade: visible records only, no
// authentication, backed by a DataSource chosen once at startup.
package frontend

import (
	"context"
	"fmt"

	"github.com/acmlab/labsite/internal/domain"
	"github.com/acmlab/labsite/internal/module/collection"
	"github.com/acmlab/labsite/internal/pkg"
)

func errUnknownCollection(name string) error {
	return domain.NewAppError(domain.CodeNotFound,
		fmt.Sprintf("unknown collection %q", name), nil)
}

// DataSource returns the public payload for a collection name. Unknown names
// yield a not-found error.
type DataSource interface {
	Collection(ctx context.Context, name string) (any, error)
}

// LiveStore reads through the collection resources with a per-collection
// cache entry. Mutations invalidate the entry, so the cache TTL is only a
// backstop against out-of-band writes.
type LiveStore struct {
	resources map[string]collection.Resource
	cache     *pkg.Cache
}

// NewLiveStore builds a LiveStore over the resource catalog. cache may be nil
// to disable caching.
func NewLiveStore(resources []collection.Resource, cache *pkg.Cache) *LiveStore {
	byName := make(map[string]collection.Resource, len(resources))
	for _, res := range resources {
		byName[res.Definition().Name] = res
	}
	return &LiveStore{resources: byName, cache: cache}
}

func (s *LiveStore) Collection(ctx context.Context, name string) (any, error) {
	res, ok := s.resources[name]
	if !ok {
		return nil, errUnknownCollection(name)
	}
	if s.cache == nil {
		return res.ListVisible(ctx)
	}
	return s.cache.GetOrPopulate(name, func() (any, error) {
		return res.ListVisible(ctx)
	})
}
