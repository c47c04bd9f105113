package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/cache"
	"github.com/storefront/bridge/internal/infrastructure/telemetry"
)

// CatalogService serves catalog reads. Category and product responses are
// cached for a short TTL: catalog reads dominate storefront traffic and the
// backend recomputes them slowly.
type CatalogService struct {
	platform storefront.CommercePlatform
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil to disable
// response caching.
func NewCatalogService(platform storefront.CommercePlatform, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CatalogService{
		platform: platform,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger.Named("catalog"),
	}
}

// CategoryTree returns the category tree rooted at rootID (0 = store root).
func (s *CatalogService) CategoryTree(ctx context.Context, rootID int) (*storefront.Category, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "category_tree")
	defer span.End()

	key := fmt.Sprintf("categories:tree:%d", rootID)
	var tree storefront.Category
	if s.cachedGet(ctx, key, &tree) {
		return &tree, nil
	}

	fresh, err := s.platform.CategoryTree(ctx, rootID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cachedSet(ctx, key, fresh)
	return fresh, nil
}

// Category returns a single category.
func (s *CatalogService) Category(ctx context.Context, id int) (*storefront.Category, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "category")
	defer span.End()

	key := fmt.Sprintf("categories:%d", id)
	var cat storefront.Category
	if s.cachedGet(ctx, key, &cat) {
		return &cat, nil
	}

	fresh, err := s.platform.Category(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cachedSet(ctx, key, fresh)
	return fresh, nil
}

// Products runs a paginated product search.
func (s *CatalogService) Products(ctx context.Context, q storefront.ProductQuery) (*storefront.ProductList, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "products")
	defer span.End()

	q.Normalize()
	key := productQueryKey(q)
	var list storefront.ProductList
	if s.cachedGet(ctx, key, &list) {
		return &list, nil
	}

	fresh, err := s.platform.SearchProducts(ctx, q)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cachedSet(ctx, key, fresh)
	return fresh, nil
}

// ProductBySKU returns a single product by SKU.
func (s *CatalogService) ProductBySKU(ctx context.Context, sku string) (*storefront.Product, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "product_by_sku")
	defer span.End()

	key := "products:sku:" + sku
	var p storefront.Product
	if s.cachedGet(ctx, key, &p) {
		return &p, nil
	}

	fresh, err := s.platform.ProductBySKU(ctx, sku)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cachedSet(ctx, key, fresh)
	return fresh, nil
}

// ProductByURLKey returns a single product by its url_key attribute.
func (s *CatalogService) ProductByURLKey(ctx context.Context, urlKey string) (*storefront.Product, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "product_by_url_key")
	defer span.End()

	key := "products:url:" + urlKey
	var p storefront.Product
	if s.cachedGet(ctx, key, &p) {
		return &p, nil
	}

	fresh, err := s.platform.ProductByURLKey(ctx, urlKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cachedSet(ctx, key, fresh)
	return fresh, nil
}

// Countries lists shippable countries with regions.
func (s *CatalogService) Countries(ctx context.Context) ([]storefront.Country, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "countries")
	defer span.End()

	var countries []storefront.Country
	if s.cachedGet(ctx, "directory:countries", &countries) {
		return countries, nil
	}

	fresh, err := s.platform.Countries(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cachedSet(ctx, "directory:countries", fresh)
	return fresh, nil
}

// StoreConfig returns the active store configuration.
func (s *CatalogService) StoreConfig(ctx context.Context) (*storefront.StoreConfig, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "store_config")
	defer span.End()

	var cfg storefront.StoreConfig
	if s.cachedGet(ctx, "directory:store_config", &cfg) {
		return &cfg, nil
	}

	fresh, err := s.platform.StoreConfig(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cachedSet(ctx, "directory:store_config", fresh)
	return fresh, nil
}

// cachedGet loads a cached response into out. A miss or a failing cache is
// treated the same: the caller falls through to the backend.
func (s *CatalogService) cachedGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// cachedSet stores a response. Cache failures only log; the response is
// already in hand.
func (s *CatalogService) cachedSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// productQueryKey derives a stable cache key from a normalized product query.
func productQueryKey(q storefront.ProductQuery) string {
	var b strings.Builder
	b.WriteString("products:query:")
	b.WriteString(q.Search)
	for _, f := range q.Filters {
		fmt.Fprintf(&b, "|f:%s:%s:%s", f.Field, f.Condition, f.Value)
	}
	for _, srt := range q.Sort {
		fmt.Fprintf(&b, "|s:%s:%s", srt.Field, srt.Direction)
	}
	fmt.Fprintf(&b, "|p:%d:%d", q.CurrentPage, q.PageSize)
	return b.String()
}
