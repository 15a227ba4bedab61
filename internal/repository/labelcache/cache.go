// Package labelcache caches classification results so repeated batch runs
// over the same catalog do not hammer the external classifier.
package labelcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/atelier-cloud/tagsmith/internal/db"
	domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"
)

const cacheKeyPrefix = "tagsmith:label_cache:"

// DefaultTTL bounds staleness of cached labels; product photos change.
const DefaultTTL = 24 * time.Hour

// store is the consumer interface for the label cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedClassifier is a caching decorator over the classifier contract.
// Cache problems degrade to a miss, preserving the "never fails" boundary.
type CachedClassifier struct {
	inner      domtag.Classifier
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. cacheTotal is a counter vec with label
// "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domtag.Classifier,
	s store,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedClassifier {
	return &CachedClassifier{
		inner:      inner,
		store:      s,
		ttl:        DefaultTTL,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithTTL overrides the cache entry lifetime.
func (c *CachedClassifier) WithTTL(ttl time.Duration) *CachedClassifier {
	if ttl > 0 {
		c.ttl = ttl
	}
	return c
}

// Classify returns cached labels or calls the inner classifier. An empty
// label list is a valid, cacheable outcome: a product the classifier could
// not label yesterday is not retried on every batch run.
func (c *CachedClassifier) Classify(ctx context.Context, imageRef string) []string {
	key := cacheKey(imageRef)

	if labels, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return labels
	}

	c.incCache("miss")

	labels := c.inner.Classify(ctx, imageRef)
	c.putToCache(ctx, key, labels)
	return labels
}

func (c *CachedClassifier) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(imageRef string) string {
	h := sha256.Sum256([]byte(imageRef))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedClassifier) getFromCache(ctx context.Context, key string) ([]string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached labels", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		c.logger.Warn("Failed to parse cached labels", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return labels, true
}

func (c *CachedClassifier) putToCache(ctx context.Context, key string, labels []string) {
	if labels == nil {
		labels = []string{}
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache labels", zap.String("key", key), zap.Error(err))
	}
}
