// Package tagsmith is an automatic product tagging and deduplication
// engine for menswear storefronts. It combines image classification,
// text feature extraction, concept-aware tag merging, SEO scoring, and
// meta-tag generation behind one facade.
package tagsmith

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier-cloud/tagsmith/internal/db"
	dbRedis "github.com/atelier-cloud/tagsmith/internal/db/redis"
	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
	"github.com/atelier-cloud/tagsmith/internal/domain/tag"
	domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"
	"github.com/atelier-cloud/tagsmith/internal/repository/labelcache"
	"github.com/atelier-cloud/tagsmith/internal/transport/fashionclip"
	openaiClf "github.com/atelier-cloud/tagsmith/internal/transport/openai"
	adviseuc "github.com/atelier-cloud/tagsmith/internal/usecase/advise"
	deduc "github.com/atelier-cloud/tagsmith/internal/usecase/dedup"
	extractuc "github.com/atelier-cloud/tagsmith/internal/usecase/extract"
	metauc "github.com/atelier-cloud/tagsmith/internal/usecase/meta"
	seouc "github.com/atelier-cloud/tagsmith/internal/usecase/seo"
	tagginguc "github.com/atelier-cloud/tagsmith/internal/usecase/tagging"
	"go.uber.org/zap"
)

const defaultReadinessTimeout = 10 * time.Second

// Product identifies one storefront product to auto-tag.
type Product struct {
	ID          string
	Name        string
	Description string
	ImageRef    string
	Tags        []string
}

// Result is the outcome of one auto-tagging run.
type Result struct {
	ProductID     string
	OriginalTags  []string
	SuggestedTags []string
	AddedTags     []string
	SkippedTags   []string
	ConflictTags  []string
	MergedTags    []string
	SEOScore      int
}

// MetaTags is the search-engine meta triple derived from a tag set.
type MetaTags struct {
	Title       string
	Description string
	Keywords    string
}

// Suggestions is the advisory output of a tag set review.
type Suggestions struct {
	Missing      []string
	Redundant    []string
	Improvements []string
}

// Engine is the tagsmith SDK entry point.
type Engine struct {
	store   db.Store
	tagging *tagginguc.Service
	scorer  *seouc.Scorer
	meta    *metauc.Generator
	advisor *adviseuc.Advisor
}

// New creates an Engine. Without options it runs text-only: no image
// classification, no label cache.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var store db.Store
	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("tagsmith: create cache store: %w", err)
		}
		if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("tagsmith: cache store not ready: %w", err)
		}
		store = s
	}

	return wireEngine(store, cfg, logger), nil
}

func wireEngine(store db.Store, cfg *engineConfig, logger *zap.Logger) *Engine {
	classifier := buildClassifier(cfg, store, logger)

	reg := registry.Default()
	scorer := seouc.New(reg)
	if len(cfg.keywords) > 0 {
		scorer = scorer.WithKeywords(cfg.keywords)
	}

	taggingSvc := tagginguc.New(classifier, extractuc.New(), deduc.New(reg), scorer, logger)
	if cfg.chunkSize > 0 {
		taggingSvc = taggingSvc.WithChunkSize(cfg.chunkSize)
	}
	if cfg.chunkDelaySet {
		taggingSvc = taggingSvc.WithChunkDelay(cfg.chunkDelay)
	}

	metaGen := metauc.New(reg)
	if cfg.brand != "" {
		metaGen = metaGen.WithBrand(cfg.brand)
	}

	return &Engine{
		store:   store,
		tagging: taggingSvc,
		scorer:  scorer,
		meta:    metaGen,
		advisor: adviseuc.New(reg),
	}
}

func buildClassifier(cfg *engineConfig, store db.Store, logger *zap.Logger) domtag.Classifier {
	base := cfg.classifier
	switch {
	case base != nil:
	case cfg.fashionCLIPEndpoint != "":
		base = fashionclip.New(&fashionclip.Config{
			Endpoint: cfg.fashionCLIPEndpoint,
			Timeout:  cfg.classifierTimeout,
			Logger:   logger,
		})
	case cfg.openAIKey != "":
		base = openaiClf.New(&openaiClf.Config{
			APIKey:  cfg.openAIKey,
			BaseURL: cfg.openAIBaseURL,
			Model:   cfg.openAIModel,
			Timeout: cfg.classifierTimeout,
			Logger:  logger,
		})
	default:
		base = noopClassifier{}
	}

	if store != nil {
		cached := labelcache.New(base, store, nil, logger)
		if cfg.cacheTTL > 0 {
			cached = cached.WithTTL(cfg.cacheTTL)
		}
		return cached
	}
	return base
}

// Close releases all resources.
func (e *Engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// Ping checks label cache connectivity. Returns nil when no cache is
// configured.
func (e *Engine) Ping(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// AutoTag runs the tagging pipeline for one product. Existing tags are
// never removed or rewritten; candidates only add to them.
func (e *Engine) AutoTag(ctx context.Context, p Product) (Result, error) {
	req, err := domtag.NewRequest(p.ID, p.ImageRef, p.Tags, p.Name, p.Description)
	if err != nil {
		return Result{}, fmt.Errorf("tagsmith: %w", err)
	}

	res := e.tagging.AutoTag(ctx, req)
	return resultFromDomain(p.ID, res), nil
}

// BulkAutoTag tags products in paced chunks. Products missing from the
// returned map failed inside the pipeline; one failure never aborts the
// batch.
func (e *Engine) BulkAutoTag(ctx context.Context, products []Product) (map[string]Result, error) {
	reqs := make([]domtag.Request, 0, len(products))
	for _, p := range products {
		req, err := domtag.NewRequest(p.ID, p.ImageRef, p.Tags, p.Name, p.Description)
		if err != nil {
			return nil, fmt.Errorf("tagsmith: product %q: %w", p.ID, err)
		}
		reqs = append(reqs, req)
	}

	results := e.tagging.BulkAutoTag(ctx, reqs)

	out := make(map[string]Result, len(results))
	for id, res := range results {
		out[id] = resultFromDomain(id, res)
	}
	return out, nil
}

// Score rates a tag set 0-100 for storefront SEO quality.
func (e *Engine) Score(tags []string) int {
	return e.scorer.Score(tags)
}

// MetaTags builds the title, description and keywords meta triple for a
// tagged product.
func (e *Engine) MetaTags(tags []string, productName string) MetaTags {
	mt := e.meta.Build(tags, productName)
	return MetaTags{
		Title:       mt.Title,
		Description: mt.Description,
		Keywords:    mt.Keywords,
	}
}

// Review inspects a tag set and returns read-only improvement advice.
func (e *Engine) Review(tags []string) Suggestions {
	sug := e.advisor.Review(tags)
	return Suggestions{
		Missing:      sug.Missing,
		Redundant:    sug.Redundant,
		Improvements: sug.Improvements,
	}
}

// Normalize returns the canonical form of a raw tag.
func Normalize(raw string) string {
	return tag.Normalize(raw)
}

// NormalizeAll returns the canonical forms of raw tags, order preserved.
func NormalizeAll(raw []string) []string {
	return tag.NormalizeAll(raw)
}

func resultFromDomain(productID string, res domtag.Result) Result {
	return Result{
		ProductID:     productID,
		OriginalTags:  res.OriginalTags(),
		SuggestedTags: res.SuggestedTags(),
		AddedTags:     res.AddedTags(),
		SkippedTags:   res.SkippedTags(),
		ConflictTags:  res.ConflictTags(),
		MergedTags:    res.MergedTags(),
		SEOScore:      res.SEOScore(),
	}
}

// noopClassifier is used when no image provider is configured: products
// are tagged from text features only.
type noopClassifier struct{}

func (noopClassifier) Classify(_ context.Context, _ string) []string { return nil }
