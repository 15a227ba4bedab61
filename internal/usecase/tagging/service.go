// Package tagging runs the per-product auto-tagging pipeline and the
// chunked batch orchestrator over it.
package tagging

import (
	"context"
	"time"

	"go.uber.org/zap"

	domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"
)

// Batch pacing defaults: chunk size and the cooperative pause between
// chunks that keeps the external classifier's rate limit happy.
const (
	DefaultChunkSize  = 5
	DefaultChunkDelay = time.Second
)

// Service is the auto-tagging pipeline: classify + extract, merge, score.
type Service struct {
	classifier domtag.Classifier
	extractor  TextExtractor
	resolver   MergeResolver
	scorer     Scorer
	logger     *zap.Logger
	chunkSize  int
	chunkDelay time.Duration
}

// New creates the tagging service.
func New(
	classifier domtag.Classifier,
	extractor TextExtractor,
	resolver MergeResolver,
	scorer Scorer,
	logger *zap.Logger,
) *Service {
	return &Service{
		classifier: classifier,
		extractor:  extractor,
		resolver:   resolver,
		scorer:     scorer,
		logger:     logger,
		chunkSize:  DefaultChunkSize,
		chunkDelay: DefaultChunkDelay,
	}
}

// WithChunkSize configures how many products one batch chunk processes
// concurrently.
func (s *Service) WithChunkSize(size int) *Service {
	if size > 0 {
		s.chunkSize = size
	}
	return s
}

// WithChunkDelay configures the pause between batch chunks.
func (s *Service) WithChunkDelay(d time.Duration) *Service {
	if d >= 0 {
		s.chunkDelay = d
	}
	return s
}

// AutoTag runs the pipeline for one product. The classifier contract
// cannot fail, so a degraded classification simply yields fewer
// candidates; the result is always structurally valid.
func (s *Service) AutoTag(ctx context.Context, req domtag.Request) domtag.Result {
	var labels []string
	if req.ImageRef() != "" {
		labels = s.classifier.Classify(ctx, req.ImageRef())
	}
	textTags := s.extractor.Extract(req.Name(), req.Description())

	suggested := make([]string, 0, len(labels)+len(textTags))
	suggested = append(suggested, labels...)
	suggested = append(suggested, textTags...)

	existing := req.ExistingTags()
	outcome := s.resolver.Merge(existing, suggested)
	score := s.scorer.Score(outcome.Merged)

	s.logger.Debug("Product auto-tagged",
		zap.String("product_id", req.ProductID()),
		zap.Int("suggested", len(suggested)),
		zap.Int("added", len(outcome.Added)),
		zap.Int("conflicts", len(outcome.Conflicts)),
		zap.Int("seo_score", score),
	)

	return domtag.NewResult(existing, suggested, outcome.Added, outcome.Skipped, outcome.Conflicts, score)
}

// BulkAutoTag processes products in fixed-size chunks. All items of a
// chunk run concurrently, each writing into its own slot; chunks are
// separated by the configured pacing delay. A panicking item is recovered
// and omitted from the result map without disturbing its siblings. Missing
// keys in the returned map therefore mean "this item failed".
func (s *Service) BulkAutoTag(ctx context.Context, reqs []domtag.Request) map[string]domtag.Result {
	results := make(map[string]domtag.Result, len(reqs))

	for start := 0; start < len(reqs); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(reqs) {
			end = len(reqs)
		}
		chunk := reqs[start:end]

		for id, res := range s.processChunk(ctx, chunk) {
			results[id] = res
		}

		if end < len(reqs) && s.chunkDelay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(s.chunkDelay):
			}
		}
	}

	return results
}

// processChunk runs one chunk concurrently. Slots are private per
// goroutine; the map is assembled only after every item finished.
func (s *Service) processChunk(ctx context.Context, chunk []domtag.Request) map[string]domtag.Result {
	type slot struct {
		res domtag.Result
		ok  bool
	}
	slots := make([]slot, len(chunk))

	done := make(chan struct{})
	for i := range chunk {
		go func(i int) {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("Tagging pipeline panicked",
						zap.String("product_id", chunk[i].ProductID()),
						zap.Any("panic", r),
					)
				}
				done <- struct{}{}
			}()
			slots[i] = slot{res: s.AutoTag(ctx, chunk[i]), ok: true}
		}(i)
	}
	for range chunk {
		<-done
	}

	out := make(map[string]domtag.Result, len(chunk))
	for i, sl := range slots {
		if sl.ok {
			out[chunk[i].ProductID()] = sl.res
		}
	}
	return out
}
