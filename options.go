package tagsmith

import (
	"time"

	"go.uber.org/zap"

	domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	classifier domtag.Classifier

	fashionCLIPEndpoint string

	openAIKey     string
	openAIBaseURL string
	openAIModel   string

	classifierTimeout time.Duration

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	chunkSize     int
	chunkDelay    time.Duration
	chunkDelaySet bool

	brand    string
	keywords []string

	logger *zap.Logger
}

// WithClassifier sets a custom image classification provider.
func WithClassifier(c domtag.Classifier) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.classifier = c
	})
}

// WithFashionCLIP uses a Fashion-CLIP classification endpoint for product
// images.
func WithFashionCLIP(endpoint string) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.fashionCLIPEndpoint = endpoint
	})
}

// WithOpenAI uses an OpenAI-compatible vision model for product images.
// baseURL and model may be empty to use the provider defaults.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.openAIKey = apiKey
		cfg.openAIBaseURL = baseURL
		cfg.openAIModel = model
	})
}

// WithClassifierTimeout bounds one classification call, image fetch
// included.
func WithClassifierTimeout(d time.Duration) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.classifierTimeout = d
	})
}

// WithLabelCache caches classification results in Redis. ttl <= 0 uses
// the default lifetime.
func WithLabelCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.cacheAddrs = []string{addr}
		cfg.cachePassword = password
		cfg.cacheTTL = ttl
	})
}

// WithChunkSize sets how many products a batch chunk processes
// concurrently. Defaults to 5.
func WithChunkSize(size int) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.chunkSize = size
	})
}

// WithChunkDelay sets the pause between batch chunks. Defaults to 1s;
// zero disables pacing.
func WithChunkDelay(d time.Duration) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.chunkDelay = d
		cfg.chunkDelaySet = true
	})
}

// WithBrand sets the storefront brand used in generated meta tags.
func WithBrand(brand string) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.brand = brand
	})
}

// WithMarketingKeywords replaces the built-in keyword list the SEO
// scorer rewards.
func WithMarketingKeywords(keywords []string) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.keywords = keywords
	})
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(cfg *engineConfig) {
		cfg.logger = l
	})
}
