// Package fashionclip adapts the external Fashion-CLIP image
// classification service to the tagging.Classifier contract.
package fashionclip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-cloud/tagsmith/internal/metrics"
)

const (
	providerName = "fashionclip"

	// Attributes below this confidence are noise, not candidates.
	confidenceThreshold = 0.7

	defaultTimeout = 15 * time.Second

	// Image downloads are capped; product shots are small.
	maxImageBytes = 10 << 20
)

// Classifier submits product images to the classification endpoint and
// parses the response into candidate labels. It never returns an error:
// any transport failure, non-2xx status, timeout, or unparseable body
// degrades to an empty label list, so one bad classification can only
// weaken a single product's enrichment.
type Classifier struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// Config holds the classification service settings.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// New creates a Fashion-CLIP classifier adapter.
func New(cfg *Config) *Classifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Classifier{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   cfg.Logger,
	}
}

// Classify implements tagging.Classifier. The timeout covers the image
// fetch and the classification call together.
func (c *Classifier) Classify(ctx context.Context, imageRef string) []string {
	start := time.Now()

	labels, err := c.classify(ctx, imageRef)
	if err != nil {
		metrics.ClassifierRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ClassifierErrorsTotal.WithLabelValues(providerName, errorType(err)).Inc()
		c.logger.Warn("Classification degraded to no candidates",
			zap.String("image_ref", imageRef),
			zap.Error(err),
		)
		return nil
	}

	metrics.ClassifierRequestsTotal.WithLabelValues(providerName, "success").Inc()
	metrics.ClassifierRequestDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	metrics.ClassifierLabelsTotal.WithLabelValues(providerName).Add(float64(len(labels)))

	return labels
}

func (c *Classifier) classify(ctx context.Context, imageRef string) ([]string, error) {
	image, err := c.fetchImage(ctx, imageRef)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}

	body, contentType, err := encodeMultipart(image)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classification call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classification API status %d", resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return parsed.labels(), nil
}

func (c *Classifier) fetchImage(ctx context.Context, imageRef string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageRef, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image fetch status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

func encodeMultipart(image []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", "product.jpg")
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("write image part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// response is the classification payload: an optional top-level
// classification plus per-attribute confidences.
type response struct {
	Classification string             `json:"classification"`
	Attributes     map[string]float64 `json:"attributes"`
	Labels         []string           `json:"labels"`
}

// labels flattens the response into lowercased candidate labels:
// the classification, any plain labels, then attributes above the
// confidence threshold in descending confidence (ties by name) so the
// output is deterministic.
func (r *response) labels() []string {
	var out []string
	if r.Classification != "" {
		out = append(out, strings.ToLower(r.Classification))
	}
	for _, l := range r.Labels {
		if l != "" {
			out = append(out, strings.ToLower(l))
		}
	}
	out = append(out, confidentAttributes(r.Attributes, confidenceThreshold)...)
	return out
}

func confidentAttributes(attrs map[string]float64, threshold float64) []string {
	type scored struct {
		name       string
		confidence float64
	}
	var keep []scored
	for name, conf := range attrs {
		if conf > threshold {
			keep = append(keep, scored{name: strings.ToLower(name), confidence: conf})
		}
	}

	sort.Slice(keep, func(i, j int) bool {
		if keep[i].confidence != keep[j].confidence {
			return keep[i].confidence > keep[j].confidence
		}
		return keep[i].name < keep[j].name
	})

	out := make([]string, len(keep))
	for i, s := range keep {
		out[i] = s.name
	}
	return out
}

// errorType buckets failures for the error counter.
func errorType(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "Client.Timeout"):
		return "timeout"
	case strings.Contains(msg, "status"):
		return "bad_status"
	case strings.Contains(msg, "decode response"):
		return "bad_payload"
	default:
		return "transport"
	}
}
