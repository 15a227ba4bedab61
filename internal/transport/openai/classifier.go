// Package openai provides an OpenAI-compatible vision model as an
// alternative image classification provider.
package openai

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/atelier-cloud/tagsmith/internal/metrics"
)

const (
	providerName = "openai"

	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
	maxLabels      = 12

	labelPrompt = "List short product tags for this menswear item " +
		"(color, occasion, fit, garment type, fabric, pattern, season). " +
		"Respond with a comma-separated list only, no prose."
)

// Classifier asks a vision model for product tags. Like every
// tagging.Classifier it never fails: API errors, empty choices, and
// unusable answers all degrade to an empty label list.
type Classifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the vision provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// New creates a vision classifier.
func New(cfg *Config) *Classifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Classifier{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Classify implements tagging.Classifier.
func (c *Classifier) Classify(ctx context.Context, imageRef string) []string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: labelPrompt},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: imageRef},
				},
			},
		}},
	})
	if err != nil {
		metrics.ClassifierRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ClassifierErrorsTotal.WithLabelValues(providerName, "api_error").Inc()
		c.logger.Warn("Vision classification degraded to no candidates",
			zap.String("image_ref", imageRef),
			zap.Error(err),
		)
		return nil
	}

	if len(resp.Choices) == 0 {
		metrics.ClassifierRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ClassifierErrorsTotal.WithLabelValues(providerName, "empty_response").Inc()
		return nil
	}

	labels := parseLabelList(resp.Choices[0].Message.Content)

	metrics.ClassifierRequestsTotal.WithLabelValues(providerName, "success").Inc()
	metrics.ClassifierRequestDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	metrics.ClassifierLabelsTotal.WithLabelValues(providerName).Add(float64(len(labels)))

	return labels
}

// parseLabelList splits a comma-separated model answer into clean,
// lowercased labels, dropping empties and capping runaway answers.
func parseLabelList(answer string) []string {
	parts := strings.Split(answer, ",")

	var labels []string
	for _, p := range parts {
		label := strings.ToLower(strings.Trim(strings.TrimSpace(p), ".\"'"))
		if label == "" {
			continue
		}
		labels = append(labels, label)
		if len(labels) == maxLabels {
			break
		}
	}
	return labels
}
