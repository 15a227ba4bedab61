// Package chi exposes the auto-tagging engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"
	adviseuc "github.com/atelier-cloud/tagsmith/internal/usecase/advise"
	metauc "github.com/atelier-cloud/tagsmith/internal/usecase/meta"
	seouc "github.com/atelier-cloud/tagsmith/internal/usecase/seo"
	tagginguc "github.com/atelier-cloud/tagsmith/internal/usecase/tagging"
)

const maxBatchItems = 100

// Error codes returned in the error response body.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeInternalError    = "internal_error"
)

// pinger reports cache reachability for the health endpoint.
type pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP API over the tagging, scoring, meta and advisory
// use cases.
type Server struct {
	tagging *tagginguc.Service
	scorer  *seouc.Scorer
	meta    *metauc.Generator
	advisor *adviseuc.Advisor
	cache   pinger
	logger  *zap.Logger
}

// NewServer creates an HTTP API server. cache may be nil when the label
// cache is disabled.
func NewServer(
	tagging *tagginguc.Service,
	scorer *seouc.Scorer,
	meta *metauc.Generator,
	advisor *adviseuc.Advisor,
	cache pinger,
	logger *zap.Logger,
) *Server {
	return &Server{
		tagging: tagging,
		scorer:  scorer,
		meta:    meta,
		advisor: advisor,
		cache:   cache,
		logger:  logger,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/autotag", s.AutoTag)
	r.Post("/v1/autotag/batch", s.BatchAutoTag)
	r.Post("/v1/tags/score", s.ScoreTags)
	r.Post("/v1/tags/meta", s.MetaTags)
	r.Post("/v1/tags/suggestions", s.TagSuggestions)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type autotagItem struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	ImageRef     string   `json:"image_ref,omitempty"`
	ExistingTags []string `json:"existing_tags,omitempty"`
}

type autotagResult struct {
	ProductID     string   `json:"product_id"`
	OriginalTags  []string `json:"original_tags"`
	SuggestedTags []string `json:"suggested_tags"`
	AddedTags     []string `json:"added_tags"`
	SkippedTags   []string `json:"skipped_tags"`
	ConflictTags  []string `json:"conflict_tags"`
	MergedTags    []string `json:"merged_tags"`
	SeoScore      int      `json:"seo_score"`
}

// AutoTag handles POST /v1/autotag.
func (s *Server) AutoTag(w http.ResponseWriter, r *http.Request) {
	var item autotagItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := requestFromItem(item)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	res := s.tagging.AutoTag(r.Context(), req)
	writeJSON(w, http.StatusOK, resultToDTO(item.ProductID, res))
}

type batchAutotagRequest struct {
	Items []autotagItem `json:"items"`
}

type batchAutotagResponse struct {
	Items     map[string]autotagResult `json:"items"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
}

// BatchAutoTag handles POST /v1/autotag/batch. Items missing from the
// response map failed inside the pipeline.
func (s *Server) BatchAutoTag(w http.ResponseWriter, r *http.Request) {
	var req batchAutotagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Items) == 0 || len(req.Items) > maxBatchItems {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("items count must be between 1 and %d", maxBatchItems))
		return
	}

	reqs := make([]domtag.Request, 0, len(req.Items))
	for _, item := range req.Items {
		tr, err := requestFromItem(item)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		reqs = append(reqs, tr)
	}

	results := s.tagging.BulkAutoTag(r.Context(), reqs)

	items := make(map[string]autotagResult, len(results))
	for id, res := range results {
		items[id] = resultToDTO(id, res)
	}

	writeJSON(w, http.StatusOK, batchAutotagResponse{
		Items:     items,
		Succeeded: len(results),
		Failed:    len(reqs) - len(results),
	})
}

type scoreRequest struct {
	Tags []string `json:"tags"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

// ScoreTags handles POST /v1/tags/score.
func (s *Server) ScoreTags(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{Score: s.scorer.Score(req.Tags)})
}

type metaRequest struct {
	Tags        []string `json:"tags"`
	ProductName string   `json:"product_name,omitempty"`
}

type metaResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// MetaTags handles POST /v1/tags/meta.
func (s *Server) MetaTags(w http.ResponseWriter, r *http.Request) {
	var req metaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	mt := s.meta.Build(req.Tags, req.ProductName)
	writeJSON(w, http.StatusOK, metaResponse{
		Title:       mt.Title,
		Description: mt.Description,
		Keywords:    mt.Keywords,
	})
}

type suggestionsRequest struct {
	Tags []string `json:"tags"`
}

type suggestionsResponse struct {
	Missing      []string `json:"missing"`
	Redundant    []string `json:"redundant"`
	Improvements []string `json:"improvements"`
}

// TagSuggestions handles POST /v1/tags/suggestions.
func (s *Server) TagSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sug := s.advisor.Review(req.Tags)
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Missing:      emptyIfNil(sug.Missing),
		Redundant:    emptyIfNil(sug.Redundant),
		Improvements: emptyIfNil(sug.Improvements),
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health. The cache is an optional dependency,
// so an unreachable cache degrades the status without failing it.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := "healthy"

	if s.cache != nil {
		if err := s.cache.Ping(r.Context()); err != nil {
			checks["cache"] = "unreachable"
			status = "degraded"
		} else {
			checks["cache"] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: status, Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func requestFromItem(item autotagItem) (domtag.Request, error) {
	req, err := domtag.NewRequest(item.ProductID, item.ImageRef, item.ExistingTags, item.Name, item.Description)
	if err != nil {
		if errors.Is(err, domtag.ErrInvalidRequest) {
			return domtag.Request{}, err
		}
		return domtag.Request{}, fmt.Errorf("build tagging request: %w", err)
	}
	return req, nil
}

func resultToDTO(productID string, res domtag.Result) autotagResult {
	return autotagResult{
		ProductID:     productID,
		OriginalTags:  emptyIfNil(res.OriginalTags()),
		SuggestedTags: emptyIfNil(res.SuggestedTags()),
		AddedTags:     emptyIfNil(res.AddedTags()),
		SkippedTags:   emptyIfNil(res.SkippedTags()),
		ConflictTags:  emptyIfNil(res.ConflictTags()),
		MergedTags:    emptyIfNil(res.MergedTags()),
		SeoScore:      res.SEOScore(),
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
