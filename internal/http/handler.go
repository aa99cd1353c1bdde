package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/davidbz/martin/internal/config"
	"github.com/davidbz/martin/internal/domain"
	"github.com/davidbz/martin/internal/observability"
)

// Handler handles HTTP requests.
type Handler struct {
	service  *domain.AnalyzerService
	cache    domain.ResultCache // nil disables caching
	cacheTTL time.Duration
	version  string
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	service *domain.AnalyzerService,
	cache domain.ResultCache,
	analysisCfg *config.AnalysisConfig,
) *Handler {
	return &Handler{
		service:  service,
		cache:    cache,
		cacheTTL: time.Duration(analysisCfg.CacheTTL) * time.Second,
		version:  analysisCfg.Version,
	}
}

// HandleAnalyze processes prompt analysis requests.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Normalize()

	// Inject request attributes for downstream logging.
	ctx = observability.WithTargetModel(ctx, string(req.TargetModel))
	ctx = observability.WithDomain(ctx, string(req.Context.Domain))
	if req.Context.SessionID != "" {
		ctx = observability.WithSessionID(ctx, req.Context.SessionID)
	}

	logger := observability.FromContext(ctx)
	logger.Info("analysis request received",
		zap.Int("prompt_length", len(req.Prompt)),
		zap.String("suggestion_level", string(req.Options.SuggestionLevel)),
	)

	cacheKey := domain.CacheKey(&req)

	if cached, ok := h.cachedResponse(ctx, cacheKey); ok {
		cached.CacheHit = true
		logger.Info("analysis served from cache", zap.String("cache_key", cacheKey))
		h.writeJSON(ctx, w, cached)
		return
	}

	response, err := h.service.Analyze(ctx, &req)
	if err != nil {
		logger.Error("analysis failed", zap.Error(err))
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	response.ProcessingTimeMs = int(time.Since(start).Milliseconds())

	h.storeResponse(ctx, cacheKey, response)

	logger.Info("analysis succeeded",
		zap.Int("suggestions", len(response.Suggestions)),
		zap.Int("processing_time_ms", response.ProcessingTimeMs),
	)

	h.writeJSON(ctx, w, response)
}

// cachedResponse fetches and decodes a cached result. Cache failures are
// logged and treated as misses.
func (h *Handler) cachedResponse(ctx context.Context, key string) (*domain.AnalyzeResponse, bool) {
	if h.cache == nil {
		return nil, false
	}

	logger := observability.FromContext(ctx)

	data, err := h.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Warn("cache get failed, continuing without cache", zap.Error(err))
		}
		return nil, false
	}

	var cached domain.AnalyzeResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.Warn("failed to decode cached result", zap.Error(err))
		return nil, false
	}

	return &cached, true
}

// storeResponse caches the result; failures are logged, never surfaced.
func (h *Handler) storeResponse(ctx context.Context, key string, response *domain.AnalyzeResponse) {
	if h.cache == nil {
		return
	}

	logger := observability.FromContext(ctx)

	data, err := json.Marshal(response)
	if err != nil {
		logger.Warn("failed to encode result for cache", zap.Error(err))
		return
	}

	if err := h.cache.Set(ctx, key, data, h.cacheTTL); err != nil {
		logger.Warn("failed to store result in cache", zap.Error(err))
	}
}

// HandleHealth handles health check requests, reporting whether the remote
// client is configured.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "demo"
	if h.service.RemoteConfigured() {
		mode = "production"
	}

	h.writeJSON(r.Context(), w, map[string]any{
		"status":         "healthy",
		"version":        h.version,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"mode":           mode,
		"grok_connected": h.service.RemoteConfigured(),
	})
}

// HandleModels lists the supported target models.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	models := domain.KnownTargetModels()
	entries := make([]map[string]any, 0, len(models))
	for _, model := range models {
		entries = append(entries, map[string]any{
			"id":          string(model),
			"description": fmt.Sprintf("Optimized for %s", model),
			"supported":   true,
		})
	}

	h.writeJSON(r.Context(), w, map[string]any{"models": entries})
}

// HandleRoot serves the service card.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	mode := "demo"
	if h.service.RemoteConfigured() {
		mode = "production"
	}

	h.writeJSON(r.Context(), w, map[string]any{
		"name":        "Martin API",
		"version":     h.version,
		"description": "Developer-focused AI prompt optimization",
		"status":      "running",
		"mode":        mode,
		"endpoints": map[string]string{
			"health":  "/api/v1/health",
			"analyze": "/api/v1/analyze",
			"models":  "/api/v1/models",
		},
	})
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", zap.Error(err))
	}
}
