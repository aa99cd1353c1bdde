package domain

import (
	"context"
	"errors"
	"time"

	"github.com/davidbz/martin/internal/observability"
)

const defaultRemoteTimeout = 30 * time.Second

// AnalyzerService orchestrates prompt analysis: it prefers the remote
// completion service and degrades once, deterministically, to the heuristic
// analyzer on any failure. Fallback is never retried remotely within the
// same request.
type AnalyzerService struct {
	client    CompletionClient // nil means demo mode
	heuristic *HeuristicAnalyzer
	builder   InstructionBuilder
	parser    ReplyParser
	timeout   time.Duration
}

// NewAnalyzerService creates the orchestrator (DI constructor). A nil client
// is valid and pins the service to the heuristic path.
func NewAnalyzerService(
	client CompletionClient,
	heuristic *HeuristicAnalyzer,
	builder InstructionBuilder,
	parser ReplyParser,
) *AnalyzerService {
	return &AnalyzerService{
		client:    client,
		heuristic: heuristic,
		builder:   builder,
		parser:    parser,
		timeout:   defaultRemoteTimeout,
	}
}

// RemoteConfigured reports whether a completion client is available
// ("production" vs "demo" mode on the health surface).
func (s *AnalyzerService) RemoteConfigured() bool {
	return s.client != nil
}

// Analyze runs one analysis. The request is assumed validated; options are
// normalized here so direct callers get the documented defaults.
func (s *AnalyzerService) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	req.Normalize()

	logger := observability.FromContext(ctx)

	if s.client == nil {
		logger.Info("completion client not configured, using heuristic analysis")
		return s.finish(s.heuristic.Analyze(req), req), nil
	}

	system, user := s.builder.Build(req)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.Complete(callCtx, system, user)
	if err != nil {
		logger.Warn("completion call failed, falling back to heuristic analysis",
			observability.String("client", s.client.Name()),
			observability.Error(err))
		return s.finish(s.heuristic.Analyze(req), req), nil
	}

	parsed, err := s.parser.Parse(ctx, reply, req)
	if err != nil {
		logger.Warn("completion reply unusable, falling back to heuristic analysis",
			observability.Error(err))
		return s.finish(s.heuristic.Analyze(req), req), nil
	}

	logger.Info("remote analysis succeeded",
		observability.Int("suggestions", len(parsed.Suggestions)),
		observability.Float64("clarity_score", parsed.Metrics.ClarityScore),
		observability.Bool("rewritten", parsed.OptimizedPrompt != ""))

	return s.finish(parsed, req), nil
}

// finish enforces the suggestion cap and the tip bound.
func (s *AnalyzerService) finish(resp *AnalyzeResponse, req *AnalyzeRequest) *AnalyzeResponse {
	maxSuggestions := req.Options.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	if len(resp.Suggestions) > maxSuggestions {
		resp.Suggestions = resp.Suggestions[:maxSuggestions]
	}
	if len(resp.Tips) > MaxResponseTips {
		resp.Tips = resp.Tips[:MaxResponseTips]
	}
	return resp
}
