package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TargetModel identifies the generative model a prompt is being written for.
// The set is open: values outside the known constants are carried through
// unchanged and analyzed with the generic instruction set.
type TargetModel string

const (
	TargetGPT4       TargetModel = "gpt-4"
	TargetClaude3    TargetModel = "claude-3"
	TargetClaudeCode TargetModel = "claude-code"
	TargetCursor     TargetModel = "cursor"
	TargetGemini     TargetModel = "gemini"
	TargetCopilot    TargetModel = "github-copilot"
	TargetGrok       TargetModel = "grok"
)

// KnownTargetModels returns the models the service advertises.
func KnownTargetModels() []TargetModel {
	return []TargetModel{
		TargetGPT4,
		TargetClaude3,
		TargetClaudeCode,
		TargetCursor,
		TargetGemini,
		TargetCopilot,
		TargetGrok,
	}
}

// SuggestionType categorizes a suggestion.
type SuggestionType string

const (
	SuggestionGrammar           SuggestionType = "grammar"
	SuggestionClarity           SuggestionType = "clarity"
	SuggestionSpecificity       SuggestionType = "specificity"
	SuggestionStructure         SuggestionType = "structure"
	SuggestionTokenOptimization SuggestionType = "token_optimization"
	SuggestionTechnicalAccuracy SuggestionType = "technical_accuracy"
)

// Known reports whether the suggestion type is one of the documented
// categories. Unknown categories returned by the remote service are dropped
// as item errors rather than failing the whole response.
func (t SuggestionType) Known() bool {
	switch t {
	case SuggestionGrammar, SuggestionClarity, SuggestionSpecificity,
		SuggestionStructure, SuggestionTokenOptimization, SuggestionTechnicalAccuracy:
		return true
	}
	return false
}

// PromptDomain tags the usage context of a prompt.
type PromptDomain string

const (
	DomainTechnical      PromptDomain = "technical"
	DomainCreative       PromptDomain = "creative"
	DomainAnalytical     PromptDomain = "analytical"
	DomainConversational PromptDomain = "conversational"
	DomainCodeGeneration PromptDomain = "code_generation"
	DomainDebugging      PromptDomain = "debugging"
	DomainArchitecture   PromptDomain = "architecture"
	DomainAPIDesign      PromptDomain = "api_design"
	DomainRefactoring    PromptDomain = "refactoring"
)

// SuggestionLevel controls how aggressively the analyzers rewrite.
type SuggestionLevel string

const (
	LevelAggressive   SuggestionLevel = "aggressive"
	LevelModerate     SuggestionLevel = "moderate"
	LevelConservative SuggestionLevel = "conservative"
)

// PromptContext describes where and how the prompt will be used.
type PromptContext struct {
	Domain          PromptDomain `json:"domain"`
	Language        string       `json:"language,omitempty"`
	Framework       string       `json:"framework,omitempty"`
	PreviousPrompts []string     `json:"previous_prompts,omitempty"`
	SessionID       string       `json:"session_id,omitempty"`
}

// AnalysisOptions are the caller-facing analysis knobs.
type AnalysisOptions struct {
	SuggestionLevel      SuggestionLevel `json:"suggestion_level,omitempty"`
	PreserveStyle        bool            `json:"preserve_style"`
	OptimizeForTokens    bool            `json:"optimize_for_tokens"`
	IncludeExamples      bool            `json:"include_examples"`
	MaxSuggestions       int             `json:"max_suggestions,omitempty"`
	TargetTokenReduction float64         `json:"target_token_reduction,omitempty"`
}

// DefaultOptions returns the options applied when the caller leaves them out.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		SuggestionLevel:      LevelModerate,
		PreserveStyle:        true,
		OptimizeForTokens:    true,
		IncludeExamples:      true,
		MaxSuggestions:       DefaultMaxSuggestions,
		TargetTokenReduction: 0,
	}
}

// Request bounds.
const (
	MaxPromptLength       = 10000
	MaxPreviousPrompts    = 10
	MaxTargetReduction    = 0.5
	DefaultMaxSuggestions = 5
	MaxResponseTips       = 3
)

// AnalyzeRequest is one prompt analysis request.
type AnalyzeRequest struct {
	Prompt      string          `json:"prompt"`
	TargetModel TargetModel     `json:"target_model"`
	Context     PromptContext   `json:"context"`
	Options     AnalysisOptions `json:"options"`
}

// Validate rejects malformed requests before they reach the engine.
// The engine assumes requests it receives have passed this check.
func (r *AnalyzeRequest) Validate() error {
	if r.Prompt == "" {
		return errors.New("prompt cannot be empty")
	}
	if len(r.Prompt) > MaxPromptLength {
		return fmt.Errorf("prompt exceeds %d characters", MaxPromptLength)
	}
	if r.TargetModel == "" {
		return errors.New("target_model is required")
	}
	if len(r.Context.PreviousPrompts) > MaxPreviousPrompts {
		return fmt.Errorf("previous_prompts exceeds %d entries", MaxPreviousPrompts)
	}
	if r.Options.TargetTokenReduction < 0 || r.Options.TargetTokenReduction > MaxTargetReduction {
		return fmt.Errorf("target_token_reduction must be in [0, %g]", MaxTargetReduction)
	}
	if r.Options.MaxSuggestions < 0 {
		return errors.New("max_suggestions cannot be negative")
	}
	return nil
}

// Normalize fills defaulted option values in place.
func (r *AnalyzeRequest) Normalize() {
	if r.Options.SuggestionLevel == "" {
		r.Options.SuggestionLevel = LevelModerate
	}
	if r.Options.MaxSuggestions == 0 {
		r.Options.MaxSuggestions = DefaultMaxSuggestions
	}
	if r.Context.Domain == "" {
		r.Context.Domain = DomainTechnical
	}
}

// Span is a half-open [Start, End) character range into the original prompt.
// It marshals as a two-element array to match the wire format.
type Span struct {
	Start int
	End   int
}

// MarshalJSON encodes the span as [start, end].
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

// UnmarshalJSON decodes a [start, end] array.
func (s *Span) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid span: %w", err)
	}
	s.Start, s.End = pair[0], pair[1]
	return nil
}

// Suggestion is one localized, typed recommendation to change a fragment of
// the prompt.
type Suggestion struct {
	ID           string         `json:"id"`
	Type         SuggestionType `json:"type"`
	Original     string         `json:"original"`
	Suggested    string         `json:"suggested"`
	Confidence   float64        `json:"confidence"`
	Explanation  string         `json:"explanation"`
	TokenDelta   int            `json:"token_delta"`
	Position     Span           `json:"position"`
	DeveloperTip string         `json:"developer_tip,omitempty"`
	CodeExample  string         `json:"code_example,omitempty"`
}

// PromptMetrics are aggregate quality scores for a prompt. All scores live
// in [0, 100].
type PromptMetrics struct {
	ClarityScore       float64 `json:"clarity_score"`
	SpecificityScore   float64 `json:"specificity_score"`
	TokenEfficiency    float64 `json:"token_efficiency"`
	TechnicalAccuracy  float64 `json:"technical_accuracy"`
	QualityImprovement float64 `json:"estimated_quality_improvement"`
	TokenCount         int     `json:"token_count"`
	EstimatedCost      float64 `json:"estimated_cost"`
}

// AnalyzeResponse is the full result of one analysis.
type AnalyzeResponse struct {
	Suggestions      []Suggestion  `json:"suggestions"`
	Metrics          PromptMetrics `json:"metrics"`
	OptimizedPrompt  string        `json:"optimized_prompt,omitempty"`
	ProcessingTimeMs int           `json:"processing_time_ms"`
	CacheHit         bool          `json:"cache_hit"`
	Tips             []string      `json:"tips"`
}
