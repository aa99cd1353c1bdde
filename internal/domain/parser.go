package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/davidbz/martin/internal/observability"
)

// Wire schema of the completion service's structured reply. Suggestions are
// kept raw so one malformed item never aborts decoding of the rest.
type remoteReply struct {
	Suggestions []json.RawMessage `json:"suggestions"`
	Overall     *remoteOverall    `json:"overall_analysis"`
	Analysis    *remoteOverall    `json:"analysis"` // older schema revision name
}

type remoteOverall struct {
	ClarityScore      *float64 `json:"clarity_score"`
	SpecificityScore  *float64 `json:"specificity_score"`
	TechnicalAccuracy *float64 `json:"technical_accuracy_score"`
	OverallQuality    *float64 `json:"overall_quality"`
	MainIssues        []string `json:"main_issues"`
	Strengths         []string `json:"strengths"`
	OptimizedPrompt   string   `json:"optimized_prompt"`
}

type remoteSuggestion struct {
	Type          string  `json:"type"`
	OriginalText  string  `json:"original_text"`
	SuggestedText string  `json:"suggested_text"`
	Confidence    float64 `json:"confidence"`
	Explanation   string  `json:"explanation"`
	TokenDelta    int     `json:"token_delta"`
	DeveloperTip  string  `json:"developer_tip"`
	CodeExample   string  `json:"code_example"`
}

// Keywords that mark a usable line in a freeform (non-JSON) completion.
var freeformKeywords = []string{"suggest", "improve", "change", "replace"}

const (
	freeformMaxSuggestions = 3
	freeformConfidence     = 0.7
	rewriteConfidence      = 0.95
	rewriteSnippetWidth    = 100
)

// SchemaParser decodes the documented reply schema, attempting in order:
// strict JSON, markdown-fenced JSON, then a freeform line scan.
type SchemaParser struct{}

// NewSchemaParser creates the default reply parser.
func NewSchemaParser() *SchemaParser {
	return &SchemaParser{}
}

// Parse turns a raw completion into an AnalyzeResponse. It returns
// ErrEmptyReply when none of the strategies yield anything usable, which the
// orchestrator treats as a fallback trigger.
func (p *SchemaParser) Parse(ctx context.Context, reply string, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	body := stripFences(reply)
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyReply
	}

	var decoded remoteReply
	if err := json.Unmarshal([]byte(body), &decoded); err == nil {
		if len(decoded.Suggestions) > 0 || decoded.Overall != nil || decoded.Analysis != nil {
			return p.buildStructured(ctx, &decoded, req), nil
		}
	}

	return parseFreeform(reply, req)
}

// buildStructured maps a decoded schema reply into the shared model.
func (p *SchemaParser) buildStructured(ctx context.Context, decoded *remoteReply, req *AnalyzeRequest) *AnalyzeResponse {
	logger := observability.FromContext(ctx)
	prompt := req.Prompt

	overall := decoded.Overall
	if overall == nil {
		overall = decoded.Analysis
	}
	if overall == nil {
		overall = &remoteOverall{}
	}

	var suggestions []Suggestion

	// A full rewrite becomes the first, highest-confidence suggestion with a
	// whole-prompt span.
	optimized := strings.TrimSpace(overall.OptimizedPrompt)
	if optimized != "" && optimized != prompt {
		suggestions = append(suggestions, Suggestion{
			ID:           suggestionID(prompt, "optimized-rewrite"),
			Type:         SuggestionStructure,
			Original:     snippet(prompt, rewriteSnippetWidth),
			Suggested:    optimized,
			Confidence:   rewriteConfidence,
			Explanation:  "Complete optimized rewrite for maximum efficiency",
			TokenDelta:   WordCount(optimized) - WordCount(prompt),
			Position:     Span{Start: 0, End: len(prompt)},
			DeveloperTip: "Use this optimized version directly for best results",
		})
	}

	for i, raw := range decoded.Suggestions {
		item, err := decodeItem(raw)
		if err != nil {
			logger.Warn("dropping malformed suggestion item",
				observability.Int("index", i),
				observability.Error(err))
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ID:           suggestionID(prompt, "remote-"+itoa(i)),
			Type:         SuggestionType(item.Type),
			Original:     item.OriginalText,
			Suggested:    item.SuggestedText,
			Confidence:   clampConfidence(item.Confidence),
			Explanation:  item.Explanation,
			TokenDelta:   item.TokenDelta,
			Position:     LocateFragment(prompt, item.OriginalText),
			DeveloperTip: item.DeveloperTip,
			CodeExample:  item.CodeExample,
		})
	}

	basis := WordCount(prompt)
	if optimized != "" {
		basis = WordCount(optimized)
	}

	resp := &AnalyzeResponse{
		Suggestions:     suggestions,
		OptimizedPrompt: optimized,
		Metrics: computeMetrics(basis, suggestions,
			scoreOr(overall.ClarityScore, remoteClarityDefault),
			scoreOr(overall.SpecificityScore, remoteSpecDefault),
			scoreOr(overall.TechnicalAccuracy, remoteTechDefault)),
		Tips: remoteTips(overall.Strengths),
	}
	return resp
}

// parseFreeform scans a plain-text completion line by line and synthesizes
// low-confidence clarity suggestions from lines that look like advice.
func parseFreeform(reply string, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	prompt := req.Prompt
	var suggestions []Suggestion

	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !containsAny(strings.ToLower(trimmed), freeformKeywords) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ID:          suggestionID(prompt, "freeform-"+itoa(len(suggestions))),
			Type:        SuggestionClarity,
			Original:    snippet(prompt, snippetSpanWidth),
			Suggested:   "See explanation",
			Confidence:  freeformConfidence,
			Explanation: trimmed,
			TokenDelta:  0,
			Position:    FallbackSpan(prompt, snippetSpanWidth),
		})
		if len(suggestions) >= freeformMaxSuggestions {
			break
		}
	}

	if len(suggestions) == 0 {
		return nil, ErrEmptyReply
	}

	words := WordCount(prompt)
	return &AnalyzeResponse{
		Suggestions: suggestions,
		Metrics: computeMetrics(words, suggestions,
			clarityBase, remoteSpecDefault, remoteTechDefault),
		Tips: ModelTips(req.TargetModel, req.Context.Domain),
	}, nil
}

// RewriteParser handles the rewrite-first schema revision where the entire
// completion body is the optimized prompt, with no wrapping JSON.
type RewriteParser struct{}

// NewRewriteParser creates a rewrite-first reply parser.
func NewRewriteParser() *RewriteParser {
	return &RewriteParser{}
}

// Parse surfaces the completion as the optimized prompt and a single
// whole-prompt structure suggestion.
func (p *RewriteParser) Parse(_ context.Context, reply string, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	prompt := req.Prompt
	optimized := strings.TrimSpace(stripFences(reply))
	if optimized == "" {
		return nil, ErrEmptyReply
	}

	var suggestions []Suggestion
	if optimized != prompt {
		suggestions = append(suggestions, Suggestion{
			ID:           suggestionID(prompt, "optimized-rewrite"),
			Type:         SuggestionStructure,
			Original:     snippet(prompt, rewriteSnippetWidth),
			Suggested:    optimized,
			Confidence:   rewriteConfidence,
			Explanation:  "Complete developer-focused optimization for maximum clarity and efficiency",
			TokenDelta:   WordCount(optimized) - WordCount(prompt),
			Position:     Span{Start: 0, End: len(prompt)},
			DeveloperTip: "Use this version directly - it includes all technical specifications the AI needs",
		})
	}

	return &AnalyzeResponse{
		Suggestions:     suggestions,
		OptimizedPrompt: optimized,
		Metrics: computeMetrics(WordCount(optimized), suggestions,
			clarityBase, remoteSpecDefault, remoteTechDefault),
		Tips: ModelTips(req.TargetModel, req.Context.Domain),
	}, nil
}

// stripFences extracts the body of a ```json or generic ``` fenced block,
// returning the input unchanged when no fence is present.
func stripFences(reply string) string {
	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(reply, fence)
		if start < 0 {
			continue
		}
		rest := reply[start+len(fence):]
		end := strings.Index(rest, "```")
		if end < 0 {
			return strings.TrimSpace(rest)
		}
		return strings.TrimSpace(rest[:end])
	}
	return strings.TrimSpace(reply)
}

// decodeItem validates one raw suggestion item. Missing required fields or an
// unknown category are item errors: the item is dropped, the reply survives.
func decodeItem(raw json.RawMessage) (*remoteSuggestion, error) {
	var item remoteSuggestion
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	if item.OriginalText == "" {
		return nil, errMissingField("original_text")
	}
	if item.SuggestedText == "" && item.Type != string(SuggestionTokenOptimization) {
		return nil, errMissingField("suggested_text")
	}
	if !SuggestionType(item.Type).Known() {
		return nil, errUnknownCategory(item.Type)
	}
	return &item, nil
}

func errMissingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

func errUnknownCategory(category string) error {
	return fmt.Errorf("unknown suggestion category %q", category)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func clampConfidence(c float64) float64 {
	if c <= 0 {
		return freeformConfidence
	}
	if c > 1 {
		return 1
	}
	return c
}

func scoreOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// remoteTips blends reply strengths with the standing developer tips.
func remoteTips(strengths []string) []string {
	tips := []string{
		"Always start prompts with action verbs",
		"Include specific types and return values",
		"Add error handling requirements explicitly",
	}
	if len(strengths) > 0 {
		head := strengths
		if len(head) > 2 {
			head = head[:2]
		}
		tips = append(append([]string{}, head...), tips[0])
	}
	if len(tips) > MaxResponseTips {
		tips = tips[:MaxResponseTips]
	}
	return tips
}
