package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Phrase sets the heuristic rules scan for. Order matters: rules fire in a
// fixed sequence and the suggestion list is truncated at the configured cap,
// so earlier rules win when the prompt trips many of them.
var (
	politenessPhrases = []string{
		"please", "could you", "would you", "can you", "i would like", "help me",
	}

	codeIntentKeywords = []string{
		"function", "class", "method", "api", "implement", "create", "build",
		"component", "fix", "debug",
	}

	typeSignalWords = []string{"return", "returns", "->", ":", "type"}

	errorSignalWords = []string{"error", "exception", "handle", "validate", "catch", "try"}

	fillerWords = []string{
		"just", "basically", "simply", "really", "very", "quite", "rather", "somewhat",
	}

	// Additional fillers stripped from code-intent prompts. AI coding
	// assistants need commands, not conversation.
	developerFillerWords = []string{
		"please", "could", "you", "can", "would", "help", "me", "i", "need", "want",
	}

	structureMarkers = []string{":", "-", "•", "1.", "2."}
)

// HeuristicAnalyzer is the deterministic, rule-based analyzer used when the
// completion service is unavailable or unconfigured. It is a pure function
// of the request: identical inputs always produce identical output.
type HeuristicAnalyzer struct{}

// NewHeuristicAnalyzer creates a heuristic analyzer.
func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

// Analyze produces suggestions and metrics without any network access.
func (a *HeuristicAnalyzer) Analyze(req *AnalyzeRequest) *AnalyzeResponse {
	prompt := req.Prompt
	lower := strings.ToLower(prompt)
	codeIntent := containsAny(lower, codeIntentKeywords)

	var suggestions []Suggestion

	if s, ok := a.politenessRule(prompt); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := a.verbosePredicateRule(prompt); ok {
		suggestions = append(suggestions, s)
	}
	if codeIntent {
		if s, ok := a.missingTypesRule(prompt, lower); ok {
			suggestions = append(suggestions, s)
		}
		if s, ok := a.missingErrorHandlingRule(prompt, lower); ok {
			suggestions = append(suggestions, s)
		}
	}
	if s, ok := a.fillerCompactionRule(prompt, codeIntent); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := a.structureFormatRule(prompt); ok {
		suggestions = append(suggestions, s)
	}

	maxSuggestions := req.Options.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	words := WordCount(prompt)
	clarity := clarityBase - clarityPenaltyPer*float64(len(suggestions))
	specificity := specificityBase + specificityPerWord*float64(words)
	if codeIntent {
		specificity += codeIntentBonus
	}

	return &AnalyzeResponse{
		Suggestions: suggestions,
		Metrics:     computeMetrics(words, suggestions, clarity, specificity, remoteTechDefault),
		Tips:        ModelTips(req.TargetModel, req.Context.Domain),
	}
}

// politenessRule removes the first politeness phrase found. Spans come from
// foldIndex, which maps case-insensitive matches back to byte offsets in the
// original prompt.
func (a *HeuristicAnalyzer) politenessRule(prompt string) (Suggestion, bool) {
	for _, phrase := range politenessPhrases {
		span, ok := foldIndex(prompt, phrase)
		if !ok {
			continue
		}
		return Suggestion{
			ID:           suggestionID(prompt, "politeness"),
			Type:         SuggestionTokenOptimization,
			Original:     prompt[span.Start:span.End],
			Suggested:    "",
			Confidence:   0.95,
			Explanation:  "Remove unnecessary polite language - be direct",
			TokenDelta:   -WordCount(phrase),
			Position:     span,
			DeveloperTip: "AI coding assistants don't need politeness - save tokens",
		}, true
	}
	return Suggestion{}, false
}

// verbosePredicateRule rewrites "function that" into the infinitive form.
func (a *HeuristicAnalyzer) verbosePredicateRule(prompt string) (Suggestion, bool) {
	const phrase = "function that"
	span, ok := foldIndex(prompt, phrase)
	if !ok {
		return Suggestion{}, false
	}
	return Suggestion{
		ID:           suggestionID(prompt, "verbose-predicate"),
		Type:         SuggestionClarity,
		Original:     phrase,
		Suggested:    "function to",
		Confidence:   0.9,
		Explanation:  "More concise phrasing",
		TokenDelta:   -1,
		Position:     span,
		DeveloperTip: "Use: 'function to calculate' not 'function that calculates'",
	}, true
}

// missingTypesRule fires when a code-intent prompt never mentions types or
// return values.
func (a *HeuristicAnalyzer) missingTypesRule(prompt, lower string) (Suggestion, bool) {
	if containsAny(lower, typeSignalWords) {
		return Suggestion{}, false
	}
	return Suggestion{
		ID:           suggestionID(prompt, "missing-types"),
		Type:         SuggestionSpecificity,
		Original:     snippet(prompt, snippetSpanWidth),
		Suggested:    "[Add return type]: -> ResponseType",
		Confidence:   0.85,
		Explanation:  "Always specify return types for functions",
		TokenDelta:   3,
		Position:     FallbackSpan(prompt, snippetSpanWidth),
		DeveloperTip: "Include types: funcName(param: Type): ReturnType",
	}, true
}

// missingErrorHandlingRule fires when a code-intent prompt never mentions
// error handling.
func (a *HeuristicAnalyzer) missingErrorHandlingRule(prompt, lower string) (Suggestion, bool) {
	if containsAny(lower, errorSignalWords) {
		return Suggestion{}, false
	}
	return Suggestion{
		ID:           suggestionID(prompt, "missing-error-handling"),
		Type:         SuggestionTechnicalAccuracy,
		Original:     "implement",
		Suggested:    "implement with error handling for",
		Confidence:   0.8,
		Explanation:  "Specify error handling requirements",
		TokenDelta:   4,
		Position:     FallbackSpan(prompt, 20),
		DeveloperTip: "Always specify: 'handle X errors, throw Y exceptions'",
	}, true
}

// fillerCompactionRule strips filler tokens and, when the prompt shrinks,
// proposes the compacted text (templated for code-intent prompts).
func (a *HeuristicAnalyzer) fillerCompactionRule(prompt string, codeIntent bool) (Suggestion, bool) {
	fillers := make(map[string]struct{}, len(fillerWords)+len(developerFillerWords))
	for _, w := range fillerWords {
		fillers[w] = struct{}{}
	}
	if codeIntent {
		for _, w := range developerFillerWords {
			fillers[w] = struct{}{}
		}
	}

	words := strings.Fields(prompt)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, drop := fillers[strings.ToLower(w)]; drop {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) >= len(words) {
		return Suggestion{}, false
	}

	var suggested string
	if codeIntent {
		suggested = codeTemplate(kept)
	} else {
		suggested = strings.Join(kept, " ")
	}

	return Suggestion{
		ID:         suggestionID(prompt, "filler-compaction"),
		Type:       SuggestionStructure,
		Original:   snippet(prompt, fallbackSpanWidth),
		Suggested:  suggested,
		Confidence: 0.9,
		Explanation: fmt.Sprintf("Remove filler words - reduced from %d to %d words",
			len(words), len(kept)),
		TokenDelta:   len(kept) - len(words),
		Position:     Span{Start: 0, End: len(prompt)},
		DeveloperTip: "Every word should add value - remove fillers",
	}, true
}

// structureFormatRule proposes a structured template for free-flowing prompts.
func (a *HeuristicAnalyzer) structureFormatRule(prompt string) (Suggestion, bool) {
	for _, marker := range structureMarkers {
		if strings.Contains(prompt, marker) {
			return Suggestion{}, false
		}
	}
	return Suggestion{
		ID:           suggestionID(prompt, "structure-format"),
		Type:         SuggestionStructure,
		Original:     snippet(prompt, 40),
		Suggested:    "Format: [ACTION]: [SPEC] • Input: [TYPE] • Output: [TYPE] • Constraints: [LIST]",
		Confidence:   0.85,
		Explanation:  "Use structured format for clarity",
		TokenDelta:   5,
		Position:     FallbackSpan(prompt, 40),
		DeveloperTip: "Structure: ACTION: what • INPUT: type • OUTPUT: format • CONSTRAINTS: list",
	}, true
}

// codeTemplate turns compacted words into the ACTION/INPUT/OUTPUT/CONSTRAINTS
// skeleton used for code-intent prompts.
func codeTemplate(words []string) string {
	head := words
	if len(head) > 5 {
		head = head[:5]
	}
	var b strings.Builder
	b.WriteString("Implement " + strings.Join(head, " ") + ":\n")
	b.WriteString("- Input: [SPECIFY TYPE]\n")
	b.WriteString("- Output: [SPECIFY TYPE]\n")
	b.WriteString("- Requirements: [ADD CONSTRAINTS]\n")
	b.WriteString("- Error handling: [SPECIFY APPROACH]")
	return b.String()
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// suggestionID derives a deterministic UUID from the prompt and rule name so
// repeated analyses of the same input are bit-identical.
func suggestionID(prompt, rule string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("martin:suggestion:"+rule+":"+prompt)).String()
}
