package domain

import (
	"math"
	"strings"
)

// Scoring policy constants (scoringPolicyV1). The estimators are intentionally
// simple monotone formulas, not learned scores; exact constants matter for
// output parity with the analyzers.
const (
	tokensPerWord = 1.3     // fixed words-to-tokens approximation factor
	costPerWord   = 0.00015 // flat per-word USD estimate

	clarityBase          = 85.0
	clarityPenaltyPer    = 5.0
	specificityBase      = 60.0
	codeIntentBonus      = 20.0
	specificityPerWord   = 0.5
	techAccuracyPenalty  = 20.0
	techAccuracyBase     = 100.0
	improvementPer       = 15.0
	remoteClarityDefault = 80.0
	remoteSpecDefault    = 75.0
	remoteTechDefault    = 90.0
)

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimateTokens approximates the token cost of a word count.
func EstimateTokens(words int) int {
	return int(math.Round(float64(words) * tokensPerWord))
}

// TokenEfficiencyScore is a step function of word count: short prompts score
// 100, long prompts degrade toward a floor of 40.
func TokenEfficiencyScore(words int) float64 {
	switch {
	case words <= 30:
		return 100.0
	case words <= 50:
		return 90.0
	case words <= 100:
		return 70.0
	default:
		return math.Max(40.0, 100.0-float64(words-100)*0.5)
	}
}

// ClampScore bounds a score to [0, 100].
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// EstimateCost converts a word count to an estimated USD cost, rounded to
// four decimal places.
func EstimateCost(words int) float64 {
	return round4(float64(words) * costPerWord)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// computeMetrics derives the metric block shared by both analyzers.
// wordBasis is the word count the token estimates are computed from (the
// optimized prompt when a rewrite exists, the original otherwise).
func computeMetrics(wordBasis int, suggestions []Suggestion, clarity, specificity, techAccuracy float64) PromptMetrics {
	techCount := 0
	for _, s := range suggestions {
		if s.Type == SuggestionTechnicalAccuracy {
			techCount++
		}
	}
	if techCount > 0 {
		techAccuracy = techAccuracyBase - techAccuracyPenalty*float64(techCount)
	}

	return PromptMetrics{
		ClarityScore:       ClampScore(clarity),
		SpecificityScore:   ClampScore(specificity),
		TokenEfficiency:    ClampScore(TokenEfficiencyScore(wordBasis)),
		TechnicalAccuracy:  ClampScore(techAccuracy),
		QualityImprovement: ClampScore(improvementPer * float64(len(suggestions))),
		TokenCount:         EstimateTokens(wordBasis),
		EstimatedCost:      EstimateCost(wordBasis),
	}
}
