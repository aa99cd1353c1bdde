package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/martin/internal/domain"
)

func TestAnalyzeRequestValidate(t *testing.T) {
	valid := func() *domain.AnalyzeRequest {
		return &domain.AnalyzeRequest{
			Prompt:      "write a parser",
			TargetModel: domain.TargetGPT4,
		}
	}

	t.Run("should accept minimal request", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("should reject empty prompt", func(t *testing.T) {
		req := valid()
		req.Prompt = ""
		require.Error(t, req.Validate())
	})

	t.Run("should reject oversized prompt", func(t *testing.T) {
		req := valid()
		req.Prompt = strings.Repeat("a", domain.MaxPromptLength+1)
		require.Error(t, req.Validate())
	})

	t.Run("should reject missing target model", func(t *testing.T) {
		req := valid()
		req.TargetModel = ""
		require.Error(t, req.Validate())
	})

	t.Run("should accept unknown target model", func(t *testing.T) {
		req := valid()
		req.TargetModel = "some-future-model"
		require.NoError(t, req.Validate())
	})

	t.Run("should reject too many previous prompts", func(t *testing.T) {
		req := valid()
		req.Context.PreviousPrompts = make([]string, domain.MaxPreviousPrompts+1)
		require.Error(t, req.Validate())
	})

	t.Run("should reject out-of-range token reduction", func(t *testing.T) {
		req := valid()
		req.Options.TargetTokenReduction = 0.6
		require.Error(t, req.Validate())

		req.Options.TargetTokenReduction = -0.1
		require.Error(t, req.Validate())
	})

	t.Run("should reject negative suggestion cap", func(t *testing.T) {
		req := valid()
		req.Options.MaxSuggestions = -1
		require.Error(t, req.Validate())
	})
}

func TestAnalyzeRequestNormalize(t *testing.T) {
	req := &domain.AnalyzeRequest{Prompt: "x", TargetModel: domain.TargetGrok}
	req.Normalize()

	require.Equal(t, domain.LevelModerate, req.Options.SuggestionLevel)
	require.Equal(t, domain.DefaultMaxSuggestions, req.Options.MaxSuggestions)
	require.Equal(t, domain.DomainTechnical, req.Context.Domain)

	// Explicit values survive normalization.
	req2 := &domain.AnalyzeRequest{
		Prompt:      "x",
		TargetModel: domain.TargetGrok,
		Context:     domain.PromptContext{Domain: domain.DomainCreative},
		Options:     domain.AnalysisOptions{MaxSuggestions: 2, SuggestionLevel: domain.LevelAggressive},
	}
	req2.Normalize()
	require.Equal(t, 2, req2.Options.MaxSuggestions)
	require.Equal(t, domain.LevelAggressive, req2.Options.SuggestionLevel)
	require.Equal(t, domain.DomainCreative, req2.Context.Domain)
}

func TestSpanJSON(t *testing.T) {
	t.Run("should marshal as two-element array", func(t *testing.T) {
		data, err := json.Marshal(domain.Span{Start: 3, End: 17})
		require.NoError(t, err)
		require.JSONEq(t, `[3,17]`, string(data))
	})

	t.Run("should unmarshal from array form", func(t *testing.T) {
		var span domain.Span
		require.NoError(t, json.Unmarshal([]byte(`[3,17]`), &span))
		require.Equal(t, domain.Span{Start: 3, End: 17}, span)
	})

	t.Run("should reject object form", func(t *testing.T) {
		var span domain.Span
		require.Error(t, json.Unmarshal([]byte(`{"start":3,"end":17}`), &span))
	})
}

func TestSuggestionTypeKnown(t *testing.T) {
	for _, known := range []domain.SuggestionType{
		domain.SuggestionGrammar,
		domain.SuggestionClarity,
		domain.SuggestionSpecificity,
		domain.SuggestionStructure,
		domain.SuggestionTokenOptimization,
		domain.SuggestionTechnicalAccuracy,
	} {
		require.True(t, known.Known(), "%s", known)
	}
	require.False(t, domain.SuggestionType("made_up").Known())
}
