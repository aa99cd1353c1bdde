package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/martin/internal/domain"
)

const structuredReply = `{
	"suggestions": [
		{
			"type": "clarity",
			"original_text": "function that",
			"suggested_text": "function to",
			"confidence": 0.9,
			"explanation": "More concise phrasing",
			"token_delta": -1
		}
	],
	"overall_analysis": {
		"clarity_score": 65,
		"specificity_score": 55,
		"technical_accuracy_score": 88,
		"optimized_prompt": "Implement a data processing function with typed input and output"
	}
}`

func parserRequest() *domain.AnalyzeRequest {
	return heuristicRequest("could you please help me create a function that processes data")
}

func TestSchemaParser_StrictJSON(t *testing.T) {
	parser := domain.NewSchemaParser()
	req := parserRequest()

	resp, err := parser.Parse(context.Background(), structuredReply, req)
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 2)

	rewrite := resp.Suggestions[0]
	require.Equal(t, domain.SuggestionStructure, rewrite.Type)
	require.Equal(t, resp.OptimizedPrompt, rewrite.Suggested)
	require.Equal(t, domain.Span{Start: 0, End: len(req.Prompt)}, rewrite.Position)
	require.InDelta(t, 0.95, rewrite.Confidence, 1e-9)

	item := resp.Suggestions[1]
	require.Equal(t, domain.SuggestionClarity, item.Type)
	require.Equal(t, "function that", item.Original)
	require.Equal(t, "function to", item.Suggested)
	// Located against the original prompt, not a fallback span.
	require.Equal(t, 34, item.Position.Start)

	require.Equal(t, 65.0, resp.Metrics.ClarityScore)
	require.Equal(t, 55.0, resp.Metrics.SpecificityScore)
	require.Equal(t, 88.0, resp.Metrics.TechnicalAccuracy)
	// Token estimates follow the optimized prompt once a rewrite exists.
	require.Equal(t, domain.EstimateTokens(10), resp.Metrics.TokenCount)
}

func TestSchemaParser_FencedJSON(t *testing.T) {
	parser := domain.NewSchemaParser()
	fenced := "Here is the analysis:\n```json\n" + structuredReply + "\n```\nHope that helps."

	resp, err := parser.Parse(context.Background(), fenced, parserRequest())
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 2)
	require.NotEmpty(t, resp.OptimizedPrompt)
}

func TestSchemaParser_PartialItems(t *testing.T) {
	parser := domain.NewSchemaParser()
	reply := `{
		"suggestions": [
			{"type": "clarity", "original_text": "function that", "suggested_text": "function to", "confidence": 0.9},
			{"type": "clarity", "suggested_text": "missing the original text"},
			{"type": "made_up_category", "original_text": "x", "suggested_text": "y"},
			{"type": "token_optimization", "original_text": "please", "confidence": 0.95}
		]
	}`

	resp, err := parser.Parse(context.Background(), reply, parserRequest())
	require.NoError(t, err)

	// Two valid items survive; the item missing original_text and the one
	// with an unknown category are dropped. token_optimization items may
	// omit suggested_text (deletion suggestions).
	require.Len(t, resp.Suggestions, 2)
	require.Equal(t, domain.SuggestionClarity, resp.Suggestions[0].Type)
	require.Equal(t, domain.SuggestionTokenOptimization, resp.Suggestions[1].Type)
}

func TestSchemaParser_Freeform(t *testing.T) {
	parser := domain.NewSchemaParser()
	reply := `The prompt is decent overall.
I suggest removing the politeness phrasing.
You could improve specificity by naming types.
Consider whitespace.
Replace vague verbs with concrete ones.
I would also suggest adding examples.`

	resp, err := parser.Parse(context.Background(), reply, parserRequest())
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 3, "freeform extraction caps at three")
	for _, s := range resp.Suggestions {
		require.Equal(t, domain.SuggestionClarity, s.Type)
		require.InDelta(t, 0.7, s.Confidence, 1e-9)
		require.NotEmpty(t, s.Explanation)
	}
}

func TestSchemaParser_EmptyReply(t *testing.T) {
	parser := domain.NewSchemaParser()

	for _, reply := range []string{"", "   ", "\n\n", "nothing useful here"} {
		_, err := parser.Parse(context.Background(), reply, parserRequest())
		require.ErrorIs(t, err, domain.ErrEmptyReply, "reply=%q", reply)
	}
}

func TestSchemaParser_AlternateOverallKey(t *testing.T) {
	parser := domain.NewSchemaParser()
	reply := `{"analysis": {"clarity_score": 42, "optimized_prompt": "do the thing"}}`

	resp, err := parser.Parse(context.Background(), reply, parserRequest())
	require.NoError(t, err)
	require.Equal(t, 42.0, resp.Metrics.ClarityScore)
	require.Equal(t, "do the thing", resp.OptimizedPrompt)
	// Missing scores take the standing defaults.
	require.Equal(t, 75.0, resp.Metrics.SpecificityScore)
}

func TestRewriteParser(t *testing.T) {
	parser := domain.NewRewriteParser()
	req := parserRequest()

	t.Run("should surface body as optimized prompt", func(t *testing.T) {
		resp, err := parser.Parse(context.Background(), "Implement data processing:\n- Input: []byte\n- Output: Result", req)
		require.NoError(t, err)
		require.NotEmpty(t, resp.OptimizedPrompt)
		require.Len(t, resp.Suggestions, 1)
		require.Equal(t, domain.Span{Start: 0, End: len(req.Prompt)}, resp.Suggestions[0].Position)
	})

	t.Run("should strip fences", func(t *testing.T) {
		resp, err := parser.Parse(context.Background(), "```\nrewritten prompt\n```", req)
		require.NoError(t, err)
		require.Equal(t, "rewritten prompt", resp.OptimizedPrompt)
	})

	t.Run("should reject empty body", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), "   ", req)
		require.ErrorIs(t, err, domain.ErrEmptyReply)
	})

	t.Run("should emit no suggestion when rewrite matches prompt", func(t *testing.T) {
		resp, err := parser.Parse(context.Background(), req.Prompt, req)
		require.NoError(t, err)
		require.Empty(t, resp.Suggestions)
	})
}
