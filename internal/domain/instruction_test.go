package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/martin/internal/domain"
)

func TestInstructionBuilder(t *testing.T) {
	builder := domain.NewInstructionBuilder()

	t.Run("should embed prompt and schema", func(t *testing.T) {
		req := heuristicRequest("create a sorting function")
		system, user := builder.Build(req)

		require.Contains(t, system, `"overall_analysis"`)
		require.Contains(t, system, "token_delta")
		require.Contains(t, user, "create a sorting function")
		require.Contains(t, user, string(req.TargetModel))
	})

	t.Run("should use code preamble for code domains", func(t *testing.T) {
		req := heuristicRequest("fix the bug")
		req.Context.Domain = domain.DomainDebugging

		system, _ := builder.Build(req)
		require.Contains(t, system, "AI coding assistants")
	})

	t.Run("should use code preamble for claude targets", func(t *testing.T) {
		req := heuristicRequest("summarize this article")
		req.Context.Domain = domain.DomainAnalytical
		req.TargetModel = domain.TargetClaudeCode

		system, _ := builder.Build(req)
		require.Contains(t, system, "AI coding assistants")
	})

	t.Run("should use plain preamble otherwise", func(t *testing.T) {
		req := heuristicRequest("summarize this article")
		req.Context.Domain = domain.DomainAnalytical
		req.TargetModel = domain.TargetGemini

		system, _ := builder.Build(req)
		require.NotContains(t, system, "AI coding assistants")
		require.Contains(t, system, "gemini")
	})

	t.Run("should include language and framework context", func(t *testing.T) {
		req := heuristicRequest("build an endpoint")
		req.Context.Language = "Go"
		req.Context.Framework = "chi"

		_, user := builder.Build(req)
		require.Contains(t, user, "Programming Language: Go")
		require.Contains(t, user, "Framework: chi")
	})

	t.Run("should carry the suggestion cap", func(t *testing.T) {
		req := heuristicRequest("build an endpoint")
		req.Options.MaxSuggestions = 7

		system, _ := builder.Build(req)
		require.Contains(t, system, "maximum 7")
	})
}

func TestModelTips(t *testing.T) {
	t.Run("should cap at three", func(t *testing.T) {
		tips := domain.ModelTips(domain.TargetGPT4, domain.DomainCodeGeneration)
		require.Len(t, tips, domain.MaxResponseTips)
	})

	t.Run("should fall back for unknown models", func(t *testing.T) {
		tips := domain.ModelTips("some-future-model", domain.DomainCreative)
		require.NotEmpty(t, tips)
	})

	t.Run("should add code tips for unknown model in code domain", func(t *testing.T) {
		tips := domain.ModelTips("some-future-model", domain.DomainDebugging)
		require.Contains(t, strings.Join(tips, " "), "error handling")
	})
}
