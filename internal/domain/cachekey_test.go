package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/martin/internal/domain"
)

func TestCacheKey(t *testing.T) {
	t.Run("should be stable across calls", func(t *testing.T) {
		req := parserRequest()
		require.Equal(t, domain.CacheKey(req), domain.CacheKey(req))
	})

	t.Run("should ignore caller JSON key order", func(t *testing.T) {
		a := `{"prompt":"fix the bug","target_model":"gpt-4","context":{"domain":"debugging"}}`
		b := `{"context":{"domain":"debugging"},"target_model":"gpt-4","prompt":"fix the bug"}`

		var reqA, reqB domain.AnalyzeRequest
		require.NoError(t, json.Unmarshal([]byte(a), &reqA))
		require.NoError(t, json.Unmarshal([]byte(b), &reqB))
		reqA.Normalize()
		reqB.Normalize()

		require.Equal(t, domain.CacheKey(&reqA), domain.CacheKey(&reqB))
	})

	t.Run("should change when prompt changes by one character", func(t *testing.T) {
		reqA := parserRequest()
		reqB := parserRequest()
		reqB.Prompt += "!"

		require.NotEqual(t, domain.CacheKey(reqA), domain.CacheKey(reqB))
	})

	t.Run("should change with target model", func(t *testing.T) {
		reqA := parserRequest()
		reqB := parserRequest()
		reqB.TargetModel = domain.TargetClaude3

		require.NotEqual(t, domain.CacheKey(reqA), domain.CacheKey(reqB))
	})

	t.Run("should change with options", func(t *testing.T) {
		reqA := parserRequest()
		reqB := parserRequest()
		reqB.Options.OptimizeForTokens = !reqB.Options.OptimizeForTokens

		require.NotEqual(t, domain.CacheKey(reqA), domain.CacheKey(reqB))
	})

	t.Run("should carry the namespace prefix", func(t *testing.T) {
		key := domain.CacheKey(parserRequest())
		require.True(t, strings.HasPrefix(key, "martin:analysis:"))
		require.Len(t, key, len("martin:analysis:")+64)
	})
}
