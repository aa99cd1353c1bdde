package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

const cacheKeyPrefix = "martin:analysis:"

// cacheKeyPayload pins the canonical field order the hash is computed over.
// Marshaling a struct (not a map) makes the key independent of the JSON key
// order the caller happened to send.
type cacheKeyPayload struct {
	Prompt      string          `json:"prompt"`
	TargetModel TargetModel     `json:"target_model"`
	Domain      PromptDomain    `json:"domain"`
	Options     AnalysisOptions `json:"options"`
}

// CacheKey derives the content hash identifying an analysis request for the
// external cache collaborator. Identical requests always produce the same
// key; any change to the prompt, target model, domain or options changes it.
func CacheKey(req *AnalyzeRequest) string {
	payload, err := json.Marshal(cacheKeyPayload{
		Prompt:      req.Prompt,
		TargetModel: req.TargetModel,
		Domain:      req.Context.Domain,
		Options:     req.Options,
	})
	if err != nil {
		// Marshaling plain strings and numbers cannot fail; keep the
		// signature simple.
		return cacheKeyPrefix + "invalid"
	}

	sum := sha256.Sum256(payload)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
