package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// ErrEmptyReply indicates the remote service returned nothing the parsers
// could turn into suggestions.
var ErrEmptyReply = errors.New("empty or unusable completion reply")

// CompletionClient is the opaque remote completion dependency: a system
// instruction plus a user message in, a single text completion out.
type CompletionClient interface {
	// Complete submits the instruction pair and returns the completion text.
	Complete(ctx context.Context, system, user string) (string, error)

	// Name returns the client identifier.
	Name() string
}

// ResultCache is the external key/value store with TTL used to short-circuit
// identical requests.
type ResultCache interface {
	// Get retrieves cached result bytes, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores result bytes under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// InstructionBuilder builds the outbound system/user instruction pair for
// the completion service.
type InstructionBuilder interface {
	Build(req *AnalyzeRequest) (system string, user string)
}

// ReplyParser decodes a raw completion into the shared model.
type ReplyParser interface {
	Parse(ctx context.Context, reply string, req *AnalyzeRequest) (*AnalyzeResponse, error)
}
