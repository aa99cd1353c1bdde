package domain

import (
	"fmt"
	"strings"
)

// Per-model optimization guidance baked into the outbound instruction.
type modelInstruction struct {
	Guidance string
	Focus    []string
}

var modelInstructions = map[TargetModel]modelInstruction{
	TargetGPT4: {
		Guidance: "Remove ALL unnecessary words. Start with action verbs. Specify EXACT output format.",
		Focus:    []string{"step-by-step reasoning", "explicit constraints", "output format"},
	},
	TargetClaude3: {
		Guidance: "Be direct but include context. Use 'Code:' prefix for code requests. Specify language and framework versions.",
		Focus:    []string{"natural language", "context awareness", "safety"},
	},
	TargetGemini: {
		Guidance: "Extremely concise. Use bullet points. Include file types and structure requirements.",
		Focus:    []string{"visual descriptions", "extended context", "cross-modal reasoning"},
	},
	TargetGrok: {
		Guidance: "Ultra-direct language. No pleasantries. Technical terms only.",
		Focus:    []string{"directness", "technical terminology", "real-time knowledge"},
	},
}

const codeAssistantPreamble = `You are Martin, a prompt optimization system for developers using AI coding assistants (Cursor, Claude Code, GitHub Copilot).

CRITICAL REQUIREMENTS:
1. REMOVE all fluff words: "please", "could you", "I would like", "help me"
2. START with action verb: "Create", "Fix", "Refactor", "Implement", "Debug"
3. BE SPECIFIC: Include exact function names, types, error messages, file paths
4. USE this format for code requests:
   [ACTION] [WHAT] [SPECIFICATIONS] [CONSTRAINTS] [OUTPUT]

EXAMPLES OF OPTIMIZATION:

BAD: "Could you please help me create a function that processes user data?"
GOOD: "Create processUserData(users: User[]): ProcessedData[] - validate emails, remove duplicates, sort by created_at DESC"

BAD: "I'm having trouble with my React component"
GOOD: "Fix React useState infinite loop in UserDashboard.tsx line 45 - deps array missing userId"

BAD: "Write code to connect to a database"
GOOD: "Implement PostgreSQL connection pool: max 10 connections, 30s timeout, SSL required, return typed client"`

const replySchema = `OUTPUT FORMAT (JSON):
{
    "suggestions": [
        {
            "type": "clarity|specificity|structure|token_optimization|technical_accuracy",
            "original_text": "exact problematic text",
            "suggested_text": "optimized replacement",
            "explanation": "why this improves prompt effectiveness",
            "confidence": 0.8-1.0,
            "token_delta": -X (always negative for optimization),
            "developer_tip": "specific tip for this optimization pattern"
        }
    ],
    "overall_analysis": {
        "main_issues": ["verbose language", "missing specifications", "unclear output format"],
        "strengths": ["technical accuracy", "includes constraints"],
        "clarity_score": 0-100,
        "specificity_score": 0-100,
        "technical_accuracy_score": 0-100,
        "optimized_prompt": "COMPLETE REWRITTEN PROMPT - MUST BE 30-50% SHORTER"
    }
}`

// DefaultInstructionBuilder builds the system/user instruction pair for the
// documented reply schema. The duplicated system prompts of earlier revisions
// collapse into this one builder, selected per target model and domain.
type DefaultInstructionBuilder struct{}

// NewInstructionBuilder creates the default builder.
func NewInstructionBuilder() *DefaultInstructionBuilder {
	return &DefaultInstructionBuilder{}
}

// Build returns the system and user messages for the request.
func (b *DefaultInstructionBuilder) Build(req *AnalyzeRequest) (string, string) {
	return b.systemMessage(req), b.userMessage(req)
}

func (b *DefaultInstructionBuilder) systemMessage(req *AnalyzeRequest) string {
	target := req.TargetModel
	codeDomain := req.Context.Domain == DomainCodeGeneration || req.Context.Domain == DomainDebugging

	var base string
	if codeDomain || strings.Contains(strings.ToLower(string(target)), "claude") {
		base = codeAssistantPreamble
	} else {
		base = fmt.Sprintf("You are Martin, optimizing prompts for %s.", target)
	}

	guidance := "Maximum clarity and minimal tokens"
	if mi, ok := modelInstructions[target]; ok {
		guidance = mi.Guidance
	}

	return fmt.Sprintf(`%s

ANALYZE this prompt for %s. Focus on:
%s

%s

RULES:
1. Every suggestion MUST reduce tokens (negative token_delta)
2. Remove ALL polite language, fillers, redundancies
3. Convert questions to commands
4. Add specific types, formats, constraints
5. Include example output format when applicable
6. For code: ALWAYS specify language, framework, error handling
7. Minimum 3 suggestions, maximum %d
8. The "optimized_prompt" field MUST contain the ENTIRE prompt rewritten optimally

BE RUTHLESS in optimization. Professional developers want MAXIMUM efficiency.`,
		base, target, guidance, replySchema, req.Options.MaxSuggestions)
}

func (b *DefaultInstructionBuilder) userMessage(req *AnalyzeRequest) string {
	var context strings.Builder
	if req.Context.Language != "" {
		fmt.Fprintf(&context, "\nProgramming Language: %s", req.Context.Language)
	}
	if req.Context.Framework != "" {
		fmt.Fprintf(&context, "\nFramework: %s", req.Context.Framework)
	}

	return fmt.Sprintf(`Optimize this developer prompt for %s:%s

PROMPT TO OPTIMIZE:
---
%s
---

Transform this into a succinct, professional prompt optimized for %s.
Requirements:
1. Remove ALL unnecessary words
2. Start with action verb
3. Include specific types, parameters, constraints
4. Specify exact output format
5. Add error handling requirements if applicable
6. Make it 30-50%% shorter while MORE specific

Provide the complete analysis with the optimized version.`,
		req.TargetModel, context.String(), req.Prompt, req.TargetModel)
}
