package domain

// Model- and domain-specific developer tips surfaced alongside suggestions.
var modelTips = map[TargetModel][]string{
	TargetGPT4: {
		"Use system messages for consistent behavior",
		"Specify output format explicitly (JSON, markdown, etc.)",
		"Break complex tasks into numbered steps",
	},
	TargetClaude3: {
		"Use conversational, polite language",
		"Provide context and examples",
		"Ask for clarification when needed",
	},
	TargetGrok: {
		"Be direct and concise",
		"Leverage Grok's real-time knowledge",
		"Use specific technical terminology",
	},
	TargetCursor: {
		"Reference exact file paths and line numbers",
		"Describe the expected diff, not the whole file",
		"Pin language and framework versions",
	},
	TargetCopilot: {
		"Lead with a precise function signature",
		"Keep one task per prompt",
		"State the test cases the code must pass",
	},
}

var codeDomainTips = []string{
	"Include language and framework versions",
	"Specify error handling requirements",
	"Mention performance constraints",
}

var defaultTips = []string{
	"Be specific about the expected output format",
	"Include examples when possible",
	"Break complex tasks into steps",
}

// ModelTips returns up to MaxResponseTips tips for the target model and
// domain. Unknown models fall back to the generic set.
func ModelTips(model TargetModel, domain PromptDomain) []string {
	tips := make([]string, 0, MaxResponseTips)
	tips = append(tips, modelTips[model]...)

	if domain == DomainCodeGeneration || domain == DomainDebugging {
		tips = append(tips, codeDomainTips...)
	}
	if len(tips) == 0 {
		tips = append(tips, defaultTips...)
	}
	if len(tips) > MaxResponseTips {
		tips = tips[:MaxResponseTips]
	}
	return tips
}
