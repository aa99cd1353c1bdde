package grok

// Config contains Grok completion client configuration. The xAI endpoint is
// OpenAI-compatible, so the fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey(); empty key means demo mode
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout() (in seconds)
type Config struct {
	APIKey      string  `env:"GROK_API_KEY"`
	BaseURL     string  `env:"GROK_API_URL"     envDefault:"https://api.x.ai/v1"`
	Model       string  `env:"GROK_MODEL"       envDefault:"grok-beta"`
	Timeout     int     `env:"GROK_TIMEOUT"     envDefault:"30"`
	Temperature float64 `env:"GROK_TEMPERATURE" envDefault:"0.3"`
	MaxTokens   int     `env:"GROK_MAX_TOKENS"  envDefault:"2000"`
}
