package llm

const (
	openAIBaseURL   = "https://api.openai.com"
	deepSeekBaseURL = "https://api.deepseek.com"
)

// NewOpenAI creates a provider for api.openai.com.
func NewOpenAI(apiKey, model string) *OpenAICompatible {
	return newBearer(openAIBaseURL, apiKey, model, nil)
}

// NewDeepSeek creates a provider for the DeepSeek platform, which speaks the
// OpenAI wire format.
func NewDeepSeek(apiKey, model string) *OpenAICompatible {
	return newBearer(deepSeekBaseURL, apiKey, model, nil)
}

// NewCustomOpenAI targets any self-hosted OpenAI-compatible endpoint.
func NewCustomOpenAI(baseURL, apiKey, model string) *OpenAICompatible {
	return newBearer(baseURL, apiKey, model, nil)
}
