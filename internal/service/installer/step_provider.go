package installer

func NewProviderStep() Step {
	return &ChoiceStep{
		prompt: "Select your AI Provider:",
		key:    envProvider,
		choices: []choice{
			{"DeepSeek", "deepseek"},
			{"OpenAI", "openai"},
			{"Anthropic", "anthropic"},
			{"OpenRouter", "openrouter"},
			{"Ollama", "ollama"},
			{"Custom (OpenAI-compatible)", "custom"},
		},
	}
}
