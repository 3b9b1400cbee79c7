package installer

import tea "github.com/charmbracelet/bubbletea"

type keySpec struct {
	env         string
	title       string
	placeholder string
	optional    bool
}

var providerKeys = map[string]keySpec{
	"deepseek":   {"CALBOT_DEEPSEEK_API_KEY", "DeepSeek API Key", "sk-...", false},
	"openai":     {"CALBOT_OPENAI_API_KEY", "OpenAI API Key", "sk-...", false},
	"anthropic":  {"CALBOT_ANTHROPIC_API_KEY", "Anthropic API Key", "sk-ant-...", false},
	"openrouter": {"CALBOT_OPENROUTER_API_KEY", "OpenRouter API Key", "sk-or-v1-...", false},
	"ollama":     {"CALBOT_OLLAMA_API_KEY", "Ollama API Key", "", true},
	"custom":     {"CALBOT_CUSTOM_OPENAI_API_KEY", "API Key for your endpoint", "", true},
}

// APIKeyStep asks for the key of whichever provider was picked.
type APIKeyStep struct {
	inner *InputStep
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Skip(state *InstallState) bool {
	_, ok := providerKeys[state.Provider()]
	return !ok
}

func (s *APIKeyStep) Init() tea.Cmd {
	return nil
}

func (s *APIKeyStep) resolve(state *InstallState) *InputStep {
	if s.inner == nil {
		spec := providerKeys[state.Provider()]
		opts := []inputOption{secret()}
		if spec.optional {
			opts = append(opts, optional())
		}
		s.inner = NewInputStep("Enter your "+spec.title+":", spec.env, spec.placeholder, opts...)
	}
	return s.inner
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	next, cmd := s.resolve(state).Update(msg, state, width, height)
	if next == nil {
		return nil, cmd
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	return s.resolve(state).View(state)
}
