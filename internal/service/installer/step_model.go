package installer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/calbot/internal/config"
	"github.com/sandevgo/calbot/internal/providers/llm"
)

var defaultModels = map[string]string{
	"deepseek":   "deepseek-chat",
	"openai":     "gpt-4o-mini",
	"anthropic":  "claude-3-5-haiku-latest",
	"openrouter": "deepseek/deepseek-chat",
	"ollama":     "llama3.1",
}

// ModelStep lists the models offered by the selected provider.
type ModelStep struct {
	list     list.Model
	loading  bool
	fetching bool
	err      error
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select AI Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

// providerConfig mirrors the answers given so far.
func providerConfig(state *InstallState) *config.AppConfig {
	return &config.AppConfig{
		Provider:            state.Provider(),
		Model:               defaultModels[state.Provider()],
		DeepSeekAPIKey:      state.EnvVars[providerKeys["deepseek"].env],
		OpenAIAPIKey:        state.EnvVars[providerKeys["openai"].env],
		AnthropicAPIKey:     state.EnvVars[providerKeys["anthropic"].env],
		OpenRouterAPIKey:    state.EnvVars[providerKeys["openrouter"].env],
		OllamaAPIKey:        state.EnvVars[providerKeys["ollama"].env],
		OllamaBaseURL:       state.EnvVars[envOllamaURL],
		CustomOpenAIBaseURL: state.EnvVars[envCustomURL],
		CustomOpenAIAPIKey:  state.EnvVars[providerKeys["custom"].env],
	}
}

func (s *ModelStep) fetch(state *InstallState) tea.Cmd {
	cfg := providerConfig(state)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		p, err := llm.NewProvider(ctx, cfg)
		if err != nil {
			return errMsg(err)
		}
		models, err := p.Models(ctx)
		if err != nil {
			return errMsg(err)
		}

		sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
		items := make([]list.Item, 0, len(models))
		for _, mod := range models {
			name := mod.Name
			if name == "" {
				name = mod.ID
			}
			items = append(items, item{
				id:    mod.ID,
				title: name,
				desc:  fmt.Sprintf("ID: %s | Context: %d", mod.ID, mod.ContextLength),
			})
		}
		return modelsMsg(items)
	}
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loading && !s.fetching {
		s.fetching = true
		return s, s.fetch(state)
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			switch msg.String() {
			case "enter":
				s.err = nil
				s.loading = true
			case "s":
				if def := defaultModels[state.Provider()]; def != "" {
					state.EnvVars[envModel] = def
					return nil, nil
				}
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)
			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars[envModel] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		hint := "(press enter to retry, ctrl+c to quit)"
		if def := defaultModels[state.Provider()]; def != "" {
			hint = fmt.Sprintf("(press enter to retry, s to use %s, ctrl+c to quit)", def)
		}
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and internet connection.\n\n" + hint + "\n"
	}
	if s.loading {
		return fmt.Sprintf("Fetching models from %s...\n", state.Provider())
	}
	return s.list.View()
}
