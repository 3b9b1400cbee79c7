package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep reads one value from a text field.
type InputStep struct {
	input    textinput.Model
	prompt   string
	key      string
	fallback string
	optional bool
	validate func(string) error
	skip     func(*InstallState) bool
	err      error
}

type inputOption func(*InputStep)

func secret() inputOption {
	return func(s *InputStep) {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
}

func optional() inputOption {
	return func(s *InputStep) { s.optional = true }
}

// withDefault is stored when the field is left empty.
func withDefault(v string) inputOption {
	return func(s *InputStep) {
		s.fallback = v
		s.input.Placeholder = v
	}
}

func validated(fn func(string) error) inputOption {
	return func(s *InputStep) { s.validate = fn }
}

func onlyIf(fn func(*InstallState) bool) inputOption {
	return func(s *InputStep) {
		s.skip = func(st *InstallState) bool { return !fn(st) }
	}
}

func NewInputStep(prompt, key, placeholder string, opts ...inputOption) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50
	ti.Placeholder = placeholder

	s := &InputStep{input: ti, prompt: prompt, key: key}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InputStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.fallback
		}
		if val == "" && !s.optional {
			s.err = fmt.Errorf("a value is required")
			return s, nil
		}
		if val != "" && s.validate != nil {
			if err := s.validate(val); err != nil {
				s.err = err
				return s, nil
			}
		}
		if val != "" {
			state.EnvVars[s.key] = val
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := "(press enter to confirm)"
	if s.optional {
		hint = "(optional, press enter to skip)"
	}

	view := s.prompt + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + hint + "\n"
}
