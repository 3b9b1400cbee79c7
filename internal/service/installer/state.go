package installer

import "strings"

const (
	envProvider        = "CALBOT_LLM_PROVIDER"
	envModel           = "CALBOT_MODEL"
	envOllamaURL       = "CALBOT_OLLAMA_BASE_URL"
	envCustomURL       = "CALBOT_CUSTOM_OPENAI_BASE_URL"
	envEnableCLI       = "CALBOT_ENABLE_CLI"
	envEnableTelegram  = "CALBOT_ENABLE_TELEGRAM"
	envTelegramToken   = "CALBOT_TELEGRAM_TOKEN"
	envTelegramOwner   = "CALBOT_TELEGRAM_OWNER_ID"
	envTimezone        = "CALBOT_TIMEZONE"
	envCalendarBackend = "CALBOT_CALENDAR_BACKEND"
	envGoogleClientID  = "CALBOT_GOOGLE_CLIENT_ID"
	envGoogleSecret    = "CALBOT_GOOGLE_CLIENT_SECRET"
	envGoogleRefresh   = "CALBOT_GOOGLE_REFRESH_TOKEN"
	envDebug           = "CALBOT_DEBUG"

	// envChannel only lives during the wizard.
	envChannel = "CALBOT_CHAT_CHANNEL"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) Provider() string {
	return strings.ToLower(s.EnvVars[envProvider])
}

func (s *InstallState) UsesTelegram() bool {
	ch := strings.ToLower(s.EnvVars[envChannel])
	return ch == "telegram" || ch == "both"
}

func (s *InstallState) UsesGoogle() bool {
	return strings.EqualFold(s.EnvVars[envCalendarBackend], "google")
}
