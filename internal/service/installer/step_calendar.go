package installer

import (
	"fmt"
	"net/url"
	"time"
)

func NewTimezoneStep() Step {
	return NewInputStep("Which timezone should dates be read in?", envTimezone, "",
		withDefault("America/Chicago"),
		validated(func(v string) error {
			if _, err := time.LoadLocation(v); err != nil {
				return fmt.Errorf("unknown timezone %q", v)
			}
			return nil
		}),
	)
}

func NewGoogleSteps() []Step {
	return []Step{
		NewInputStep("Enter your Google OAuth Client ID:", envGoogleClientID, "1234-abc.apps.googleusercontent.com",
			onlyIf((*InstallState).UsesGoogle)),
		NewInputStep("Enter your Google OAuth Client Secret:", envGoogleSecret, "GOCSPX-...",
			secret(), onlyIf((*InstallState).UsesGoogle)),
		NewInputStep("Enter a Google refresh token with Calendar and Tasks scopes:", envGoogleRefresh, "1//0g...",
			secret(), onlyIf((*InstallState).UsesGoogle)),
	}
}

func NewEndpointSteps() []Step {
	isProvider := func(name string) func(*InstallState) bool {
		return func(s *InstallState) bool { return s.Provider() == name }
	}
	return []Step{
		NewInputStep("Enter Custom OpenAI Base URL:", envCustomURL, "https://api.example.com",
			validated(validURL), onlyIf(isProvider("custom"))),
		NewInputStep("Enter Ollama Base URL:", envOllamaURL, "",
			withDefault("http://localhost:11434"), validated(validURL), onlyIf(isProvider("ollama"))),
	}
}

func validURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter a full URL such as https://host:port")
	}
	return nil
}
