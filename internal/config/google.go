package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/calbot/pkg/log"
)

type GoogleConfig struct {
	ClientID     string `env:"CALBOT_GOOGLE_CLIENT_ID,required,notEmpty"`
	ClientSecret string `env:"CALBOT_GOOGLE_CLIENT_SECRET,required,notEmpty"`
	RefreshToken string `env:"CALBOT_GOOGLE_REFRESH_TOKEN,required,notEmpty"`
	CalendarID   string `env:"CALBOT_GOOGLE_CALENDAR_ID" envDefault:"primary"`
}

func NewGoogleConfig(ctx context.Context) *GoogleConfig {
	c := &GoogleConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Google config")
	}
	return c
}

func (c *GoogleConfig) GetGoogleClientID() string     { return c.ClientID }
func (c *GoogleConfig) GetGoogleClientSecret() string { return c.ClientSecret }
func (c *GoogleConfig) GetGoogleRefreshToken() string { return c.RefreshToken }
func (c *GoogleConfig) GetGoogleCalendarID() string   { return c.CalendarID }
