package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/calbot/pkg/log"
)

// TelegramConfig is parsed only when the Telegram transport is enabled, so
// its required fields do not affect CLI-only installs.
type TelegramConfig struct {
	Token       string        `env:"CALBOT_TELEGRAM_TOKEN,required,notEmpty"`
	OwnerID     int64         `env:"CALBOT_TELEGRAM_OWNER_ID,required"`
	PollTimeout time.Duration `env:"CALBOT_TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c *TelegramConfig) GetTelegramToken() string      { return c.Token }
func (c *TelegramConfig) GetTelegramOwnerID() int64     { return c.OwnerID }
func (c *TelegramConfig) GetPollTimeout() time.Duration { return c.PollTimeout }
