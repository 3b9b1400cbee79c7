package installer

import (
	"fmt"
	"strconv"
)

func NewTelegramTokenStep() Step {
	return NewInputStep("Enter your Telegram Bot Token:", envTelegramToken, "123456789:ABCDEF...",
		secret(),
		onlyIf((*InstallState).UsesTelegram),
	)
}

// NewTelegramOwnerStep asks for the only user id the bot will answer.
func NewTelegramOwnerStep() Step {
	return NewInputStep("Enter your Telegram User ID (Owner):", envTelegramOwner, "123456789",
		validated(func(v string) error {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return fmt.Errorf("user id must be a number")
			}
			return nil
		}),
		onlyIf((*InstallState).UsesTelegram),
	)
}
