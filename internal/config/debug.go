package config

import (
	"os"
	"strconv"
)

// IsDebug reads CALBOT_DEBUG directly so the logger can be configured before
// the .env file and the rest of the config are loaded.
func IsDebug() bool {
	v, _ := strconv.ParseBool(os.Getenv("CALBOT_DEBUG"))
	return v
}
