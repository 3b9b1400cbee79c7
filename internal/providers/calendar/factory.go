package calendar

import (
	"context"
	"database/sql"
	"time"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/pkg/log"
)

type BackendConfig interface {
	IsGoogleBackend() bool
	GetLocation() *time.Location
}

// NewScheduler picks the Google backend when configured, otherwise the
// local database. google is only read when the Google backend is selected.
func NewScheduler(ctx context.Context, cfg BackendConfig, db *sql.DB, google GoogleConfig) (core.Scheduler, error) {
	if cfg.IsGoogleBackend() {
		log.FromCtx(ctx).Info().Msg("using google calendar backend")
		return NewGoogle(ctx, google, cfg.GetLocation())
	}

	log.FromCtx(ctx).Info().Msg("using local calendar backend")
	return NewLocal(db, cfg.GetLocation()), nil
}
