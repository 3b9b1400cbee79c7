package srv

import (
	"context"

	"github.com/sandevgo/calbot/pkg/log"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then shuts every service down
// concurrently and waits for all of them.
func ShutdownServices(ctx context.Context, services []Service) error {
	<-ctx.Done()

	logger := log.FromCtx(ctx)
	shutdownCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	for _, service := range services {
		g.Go(func() error {
			if err := service.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msgf("%T failed to shutdown", service)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
