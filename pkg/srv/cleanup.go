package srv

import (
	"context"
	"sync"
)

// cleanupService adapts a resource that only needs closing, such as the
// database handle, to Service. The close func runs at most once.
type cleanupService struct {
	once    sync.Once
	cleanup func() error
	err     error
}

func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}

func (c *cleanupService) Start(context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(context.Context) error {
	c.once.Do(func() {
		if c.cleanup != nil {
			c.err = c.cleanup()
		}
	})
	return c.err
}
