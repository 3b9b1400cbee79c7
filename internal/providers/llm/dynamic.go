package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/calbot/internal/core"
)

// DynamicProvider lets the model be switched at runtime without restarting
// the transports that hold a reference to it.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Value
	mu      sync.Mutex
}

func NewDynamicProvider(ctx context.Context, config core.ProviderConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{config: config}

	provider, err := NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(provider)
	return d, nil
}

func (d *DynamicProvider) load() core.AIProvider {
	return d.current.Load().(core.AIProvider)
}

func (d *DynamicProvider) Chat(ctx context.Context, history []core.Message, opts core.ChatOptions) (core.Message, error) {
	return d.load().Chat(ctx, history, opts)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	return d.load().Models(ctx)
}

func (d *DynamicProvider) GetModel() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.config.GetProvider() + "/" + d.config.GetModel()
}

// SetModel accepts "model" or "provider/model" and swaps the provider atomically.
// The previous provider stays active when the swap fails.
func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	prevProvider, prevModel := d.config.GetProvider(), d.config.GetModel()
	if err := d.config.SetModel(model); err != nil {
		return err
	}

	next, err := NewProvider(ctx, d.config)
	if err != nil {
		_ = d.config.SetModel(prevProvider + "/" + prevModel)
		return fmt.Errorf("failed to create provider: %w", err)
	}

	d.current.Store(next)
	return nil
}
