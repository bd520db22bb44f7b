package sms

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/oggyb/smsdev/internal/smsdev"
)

// SmsDevGateway adapts *smsdev.Client to Gateway. The client keeps
// per-call state, so every call is serialized.
type SmsDevGateway struct {
	mu     sync.Mutex
	client *smsdev.Client
}

// NewSmsDevGateway wraps the given client.
func NewSmsDevGateway(client *smsdev.Client) *SmsDevGateway {
	return &SmsDevGateway{client: client}
}

// Send implements Gateway.Send.
func (g *SmsDevGateway) Send(ctx context.Context, to, content, refer string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.client.Send(ctx, to, content, refer); err != nil {
		if !errors.Is(err, smsdev.ErrInvalidNumber) {
			log.Printf("[SmsDev] Send to %s failed: %v (raw=%v)", to, err, g.client.Result())
		}
		return err
	}
	return nil
}

// Inbox implements Gateway.Inbox.
func (g *SmsDevGateway) Inbox(ctx context.Context, f smsdev.Filter) ([]smsdev.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.client.FetchWith(ctx, f); err != nil {
		return nil, fmt.Errorf("fetch inbox: %w", err)
	}
	// The client accepts any decoded body; the relay must not mistake a
	// rejected key for an empty inbox.
	if err := g.client.ResultError(); err != nil {
		return nil, fmt.Errorf("fetch inbox: %w", err)
	}
	return g.client.Messages(), nil
}

// Balance implements Gateway.Balance.
func (g *SmsDevGateway) Balance(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.client.Balance(ctx)
}

// NewFilter implements Gateway.NewFilter.
func (g *SmsDevGateway) NewFilter() smsdev.Filter {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.client.NewFilter()
}

// Health implements Gateway.Health with a balance query, the cheapest
// authenticated call the gateway offers.
func (g *SmsDevGateway) Health(ctx context.Context) error {
	if _, err := g.Balance(ctx); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	return nil
}

// compile-time check: SmsDevGateway satisfies the Gateway interface.
var _ Gateway = (*SmsDevGateway)(nil)
