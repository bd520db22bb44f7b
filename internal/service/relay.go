package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oggyb/smsdev/internal/cache"
	"github.com/oggyb/smsdev/internal/domain/inbox"
	"github.com/oggyb/smsdev/internal/metrics"
	"github.com/oggyb/smsdev/internal/sms"
	"github.com/oggyb/smsdev/internal/smsdev"
)

const balanceKey = "default"

type RelayService interface {
	Sync(ctx context.Context) error
	Send(ctx context.Context, to, content, refer string) (string, error)
	Balance(ctx context.Context) (int, error)
	Inbox(ctx context.Context, page, limit int) ([]*inbox.ReceivedMessage, int64, error)
}

type relayService struct {
	repo    inbox.Repository
	gateway sms.Gateway
	cache   cache.Cache

	seenTTL    time.Duration
	balanceTTL time.Duration

	metrics *metrics.Metrics
}

type RelayOption func(*relayService)

// WithMetrics records sends, sync runs and balances on m.
func WithMetrics(m *metrics.Metrics) RelayOption {
	return func(s *relayService) { s.metrics = m }
}

// NewRelayService wires the relay. cache may be nil, in which case inbox
// deduplication relies on the repository alone and balances are not cached.
// A non-positive balanceTTL also disables balance caching.
func NewRelayService(
	repo inbox.Repository,
	gateway sms.Gateway,
	c cache.Cache,
	seenTTL time.Duration,
	balanceTTL time.Duration,
	opts ...RelayOption,
) RelayService {
	if seenTTL <= 0 {
		seenTTL = 7 * 24 * time.Hour
	}

	s := &relayService{
		repo:       repo,
		gateway:    gateway,
		cache:      c,
		seenTTL:    seenTTL,
		balanceTTL: balanceTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync pulls unread replies from the gateway and stores the ones not seen
// before. It is the poller's unit of work.
func (s *relayService) Sync(ctx context.Context) error {
	stored, err := s.sync(ctx)
	s.metrics.ObserveSync(stored, err)
	return err
}

func (s *relayService) sync(ctx context.Context) (int, error) {
	msgs, err := s.gateway.Inbox(ctx, s.gateway.NewFilter().Unread())
	if err != nil {
		return 0, fmt.Errorf("failed to fetch inbox: %w", err)
	}

	if len(msgs) == 0 {
		log.Println("[Inbox] No unread messages.")
		return 0, nil
	}

	stored := 0
	for _, m := range msgs {
		if ctx.Err() != nil {
			return stored, fmt.Errorf("sync interrupted after %d messages: %w", stored, ctx.Err())
		}

		key := cache.InboxSeen.Key(strconv.Itoa(m.ID))
		if s.seen(ctx, key) {
			continue
		}

		rm, err := inbox.NewReceivedMessage(int64(m.ID), m.Number, m.Text, m.ReceivedAt)
		if err != nil {
			log.Printf("[Inbox] Dropping gateway message %d: %v", m.ID, err)
			s.markSeen(ctx, key, m)
			continue
		}

		// The mark is written only once the repository holds the message, so
		// a failure in between leaves it to be retried on the next run.
		inserted, err := s.repo.SaveIfAbsent(ctx, rm)
		if err != nil {
			return stored, fmt.Errorf("store gateway message %d: %w", m.ID, err)
		}
		if inserted {
			stored++
		}
		s.markSeen(ctx, key, m)
	}

	log.Printf("[Inbox] Synced %d messages (%d new).", len(msgs), stored)
	return stored, nil
}

// seen reports whether a previous run already handled the message. Cache
// errors count as unseen; the repository dedupes on its own.
func (s *relayService) seen(ctx context.Context, key string) bool {
	if s.cache == nil {
		return false
	}
	_, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		return true
	case errors.Is(err, cache.ErrMiss):
		return false
	default:
		log.Printf("[Inbox] Seen-check failed for %s: %v", key, err)
		return false
	}
}

func (s *relayService) markSeen(ctx context.Context, key string, m smsdev.Message) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, m.ReceivedAt.UTC().Format(time.RFC3339), s.seenTTL); err != nil {
		log.Printf("[Inbox] Failed to mark %d as seen: %v", m.ID, err)
	}
}

// Send relays a message through the gateway. An empty refer is replaced by
// a fresh UUID so the gateway's callbacks can be correlated; the refer used
// is returned.
func (s *relayService) Send(ctx context.Context, to, content, refer string) (string, error) {
	if refer == "" {
		refer = uuid.NewString()
	}

	if err := s.gateway.Send(ctx, to, content, refer); err != nil {
		s.metrics.ObserveSend(sendResult(err))
		return "", err
	}
	s.metrics.ObserveSend(metrics.SendOK)

	// Sending spends credit; the cached figure is stale now.
	if s.cache != nil && s.balanceTTL > 0 {
		if err := s.cache.Del(ctx, cache.Balance.Key(balanceKey)); err != nil {
			log.Printf("[Relay] Failed to invalidate cached balance: %v", err)
		}
	}

	log.Printf("[Relay] Message to %s accepted (refer=%s).", to, refer)
	return refer, nil
}

// Balance returns the gateway balance in cents, read through the cache.
func (s *relayService) Balance(ctx context.Context) (int, error) {
	useCache := s.cache != nil && s.balanceTTL > 0
	key := cache.Balance.Key(balanceKey)

	if useCache {
		v, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			if n, convErr := strconv.Atoi(v); convErr == nil {
				return n, nil
			}
		case !errors.Is(err, cache.ErrMiss):
			log.Printf("[Relay] Balance cache read failed: %v", err)
		}
	}

	balance, err := s.gateway.Balance(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	s.metrics.SetBalance(balance)

	if useCache {
		if err := s.cache.Set(ctx, key, strconv.Itoa(balance), s.balanceTTL); err != nil {
			log.Printf("[Relay] Balance cache write failed: %v", err)
		}
	}

	return balance, nil
}

func (s *relayService) Inbox(ctx context.Context, page, limit int) ([]*inbox.ReceivedMessage, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func sendResult(err error) string {
	var apiErr *smsdev.APIError
	switch {
	case errors.Is(err, smsdev.ErrInvalidNumber):
		return metrics.SendInvalidNumber
	case errors.As(err, &apiErr):
		return metrics.SendRejected
	default:
		return metrics.SendError
	}
}
