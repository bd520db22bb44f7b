// Package inboxbolt stores received messages in an embedded BoltDB file,
// for single-node deployments that run without Postgres.
package inboxbolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/oggyb/smsdev/internal/domain/inbox"
)

var (
	bucketMessages = []byte("received_messages")
	// bucketByTime maps receivedAt|gatewayID to nothing; it orders List.
	bucketByTime = []byte("received_messages_by_time")
)

type record struct {
	ID         uuid.UUID `json:"id"`
	GatewayID  int64     `json:"gateway_id"`
	From       string    `json:"from"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository is a BoltDB-backed implementation of inbox.Repository.
type Repository struct {
	db *bolt.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Repository, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	repo, err := NewRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewRepository creates the buckets if needed.
func NewRepository(db *bolt.DB) (*Repository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketMessages, bucketByTime} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create inbox buckets: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) SaveIfAbsent(ctx context.Context, m *inbox.ReceivedMessage) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	inserted := false
	err := r.db.Update(func(tx *bolt.Tx) error {
		msgs := tx.Bucket(bucketMessages)
		key := gatewayKey(m.GatewayID)

		if msgs.Get(key) != nil {
			return nil
		}

		rec := record{
			ID:         m.ID,
			GatewayID:  m.GatewayID,
			From:       m.From,
			Body:       m.Body,
			ReceivedAt: m.ReceivedAt.UTC(),
			CreatedAt:  m.CreatedAt.UTC(),
		}
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		if err := msgs.Put(key, data); err != nil {
			return err
		}
		if err := tx.Bucket(bucketByTime).Put(timeKey(rec.ReceivedAt, rec.GatewayID), nil); err != nil {
			return err
		}

		inserted = true
		return nil
	})

	return inserted, err
}

// List returns a page of messages, newest first, and the total count.
func (r *Repository) List(ctx context.Context, page, limit int) ([]*inbox.ReceivedMessage, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var (
		out   []*inbox.ReceivedMessage
		total int64
	)
	offset := (page - 1) * limit

	err := r.db.View(func(tx *bolt.Tx) error {
		msgs := tx.Bucket(bucketMessages)
		total = int64(msgs.Stats().KeyN)

		c := tx.Bucket(bucketByTime).Cursor()
		skipped := 0
		for k, _ := c.Last(); k != nil && len(out) < limit; k, _ = c.Prev() {
			if skipped < offset {
				skipped++
				continue
			}

			data := msgs.Get(k[8:])
			if data == nil {
				continue
			}
			m, err := decode(data)
			if err != nil {
				return err
			}
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *Repository) GetByGatewayID(ctx context.Context, gatewayID int64) (*inbox.ReceivedMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var m *inbox.ReceivedMessage
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketMessages).Get(gatewayKey(gatewayID))
		if data == nil {
			return inbox.ErrNotFound
		}
		var err error
		m, err = decode(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func decode(data []byte) (*inbox.ReceivedMessage, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &inbox.ReceivedMessage{
		ID:         rec.ID,
		GatewayID:  rec.GatewayID,
		From:       rec.From,
		Body:       rec.Body,
		ReceivedAt: rec.ReceivedAt,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

// gatewayKey is big-endian so keys sort numerically.
func gatewayKey(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func timeKey(t time.Time, id int64) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano()))
	binary.BigEndian.PutUint64(b[8:], uint64(id))
	return b
}

var _ inbox.Repository = (*Repository)(nil)
