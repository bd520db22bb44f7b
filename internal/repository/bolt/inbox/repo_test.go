package inboxbolt

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/smsdev/internal/domain/inbox"
)

func openTemp(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "inbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func msg(t *testing.T, id int64, at time.Time) *inbox.ReceivedMessage {
	t.Helper()
	m, err := inbox.NewReceivedMessage(id, "5511988887777", "reply", at)
	require.NoError(t, err)
	return m
}

var base = time.Date(2018, time.January, 19, 13, 35, 14, 0, time.UTC)

func TestSaveIfAbsent(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()

	inserted, err := repo.SaveIfAbsent(ctx, msg(t, 10, base))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.SaveIfAbsent(ctx, msg(t, 10, base.Add(time.Hour)))
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.GetByGatewayID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, base, got.ReceivedAt)
	assert.Equal(t, "5511988887777", got.From)
}

func TestSaveIfAbsent_Concurrent(t *testing.T) {
	repo := openTemp(t)

	m := msg(t, 99, base)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		saved int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.SaveIfAbsent(context.Background(), m)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				saved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, saved)
}

func TestList_NewestFirstWithPaging(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, err := repo.SaveIfAbsent(ctx, msg(t, i, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	page1, total, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, int64(5), page1[0].GatewayID)
	assert.Equal(t, int64(4), page1[1].GatewayID)

	page3, _, err := repo.List(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, int64(1), page3[0].GatewayID)

	empty, _, err := repo.List(ctx, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetByGatewayID_NotFound(t *testing.T) {
	repo := openTemp(t)

	_, err := repo.GetByGatewayID(context.Background(), 404)
	assert.ErrorIs(t, err, inbox.ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.db")

	repo, err := Open(path)
	require.NoError(t, err)
	_, err = repo.SaveIfAbsent(context.Background(), msg(t, 7, base))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()

	_, total, err := repo.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestCancelledContext(t *testing.T) {
	repo := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.SaveIfAbsent(ctx, msg(t, 1, base))
	assert.ErrorIs(t, err, context.Canceled)
}
