package gallery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ...Option) (*Service, *time.Time) {
	t.Helper()
	svc := NewService(NewMemoryStore(DefaultTTL), opts...)
	now := time.UnixMilli(1_700_000_000_000)
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestSaveCapsAtSixty(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 61; i++ {
		*now = now.Add(time.Second)
		_, err := svc.Save(ctx, "dev", "alice", "data:image/svg+xml;charset=utf-8,x")
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, "dev")
	require.NoError(t, err)
	require.Len(t, got, DefaultLimit)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1].CreatedAt, got[i].CreatedAt)
	}
	assert.Equal(t, now.UnixMilli(), got[0].CreatedAt)
	// the very first save was evicted
	assert.Equal(t, time.UnixMilli(1_700_000_000_000).Add(2*time.Second).UnixMilli(), got[len(got)-1].CreatedAt)
}

func TestSaveNormalizesAndKeepsCreatedAtUnique(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, "dev", " @alice ", "data:x")
	require.NoError(t, err)
	second, err := svc.Save(ctx, "dev", "bob", "data:y")
	require.NoError(t, err)

	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, first.CreatedAt+1, second.CreatedAt)

	require.NoError(t, svc.Remove(ctx, "dev", first.CreatedAt))
	got, err := svc.List(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, []Entry{second}, got)
}

func TestSaveRequiresImage(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Save(context.Background(), "dev", "alice", "  ")
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestRemoveMissing(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Remove(context.Background(), "dev", 42), ErrNotFound)
}

func TestWithLimit(t *testing.T) {
	svc, now := newTestService(t, WithLimit(2))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		*now = now.Add(time.Millisecond)
		_, err := svc.Save(ctx, "dev", "alice", "data:x")
		require.NoError(t, err)
	}
	got, err := svc.List(ctx, "dev")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
