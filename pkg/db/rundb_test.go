package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunDB(t *testing.T) *RunDB {
	t.Helper()
	rdb, err := NewRunDB(filepath.Join(t.TempDir(), "manifest", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRecordAndGet(t *testing.T) {
	rdb := newTestRunDB(t)
	ctx := context.Background()

	run := Run{
		ID:        uuid.New(),
		Mode:      "dist",
		Threads:   4,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC),
		Params:    "command:\n  mode: dist\n",
	}
	require.NoError(t, rdb.Record(ctx, run))

	got, err := rdb.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Mode, got.Mode)
	assert.Equal(t, run.Threads, got.Threads)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, run.Params, got.Params)
}

func TestGetMissing(t *testing.T) {
	rdb := newTestRunDB(t)

	_, err := rdb.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestRecordDuplicate(t *testing.T) {
	rdb := newTestRunDB(t)
	ctx := context.Background()

	run := Run{ID: uuid.New(), Mode: "sketch", Threads: 1, CreatedAt: time.Now(), Params: "{}"}
	require.NoError(t, rdb.Record(ctx, run))
	assert.Error(t, rdb.Record(ctx, run))
}

func TestListNewestFirst(t *testing.T) {
	rdb := newTestRunDB(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	modes := []string{"sketch", "triangle", "search"}
	for i, m := range modes {
		require.NoError(t, rdb.Record(ctx, Run{
			ID:        uuid.New(),
			Mode:      m,
			Threads:   i + 1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Params:    "{}",
		}))
	}

	runs, err := rdb.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "search", runs[0].Mode)
	assert.Equal(t, "triangle", runs[1].Mode)
	assert.Equal(t, "sketch", runs[2].Mode)
}
