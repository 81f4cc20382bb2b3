package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	return s
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	run, err := s.Create(ctx, 2, true)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, run.Status)
	assert.NotEmpty(t, run.ID)

	require.NoError(t, s.Complete(ctx, run.ID, "Date,Day\n", "[  OK]"))
	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, "Date,Day\n", got.Data)
	assert.Equal(t, 2, got.Buffer)
	assert.True(t, got.Sparse)

	other, err := s.Create(ctx, 0, false)
	require.NoError(t, err)
	require.NoError(t, s.Fail(ctx, other.ID, errors.New("bad rooms file")))
	got, err = s.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "bad rooms file", got.Report)

	runs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	require.NoError(t, s.Delete(ctx, run.ID))
	_, err = s.Get(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, run.ID), ErrNotFound)
	assert.ErrorIs(t, s.Complete(ctx, "missing", "", ""), ErrNotFound)
}
