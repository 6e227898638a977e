package savedjobs

import (
	"context"
	"testing"

	"github.com/amankharwar575/kodJobs/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemoveJob(t *testing.T) {
	s, err := store.New(t.TempDir(), nil, zerolog.Nop())
	require.NoError(t, err)
	repo := NewRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.SaveJob(ctx, 12345, "u1"))
	require.NoError(t, repo.SaveJob(ctx, 12345, "u1"))
	require.NoError(t, repo.SaveJob(ctx, 67890, "u1"))
	require.NoError(t, repo.SaveJob(ctx, 12345, "u2"))

	saved, err := repo.GetSavedJobsForUser("u1")
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, int64(12345), saved[0].JobID)
	assert.Equal(t, "u1", saved[0].UserID)
	assert.NotEmpty(t, saved[0].ID)
	assert.False(t, saved[0].SavedAt.IsZero())

	require.NoError(t, repo.RemoveJob(ctx, 12345, "u1"))
	assert.Equal(t, ErrNotFound, repo.RemoveJob(ctx, 12345, "u1"))

	saved, err = repo.GetSavedJobsForUser("u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, int64(67890), saved[0].JobID)

	// other users are untouched
	saved, err = repo.GetSavedJobsForUser("u2")
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	saved, err = repo.GetSavedJobsForUser("nobody")
	require.NoError(t, err)
	assert.Equal(t, []SavedJob{}, saved)
}
