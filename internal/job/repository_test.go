package job

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/amankharwar575/kodJobs/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*Repository, *store.Store) {
	repo, s, _ := newRepoInDir(t, t.TempDir())
	return repo, s
}

func newRepoInDir(t *testing.T, dir string) (*Repository, *store.Store, string) {
	s, err := store.New(dir, nil, zerolog.Nop())
	require.NoError(t, err)
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(time.Minute))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return NewRepository(s, cache, zerolog.Nop()), s, dir
}

func TestRepositoryKeepsValidRecordsNextToMalformedOnes(t *testing.T) {
	repo, _, dir := newRepoInDir(t, t.TempDir())
	content := `[{"id":1,"title":"Go Dev","company":"Acme"},{"id":"2","title":404,"skills":"Go"},7,null]`
	path := filepath.Join(dir, "jobs.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))

	jobs, err := repo.All()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, int64(1), jobs[0].ID)
	assert.Equal(t, "Go Dev", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, int64(2), jobs[1].ID)
	assert.Equal(t, "404", jobs[1].Title)
	assert.Equal(t, []string{"Go"}, jobs[1].Skills)

	// reading never rewrites the stored collection
	b, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(b))
}

func TestRepositorySeesWritesFromOtherProcesses(t *testing.T) {
	dir := t.TempDir()
	reader, _, _ := newRepoInDir(t, dir)
	writer, _, _ := newRepoInDir(t, dir)

	require.NoError(t, writer.Save(Raws(SampleJobs())))
	jobs, err := reader.All()
	require.NoError(t, err)
	assert.Equal(t, SampleJobs(), jobs)

	// the writer has its own cache, the reader's entry is never invalidated
	require.NoError(t, writer.Save(Raws(EmergencyJobs())))
	jobs, err = reader.All()
	require.NoError(t, err)
	assert.Equal(t, EmergencyJobs(), jobs)
}

func TestRepositoryEmpty(t *testing.T) {
	repo, _ := newRepo(t)

	raws, err := repo.Raw()
	require.NoError(t, err)
	assert.Empty(t, raws)

	jobs, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestRepositorySaveAndAll(t *testing.T) {
	repo, _ := newRepo(t)
	raws := []Raw{
		{ID: json.RawMessage(`"5"`), Title: "Go Developer", Skills: json.RawMessage(`"Go"`)},
		{Title: "No id", Link: "https://example.com/x", Snippet: "jooble snippet"},
	}
	require.NoError(t, repo.Save(raws))

	// persisted as is, normalised on read
	stored, err := repo.Raw()
	require.NoError(t, err)
	assert.Equal(t, raws, stored)

	jobs, err := repo.All()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, int64(5), jobs[0].ID)
	assert.Equal(t, []string{"Go"}, jobs[0].Skills)
	assert.Equal(t, HashID("https://example.com/x"), jobs[1].ID)

	j, ok, err := repo.ByID(5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Go Developer", j.Title)

	_, ok, err = repo.ByID(6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositorySaveInvalidatesCache(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.Save(Raws(SampleJobs())))

	jobs, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	require.NoError(t, repo.Save(Raws(EmergencyJobs())))
	jobs, err = repo.All()
	require.NoError(t, err)
	assert.Equal(t, EmergencyJobs(), jobs)
}

func TestRepositoryWithoutCache(t *testing.T) {
	s, err := store.New(t.TempDir(), nil, zerolog.Nop())
	require.NoError(t, err)
	repo := NewRepository(s, nil, zerolog.Nop())

	require.NoError(t, repo.Save(Raws(TimesJobsFallback())))
	jobs, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, TimesJobsFallback(), jobs)

	unlock, err := repo.Lock(context.Background())
	require.NoError(t, err)
	unlock()
}
