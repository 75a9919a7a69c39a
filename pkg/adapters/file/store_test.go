package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulmotools/ildflow/pkg/adapters/file"
	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/ports"
)

var _ ports.StateStore = (*file.Store)(nil)

func TestStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		state := domain.NewState("initial")
		state.History = append(state.History, "initial")
		state.Answers["environmental"] = "no"
		state.Answers["symptoms"] = []string{"dyspnee"}

		require.NoError(t, store.Save(ctx, "consult-1", state))

		loaded, err := store.Load(ctx, "consult-1")
		require.NoError(t, err)
		assert.Equal(t, "initial", loaded.CurrentStep)
		assert.Equal(t, []string{"initial"}, loaded.History)
		assert.Equal(t, "no", loaded.Answers["environmental"])
	})

	t.Run("Overwrite", func(t *testing.T) {
		state := domain.NewState("second")
		require.NoError(t, store.Save(ctx, "consult-1", state))

		loaded, err := store.Load(ctx, "consult-1")
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.CurrentStep)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "consult-2", domain.NewState("start")))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"consult-1", "consult-2"}, ids)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "consult-1"))
		_, err := store.Load(ctx, "consult-1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		assert.NoError(t, store.Delete(ctx, "consult-1"), "deleting a missing session is tolerated")
	})

	t.Run("EmptySessionID", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, "", domain.NewState("start")))
		_, err := store.Load(ctx, "")
		assert.Error(t, err)
		assert.Error(t, store.Delete(ctx, ""))
	})
}

func TestStore_ListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "real", domain.NewState("start")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-leftover.json"), []byte("{}"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"real"}, ids)
}

func TestStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "never-created"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	_, err := store.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}
