package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-news/internal/config"
)

func TestOpen_FileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.json")

	st, err := Open(context.Background(), config.StoreConfig{Mode: config.StoreFile, File: path})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, st.Close()) })

	assert.Nil(t, st.Stats)
	assert.NoError(t, st.Repo.Ping(context.Background()))
	assert.FileExists(t, path)
}

func TestOpen_UnknownMode(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Mode: "mysql"})
	assert.ErrorContains(t, err, "unknown store mode")
}

func TestStore_CloseWithoutPool(t *testing.T) {
	assert.NoError(t, (&Store{}).Close())
}
