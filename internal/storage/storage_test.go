package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PutOpenRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Put(strings.NewReader("contract body"))
	require.NoError(t, err)

	rc, err := store.Open(key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "contract body", string(data))

	require.NoError(t, store.Remove(key))
	_, err = store.Open(key)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	assert.NoError(t, store.Remove(key))
}

func TestFileStore_RejectsForeignKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("../../etc/passwd")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}
