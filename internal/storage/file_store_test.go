package storage_test

import (
	"strings"
	"testing"

	"gudang/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func pngBytes(payload ...byte) []byte {
	header := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, payload...)
}

func newTestStore() *storage.FileStore {
	return storage.NewFileStore(afero.NewMemMapFs(), "/data")
}

func TestFileStore_SaveAndExists(t *testing.T) {
	store := newTestStore()

	path, err := store.Save(pngBytes(1), "products")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "products/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	exists, err := store.Exists(path)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestFileStore_SaveNeverOverwrites(t *testing.T) {
	store := newTestStore()
	data := pngBytes(42)

	first, err := store.Save(data, "products")
	assert.NoError(t, err)
	second, err := store.Save(data, "products")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, path := range []string{first, second} {
		exists, err := store.Exists(path)
		assert.NoError(t, err)
		assert.True(t, exists)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store := newTestStore()

	path, err := store.Save(pngBytes(7), "products")
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(path))

	exists, err := store.Exists(path)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore()

	path, err := store.Save(pngBytes(7), "products")
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(path))
	// Deleting a path that no longer exists is a no-op, not an error.
	assert.NoError(t, store.Delete(path))
	assert.NoError(t, store.Delete("products/never-existed.png"))
}

func TestFileStore_ExtensionFollowsContent(t *testing.T) {
	store := newTestStore()

	path, err := store.Save([]byte("not a known image format"), "products")
	assert.NoError(t, err)
	// Unknown content still stores fine; the sniffed extension just differs.
	assert.False(t, strings.HasSuffix(path, ".png"))

	exists, err := store.Exists(path)
	assert.NoError(t, err)
	assert.True(t, exists)
}
