package filestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewBodyStore(filepath.Join(t.TempDir(), "nested", "bodies.txt"))

	empty, err := store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty, "absent file is empty")

	content, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, store.Append(ctx, "^!@A\n<a>"))
	require.NoError(t, store.Append(ctx, "^!@B\n<b>"))

	empty, err = store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	content, err = store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "^!@A\n<a>^!@B\n<b>", content)

	require.NoError(t, store.Truncate(ctx))
	empty, err = store.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty, "truncated file is empty")
}
