package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

func TestMarkerStoreMemoryMode(t *testing.T) {
	store, err := NewMarkerStore("")
	require.NoError(t, err)

	assert.Equal(t, domain.KindNone, store.Chosen("item-1"))
	require.NoError(t, store.SetChosen("item-1", domain.KindLike))
	assert.Equal(t, domain.KindLike, store.Chosen("item-1"))

	require.NoError(t, store.SetChosen("item-1", domain.KindNone))
	assert.Equal(t, domain.KindNone, store.Chosen("item-1"))
}

func TestMarkerStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.json")

	store, err := NewMarkerStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetChosen("item-1", domain.KindDislike))
	require.NoError(t, store.MarkShared("item-2"))

	reopened, err := NewMarkerStore(path)
	require.NoError(t, err)
	assert.Equal(t, domain.KindDislike, reopened.Chosen("item-1"))
	assert.True(t, reopened.Shared("item-2"))
	assert.False(t, reopened.Shared("item-1"))
}

func TestMarkerStoreItemsAreIndependent(t *testing.T) {
	store, err := NewMarkerStore("")
	require.NoError(t, err)

	require.NoError(t, store.SetChosen("item-1", domain.KindLike))
	require.NoError(t, store.SetChosen("item-2", domain.KindNeutral))

	assert.Equal(t, domain.KindLike, store.Chosen("item-1"))
	assert.Equal(t, domain.KindNeutral, store.Chosen("item-2"))
}

func TestMarkerStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewMarkerStore(path)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNone, store.Chosen("item-1"))
}
