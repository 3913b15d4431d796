package kvdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDB_SetGetDelete(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	defer db.Close()

	require.NoError(t, db.Set([]byte("key"), []byte("value")))

	ok, err := db.Has([]byte("key"))
	require.NoError(t, err)
	assert.True(t, ok)

	v, ok, err := db.Get([]byte("key"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), v)

	require.NoError(t, db.Delete([]byte("key")))

	_, ok, err = db.Get([]byte("key"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryDB_GetCopies(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	defer db.Close()

	require.NoError(t, db.Set([]byte("key"), []byte("value")))

	v, _, err := db.Get([]byte("key"))
	require.NoError(t, err)

	v[0] = 'X'

	again, _, err := db.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}

func TestMemoryDB_BatchReplaysInOrder(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	defer db.Close()

	batch := db.NewBatch()
	require.NoError(t, batch.Set([]byte("a"), []byte("1")))
	require.NoError(t, batch.Set([]byte("b"), []byte("2")))
	require.NoError(t, batch.Delete([]byte("a")))

	// Nothing is visible before the batch commits.
	ok, err := db.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, batch.Write())

	ok, err = db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := db.Get([]byte("b"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("2"), v)
}

func TestMemoryDB_IteratorPrefix(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	defer db.Close()

	require.NoError(t, db.Set([]byte("p1"), []byte("a")))
	require.NoError(t, db.Set([]byte("p2"), []byte("b")))
	require.NoError(t, db.Set([]byte("q1"), []byte("c")))

	it := db.NewIterator([]byte("p"), nil)
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}

	require.NoError(t, it.Error())
	assert.Equal(t, []string{"p1", "p2"}, keys)
}

func TestMemoryDB_IteratorStart(t *testing.T) {
	t.Parallel()

	db := NewMemoryDB()
	defer db.Close()

	for _, k := range []string{"p1", "p2", "p3"} {
		require.NoError(t, db.Set([]byte(k), []byte("v")))
	}

	it := db.NewIterator([]byte("p"), []byte("2"))
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}

	assert.Equal(t, []string{"p2", "p3"}, keys)
}
