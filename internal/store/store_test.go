package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)

	// 集合文件不存在时视为空集合
	records, err := Load[testRecord](s, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad_CorruptFile(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.Dir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load[testRecord](s, "broken")
	assert.Error(t, err)
}

func TestSaveLoad_PreservesOrder(t *testing.T) {
	s := newTestStore(t)

	records := []testRecord{
		{ID: "a", Value: 1},
		{ID: "b", Value: 2},
		{ID: "c", Value: 3},
	}
	require.NoError(t, Save(s, "records", records))

	loaded, err := Load[testRecord](s, "records")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "a", loaded[0].ID)
	assert.Equal(t, "b", loaded[1].ID)
	assert.Equal(t, "c", loaded[2].ID)
}

func TestUpdate_ReadModifyWrite(t *testing.T) {
	s := newTestStore(t)

	err := Update(s, "records", func(records []testRecord) ([]testRecord, error) {
		return append(records, testRecord{ID: "a", Value: 1}), nil
	})
	require.NoError(t, err)

	err = Update(s, "records", func(records []testRecord) ([]testRecord, error) {
		require.Len(t, records, 1)
		records[0].Value = 42
		return records, nil
	})
	require.NoError(t, err)

	loaded, err := Load[testRecord](s, "records")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 42, loaded[0].Value)
}

func TestUpdate_ConcurrentAppends(t *testing.T) {
	s := newTestStore(t)

	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(n int) {
			defer wg.Done()
			err := Update(s, "records", func(records []testRecord) ([]testRecord, error) {
				return append(records, testRecord{ID: NewID(), Value: n}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// 整个读改写都在集合锁内，不应该丢任何一次追加
	loaded, err := Load[testRecord](s, "records")
	require.NoError(t, err)
	assert.Len(t, loaded, goroutines)
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id: %s", id)
		seen[id] = true
	}
}
