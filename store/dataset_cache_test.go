package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = "name,city,state\n" +
	"\"A, B University\",Metropolis,NY\n" +
	"State College,Springfield,IL\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "dataset_cache_test_*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	path := filepath.Join(tmpDir, "colleges.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGetLoadsOnFirstAccess(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	cache := NewDatasetCache(path, time.Minute)

	rows := cache.Get(time.Now())
	require.Len(t, rows, 2)
	assert.Equal(t, "A, B University", rows[0]["name"])
	assert.Equal(t, "Springfield", rows[1]["city"])
}

func TestGetReturnsSnapshotWithinTTL(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	cache := NewDatasetCache(path, time.Minute)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	first := cache.Get(now)
	require.Len(t, first, 2)

	// 有效期内修改文件不影响快照
	require.NoError(t, os.WriteFile(path, []byte("name,city,state\nOnly One,X,CA\n"), 0644))
	second := cache.Get(now.Add(30 * time.Second))
	assert.Len(t, second, 2)
}

func TestGetReloadsAfterTTL(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	cache := NewDatasetCache(path, time.Minute)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.Len(t, cache.Get(now), 2)

	require.NoError(t, os.WriteFile(path, []byte("name,city,state\nOnly One,X,CA\n"), 0644))

	// 超过有效期后重新加载
	rows := cache.Get(now.Add(2 * time.Minute))
	require.Len(t, rows, 1)
	assert.Equal(t, "Only One", rows[0]["name"])
}

func TestFailedReloadYieldsEmptyAndUpdatesTimestamp(t *testing.T) {
	cache := NewDatasetCache("/nonexistent/colleges.csv", time.Minute)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, cache.Get(now))

	// 失败的加载同样刷新时间戳，有效期内不再重读
	assert.Empty(t, cache.Get(now.Add(10*time.Second)))
	assert.Equal(t, now, cache.loadedAt)
}

func TestHeaderOnlyFile(t *testing.T) {
	path := writeDataset(t, "name,city,state\n")
	cache := NewDatasetCache(path, time.Minute)
	assert.Empty(t, cache.Get(time.Now()))
}
