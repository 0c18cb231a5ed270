package service

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeStore_LoadMissingFile(t *testing.T) {
	store := NewKnowledgeStore(filepath.Join(t.TempDir(), "kb", "missing.txt"))

	require.NoError(t, store.Load())
	assert.Equal(t, "", store.Text())
}

func TestKnowledgeStore_LoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("milestones by age"), 0o644))

	store := NewKnowledgeStore(path)
	require.NoError(t, store.Load())
	assert.Equal(t, "milestones by age", store.Text())
}

func TestKnowledgeStore_ReplacePersistsAndSwaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb", "knowledge_base.txt")
	store := NewKnowledgeStore(path)

	got, err := store.Replace("new knowledge content")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "new knowledge content", store.Text())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new knowledge content", string(onDisk))
}

func TestKnowledgeStore_ReplaceIsWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	store := NewKnowledgeStore(path)

	_, err := store.Replace("first version")
	require.NoError(t, err)
	_, err = store.Replace("second")
	require.NoError(t, err)

	assert.Equal(t, "second", store.Text())
}

func TestKnowledgeStore_ConcurrentReadersDuringReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	store := NewKnowledgeStore(path)
	_, err := store.Replace("aaaa")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				text := store.Text()
				// Readers must see one version in full, never a mix.
				assert.Contains(t, []string{"aaaa", "bbbb"}, text)
			}
		}()
	}
	for j := 0; j < 20; j++ {
		if j%2 == 0 {
			_, _ = store.Replace("bbbb")
		} else {
			_, _ = store.Replace("aaaa")
		}
	}
	wg.Wait()
}
