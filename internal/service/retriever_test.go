package service

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetriever(t *testing.T, knowledge string, cfg ChunkConfig) *Retriever {
	t.Helper()
	store := NewKnowledgeStore(filepath.Join(t.TempDir(), "kb.txt"))
	if knowledge != "" {
		_, err := store.Replace(knowledge)
		require.NoError(t, err)
	}
	return NewRetriever(store, cfg)
}

func TestRetriever_EmptyKnowledgeReturnsEmpty(t *testing.T) {
	r := newTestRetriever(t, "", DefaultChunkConfig())
	assert.Equal(t, "", r.Retrieve("communication 24 months", 6000))
}

func TestRetriever_BudgetNeverExceeded(t *testing.T) {
	knowledge := strings.Repeat("communication skills for toddlers develop through play. ", 200)
	r := newTestRetriever(t, knowledge, ChunkConfig{Size: 500})

	for _, budget := range []int{100, 600, 1500, 6000} {
		got := r.Retrieve("communication toddlers", budget)
		assert.LessOrEqual(t, len(got), budget, "budget %d", budget)
		assert.NotEmpty(t, got)
	}
}

func TestRetriever_RanksByOverlap(t *testing.T) {
	// Two distinct passages, each its own chunk.
	relevant := "communication milestones toddler speech language" + strings.Repeat(" x", 20)
	irrelevant := "gross motor crawling climbing balance" + strings.Repeat(" y", 20)
	knowledge := irrelevant + "\n" + relevant

	r := newTestRetriever(t, knowledge, ChunkConfig{Size: len([]rune(irrelevant)) + 1})
	got := r.Retrieve("toddler communication speech", len(knowledge)+10)

	require.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got, relevant[:20]), "highest-overlap chunk should come first, got %q", got[:40])
}

func TestRetriever_TiesKeepOriginalOrder(t *testing.T) {
	// All chunks score zero for this query; the first chunk in source order
	// must win the tie.
	knowledge := strings.Repeat("a", 100) + strings.Repeat("b", 100)
	r := newTestRetriever(t, knowledge, ChunkConfig{Size: 100})

	got := r.Retrieve("zzzz", 100)
	assert.Equal(t, strings.Repeat("a", 100), got)
}

func TestRetriever_ZeroScoreChunksSkippedOnceContextSelected(t *testing.T) {
	relevant := "toddler speech " + strings.Repeat("m", 85)
	noise := strings.Repeat("q", 100)
	knowledge := relevant + noise

	r := newTestRetriever(t, knowledge, ChunkConfig{Size: len([]rune(relevant))})
	got := r.Retrieve("toddler speech", 1000)

	assert.Contains(t, got, "toddler speech")
	assert.NotContains(t, got, "qqqq")
}

func TestRetriever_OversizedBestChunkTruncated(t *testing.T) {
	knowledge := "toddler " + strings.Repeat("communication ", 50)
	r := newTestRetriever(t, knowledge, ChunkConfig{Size: 10000})

	got := r.Retrieve("toddler communication", 50)
	assert.Len(t, got, 50)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestRetriever_Deterministic(t *testing.T) {
	knowledge := strings.Repeat("play routines support development across domains. ", 100)
	r := newTestRetriever(t, knowledge, ChunkConfig{Size: 300})

	first := r.Retrieve("play development", 2000)
	second := r.Retrieve("play development", 2000)
	assert.Equal(t, first, second)
}

func TestRetriever_ZeroBudget(t *testing.T) {
	r := newTestRetriever(t, "some knowledge", DefaultChunkConfig())
	assert.Equal(t, "", r.Retrieve("knowledge", 0))
}
