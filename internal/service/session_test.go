package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earlysteps-ai/earlysteps/internal/domain"
)

func TestSessionStore_UnknownSessionEmptyHistory(t *testing.T) {
	store := NewSessionStore(12)
	assert.Empty(t, store.History("never-seen"))
}

func TestSessionStore_AppendExchangeOrdering(t *testing.T) {
	store := NewSessionStore(12)
	sess := store.get("s1")

	store.appendExchange(sess, "hello", "hi there")
	store.appendExchange(sess, "how?", "like this")

	history := store.History("s1")
	require.Len(t, history, 4)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, "hi there", history[1].Content)
	assert.Equal(t, "how?", history[2].Content)
	assert.Equal(t, "like this", history[3].Content)
}

func TestSessionStore_HistoryCapFIFO(t *testing.T) {
	store := NewSessionStore(12)
	sess := store.get("s1")

	for i := 0; i < 20; i++ {
		store.appendExchange(sess, fmt.Sprintf("u%d", i), fmt.Sprintf("a%d", i))
	}

	history := store.History("s1")
	require.Len(t, history, 12)
	// Oldest messages evicted first: the 12 most recent remain in order.
	assert.Equal(t, "u14", history[0].Content)
	assert.Equal(t, "a19", history[11].Content)
}

func TestSessionStore_SessionIsolation(t *testing.T) {
	store := NewSessionStore(12)

	store.appendExchange(store.get("a"), "question a", "answer a")
	store.appendExchange(store.get("b"), "question b", "answer b")

	historyA := store.History("a")
	historyB := store.History("b")
	require.Len(t, historyA, 2)
	require.Len(t, historyB, 2)
	assert.Equal(t, "question a", historyA[0].Content)
	assert.Equal(t, "question b", historyB[0].Content)
}

func TestSessionStore_ConcurrentDistinctSessions(t *testing.T) {
	store := NewSessionStore(12)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", n)
			sess := store.get(id)
			sess.mu.Lock()
			store.appendExchange(sess, "u", "a")
			sess.mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, store.Len())
	for i := 0; i < 16; i++ {
		assert.Len(t, store.History(fmt.Sprintf("s%d", i)), 2)
	}
}

func TestSessionStore_PruneOldest(t *testing.T) {
	store := NewSessionStore(12)

	for i := 0; i < 5; i++ {
		sess := store.get(fmt.Sprintf("s%d", i))
		sess.lastUsed = time.Now().Add(time.Duration(i) * time.Second)
	}

	evicted := store.PruneOldest(2)
	assert.Equal(t, 3, evicted)
	assert.Equal(t, 2, store.Len())

	// The most recently used sessions survive.
	store.mu.RLock()
	_, hasNewest := store.sessions["s4"]
	_, hasSecond := store.sessions["s3"]
	_, hasOldest := store.sessions["s0"]
	store.mu.RUnlock()
	assert.True(t, hasNewest)
	assert.True(t, hasSecond)
	assert.False(t, hasOldest)
}

func TestSessionStore_PruneUnbounded(t *testing.T) {
	store := NewSessionStore(12)
	store.get("s1")

	assert.Equal(t, 0, store.PruneOldest(0))
	assert.Equal(t, 1, store.Len())
}
