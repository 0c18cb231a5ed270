package service

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// chunkSeparator joins selected chunks in the assembled context.
const chunkSeparator = "\n\n"

// Retriever selects a budget-constrained context from the knowledge store
// for a query: rank chunks by token overlap, then greedily pack them in rank
// order. Retrieval is lexical on purpose; swapping in semantic search would
// change which chunks win, not just how fast.
type Retriever struct {
	kb    *KnowledgeStore
	chunk ChunkConfig
}

// NewRetriever creates a retriever over the given knowledge store.
func NewRetriever(kb *KnowledgeStore, chunk ChunkConfig) *Retriever {
	if chunk.Size <= 0 {
		chunk = DefaultChunkConfig()
	}
	return &Retriever{kb: kb, chunk: chunk}
}

type scoredChunk struct {
	text  string
	score int
}

// Retrieve returns relevant knowledge text for the query, at most budget
// characters long. An empty knowledge store yields an empty string, never an
// error. Selection is greedy in rank order: once a chunk does not fit, no
// smaller chunk is considered. A zero-score chunk is only selected while the
// context is still empty, and if the very first pick alone exceeds the
// budget it is truncated rather than dropped so retrieval always produces
// something from a non-empty store.
func (r *Retriever) Retrieve(query string, budget int) string {
	text := r.kb.Text()
	if strings.TrimSpace(text) == "" || budget <= 0 {
		return ""
	}

	chunks := chunkText(text, r.chunk)
	if len(chunks) == 0 {
		return ""
	}

	queryTokens := tokenize(query)
	scored := make([]scoredChunk, len(chunks))
	for i, c := range chunks {
		scored[i] = scoredChunk{text: c, score: scoreChunk(queryTokens, c)}
	}

	// Stable sort keeps original chunk order on ties, so results are
	// deterministic for a given knowledge text and query.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var b strings.Builder
	total := 0
	selected := 0

	for _, sc := range scored {
		if sc.score == 0 && selected > 0 {
			continue
		}

		chunkLen := len(sc.text)
		if total+chunkLen > budget {
			if selected == 0 {
				b.WriteString(truncateToBudget(sc.text, budget))
			}
			break
		}

		if selected > 0 {
			b.WriteString(chunkSeparator)
		}
		b.WriteString(sc.text)
		total += chunkLen + len(chunkSeparator)
		selected++

		if total >= budget {
			break
		}
	}

	return b.String()
}

func truncateToBudget(chunk string, budget int) string {
	const ellipsis = "..."
	cut := budget
	if cut > len(ellipsis) {
		cut -= len(ellipsis)
	}
	// Back off to a rune boundary so the cut never splits a character.
	for cut > 0 && !utf8.RuneStart(chunk[cut]) {
		cut--
	}
	if budget <= len(ellipsis) {
		return chunk[:cut]
	}
	return chunk[:cut] + ellipsis
}
