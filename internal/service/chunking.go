package service

import "strings"

// ChunkConfig controls how the knowledge text is split for retrieval.
type ChunkConfig struct {
	// Size is the target chunk length in runes.
	Size int
	// Overlap is the number of trailing runes each chunk shares with the
	// next one. Must be smaller than Size.
	Overlap int
}

// DefaultChunkConfig provides sane defaults for retrieval chunking.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Size:    1000,
		Overlap: 0,
	}
}

// chunkText slices text into fixed-size rune windows. The windows cover the
// whole text in order with no gaps: each chunk is at most cfg.Size runes and
// starts exactly cfg.Overlap runes before the previous chunk's end, so
// chunks[0] + chunks[i][Overlap:] reconstructs the input. Whitespace-only
// input yields no chunks.
func chunkText(text string, cfg ChunkConfig) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if cfg.Size <= 0 {
		cfg = DefaultChunkConfig()
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.Size {
		cfg.Overlap = 0
	}

	runes := []rune(text)
	if len(runes) <= cfg.Size {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/cfg.Size+1)
	start := 0
	for start < len(runes) {
		end := start + cfg.Size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, string(runes[start:end]))

		if end >= len(runes) {
			break
		}
		start = end - cfg.Overlap
	}

	return chunks
}
