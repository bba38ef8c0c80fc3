package agent

// chunkMessage splits s into fixed-width pieces of at most limit runes,
// in order, with no overlap and no loss: concatenating the result yields s
// exactly. Width is counted in runes so a boundary never lands inside a
// UTF-8 sequence. Purely size-based, not word-aware.
func chunkMessage(s string, limit int) []string {
	runes := []rune(s)
	if limit < 1 || len(runes) <= limit {
		return []string{s}
	}

	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
