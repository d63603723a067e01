// Package chunk splits document text into word-sized chunks for embedding.
// Words stand in for tokens; chunks do not overlap.
package chunk

import "strings"

// DefaultSize is used when a non-positive size is requested.
const DefaultSize = 512

// Chunker splits text into fixed-size word chunks.
type Chunker struct {
	Size int // number of words per chunk
}

// New creates a Chunker with the given chunk size.
func New(size int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	return &Chunker{Size: size}
}

// Chunk splits the input text into slices of at most Size words.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+c.Size-1)/c.Size)
	for i := 0; i < len(words); i += c.Size {
		end := min(i+c.Size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
