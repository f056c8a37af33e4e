package ingest

import (
	"strings"
	"unicode/utf8"
)

type ChunkerConfig struct {
	ChunkSize      int
	ChunkOverlap   int
	MinChunkLength int
}

// Chunker splits document text into overlapping, sentence-aligned
// chunks sized for embedding.
type Chunker struct {
	config ChunkerConfig
}

func NewChunker(config ChunkerConfig) Chunker {
	if config.ChunkSize == 0 {
		config.ChunkSize = 1000
	}
	if config.ChunkOverlap == 0 {
		config.ChunkOverlap = 100
	}
	if config.MinChunkLength == 0 {
		config.MinChunkLength = 100
	}

	return Chunker{config: config}
}

// Split cleans the text and cuts it into chunks. Sentences are kept
// whole; consecutive chunks share ChunkOverlap trailing characters.
func (c Chunker) Split(text string) []string {
	// Collapse runs of whitespace, keeping the original casing: chunks
	// are shown to users verbatim.
	text = strings.TrimSpace(strings.Join(strings.Fields(text), " "))
	if text == "" {
		return nil
	}

	sentences := splitIntoSentences(text)

	var chunks []string
	currentChunk := strings.Builder{}

	for _, sentence := range sentences {
		if currentChunk.Len()+len(sentence) > c.config.ChunkSize {
			if currentChunk.Len() >= c.config.MinChunkLength {
				chunks = append(chunks, strings.TrimSpace(currentChunk.String()))
			}

			if c.config.ChunkOverlap > 0 && currentChunk.Len() > c.config.ChunkOverlap {
				tail := currentChunk.String()
				cut := len(tail) - c.config.ChunkOverlap
				// The cut must not land inside a multi-byte rune.
				for cut < len(tail) && !utf8.RuneStart(tail[cut]) {
					cut++
				}
				currentChunk.Reset()
				currentChunk.WriteString(tail[cut:])
			} else {
				currentChunk.Reset()
			}
		}

		currentChunk.WriteString(sentence)
		currentChunk.WriteString(" ")
	}

	if currentChunk.Len() >= c.config.MinChunkLength {
		chunks = append(chunks, strings.TrimSpace(currentChunk.String()))
	} else if len(chunks) == 0 && currentChunk.Len() > 0 {
		// Better a short chunk than losing a short document entirely.
		chunks = append(chunks, strings.TrimSpace(currentChunk.String()))
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	enders := []string{". ", "! ", "? "}
	var sentences []string

	remaining := text
	for len(remaining) > 0 {
		cut := -1
		for _, ender := range enders {
			if i := strings.Index(remaining, ender); i >= 0 && (cut < 0 || i < cut) {
				cut = i
			}
		}
		if cut < 0 {
			sentences = append(sentences, remaining)
			break
		}
		sentences = append(sentences, remaining[:cut+1])
		remaining = strings.TrimLeft(remaining[cut+2:], " ")
	}

	return sentences
}
