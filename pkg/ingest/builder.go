package ingest

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tradedesk/htsagent/internal/models"
	"github.com/tradedesk/htsagent/internal/types"
)

const embedBatchSize = 16

type BuilderConfig struct {
	Embedder   types.Embedder
	Writer     types.IndexWriter
	Chunker    Chunker
	RateLimit  float64 // embedding batches per second
	OnProgress func(done, total int)
}

// Builder chunks a loaded corpus, embeds the chunks and streams them
// into an index writer. Embedding calls are rate limited; they are the
// only externally-variable latency in the pipeline.
type Builder struct {
	config  BuilderConfig
	limiter *rate.Limiter
}

func NewBuilder(config BuilderConfig) *Builder {
	if config.RateLimit <= 0 {
		config.RateLimit = 4.0
	}
	if config.OnProgress == nil {
		config.OnProgress = func(done, total int) {}
	}

	return &Builder{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

// Build processes the sources and returns the number of indexed
// passages.
func (b *Builder) Build(ctx context.Context, sources []Source) (int, error) {
	var passages []models.Passage
	for _, source := range sources {
		for _, chunk := range b.config.Chunker.Split(source.Content) {
			passages = append(passages, models.Passage{
				ID:      len(passages),
				Source:  source.Path,
				Content: chunk,
			})
		}
	}
	if len(passages) == 0 {
		return 0, fmt.Errorf("corpus produced no chunks")
	}

	for start := 0; start < len(passages); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(passages) {
			end = len(passages)
		}
		batch := passages[start:end]

		if err := b.limiter.Wait(ctx); err != nil {
			return start, err
		}

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.Content
		}

		vectors, err := b.config.Embedder.CreateEmbedding(ctx, texts)
		if err != nil {
			return start, fmt.Errorf("embed batch at %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return start, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		if err := b.config.Writer.Add(ctx, batch, vectors); err != nil {
			return start, fmt.Errorf("index batch at %d: %w", start, err)
		}

		b.config.OnProgress(end, len(passages))
	}

	if err := b.config.Writer.Flush(); err != nil {
		return len(passages), fmt.Errorf("flush index: %w", err)
	}
	return len(passages), nil
}
