package index

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/tradedesk/htsagent/internal/models"
	"github.com/tradedesk/htsagent/internal/types"
)

type PgVectorConfig struct {
	ConnString string
	TableName  string
	VectorDim  int
	Embedder   types.Embedder
}

// PgVector is a Postgres-backed index using the pgvector extension.
// Writes run inside a single rebuild transaction: the first Add clears
// the table and Flush commits, so a rebuild replaces the previous
// corpus the way the disk backend rewrites its file.
type PgVector struct {
	config PgVectorConfig
	pool   *pgxpool.Pool
	tx     pgx.Tx
}

func NewPgVector(ctx context.Context, config PgVectorConfig) (*PgVector, error) {
	if config.TableName == "" {
		config.TableName = "passages"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 768
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	idx := &PgVector{config: config, pool: pool}

	if err := idx.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return idx, nil
}

func (p *PgVector) initialize(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d)
		)`, p.config.TableName, p.config.VectorDim)

	_, err = p.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		p.config.TableName, p.config.TableName)

	_, err = p.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// Add stages passages in the rebuild transaction, beginning it and
// clearing the previous corpus on first use.
func (p *PgVector) Add(ctx context.Context, passages []models.Passage, vectors [][]float32) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passages and vectors length mismatch: %d != %d", len(passages), len(vectors))
	}

	if p.tx == nil {
		tx, err := p.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %v", err)
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", p.config.TableName)); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to clear table: %v", err)
		}
		p.tx = tx
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, source, content, embedding)
		VALUES ($1, $2, $3, $4)`,
		p.config.TableName)

	for i, passage := range passages {
		_, err := p.tx.Exec(ctx, stmt,
			passage.ID,
			passage.Source,
			passage.Content,
			pgvector.NewVector(vectors[i]),
		)
		if err != nil {
			p.tx.Rollback(ctx)
			p.tx = nil
			return fmt.Errorf("failed to insert passage: %v", err)
		}
	}

	return nil
}

// Flush commits the rebuild transaction. Until it commits, searches
// keep seeing the previous corpus.
func (p *PgVector) Flush() error {
	if p.tx == nil {
		return nil
	}
	err := p.tx.Commit(context.Background())
	p.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// Search embeds the query and returns the k nearest passages by cosine
// distance.
func (p *PgVector) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	if k <= 0 {
		k = 1
	}

	embeddings, err := p.config.Embedder.CreateEmbedding(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}

	sql := fmt.Sprintf(`
		SELECT id, source, content, 1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		p.config.TableName)

	rows, err := p.pool.Query(ctx, sql, pgvector.NewVector(embeddings[0]), k)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %v", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Passage.ID, &r.Passage.Source, &r.Passage.Content, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func (p *PgVector) Close() error {
	if p.tx != nil {
		p.tx.Rollback(context.Background())
		p.tx = nil
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
