// Package docstore is the keyword fallback of the retrieval pipeline: a
// sqlite-backed table of text passages searched by substring containment.
package docstore

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tradedesk/htsagent/internal/models"
)

// Seed passages describing the US-Israel Free Trade Agreement, inserted
// when a fresh store is initialized.
var seedPassages = []string{
	"The United States-Israel Free Trade Agreement (FTA) is the first free trade agreement entered into by the United States.",
	"Signed in 1985, it aims to eliminate trade barriers and promote economic cooperation between the United States and Israel.",
	"Under the agreement, tariffs on industrial and agricultural goods between the two nations are reduced or eliminated.",
	"The FTA has provisions to resolve trade disputes and protect intellectual property rights.",
	"The agreement has significantly increased trade volume, benefiting industries like technology, agriculture, and pharmaceuticals.",
}

type StoreConfig struct {
	DBPath string
	Logger *slog.Logger
}

type Store struct {
	config StoreConfig
	db     *sql.DB
}

// Open opens (or creates) the document database at the configured path.
func Open(config StoreConfig) (*Store, error) {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	dir := filepath.Dir(config.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	return &Store{config: config, db: db}, nil
}

// Initialize creates the documents table and seeds it with the example
// trade-agreement passages when the table is empty.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, content := range seedPassages {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO documents (content) VALUES (?)`, content); err != nil {
			return fmt.Errorf("seed documents: %w", err)
		}
	}

	s.config.Logger.Info("document store initialized", "path", s.config.DBPath, "seeded", len(seedPassages))
	return nil
}

// Find returns the first document, in id order, whose content contains
// query as a substring (sqlite LIKE with wildcard wrapping). The second
// return value reports whether anything matched.
func (s *Store) Find(ctx context.Context, query string) (models.Document, bool, error) {
	var doc models.Document
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content FROM documents WHERE content LIKE ? ORDER BY id LIMIT 1`,
		"%"+query+"%").Scan(&doc.ID, &doc.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, false, nil
	}
	if err != nil {
		return models.Document{}, false, err
	}
	return doc, true, nil
}

// Add inserts a passage and returns its assigned id.
func (s *Store) Add(ctx context.Context, content string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO documents (content) VALUES (?)`, content)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	return res.LastInsertId()
}

// All returns every stored document in id order.
func (s *Store) All(ctx context.Context) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, content FROM documents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Content); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ImportCSV loads rows of a csv file carrying a "content" column into
// the documents table. Returns the number of imported rows.
func (s *Store) ImportCSV(ctx context.Context, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	contentCol := -1
	for i, name := range header {
		if name == "content" {
			contentCol = i
		}
	}
	if contentCol < 0 {
		return 0, fmt.Errorf("csv %s has no content column", csvPath)
	}

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read csv record: %w", err)
		}
		if contentCol >= len(record) || record[contentCol] == "" {
			continue
		}
		if _, err := s.Add(ctx, record[contentCol]); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
