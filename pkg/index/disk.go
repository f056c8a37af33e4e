package index

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tradedesk/htsagent/internal/models"
	"github.com/tradedesk/htsagent/internal/types"
)

// diskFile is the serialized form of a flat index: one vector per
// passage, embedded with the named model.
type diskFile struct {
	Model    string
	Dim      int
	Passages []models.Passage
	Vectors  [][]float32
}

type DiskConfig struct {
	Path     string
	Embedder types.Embedder
}

// Disk is a flat on-disk index searched by brute-force cosine scan.
// Corpora here are small enough that a scan beats carrying an ANN
// structure.
type Disk struct {
	config DiskConfig
	file   diskFile
}

// OpenDisk loads a previously written index file. A missing file
// surfaces as an fs.ErrNotExist-wrapping error so callers can treat
// absence as "no semantic tier configured".
func OpenDisk(config DiskConfig) (*Disk, error) {
	f, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	var file diskFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", config.Path, err)
	}
	if len(file.Passages) != len(file.Vectors) {
		return nil, fmt.Errorf("index %s is corrupt: %d passages, %d vectors",
			config.Path, len(file.Passages), len(file.Vectors))
	}

	return &Disk{config: config, file: file}, nil
}

// Search embeds the query and returns the top-k passages by cosine
// similarity. No score threshold is applied; any nearest passage is a
// result.
func (d *Disk) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	if k <= 0 {
		k = 1
	}
	if len(d.file.Vectors) == 0 {
		return nil, nil
	}

	embeddings, err := d.config.Embedder.CreateEmbedding(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}

	results := make([]models.SearchResult, 0, len(d.file.Passages))
	for i, vec := range d.file.Vectors {
		results = append(results, models.SearchResult{
			Passage: d.file.Passages[i],
			Score:   CosineSimilarity(embeddings[0], vec),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func (d *Disk) Close() error { return nil }

// LazyDisk defers loading the index file until the first search. A
// missing file is an empty result set, so a corpus that was never
// ingested degrades to keyword search; a file that fails to decode
// surfaces as the search error, where callers flatten retrieval
// failures instead of aborting.
type LazyDisk struct {
	config DiskConfig
	once   sync.Once
	idx    *Disk
	err    error
}

func NewLazyDisk(config DiskConfig) *LazyDisk {
	return &LazyDisk{config: config}
}

func (l *LazyDisk) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	l.once.Do(func() {
		l.idx, l.err = OpenDisk(l.config)
	})
	if errors.Is(l.err, fs.ErrNotExist) {
		return nil, nil
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.idx.Search(ctx, query, k)
}

func (l *LazyDisk) Close() error { return nil }

// DiskWriter accumulates passages and writes the serialized index in
// one shot on Flush.
type DiskWriter struct {
	path string
	file diskFile
}

func NewDiskWriter(path, model string, dim int) *DiskWriter {
	return &DiskWriter{
		path: path,
		file: diskFile{Model: model, Dim: dim},
	}
}

func (w *DiskWriter) Add(ctx context.Context, passages []models.Passage, vectors [][]float32) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passages and vectors length mismatch: %d != %d", len(passages), len(vectors))
	}
	w.file.Passages = append(w.file.Passages, passages...)
	w.file.Vectors = append(w.file.Vectors, vectors...)
	return nil
}

func (w *DiskWriter) Flush() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(w.file); err != nil {
		f.Close()
		return fmt.Errorf("encode index: %w", err)
	}
	return f.Close()
}
