package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/htsagent/internal/models"
)

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f fakeEmbedder) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, ok := f.vectors[text]
		if !ok {
			v = []float32{0, 0, 1}
		}
		out = append(out, v)
	}
	return out, nil
}

func buildIndex(t *testing.T) (string, fakeEmbedder) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectorstore.idx")

	passages := []models.Passage{
		{ID: 0, Source: "fta.txt", Content: "Tariffs on industrial goods are eliminated under the agreement."},
		{ID: 1, Source: "fta.txt", Content: "Dispute resolution panels hear trade complaints."},
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
	}

	w := NewDiskWriter(path, "test-model", 3)
	require.NoError(t, w.Add(context.Background(), passages, vectors))
	require.NoError(t, w.Flush())

	return path, fakeEmbedder{vectors: map[string][]float32{
		"tariffs":  {0.9, 0.1, 0},
		"disputes": {0.1, 0.9, 0},
	}}
}

func TestDiskSearch(t *testing.T) {
	path, emb := buildIndex(t)

	idx, err := OpenDisk(DiskConfig{Path: path, Embedder: emb})
	require.NoError(t, err)
	defer idx.Close()

	results, err := idx.Search(context.Background(), "tariffs", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Passage.Content, "industrial goods")

	results, err = idx.Search(context.Background(), "disputes", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Passage.Content, "Dispute resolution")
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestLazyDiskSearch(t *testing.T) {
	path, emb := buildIndex(t)

	idx := NewLazyDisk(DiskConfig{Path: path, Embedder: emb})
	defer idx.Close()

	results, err := idx.Search(context.Background(), "tariffs", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Passage.Content, "industrial goods")
}

func TestLazyDiskMissingFileIsEmpty(t *testing.T) {
	idx := NewLazyDisk(DiskConfig{
		Path:     filepath.Join(t.TempDir(), "absent.idx"),
		Embedder: fakeEmbedder{},
	})

	results, err := idx.Search(context.Background(), "tariffs", 1)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestLazyDiskMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectorstore.idx")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0644))

	idx := NewLazyDisk(DiskConfig{Path: path, Embedder: fakeEmbedder{}})

	_, err := idx.Search(context.Background(), "tariffs", 1)
	assert.Error(t, err)
}

func TestOpenDiskMissing(t *testing.T) {
	_, err := OpenDisk(DiskConfig{Path: filepath.Join(t.TempDir(), "absent.idx")})
	assert.Error(t, err)
}

func TestDiskWriterLengthMismatch(t *testing.T) {
	w := NewDiskWriter(filepath.Join(t.TempDir(), "x.idx"), "m", 3)
	err := w.Add(context.Background(), []models.Passage{{ID: 0}}, nil)
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
