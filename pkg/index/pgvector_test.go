package index

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/htsagent/internal/models"
)

func TestPgVectorRebuildReplacesCorpus(t *testing.T) {
	conn := os.Getenv("DATABASE_URL")
	if conn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	idx, err := NewPgVector(ctx, PgVectorConfig{
		ConnString: conn,
		TableName:  "test_passages",
		VectorDim:  3,
		Embedder:   fakeEmbedder{vectors: map[string][]float32{"tariffs": {1, 0, 0}}},
	})
	require.NoError(t, err)
	defer idx.Close()

	first := []models.Passage{
		{ID: 0, Source: "fta.txt", Content: "Tariffs on industrial goods are eliminated under the agreement."},
		{ID: 1, Source: "fta.txt", Content: "Dispute resolution panels hear trade complaints."},
	}
	require.NoError(t, idx.Add(ctx, first, [][]float32{{1, 0, 0}, {0, 1, 0}}))
	require.NoError(t, idx.Flush())

	// Rebuild with a smaller corpus; nothing from the first build may
	// survive.
	second := []models.Passage{
		{ID: 0, Source: "fta.txt", Content: "Customs duties phase out over ten years."},
	}
	require.NoError(t, idx.Add(ctx, second, [][]float32{{1, 0, 0}}))
	require.NoError(t, idx.Flush())

	results, err := idx.Search(ctx, "tariffs", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Passage.Content, "Customs duties")
}
