package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(StoreConfig{DBPath: filepath.Join(t.TempDir(), "hts_data.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestFindSubstring(t *testing.T) {
	s := openStore(t)

	doc, found, err := s.Find(context.Background(), "Free Trade")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, doc.Content, "Free Trade Agreement")
	assert.Equal(t, int64(1), doc.ID)
}

func TestFindFirstByID(t *testing.T) {
	s := openStore(t)

	// "agreement" appears in several passages; the lowest id wins.
	doc, found, err := s.Find(context.Background(), "agreement")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(1), doc.ID)
}

func TestFindNoMatch(t *testing.T) {
	s := openStore(t)

	_, found, err := s.Find(context.Background(), "nonexistent-term-xyz")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindWithoutTable(t *testing.T) {
	s, err := Open(StoreConfig{DBPath: filepath.Join(t.TempDir(), "empty.db")})
	require.NoError(t, err)
	defer s.Close()

	_, _, err = s.Find(context.Background(), "anything")
	assert.Error(t, err)
}

func TestInitializeIsIdempotent(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Initialize(context.Background()))

	docs, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, len(seedPassages))
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := openStore(t)

	id, err := s.Add(context.Background(), "Tariff classification rulings are published by customs authorities.")
	require.NoError(t, err)
	assert.Equal(t, int64(len(seedPassages)+1), id)
}

func TestImportCSV(t *testing.T) {
	s := openStore(t)

	csvPath := filepath.Join(t.TempDir(), "docs.csv")
	data := "title,content\nrulings,Binding rulings may be requested before importation.\nblank,\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0644))

	n, err := s.ImportCSV(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc, found, err := s.Find(context.Background(), "Binding rulings")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, doc.Content, "before importation")
}

func TestImportCSVMissingContentColumn(t *testing.T) {
	s := openStore(t)

	csvPath := filepath.Join(t.TempDir(), "docs.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0644))

	_, err := s.ImportCSV(context.Background(), csvPath)
	assert.Error(t, err)
}
