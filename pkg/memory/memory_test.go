package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/htsagent/internal/models"
)

func TestLoadMissingIdentifier(t *testing.T) {
	s := NewStore[models.QueryEntry](t.TempDir(), FlowRAG)

	entries, err := s.Load("4242")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, s.Exists("4242"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore[models.QueryEntry](t.TempDir(), FlowRAG)

	entries := []models.QueryEntry{
		{Query: "What is the FTA?", Response: "The first free trade agreement entered into by the United States."},
		{Query: "When was it signed?", Response: "Signed in 1985."},
	}
	require.NoError(t, s.Save("4242", entries))

	loaded, err := s.Load("4242")
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
	assert.True(t, s.Exists("4242"))
}

func TestSaveEmptyRoundTrip(t *testing.T) {
	s := NewStore[models.DutyEntry](t.TempDir(), FlowDuty)

	require.NoError(t, s.Save("0001", []models.DutyEntry{}))
	loaded, err := s.Load("0001")
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.True(t, s.Exists("0001"))
}

func TestFilePathNaming(t *testing.T) {
	dir := t.TempDir()
	rag := NewStore[models.QueryEntry](dir, FlowRAG)
	duty := NewStore[models.DutyEntry](dir, FlowDuty)

	assert.Equal(t, filepath.Join(dir, "1234_rag_memory.json"), rag.FilePath("1234"))
	assert.Equal(t, filepath.Join(dir, "1234_duty_memory.json"), duty.FilePath("1234"))
}

func TestDutyEntryFileFormat(t *testing.T) {
	dir := t.TempDir()
	s := NewStore[models.DutyEntry](dir, FlowDuty)

	require.NoError(t, s.Save("1234", []models.DutyEntry{{
		HTSCode:         "0102.29.40",
		ProductCost:     1000,
		Freight:         50,
		Insurance:       20,
		DutyCost:        50,
		TotalLandedCost: 1120,
	}}))

	data, err := os.ReadFile(s.FilePath("1234"))
	require.NoError(t, err)
	// Field names on disk stay compatible with memory files written by
	// earlier releases.
	assert.Contains(t, string(data), `"HTS Code":"0102.29.40"`)
	assert.Contains(t, string(data), `"Total Landed Cost":1120`)
}

func TestAppend(t *testing.T) {
	s := NewStore[models.QueryEntry](t.TempDir(), FlowRAG)

	entries, err := s.Append("4242", models.QueryEntry{Query: "a", Response: "b"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = s.Append("4242", models.QueryEntry{Query: "c", Response: "d"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Query)
	assert.Equal(t, "c", entries[1].Query)
}

func TestDeletePreservesOrder(t *testing.T) {
	s := NewStore[models.QueryEntry](t.TempDir(), FlowRAG)

	for _, q := range []string{"one", "two", "three"} {
		_, err := s.Append("4242", models.QueryEntry{Query: q})
		require.NoError(t, err)
	}

	entries, err := s.Delete("4242", 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Query)
	assert.Equal(t, "three", entries[1].Query)

	// Deletion is persisted, not just in-memory.
	loaded, err := s.Load("4242")
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestDeleteOutOfRange(t *testing.T) {
	s := NewStore[models.QueryEntry](t.TempDir(), FlowRAG)

	_, err := s.Append("4242", models.QueryEntry{Query: "only"})
	require.NoError(t, err)

	_, err = s.Delete("4242", 1)
	assert.Error(t, err)
	_, err = s.Delete("4242", -1)
	assert.Error(t, err)
}

func TestIdentifiersAreIsolated(t *testing.T) {
	s := NewStore[models.QueryEntry](t.TempDir(), FlowRAG)

	_, err := s.Append("1111", models.QueryEntry{Query: "first user"})
	require.NoError(t, err)

	entries, err := s.Load("2222")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
