// Package index provides nearest-neighbor search over an embedded
// passage corpus. Two backends exist: a flat gob-serialized file scanned
// with cosine similarity, and a pgvector-backed Postgres table. Either
// one is optional; the query router degrades to keyword search when no
// index is configured.
package index

import "math"

// CosineSimilarity computes cosine similarity between two vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
