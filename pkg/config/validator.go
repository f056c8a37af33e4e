package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Tariff.CSVPath == "" {
		errors = append(errors, ValidationError{
			Field:   "tariff.csv_path",
			Message: "tariff schedule path is required",
		})
	}

	if c.Documents.DBPath == "" {
		errors = append(errors, ValidationError{
			Field:   "documents.db_path",
			Message: "document store path is required",
		})
	}

	switch c.Index.Backend {
	case "disk":
		if c.Index.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "index.path",
				Message: "disk backend needs an index path",
			})
		}
	case "pgvector":
		if c.Index.ConnString == "" {
			errors = append(errors, ValidationError{
				Field:   "index.conn_string",
				Message: "pgvector backend needs a connection string",
			})
		} else if _, err := url.Parse(c.Index.ConnString); err != nil {
			errors = append(errors, ValidationError{
				Field:   "index.conn_string",
				Message: "invalid connection string",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "index.backend",
			Message: fmt.Sprintf("unknown backend %q (use disk or pgvector)", c.Index.Backend),
		})
	}

	if c.Index.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "index.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if _, err := url.Parse(c.Embedder.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "embedder.base_url",
			Message: "invalid embedder base URL",
		})
	}

	if c.Embedder.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "embedder.timeout_seconds",
			Message: "timeout_seconds must be positive",
		})
	}

	if c.Ingest.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "ingest.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.Ingest.ChunkOverlap < 0 || c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "ingest.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	if c.Ingest.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ingest.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	return errors
}
