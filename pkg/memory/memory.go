// Package memory persists per-identifier interaction history as JSON
// array files, one file per (identifier, flow) pair. Every save rewrites
// the whole file; concurrent processes racing on the same identifier
// resolve last-writer-wins, which matches the single-user scope of the
// system.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Flow distinguishes the two history kinds.
type Flow string

const (
	FlowRAG  Flow = "rag"
	FlowDuty Flow = "duty"
)

// Store reads and writes the history files of one flow.
type Store[E any] struct {
	dir  string
	flow Flow
}

func NewStore[E any](dir string, flow Flow) *Store[E] {
	if dir == "" {
		dir = "."
	}
	return &Store[E]{dir: dir, flow: flow}
}

// FilePath returns the memory file for the identifier, named
// {identifier}_{flow}_memory.json.
func (s *Store[E]) FilePath(identifier string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_memory.json", identifier, s.flow))
}

// Exists reports whether the identifier has a history file for this flow.
func (s *Store[E]) Exists(identifier string) bool {
	_, err := os.Stat(s.FilePath(identifier))
	return err == nil
}

// Load returns the identifier's entries in insertion order. A missing
// file is an empty history, never an error.
func (s *Store[E]) Load(identifier string) ([]E, error) {
	data, err := os.ReadFile(s.FilePath(identifier))
	if os.IsNotExist(err) {
		return []E{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read memory file: %w", err)
	}

	var entries []E
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse memory file %s: %w", s.FilePath(identifier), err)
	}
	if entries == nil {
		entries = []E{}
	}
	return entries, nil
}

// Save rewrites the identifier's whole history file.
func (s *Store[E]) Save(identifier string, entries []E) error {
	if entries == nil {
		entries = []E{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode memory: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}
	if err := os.WriteFile(s.FilePath(identifier), data, 0o644); err != nil {
		return fmt.Errorf("write memory file: %w", err)
	}
	return nil
}

// Append loads, appends one entry, and saves. Returns the new sequence.
func (s *Store[E]) Append(identifier string, entry E) ([]E, error) {
	entries, err := s.Load(identifier)
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	if err := s.Save(identifier, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes the entry at index, shifting later entries down, and
// saves. Returns the new sequence.
func (s *Store[E]) Delete(identifier string, index int) ([]E, error) {
	entries, err := s.Load(identifier)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("index %d out of range [0,%d)", index, len(entries))
	}
	entries = append(entries[:index], entries[index+1:]...)
	if err := s.Save(identifier, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
