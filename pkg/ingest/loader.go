// Package ingest builds a semantic index from a local corpus of
// trade-agreement documents: load, chunk, embed, write.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Source is one loaded corpus file, reduced to plain text.
type Source struct {
	Path    string
	Content string
}

// LoadPaths expands glob patterns and loads every .txt, .html and .htm
// file they match. HTML is reduced to its visible text.
func LoadPaths(patterns []string) ([]Source, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if matches == nil {
			matches = []string{pattern}
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	var sources []Source
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt":
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			sources = append(sources, Source{Path: path, Content: string(data)})
		case ".html", ".htm":
			content, err := loadHTML(path)
			if err != nil {
				return nil, err
			}
			sources = append(sources, Source{Path: path, Content: content})
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no .txt or .html documents found")
	}
	return sources, nil
}

func loadHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return text, nil
}
