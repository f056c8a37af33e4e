// Package router answers free-text questions with a two-tier fallback:
// semantic search when an index is configured, keyword containment
// against the document store otherwise. It trades precision for
// availability; some answer always comes back, even with zero embedding
// infrastructure running.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradedesk/htsagent/internal/types"
)

// NoResult is returned verbatim when every tier comes up empty.
const NoResult = "No relevant information found."

// Strategy is one retrieval tier. Lookup reports found=false to pass
// the query to the next tier; an error stops the chain.
type Strategy interface {
	Name() string
	Lookup(ctx context.Context, query string) (answer string, found bool, err error)
}

type RouterConfig struct {
	Index           types.Index // optional; nil disables the semantic tier
	Documents       types.DocumentFinder
	SemanticTimeout time.Duration
	Logger          *slog.Logger
}

type Router struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewWithConfig(config RouterConfig) *Router {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.SemanticTimeout <= 0 {
		config.SemanticTimeout = 5 * time.Second
	}

	var strategies []Strategy
	if config.Index != nil {
		strategies = append(strategies, &semanticStrategy{
			index:   config.Index,
			timeout: config.SemanticTimeout,
			logger:  config.Logger,
		})
	}
	strategies = append(strategies, &keywordStrategy{documents: config.Documents})

	return &Router{strategies: strategies, logger: config.Logger}
}

// Answer resolves the query through the strategy chain. It never fails:
// retrieval errors are flattened into an "Error while searching: ..."
// string, and an empty chain result becomes the NoResult sentinel.
func (r *Router) Answer(ctx context.Context, query string) string {
	for _, strategy := range r.strategies {
		answer, found, err := strategy.Lookup(ctx, query)
		if err != nil {
			r.logger.Warn("retrieval failed", "strategy", strategy.Name(), "error", err)
			return fmt.Sprintf("Error while searching: %v", err)
		}
		if found {
			return answer
		}
	}
	return NoResult
}

// semanticStrategy returns the nearest passage's content, verbatim. A
// deadline overrun counts as a miss so the keyword tier still gets a
// shot; any other failure is a real error.
type semanticStrategy struct {
	index   types.Index
	timeout time.Duration
	logger  *slog.Logger
}

func (s *semanticStrategy) Name() string { return "semantic" }

func (s *semanticStrategy) Lookup(ctx context.Context, query string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.index.Search(ctx, query, 1)
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("semantic search timed out, falling back to keyword search", "query", query)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if len(results) == 0 {
		return "", false, nil
	}
	return results[0].Passage.Content, true, nil
}

type keywordStrategy struct {
	documents types.DocumentFinder
}

func (s *keywordStrategy) Name() string { return "keyword" }

func (s *keywordStrategy) Lookup(ctx context.Context, query string) (string, bool, error) {
	doc, found, err := s.documents.Find(ctx, query)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}
	return doc.Content, true, nil
}
