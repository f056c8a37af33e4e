// Package agent is the core's public surface: answer a query, compute a
// landed cost. Each interaction runs against an explicit Session holding
// the caller's identifier and loaded histories; there is no ambient
// per-user state.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/tradedesk/htsagent/internal/models"
	"github.com/tradedesk/htsagent/pkg/export"
	"github.com/tradedesk/htsagent/pkg/memory"
	"github.com/tradedesk/htsagent/pkg/router"
	"github.com/tradedesk/htsagent/pkg/tariff"
)

type Config struct {
	Router      *router.Router
	Calculator  *tariff.Calculator
	QueryMemory *memory.Store[models.QueryEntry]
	DutyMemory  *memory.Store[models.DutyEntry]
	Logger      *slog.Logger
}

type Agent struct {
	config Config
}

func New(config Config) *Agent {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Agent{config: config}
}

// Session is one user interaction's context: the identifier plus both
// histories as loaded at session start.
type Session struct {
	Identifier string
	Queries    []models.QueryEntry
	Duties     []models.DutyEntry
}

// NewSession loads both histories for the identifier. Unknown
// identifiers start with empty histories.
func (a *Agent) NewSession(identifier string) (*Session, error) {
	queries, err := a.config.QueryMemory.Load(identifier)
	if err != nil {
		return nil, fmt.Errorf("load query history: %w", err)
	}
	duties, err := a.config.DutyMemory.Load(identifier)
	if err != nil {
		return nil, fmt.Errorf("load duty history: %w", err)
	}

	return &Session{Identifier: identifier, Queries: queries, Duties: duties}, nil
}

// AnswerQuery routes the query and records the exchange. The answer is
// always a string, sentinel and error strings included; those are
// remembered too, matching what the user saw. The returned error covers
// persistence only.
func (a *Agent) AnswerQuery(ctx context.Context, sess *Session, query string) (string, error) {
	answer := a.config.Router.Answer(ctx, query)

	sess.Queries = append(sess.Queries, models.QueryEntry{Query: query, Response: answer})
	if err := a.config.QueryMemory.Save(sess.Identifier, sess.Queries); err != nil {
		return answer, fmt.Errorf("save query history: %w", err)
	}
	return answer, nil
}

// CalculateDuty computes the landed cost and records the calculation
// with its inputs. Inputs are assumed validated by the boundary layer.
func (a *Agent) CalculateDuty(sess *Session, code string, productCost, freight, insurance float64) (models.DutyResult, error) {
	result := a.config.Calculator.Calculate(code, productCost, freight, insurance)

	sess.Duties = append(sess.Duties, models.DutyEntry{
		HTSCode:         code,
		ProductCost:     productCost,
		Freight:         freight,
		Insurance:       insurance,
		DutyCost:        result.DutyCost,
		TotalLandedCost: result.TotalLandedCost,
	})
	if err := a.config.DutyMemory.Save(sess.Identifier, sess.Duties); err != nil {
		return result, fmt.Errorf("save duty history: %w", err)
	}
	return result, nil
}

// DeleteQueryEntry removes the query-history entry at index.
func (a *Agent) DeleteQueryEntry(sess *Session, index int) error {
	entries, err := a.config.QueryMemory.Delete(sess.Identifier, index)
	if err != nil {
		return err
	}
	sess.Queries = entries
	return nil
}

// DeleteDutyEntry removes the duty-history entry at index.
func (a *Agent) DeleteDutyEntry(sess *Session, index int) error {
	entries, err := a.config.DutyMemory.Delete(sess.Identifier, index)
	if err != nil {
		return err
	}
	sess.Duties = entries
	return nil
}

// ExportDuty writes the session's duty history to dir in the given
// format ("excel" or "pdf") and returns the written path.
func (a *Agent) ExportDuty(sess *Session, format, dir string) (string, error) {
	switch format {
	case "excel":
		path := filepath.Join(dir, "duty_results.xlsx")
		if err := export.ToExcel(sess.Duties, path); err != nil {
			return "", err
		}
		return path, nil
	case "pdf":
		path := filepath.Join(dir, "duty_results.pdf")
		if err := export.ToPDF(sess.Duties, path); err != nil {
			return "", err
		}
		return path, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use excel or pdf)", format)
	}
}

// KnownIdentifier reports whether any history file exists for the
// identifier, in either flow.
func (a *Agent) KnownIdentifier(identifier string) bool {
	return a.config.QueryMemory.Exists(identifier) || a.config.DutyMemory.Exists(identifier)
}
