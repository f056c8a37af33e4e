package tariff

import (
	"log/slog"
	"math"

	"github.com/tradedesk/htsagent/internal/models"
	"github.com/tradedesk/htsagent/internal/types"
)

type CalculatorConfig struct {
	Source types.TariffSource
	Logger *slog.Logger
}

// Calculator turns a looked-up duty rate and the caller's cost inputs
// into a landed-cost result. Inputs are assumed non-negative; the
// boundary layer validates signs before calling in.
type Calculator struct {
	config CalculatorConfig
}

func NewCalculator(config CalculatorConfig) *Calculator {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Calculator{config: config}
}

// Calculate computes duty and total landed cost for the given code.
// An unknown code (or an unreadable schedule) yields a zero result:
// no data, no duty. When several rows share the code the first one wins.
func (c *Calculator) Calculate(code string, productCost, freight, insurance float64) models.DutyResult {
	rows, err := c.config.Source.Lookup(code)
	if err != nil {
		c.config.Logger.Warn("tariff lookup failed", "code", code, "error", err)
		return models.DutyResult{}
	}
	if len(rows) == 0 {
		return models.DutyResult{}
	}

	rate := rows[0].Rate
	dutyCost := productCost * rate
	totalCost := productCost + freight + insurance + dutyCost

	return models.DutyResult{
		DutyCost:        round2(dutyCost),
		TotalLandedCost: round2(totalCost),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
