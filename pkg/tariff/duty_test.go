package tariff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradedesk/htsagent/internal/models"
)

type stubSource struct {
	rows []models.TariffRow
	err  error
}

func (s stubSource) Lookup(code string) ([]models.TariffRow, error) {
	return s.rows, s.err
}

func TestCalculate(t *testing.T) {
	c := NewCalculator(CalculatorConfig{Source: stubSource{
		rows: []models.TariffRow{{HTSNumber: "0102.29.40", RateText: "5%", Rate: 0.05}},
	}})

	result := c.Calculate("0102.29.40", 1000, 50, 20)
	assert.Equal(t, 50.0, result.DutyCost)
	assert.Equal(t, 1120.0, result.TotalLandedCost)
}

func TestCalculateFirstRowWins(t *testing.T) {
	c := NewCalculator(CalculatorConfig{Source: stubSource{
		rows: []models.TariffRow{
			{Rate: 0.05},
			{Rate: 0.10},
		},
	}})

	result := c.Calculate("0102.29.40", 100, 0, 0)
	assert.Equal(t, 5.0, result.DutyCost)
}

func TestCalculateUnknownCode(t *testing.T) {
	c := NewCalculator(CalculatorConfig{Source: stubSource{}})

	result := c.Calculate("9999.99.99", 1000, 50, 20)
	assert.Equal(t, 0.0, result.DutyCost)
	assert.Equal(t, 0.0, result.TotalLandedCost)
}

func TestCalculateLookupFailure(t *testing.T) {
	c := NewCalculator(CalculatorConfig{Source: stubSource{err: errors.New("bad schedule")}})

	result := c.Calculate("0102.29.40", 1000, 50, 20)
	assert.Equal(t, models.DutyResult{}, result)
}

func TestCalculateRoundsToCents(t *testing.T) {
	c := NewCalculator(CalculatorConfig{Source: stubSource{
		rows: []models.TariffRow{{Rate: 0.0333}},
	}})

	result := c.Calculate("x", 99.99, 0.004, 0)
	assert.Equal(t, 3.33, result.DutyCost)
	assert.Equal(t, 103.32, result.TotalLandedCost)
}

func TestCalculateIsIdempotent(t *testing.T) {
	c := NewCalculator(CalculatorConfig{Source: stubSource{
		rows: []models.TariffRow{{Rate: 0.05}},
	}})

	first := c.Calculate("0102.29.40", 1000, 50, 20)
	second := c.Calculate("0102.29.40", 1000, 50, 20)
	assert.Equal(t, first, second)
}
