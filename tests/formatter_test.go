package tests

import (
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-invest-bot/src/utils"
	"testing"
)

func TestFormatQuantityStep(t *testing.T) {
	assertion := assert.New(t)
	formatter := utils.Formatter{}

	// rounds down to the step multiple, never up
	assertion.Equal(1.234, formatter.FormatQuantityStep(1.23456, 0.001))
	assertion.Equal(1.000, formatter.FormatQuantityStep(1.0009, 0.001))
	assertion.Equal(0.00, formatter.FormatQuantityStep(0.0009, 0.001))

	// coarse steps
	assertion.Equal(12.00, formatter.FormatQuantityStep(12.9, 1.00))
	assertion.Equal(0.0525, formatter.FormatQuantityStep(0.052599, 0.0001))

	// zero step size passes the quantity through unchanged
	assertion.Equal(1.23456, formatter.FormatQuantityStep(1.23456, 0.00))

	// exact multiples stay exact
	assertion.Equal(5.500, formatter.FormatQuantityStep(5.500, 0.001))
}

func TestTruncateAmount(t *testing.T) {
	assertion := assert.New(t)
	formatter := utils.Formatter{}

	assertion.Equal(33.33, formatter.TruncateAmount(100.00/3.00))
	assertion.Equal(50.00, formatter.TruncateAmount(100.00/2.00))
	assertion.Equal(10.99, formatter.TruncateAmount(10.999999))
	assertion.Equal(10.00, formatter.TruncateAmount(10.00))
	assertion.Equal(0.00, formatter.TruncateAmount(0.0099))
}

func TestGetPrecision(t *testing.T) {
	assertion := assert.New(t)
	formatter := utils.Formatter{}

	assertion.Equal(3, formatter.GetPrecision(0.001))
	assertion.Equal(0, formatter.GetPrecision(1.00))
	assertion.Equal(8, formatter.GetPrecision(0.00000001))
}

func TestComparePercentage(t *testing.T) {
	assertion := assert.New(t)
	formatter := utils.Formatter{}

	// 30% of a 90% active total becomes a third of the capital
	assertion.InDelta(33.3333, formatter.ComparePercentage(90.00, 30.00), 0.0001)
	assertion.Equal(100.00, formatter.ComparePercentage(50.00, 50.00))
}
