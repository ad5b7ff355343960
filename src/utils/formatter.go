package utils

import (
	"math"
	"strconv"
	"strings"
)

type Formatter struct {
}

// GetPrecision returns the number of decimal places a filter value implies,
// e.g. a step size of 0.001 implies 3.
func (m *Formatter) GetPrecision(value float64) int {
	split := strings.Split(strconv.FormatFloat(value, 'f', -1, 64), ".")
	if len(split) > 1 {
		return len(split[1])
	}

	return 0
}

// TruncateToPrecision cuts a value to the given number of decimal places,
// always toward zero. String based to avoid re-rounding float artifacts up.
func (m *Formatter) TruncateToPrecision(value float64, precision int) float64 {
	split := strings.Split(strconv.FormatFloat(value, 'f', -1, 64), ".")

	if len(split) == 1 || precision <= 0 {
		truncated, _ := strconv.ParseFloat(split[0], 64)
		return truncated
	}

	decimals := split[1]
	if len(decimals) > precision {
		decimals = decimals[0:precision]
	}

	truncated, _ := strconv.ParseFloat(split[0]+"."+decimals, 64)

	return truncated
}

// FormatQuantityStep rounds a quantity down to an exact multiple of the
// exchange step size, re-truncated to the step's own precision. The result
// is never greater than the input: overshooting lot granularity gets the
// order rejected by the exchange.
func (m *Formatter) FormatQuantityStep(quantity float64, stepSize float64) float64 {
	if stepSize == 0.00 {
		return quantity
	}

	adjusted := math.Floor(quantity/stepSize) * stepSize

	return m.TruncateToPrecision(adjusted, m.GetPrecision(stepSize))
}

// TruncateAmount truncates a quote amount to the base asset minor unit
// (2 decimals), always down, so allocations never overspend.
func (m *Formatter) TruncateAmount(amount float64) float64 {
	return m.TruncateToPrecision(amount, 2)
}

func (m *Formatter) ComparePercentage(first float64, second float64) float64 {
	return second * 100.00 / first
}
