package utils

import (
	"math"
)

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// SumAmounts adds money amounts and rounds the total to cents.
func SumAmounts(amounts []float64) float64 {
	total := 0.0
	for _, a := range amounts {
		total += a
	}
	return RoundFloat(total, 2)
}

// CalculateStats returns the average and sample standard deviation of data,
// both rounded to cents. An empty slice yields (0, 0); a single value has no
// spread.
func CalculateStats(data []float64) (float64, float64) {
	n := len(data)
	if n == 0 {
		return 0.0, 0.0
	}

	sum := 0.0
	for _, val := range data {
		sum += val
	}
	average := sum / float64(n)

	if n < 2 {
		return RoundFloat(average, 2), 0.0
	}

	varianceSum := 0.0
	for _, val := range data {
		varianceSum += math.Pow(val-average, 2)
	}
	stdDev := math.Sqrt(varianceSum / float64(n-1))

	return RoundFloat(average, 2), RoundFloat(stdDev, 2)
}
