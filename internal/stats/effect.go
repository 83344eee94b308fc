// internal/stats/effect.go
package stats

import "math"

// PooledSD is the root mean square of two standard deviations.
func PooledSD(sigma1, sigma2 float64) float64 {
	return math.Sqrt((sigma1*sigma1 + sigma2*sigma2) / 2)
}

// CohenD is the mean difference scaled by the pooled standard deviation.
func CohenD(deltaMu, sigma1, sigma2 float64) float64 {
	return deltaMu / PooledSD(sigma1, sigma2)
}
