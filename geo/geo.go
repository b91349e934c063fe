// Package geo holds the numeric helpers the particle filter leans on:
// Euclidean distance and an axis-aligned bivariate Gaussian density.
package geo

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Dist returns the Euclidean distance between (x1, y1) and (x2, y2).
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// MultivProb evaluates a bivariate Gaussian density with independent x
// and y standard deviations at (x, y), centered on (muX, muY).
func MultivProb(sigX, sigY, x, y, muX, muY float64) float64 {
	px := distuv.Normal{Mu: muX, Sigma: sigX}.Prob(x)
	py := distuv.Normal{Mu: muY, Sigma: sigY}.Prob(y)
	return px * py
}
