// internal/stats/distribution.go
package stats

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is the part of a gonum univariate distribution the pages use.
type Distribution interface {
	Prob(x float64) float64
	CDF(x float64) float64
}

// Curves holds density and cumulative values over one grid.
type Curves struct {
	PDF []float64
	CDF []float64
}

// Normal returns N(mu, sigma).
func Normal(mu, sigma float64) Distribution {
	return distuv.Normal{Mu: mu, Sigma: sigma}
}

// StandardNormal returns N(0, 1).
func StandardNormal() Distribution {
	return distuv.UnitNormal
}

// StudentT returns the standard Student's t distribution with dof degrees of freedom.
func StudentT(dof float64) Distribution {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
}

// PDF evaluates the density of d at every grid point.
func PDF(d Distribution, g Grid) []float64 {
	out := make([]float64, g.Len())
	for i, x := range g.xs {
		out[i] = d.Prob(x)
	}
	return out
}

// CDF evaluates the cumulative distribution of d at every grid point.
func CDF(d Distribution, g Grid) []float64 {
	out := make([]float64, g.Len())
	for i, x := range g.xs {
		out[i] = d.CDF(x)
	}
	return out
}

// Evaluate returns both curves of d over g.
func Evaluate(d Distribution, g Grid) Curves {
	return Curves{PDF: PDF(d, g), CDF: CDF(d, g)}
}
