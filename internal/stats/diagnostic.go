// internal/stats/diagnostic.go
package stats

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/integrate"
)

// ROCStep is the cutoff spacing of the ROC sweep; it matches the cutoff slider step.
const ROCStep = 0.2

// Classification summarizes a binary test whose marker is N(0,1) for healthy and
// N(separation,1) for sick subjects, with subjects above cutoff called positive.
type Classification struct {
	Sensitivity       float64
	Specificity       float64
	FalsePositiveRate float64
	FalseNegativeRate float64
}

// Classify computes the rates for one separation and cutoff.
func Classify(separation, cutoff float64) Classification {
	spec := StandardNormal().CDF(cutoff)
	fn := Normal(separation, 1).CDF(cutoff)
	return Classification{
		Sensitivity:       1 - fn,
		Specificity:       spec,
		FalsePositiveRate: 1 - spec,
		FalseNegativeRate: fn,
	}
}

// Predictive holds the prevalence-dependent view of a Classification.
type Predictive struct {
	TruePositives  float64
	FalseNegatives float64
	FalsePositives float64
	TrueNegatives  float64
	PPV            float64
	NPV            float64
}

// Predict spreads a population over the four outcomes of c at the given prevalence.
func (c Classification) Predict(prevalence, population float64) Predictive {
	sick := prevalence * population
	healthy := population - sick
	p := Predictive{
		TruePositives:  sick * c.Sensitivity,
		FalseNegatives: sick * c.FalseNegativeRate,
		FalsePositives: healthy * c.FalsePositiveRate,
		TrueNegatives:  healthy * c.Specificity,
	}
	if pos := p.TruePositives + p.FalsePositives; pos > 0 {
		p.PPV = p.TruePositives / pos
	}
	if neg := p.TrueNegatives + p.FalseNegatives; neg > 0 {
		p.NPV = p.TrueNegatives / neg
	}
	return p
}

// ROC holds the operating points of a cutoff sweep.
type ROC struct {
	Cutoffs []float64
	FPR     []float64
	TPR     []float64
	AUC     float64
}

// ROCCurve sweeps the cutoff over [-4, 4+separation] in ROCStep increments.
func ROCCurve(separation float64) (ROC, error) {
	lo, hi := -4.0, 4.0+separation
	n := int(math.Round((hi-lo)/ROCStep)) + 1
	g, err := NewGrid(lo, hi, n)
	if err != nil {
		return ROC{}, fmt.Errorf("roc grid: %w", err)
	}
	healthy := StandardNormal()
	sick := Normal(separation, 1)
	r := ROC{
		Cutoffs: g.Values(),
		FPR:     make([]float64, n),
		TPR:     make([]float64, n),
	}
	for i, x := range r.Cutoffs {
		r.FPR[i] = 1 - healthy.CDF(x)
		r.TPR[i] = 1 - sick.CDF(x)
	}
	r.AUC, err = AUC(r.FPR, r.TPR)
	if err != nil {
		return ROC{}, err
	}
	return r, nil
}

// AUC integrates tpr over fpr with the trapezoidal rule. The points may come
// in any order; they are sorted by fpr first.
func AUC(fpr, tpr []float64) (float64, error) {
	if len(fpr) != len(tpr) {
		return 0, fmt.Errorf("auc: length mismatch %d != %d", len(fpr), len(tpr))
	}
	if len(fpr) < 2 {
		return 0, fmt.Errorf("auc: need at least 2 points, got %d", len(fpr))
	}
	idx := make([]int, len(fpr))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case fpr[a] < fpr[b]:
			return -1
		case fpr[a] > fpr[b]:
			return 1
		}
		return 0
	})
	x := make([]float64, len(idx))
	y := make([]float64, len(idx))
	for i, j := range idx {
		x[i], y[i] = fpr[j], tpr[j]
	}
	return integrate.Trapezoidal(x, y), nil
}
