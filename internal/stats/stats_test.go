// internal/stats/stats_test.go
package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(-5, 5, 150)
	require.NoError(t, err)
	assert.Equal(t, 150, g.Len())
	assert.Equal(t, -5.0, g.Min())
	assert.Equal(t, 5.0, g.Max())

	_, err = NewGrid(0, 1, 1)
	assert.Error(t, err)
	_, err = NewGrid(1, 1, 10)
	assert.Error(t, err)
}

// TestGridIsImmutable verifies that callers cannot change the shared points
// through the copies they receive.
func TestGridIsImmutable(t *testing.T) {
	g := MustGrid(-1, 1, 5)
	vals := g.Values()
	vals[0] = 42
	head := g.Head(2)
	head[1] = 42
	shifted := g.Shifted(1)

	assert.Equal(t, -1.0, g.At(0))
	assert.Equal(t, -0.5, g.At(1))
	assert.InDelta(t, 0.0, shifted[0], 1e-12)
	assert.Len(t, g.Head(2), 3)
	assert.Len(t, g.Head(99), 5)
	assert.Len(t, g.Head(-3), 1)
}

// TestTableCurvesAreWellFormed checks every precomputed sigma: densities are
// non-negative and cumulative values never decrease.
func TestTableCurvesAreWellFormed(t *testing.T) {
	g := MustGrid(-5, 5, 150)
	tables := map[string]*Table{}
	var err error
	tables["normal"], err = NewTable(g, 5, 30, func(k int) Distribution { return Normal(0, float64(k)/10) })
	require.NoError(t, err)
	tables["t"], err = NewTable(g, 1, 16, func(k int) Distribution { return StudentT(float64(k)) })
	require.NoError(t, err)

	for name, tbl := range tables {
		for _, k := range tbl.Keys() {
			c := tbl.Lookup(k)
			require.Len(t, c.PDF, g.Len(), "%s/%d", name, k)
			require.Len(t, c.CDF, g.Len(), "%s/%d", name, k)
			for i := range c.PDF {
				assert.GreaterOrEqual(t, c.PDF[i], 0.0, "%s/%d pdf[%d]", name, k, i)
				if i > 0 {
					assert.GreaterOrEqual(t, c.CDF[i], c.CDF[i-1], "%s/%d cdf[%d]", name, k, i)
				}
			}
		}
	}
}

func TestTableClampsKeys(t *testing.T) {
	g := MustGrid(-5, 5, 11)
	tbl, err := NewTable(g, 5, 30, func(k int) Distribution { return Normal(0, float64(k)/10) })
	require.NoError(t, err)

	assert.Equal(t, 5, tbl.Clamp(0))
	assert.Equal(t, 30, tbl.Clamp(99))
	assert.Equal(t, tbl.Lookup(5).PDF, tbl.Lookup(-1).PDF)

	c := tbl.Lookup(10)
	c.PDF[0] = -1
	assert.GreaterOrEqual(t, tbl.Lookup(10).PDF[0], 0.0)

	_, err = NewTable(g, 3, 2, nil)
	assert.Error(t, err)
}

func TestCohenD(t *testing.T) {
	assert.InDelta(t, 2.0, CohenD(2.0, 1.0, 1.0), 0.01)
	assert.InDelta(t, 1.0/math.Sqrt(2.5), CohenD(1.0, 1.0, 2.0), 1e-12)
	assert.Equal(t, 0.0, CohenD(0, 0.5, 0.5))
}

func TestClassifySymmetricCase(t *testing.T) {
	c := Classify(0, 0)
	assert.InDelta(t, 0.5, c.Sensitivity, 1e-9)
	assert.InDelta(t, 0.5, c.Specificity, 1e-9)
	assert.InDelta(t, 0.5, c.FalsePositiveRate, 1e-9)
	assert.InDelta(t, 0.5, c.FalseNegativeRate, 1e-9)
}

func TestClassifyRatesAreComplementary(t *testing.T) {
	c := Classify(2, 1)
	assert.InDelta(t, 1.0, c.Sensitivity+c.FalseNegativeRate, 1e-12)
	assert.InDelta(t, 1.0, c.Specificity+c.FalsePositiveRate, 1e-12)
	assert.InDelta(t, 0.8413, c.Specificity, 1e-4)
	assert.InDelta(t, 0.8413, c.Sensitivity, 1e-4)
}

func TestPredict(t *testing.T) {
	p := Classify(2, 1).Predict(0.1, 10000)
	assert.InDelta(t, 10000, p.TruePositives+p.FalseNegatives+p.FalsePositives+p.TrueNegatives, 1e-6)
	assert.InDelta(t, 1000, p.TruePositives+p.FalseNegatives, 1e-6)
	assert.Greater(t, p.NPV, p.PPV)
	assert.Greater(t, p.PPV, 0.0)
	assert.Less(t, p.PPV, 1.0)
}

func TestROCCurveAUC(t *testing.T) {
	chance, err := ROCCurve(0)
	require.NoError(t, err)
	assert.Len(t, chance.Cutoffs, 41)
	assert.InDelta(t, 0.5, chance.AUC, 0.01)

	good, err := ROCCurve(5)
	require.NoError(t, err)
	assert.Len(t, good.Cutoffs, 66)
	assert.Greater(t, good.AUC, 0.99)
	assert.LessOrEqual(t, good.AUC, 1.0+1e-9)

	mid, err := ROCCurve(2)
	require.NoError(t, err)
	assert.Greater(t, mid.AUC, chance.AUC)
	assert.Less(t, mid.AUC, good.AUC)
}

func TestAUC(t *testing.T) {
	area, err := AUC([]float64{1, 0.5, 0}, []float64{1, 0.5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, area, 1e-12)

	area, err = AUC([]float64{0, 0, 1}, []float64{0, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, area, 1e-12)

	_, err = AUC([]float64{0}, []float64{0})
	assert.Error(t, err)
	_, err = AUC([]float64{0, 1}, []float64{0})
	assert.Error(t, err)
}
