package pricing

import (
	"math/rand/v2"
	"testing"

	"aerosense/estimator/internal/models"

	"github.com/stretchr/testify/assert"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestBase(t *testing.T) {
	assert.Equal(t, 2500.0, DefaultTable.Base(100))
	assert.Equal(t, 6500.0, DefaultTable.Base(1000))
}

func TestDemandMultiplier_Bands(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 2.8},
		{1, 2.2},
		{2, 2.2},
		{3, 1.7},
		{6, 1.7},
		{7, 1.35},
		{13, 1.35},
		{14, 1.1},
		{29, 1.1},
		{30, 0.9},
		{365, 0.9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultTable.DemandMultiplier(tt.days), "days=%d", tt.days)
	}
}

func TestDemandMultiplier_NonIncreasing(t *testing.T) {
	prev := DefaultTable.DemandMultiplier(0)
	for d := 1; d <= 400; d++ {
		cur := DefaultTable.DemandMultiplier(d)
		assert.LessOrEqual(t, cur, prev, "days=%d", d)
		prev = cur
	}
}

func TestPrice_WithinJitterBounds(t *testing.T) {
	rng := newRand(1)
	for _, cabin := range []models.CabinClass{models.CabinEconomy, models.CabinBusiness, models.CabinFirst} {
		mid := DefaultTable.Base(1150) * DefaultTable.CabinMultiplier(cabin) * 0.9
		for i := 0; i < 200; i++ {
			p := Price(cabin, 45, 1150, rng)
			assert.GreaterOrEqual(t, float64(p), mid*0.9-1)
			assert.LessOrEqual(t, float64(p), mid*1.1+1)
		}
	}
}

func TestPrice_CabinOrdering(t *testing.T) {
	noJitter := DefaultTable
	noJitter.Jitter = 0
	rng := newRand(2)

	eco := noJitter.Price(models.CabinEconomy, 20, 2000, rng)
	biz := noJitter.Price(models.CabinBusiness, 20, 2000, rng)
	first := noJitter.Price(models.CabinFirst, 20, 2000, rng)

	assert.Equal(t, 14300, eco)
	assert.Less(t, eco, biz)
	assert.Less(t, biz, first)
}

func TestPrice_AverageNonIncreasingWithHorizon(t *testing.T) {
	horizons := []int{0, 2, 5, 10, 20, 45}
	const samples = 2000

	prevAvg := -1.0
	for i, days := range horizons {
		rng := newRand(uint64(100 + i))
		total := 0
		for n := 0; n < samples; n++ {
			total += Price(models.CabinEconomy, days, 1150, rng)
		}
		avg := float64(total) / samples
		if prevAvg > 0 {
			assert.Less(t, avg, prevAvg, "days=%d", days)
		}
		prevAvg = avg
	}
}

func TestPrice_Deterministic(t *testing.T) {
	a := Price(models.CabinEconomy, 10, 800, newRand(42))
	b := Price(models.CabinEconomy, 10, 800, newRand(42))
	assert.Equal(t, a, b)
}

func TestPrice_FloorAtOne(t *testing.T) {
	tiny := Table{MinimumFare: 0.1, PerKmRate: 0, FarOutMultiplier: 1}
	assert.Equal(t, 1, tiny.Price(models.CabinEconomy, 100, 0, newRand(3)))
}
