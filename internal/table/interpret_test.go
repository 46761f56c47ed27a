package table_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/stayparse/internal/table"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name string
		nums []float64
		want table.Interpretation
	}{
		{"empty", nil, table.Interpretation{Quantity: 1}},
		{"single rate", []float64{12000}, table.Interpretation{Rate: 12000, Quantity: 1}},
		{"qty then rate", []float64{30, 12000}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"rate then qty", []float64{12000, 30}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"rate and total", []float64{12000, 360000}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"qty and total", []float64{30, 360000}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"qty glued to rate", []float64{30, 3012000}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"glued with total", []float64{3012000, 360000}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"two unrelated rates", []float64{12000, 14000}, table.Interpretation{Rate: 12000, Quantity: 1}},
		{"three columns", []float64{30, 12000, 360000}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"three reordered", []float64{360000, 30, 12000}, table.Interpretation{Rate: 12000, Quantity: 30}},
		{"rounded total", []float64{3, 9999, 30500}, table.Interpretation{Rate: 9999, Quantity: 3}},
		{"no identity", []float64{2, 100, 90000}, table.Interpretation{Rate: 100, Quantity: 2}},
		{"no qty column", []float64{8000, 9000, 72000}, table.Interpretation{Rate: 8000, Quantity: 9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, table.Interpret(tc.nums))
		})
	}
}

func TestInterpret_SyntheticAccuracy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 2000
	correct := 0
	for i := 0; i < n; i++ {
		qty := 1 + rng.Intn(200)
		rate := float64(1000 + 100*rng.Intn(490))
		nums := []float64{float64(qty), rate, float64(qty) * rate}
		rng.Shuffle(len(nums), func(a, b int) { nums[a], nums[b] = nums[b], nums[a] })

		got := table.Interpret(nums)
		if got.Quantity == qty && got.Rate == rate {
			correct++
		}
	}
	assert.GreaterOrEqual(t, float64(correct)/n, 0.95)
}
