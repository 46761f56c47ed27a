package table

import (
	"math"
	"sort"
	"strconv"
)

const (
	// QuantityCeiling bounds what a quantity column can hold.
	QuantityCeiling = 500
	// RateTolerance is the relative error allowed when matching rate to total/qty.
	RateTolerance = 0.15
	// MaxPlausibleRate is the largest nightly rate taken at face value.
	MaxPlausibleRate = 200000
	// MinPlausibleRate is the smallest rate a glued-column repair may produce.
	MinPlausibleRate = 100
)

// Interpretation is the reading of one row's numeric columns.
type Interpretation struct {
	Rate     float64
	Quantity int
}

// Interpret decides which of a row's numbers are the quantity and the unit
// rate. Contracts usually print quantity, rate, line total, but the order is
// not trusted; magnitudes and rate x quantity ~ total decide instead.
func Interpret(nums []float64) Interpretation {
	switch len(nums) {
	case 0:
		return Interpretation{Quantity: 1}
	case 1:
		return Interpretation{Rate: nums[0], Quantity: 1}
	case 2:
		return interpretPair(nums[0], nums[1])
	}
	return interpretMany(nums)
}

func interpretPair(a, b float64) Interpretation {
	small, big := math.Min(a, b), math.Max(a, b)

	if isQuantity(small) {
		if big > MaxPlausibleRate {
			if r, ok := gluedPrefix(big, small); ok {
				return Interpretation{Rate: r, Quantity: int(small)}
			}
			if math.Mod(big, small) == 0 {
				return Interpretation{Rate: big / small, Quantity: int(small)}
			}
		}
		return Interpretation{Rate: big, Quantity: int(small)}
	}

	// two large numbers: rate and line total
	if small > 0 {
		if q := big / small; isWhole(q) && isQuantity(q) {
			return Interpretation{Rate: small, Quantity: int(q)}
		}
	}
	// one of them may carry the quantity glued to its leading digits
	for _, pair := range [][2]float64{{big, small}, {small, big}} {
		if q, r, ok := splitGlued(pair[0], pair[1]); ok {
			return Interpretation{Rate: r, Quantity: q}
		}
	}
	return Interpretation{Rate: a, Quantity: 1}
}

func interpretMany(nums []float64) Interpretation {
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	if isQuantity(lo) {
		qty := int(lo)
		target := hi / lo
		best, bestErr := 0.0, math.MaxFloat64
		for _, v := range sorted[1:] {
			if err := math.Abs(v-target) / target; err < bestErr {
				best, bestErr = v, err
			}
		}
		if bestErr <= RateTolerance {
			return Interpretation{Rate: best, Quantity: qty}
		}
		return Interpretation{Rate: sorted[len(sorted)/2], Quantity: qty}
	}

	// no quantity column; look for rate x n = total
	for _, v := range sorted[:len(sorted)-1] {
		if v <= 0 {
			continue
		}
		if q := hi / v; isWhole(q) && isQuantity(q) {
			return Interpretation{Rate: v, Quantity: int(q)}
		}
	}
	return Interpretation{Rate: sorted[len(sorted)/2], Quantity: 1}
}

func isQuantity(v float64) bool {
	return v >= 1 && v < QuantityCeiling && isWhole(v)
}

func isWhole(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}

// gluedPrefix handles "30" printed next to "3012000": the quantity's digits
// reappear in front of the rate.
func gluedPrefix(big, qty float64) (float64, bool) {
	bs, qs := digits(big), digits(qty)
	if bs == "" || len(bs) <= len(qs) || bs[:len(qs)] != qs {
		return 0, false
	}
	rest := bs[len(qs):]
	if rest[0] == '0' {
		return 0, false
	}
	r, err := strconv.ParseFloat(rest, 64)
	if err != nil || r < MinPlausibleRate || r > MaxPlausibleRate {
		return 0, false
	}
	return r, true
}

// splitGlued tries to read glued as <qty><rate> where either rate equals
// other, or qty x rate is within 1% of other (other being the line total).
func splitGlued(glued, other float64) (int, float64, bool) {
	gs := digits(glued)
	for n := 1; n <= 3 && n < len(gs); n++ {
		qs, rs := gs[:n], gs[n:]
		if rs[0] == '0' {
			continue
		}
		q, _ := strconv.Atoi(qs)
		r, err := strconv.ParseFloat(rs, 64)
		if err != nil || q < 1 || r < MinPlausibleRate || r > MaxPlausibleRate {
			continue
		}
		if r == other || (other > 0 && math.Abs(float64(q)*r-other)/other <= 0.01) {
			return q, r, true
		}
	}
	return 0, 0, false
}

// digits renders a whole number without separators ("" for fractions).
func digits(v float64) string {
	if !isWhole(v) || v < 0 {
		return ""
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}
