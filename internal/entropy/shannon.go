package entropy

import "math"

// Calculator measures how evenly work is spread over contributors.
// Based on Hassan (2009) "Predicting Faults Using the Complexity of Code Changes".
type Calculator struct{}

// NewCalculator creates a new entropy calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculateDistributionEntropy returns the normalized Shannon entropy of
// counts, between 0 and 1:
//   - 0 = all work by one contributor
//   - 1 = work spread evenly
func (c *Calculator) CalculateDistributionEntropy(counts []int) float64 {
	if len(counts) <= 1 {
		return 0.0
	}

	total := 0
	for _, n := range counts {
		if n > 0 {
			total += n
		}
	}
	if total == 0 {
		// No actual work, treat as uniform distribution
		return 1.0
	}

	// -Σ(p_i × log2(p_i))
	entropy := 0.0
	for _, n := range counts {
		if n > 0 {
			p := float64(n) / float64(total)
			entropy -= p * math.Log2(p)
		}
	}

	normalized := entropy / math.Log2(float64(len(counts)))
	return math.Max(0, math.Min(1, normalized))
}
