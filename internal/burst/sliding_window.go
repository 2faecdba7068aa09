package burst

import (
	"slices"
	"time"
)

// DefaultWindow is the window used when none is configured.
const DefaultWindow = 7 * 24 * time.Hour

// Calculator finds how concentrated activity is in time.
// Burst score = (max revisions in any window) / (total revisions)
type Calculator struct {
	window time.Duration
}

// NewCalculator creates a calculator using a window of windowDays days.
func NewCalculator(windowDays int) *Calculator {
	if windowDays <= 0 {
		return &Calculator{window: DefaultWindow}
	}
	return &Calculator{window: time.Duration(windowDays) * 24 * time.Hour}
}

// Window returns the sliding window length.
func (c *Calculator) Window() time.Duration {
	return c.window
}

// CalculateBurstScore computes the burst score of timestamps given in
// milliseconds since the epoch. The input is not modified.
func (c *Calculator) CalculateBurstScore(millis []int64) float64 {
	switch len(millis) {
	case 0:
		return 0.0
	case 1:
		return 1.0
	}

	times := slices.Clone(millis)
	// git log lists newest first; reversing is cheaper than sorting.
	if isSortedDescending(times) {
		slices.Reverse(times)
	} else {
		slices.Sort(times)
	}

	window := c.window.Milliseconds()
	maxInWindow := 1

	left := 0
	for right := range times {
		for times[right]-times[left] > window {
			left++
		}
		maxInWindow = max(maxInWindow, right-left+1)
	}

	return float64(maxInWindow) / float64(len(times))
}

func isSortedDescending(millis []int64) bool {
	for i := 1; i < len(millis); i++ {
		if millis[i] > millis[i-1] {
			return false
		}
	}
	return true
}
