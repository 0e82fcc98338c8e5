package tasksplit

import "fmt"

// ScaleSums converts raw machine totals into displayed totals.
//
// Machine i runs at rates[i] times the base speed, so its displayed total is
// sums[i] / rates[i]. The partitioners never see rates; callers scale after
// reading the raw sums.
//
// Parameters:
//   - sums: Raw per-machine totals
//   - rates: Speed factor per machine, index-aligned with sums
//
// Returns:
//   - []float64: Scaled totals (sums is not modified)
//   - error: ErrInvalidRates if the lengths differ or a rate is not positive
//
// Example:
//
//	scaled, err := tasksplit.ScaleSums([]float64{10, 9}, []float64{1, 1.5})
//	// scaled == []float64{10, 6}
func ScaleSums(sums, rates []float64) ([]float64, error) {
	if len(sums) != len(rates) {
		return nil, fmt.Errorf("%w: %d sums but %d rates", ErrInvalidRates, len(sums), len(rates))
	}

	scaled := make([]float64, len(sums))
	for i, sum := range sums {
		if rates[i] <= 0 {
			return nil, fmt.Errorf("%w: rate[%d] = %v", ErrInvalidRates, i, rates[i])
		}
		scaled[i] = sum / rates[i]
	}

	return scaled, nil
}

// ScaledSums returns the solution's sums divided by the configured machine rates.
func (s *Solver) ScaledSums(sol *Solution) ([]float64, error) {
	rates, err := s.cfg.RatesFor(sol.Result.Machines())
	if err != nil {
		return nil, err
	}

	return ScaleSums(sol.Result.Sums, rates)
}
