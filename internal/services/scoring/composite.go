package scoring

import "ChainHealth/internal/domain/faults"

// CompositeScore averages the market and reorg scores, truncating.
// Two zero inputs mean critical or no data and always yield 0.
func CompositeScore(market, reorg int) (int, error) {
	if market < MinScore || market > MaxScore {
		return 0, faults.InvalidInput("market score %d out of range", market)
	}
	if reorg < MinScore || reorg > MaxScore {
		return 0, faults.InvalidInput("reorg score %d out of range", reorg)
	}
	if market == 0 && reorg == 0 {
		return 0, nil
	}
	return (market + reorg) / 2, nil
}
