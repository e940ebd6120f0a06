package scoring

import "ChainHealth/internal/domain/models"

type reorgRule struct {
	name    string
	applies func(count, deepest uint) bool
	apply   func(score int) int
}

func penalty(score int) int { return score - 1 }

func override(to int) func(int) int {
	return func(int) int { return to }
}

var reorgRules = []reorgRule{
	{"count>=5&deepest>1", func(c, d uint) bool { return c >= 5 && d > 1 }, penalty},
	{"count>20", func(c, _ uint) bool { return c > 20 }, penalty},
	{"deepest>=5", func(_, d uint) bool { return d >= 5 }, penalty},
	// Second penalty at the same depth: 5+ deep reorgs are likely intentional.
	{"deepest>=5(intentional)", func(_, d uint) bool { return d >= 5 }, penalty},
	{"deepest>=15", func(_, d uint) bool { return d >= 15 }, override(2)},
	{"deepest>=30", func(_, d uint) bool { return d >= 30 }, override(1)},
	{"deepest>=60", func(_, d uint) bool { return d >= 60 }, override(0)},
}

// ReorgScore scores reorg activity over the trailing window.
func ReorgScore(count, deepest uint) models.ReorgResult {
	score := MaxScore
	fired := make([]string, 0, len(reorgRules))
	for _, rule := range reorgRules {
		if rule.applies(count, deepest) {
			score = rule.apply(score)
			fired = append(fired, rule.name)
		}
	}
	return models.ReorgResult{Score: score, Fired: fired}
}
