package usecase

import (
	"math"
	"time"

	"github.com/michalkratky/slovicka/internal/entity"
)

// Selection weight tuning. Correct answers discount a pair's weight, mistakes
// raise it, and time since the last drill boosts it back up.
const (
	correctDiscountStep  = 0.15 // per correct answer
	correctDiscountCap   = 0.90 // mastery never removes more than 90%
	incorrectPenaltyStep = 0.30 // per incorrect answer, unbounded
	recencyBoostPerDay   = 0.10
	recencyBoostCap      = 2.00 // 3x multiplier, reached at 20+ days
	minWeight            = 0.05
)

// SelectionWeight converts a pair's history into its roulette-wheel weight.
// Unseen pairs get the baseline 1.0; every pair keeps a weight of at least
// minWeight so nothing is ever unreachable.
func SelectionWeight(correct, incorrect int, lastSeen, now time.Time) float64 {
	if correct+incorrect == 0 {
		return 1.0
	}

	weight := 1.0
	weight *= 1 - math.Min(float64(correct)*correctDiscountStep, correctDiscountCap)
	weight *= 1 + float64(incorrect)*incorrectPenaltyStep

	days := now.Sub(lastSeen).Hours() / 24
	weight *= 1 + math.Min(days*recencyBoostPerDay, recencyBoostCap)

	return math.Max(weight, minWeight)
}

// StatWeight scores a stored stat row. A zero-value stat (never practiced)
// scores the baseline.
func StatWeight(stat *entity.WordStat, now time.Time) float64 {
	if stat == nil {
		return 1.0
	}
	return SelectionWeight(stat.CorrectCount, stat.IncorrectCount, stat.LastSeen, now)
}
