package scoring

import "leadqualify/internal/domain/entity"

const (
	MinWeight = 1
	MaxWeight = 3
)

// basePoints is the fixed per-tier point table. Stored answers denormalize
// the product of weight and base points, so changing this table only affects
// rubrics written after the change.
var basePoints = map[entity.AnswerTier]int{
	entity.TierCold: 1,
	entity.TierWarm: 5,
	entity.TierHot:  10,
}

// ClampWeight forces a caller-supplied weight into [MinWeight, MaxWeight].
// Out-of-range values are clamped rather than rejected.
func ClampWeight(weight int) int {
	if weight < MinWeight {
		return MinWeight
	}
	if weight > MaxWeight {
		return MaxWeight
	}
	return weight
}

// BasePoints returns the fixed base points of the given tier.
func BasePoints(tier entity.AnswerTier) int {
	return basePoints[tier]
}

// PointValue computes the stored point value of an answer: weight times the
// tier's base points. Weight is clamped first, so the function is total.
func PointValue(weight int, tier entity.AnswerTier) int {
	return ClampWeight(weight) * basePoints[tier]
}
