package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

import (
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Roller provides an interface for drawing random die results
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls one die with the given sides, returning 1..sides
	Roll(sides int) (int, error)
}

// RollExpression rolls every die in the expression and applies the modifier.
func RollExpression(r Roller, expr Expression) (int, error) {
	total := expr.Modifier
	for i := 0; i < expr.Count; i++ {
		roll, err := r.Roll(expr.Sides)
		if err != nil {
			return 0, err
		}
		total += roll
	}
	return total, nil
}

// WeightedIndex draws an index into weights with probability proportional to
// each weight. Weights must be positive; they need not sum to any fixed total.
func WeightedIndex(r Roller, weights []int) (int, error) {
	if len(weights) == 0 {
		return 0, lorerr.InvalidArgument("no weights to draw from")
	}

	total := 0
	for i, w := range weights {
		if w <= 0 {
			return 0, lorerr.InvalidArgumentf("weight %d at index %d is not positive", w, i)
		}
		total += w
	}

	roll, err := r.Roll(total)
	if err != nil {
		return 0, err
	}

	running := 0
	for i, w := range weights {
		running += w
		if roll <= running {
			return i, nil
		}
	}

	// Unreachable while Roll honors its 1..sides contract.
	return len(weights) - 1, nil
}

// PickOne draws one element of items uniformly.
func PickOne(r Roller, items []string) (string, error) {
	if len(items) == 0 {
		return "", lorerr.InvalidArgument("no items to pick from")
	}

	roll, err := r.Roll(len(items))
	if err != nil {
		return "", err
	}
	return items[roll-1], nil
}
