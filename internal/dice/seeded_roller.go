package dice

import (
	"math/rand"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// SeededRoller is a Roller with a private deterministic source. Two rollers
// built from the same seed produce the same sequence, which makes generator
// output reproducible across runs.
type SeededRoller struct {
	seed int64
	src  *rand.Rand
}

// NewSeededRoller creates a roller seeded with the given value.
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *SeededRoller) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, lorerr.InvalidArgumentf("invalid dice sides %d", sides)
	}
	return r.src.Intn(sides) + 1, nil
}

// Seed returns the seed the roller was built from.
func (r *SeededRoller) Seed() int64 {
	return r.seed
}
