package dice

import (
	"math/rand"

	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// randomRoller implements Roller using the shared math/rand source
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, lorerr.InvalidArgumentf("invalid dice sides %d", sides)
	}
	return rand.Intn(sides) + 1, nil
}
