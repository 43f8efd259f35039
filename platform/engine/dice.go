package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Dice rolls two six-sided dice.
type Dice interface {
	Roll() (int, int)
}

// RandomDice draws from a math/rand source.
type RandomDice struct {
	rng *rand.Rand
}

// NewRandomDice wraps rng.
func NewRandomDice(rng *rand.Rand) *RandomDice {
	return &RandomDice{rng: rng}
}

func (d *RandomDice) Roll() (int, int) {
	return d.rng.Intn(6) + 1, d.rng.Intn(6) + 1
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
