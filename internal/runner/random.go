package runner

import (
	"math/rand"
	"time"
)

// RandomSource supplies the random draws used for obstacle selection and
// spacing. *rand.Rand satisfies it; tests inject deterministic sequences.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// NewRandom returns a seeded RandomSource. A zero seed uses the current time.
func NewRandom(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
