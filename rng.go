package maplabel

import "math/rand"

// defaultRNGSeed is used when callers pass seed == 0, so that the zero config is reproducible.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand. A *rand.Rand is not safe for
// concurrent use; labelers draw from it on the calling goroutine only.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}
