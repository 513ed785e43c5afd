// Package dice provides the randomness abstraction behind every roll the
// economy engine makes: tree respawn hit points, harvest yield and
// critical hits.
package dice

// Source is the randomness provider for all rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// chanceResolution is the number of buckets a probability is quantized into.
const chanceResolution = 1_000_000

// Between returns a uniformly distributed int in [lo, hi].
//
// Precondition: lo <= hi; src must be non-nil.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		panic("dice: Between called with hi < lo")
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance reports whether an event with probability p happened.
// p <= 0 never happens and p >= 1 always happens without consuming a roll.
//
// Precondition: src must be non-nil.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Intn(chanceResolution) < int(p*chanceResolution)
}
