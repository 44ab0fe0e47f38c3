package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// seededSource implements Source with a deterministic PCG generator so a
// battle can be replayed from its seed.
type seededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source; two sources built from the
// same seed produce the same sequence.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.IntN(n)
}

// SequenceSource replays a fixed list of die faces, cycling when exhausted.
// Each value is the face to produce (1-based); Intn(n) returns face-1 clamped
// to [0, n). It is intended for tests and scripted replays.
type SequenceSource struct {
	Faces []int
	next  int
}

// Intn returns the next scripted face minus one, clamped to [0, n).
//
// Precondition: n > 0 and len(Faces) > 0.
func (s *SequenceSource) Intn(n int) int {
	v := s.Faces[s.next%len(s.Faces)] - 1
	s.next++
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Calls reports how many values have been drawn so far.
func (s *SequenceSource) Calls() int { return s.next }
