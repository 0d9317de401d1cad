package sector

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// SeedStride spaces grid columns apart in the sector seed.
const SeedStride = 1000

// Stream labels. Every sector draws its type and its content from separate
// streams keyed by the same seed, so neither depends on the other's draws.
const (
	labelType    = "sector.type"
	labelContent = "sector.content"
)

// Seed is the deterministic seed for the sector at (gridX, gridY).
func Seed(gridX, gridY int) int64 {
	return int64(gridX)*SeedStride + int64(gridY)
}

// Stream is a pseudo-random sequence keyed by an explicit seed. Streams share
// no state, so the order in which sectors are generated never matters.
type Stream struct {
	rng *rand.Rand
}

func NewStream(seed int64, label string) *Stream {
	hasher := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	hasher.Write(buf[:])
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return &Stream{rng: rand.New(rand.NewPCG(uint64(seed), sum))}
}

// Between returns an integer in [min, max].
func (s *Stream) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

// RealInRange returns a float in [min, max).
func (s *Stream) RealInRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}

// Frac returns a float in [0, 1).
func (s *Stream) Frac() float64 {
	return s.rng.Float64()
}

type weighted[T any] struct {
	value  T
	weight int
}

// pick selects one choice with probability proportional to its weight.
func pick[T any](s *Stream, choices []weighted[T]) T {
	total := 0
	for _, c := range choices {
		total += c.weight
	}
	if total <= 0 {
		panic("sector: weighted pick over empty weights")
	}

	n := s.rng.IntN(total)
	for _, c := range choices {
		if n < c.weight {
			return c.value
		}
		n -= c.weight
	}
	return choices[len(choices)-1].value
}
