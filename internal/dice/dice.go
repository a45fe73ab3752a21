package dice

import (
	"time"

	"golang.org/x/exp/rand"
)

const (
	MinFace = 1
	MaxFace = 6
)

// IsValid reports whether v is a face of a six-sided die
func IsValid(v int) bool {
	return v >= MinFace && v <= MaxFace
}

// Roller produces die faces. It stands in for the external dice component
// when matches are simulated.
type Roller interface {
	Roll() int
}

// RandomRoller rolls a fair six-sided die from a seeded source
type RandomRoller struct {
	rng  *rand.Rand
	seed uint64
}

// NewRandomRoller creates a roller; a zero seed picks one from the clock
func NewRandomRoller(seed uint64) *RandomRoller {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomRoller{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed in use, for reproducing a match
func (r *RandomRoller) Seed() uint64 { return r.seed }

// Roll returns a value in [MinFace, MaxFace]
func (r *RandomRoller) Roll() int {
	return r.rng.Intn(MaxFace) + MinFace
}

// SequenceRoller replays a fixed list of faces, cycling when exhausted
type SequenceRoller struct {
	faces []int
	next  int
}

// NewSequenceRoller creates a roller that returns faces in order
func NewSequenceRoller(faces ...int) *SequenceRoller {
	return &SequenceRoller{faces: faces}
}

// Roll returns the next face of the sequence
func (s *SequenceRoller) Roll() int {
	if len(s.faces) == 0 {
		return MinFace
	}
	v := s.faces[s.next%len(s.faces)]
	s.next++
	return v
}
