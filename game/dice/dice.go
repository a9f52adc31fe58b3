// Package dice provides the six-sided die used to drive turns.
//
// A Dice created with New is deterministic: the same seed always yields the
// same sequence of rolls, which keeps replays and tests reproducible.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"

	"github.com/wricardo/snakes-ladders-game/game/engine"
)

// Roller produces die faces between engine.MinRoll and engine.MaxRoll
type Roller interface {
	Roll() int
}

// Dice is a seeded six-sided die, safe for concurrent use
type Dice struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// New returns a die seeded with seed
func New(seed int64) *Dice {
	return &Dice{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewRandom returns a die seeded from crypto/rand
func NewRandom() (*Dice, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Roll returns the next face
func (d *Dice) Roll() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(engine.MaxRoll-engine.MinRoll+1) + engine.MinRoll
}

// Seed returns the seed the die was created with
func (d *Dice) Seed() int64 {
	return d.seed
}

// Sequence is a Roller that replays fixed faces in order and then wraps around.
// It is meant for scripted games and tests.
type Sequence struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewSequence returns a Roller replaying faces; it panics if faces is empty
func NewSequence(faces ...int) *Sequence {
	if len(faces) == 0 {
		panic("dice: empty sequence")
	}
	return &Sequence{faces: append([]int(nil), faces...)}
}

// Roll returns the next scripted face
func (s *Sequence) Roll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	face := s.faces[s.next]
	s.next = (s.next + 1) % len(s.faces)
	return face
}
