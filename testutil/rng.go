package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/meshdesc/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Vec3 returns a point with every component in [minVal, maxVal).
func (r *RNG) Vec3(minVal, maxVal float32) geom.Vector3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	return geom.Vec3(
		minVal+r.rand.Float32()*span,
		minVal+r.rand.Float32()*span,
		minVal+r.rand.Float32()*span,
	)
}

// Vec2 returns a point with both components in [0, 1).
func (r *RNG) Vec2() geom.Vector2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return geom.Vec2(r.rand.Float32(), r.rand.Float32())
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}
