package nn

import (
	"math/rand"
	"sync"
	"time"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))
var rngLock sync.Mutex

// Seed resets the generator used to initialize parameters.
func Seed(seed int64) {
	rngLock.Lock()
	rng = rand.New(rand.NewSource(seed))
	rngLock.Unlock()
}

// Uniform draws n values uniformly from [lo, hi).
func Uniform(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	rngLock.Lock()
	for i := range out {
		out[i] = lo + (hi-lo)*rng.Float64()
	}
	rngLock.Unlock()
	return out
}
