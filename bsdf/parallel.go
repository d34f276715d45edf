package bsdf

import (
	"runtime"
	"sync"
)

// ParallelConfig controls how SetupTabularBrdf spreads work over goroutines.
type ParallelConfig struct {
	// NumWorkers is the number of goroutines. 0 means runtime.GOMAXPROCS(0);
	// 1 runs everything on the calling goroutine.
	NumWorkers int

	// GrainSize is the minimum number of outer-axis slices per worker.
	// Smaller jobs run sequentially.
	GrainSize int
}

// DefaultParallelConfig returns the default configuration.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		NumWorkers: 0,
		GrainSize:  1,
	}
}

var (
	parallelConfig   = DefaultParallelConfig()
	parallelConfigMu sync.RWMutex
)

// SetParallelConfig sets the package-wide parallel configuration.
func SetParallelConfig(config ParallelConfig) {
	parallelConfigMu.Lock()
	defer parallelConfigMu.Unlock()
	parallelConfig = config
}

// GetParallelConfig returns the package-wide parallel configuration.
func GetParallelConfig() ParallelConfig {
	parallelConfigMu.RLock()
	defer parallelConfigMu.RUnlock()
	return parallelConfig
}

func (c ParallelConfig) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.NumWorkers
}

// chunkSize returns the number of indices each worker takes, or 0 when n
// is too small to split into chunks of at least GrainSize.
func (c ParallelConfig) chunkSize(n int) int {
	numWorkers := c.workers()
	if numWorkers == 1 || n <= c.GrainSize*numWorkers {
		return 0
	}
	return (n + numWorkers - 1) / numWorkers
}

// ParallelFor calls fn(i) for every i in [0, n). Calls for different i may
// run concurrently, so fn must only write state owned by index i.
func ParallelFor(n int, fn func(i int)) {
	chunk := GetParallelConfig().chunkSize(n)
	if chunk == 0 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
