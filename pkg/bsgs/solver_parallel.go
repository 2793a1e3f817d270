package bsgs

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"
)

// solveParallel shards the giant-step loop across workers. Worker w owns the
// indices j ≡ w (mod W): it seeds its running point at Q' - w*factor and then
// strides by subtracting W*factor. Giant steps are independent and any single
// verified hit is the unique answer, so workers share the table read-only and
// the first result cancels the rest.
func (s *BSGS) solveParallel(ctx context.Context, shifted, factor Point, table *Table, m uint64, width *big.Int, steps *atomic.Uint64) (*big.Int, error) {
	numWorkers := s.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if uint64(numWorkers) > m {
		numWorkers = int(m)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// stride = W*factor, the per-worker giant stride.
	stride, err := factor.ScalarMult(big.NewInt(int64(numWorkers)))
	if err != nil {
		return nil, err
	}
	negStride := stride.Negate()
	negFactor := factor.Negate()

	resultChan := make(chan *big.Int, 1)
	errChan := make(chan error, 1)
	var done atomic.Uint64

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		// Seed point for this worker: Q' - w*factor.
		seed := shifted
		for i := 0; i < w; i++ {
			if seed, err = seed.Add(negFactor); err != nil {
				return nil, err
			}
		}

		wg.Add(1)
		go func(w int, current Point) {
			defer wg.Done()
			for j := uint64(w); j < m; j += uint64(numWorkers) {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if i, ok := table.Lookup(current); ok {
					key, err := s.verifyHit(shifted, i, j, m, width)
					if err != nil {
						select {
						case errChan <- err:
						default:
						}
						cancel()
						return
					}
					if key != nil {
						select {
						case resultChan <- key:
						default:
						}
						cancel()
						return
					}
					// Rejected hit: the decomposition fell outside the
					// range. Keep walking; remaining shards exhaust cheaply.
				}

				var err error
				if current, err = current.Add(negStride); err != nil {
					select {
					case errChan <- err:
					default:
					}
					cancel()
					return
				}
				steps.Add(1)
				if s.OnProgress != nil {
					s.OnProgress(done.Add(1), m)
				}
			}
		}(w, seed)
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case key := <-resultChan:
		cancel()
		wg.Wait()
		return key, nil
	case err := <-errChan:
		cancel()
		wg.Wait()
		return nil, err
	case <-waitDone:
		// All shards exhausted. A late result can still be sitting in the
		// buffered channel if a worker hit just as the others finished.
		select {
		case key := <-resultChan:
			return key, nil
		case err := <-errChan:
			return nil, err
		default:
			return nil, ctx.Err()
		}
	}
}
