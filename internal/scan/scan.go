// Package scan implements the linear fallback search: derive the address of
// every key in the range and compare it to the target. It needs only an
// address, not a public key, but costs O(width) — the BSGS solver should be
// preferred whenever the public key is known.
package scan

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/bsgs"
	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/keyenc"
)

// chunkSize is the number of consecutive keys handed to a worker at once.
const chunkSize = 1024

// AddressScanner brute-forces a range of private keys against a target
// address.
type AddressScanner struct {
	params  *chaincfg.Params
	workers int

	// OnProgress, when set, is called with the running count of keys
	// checked, roughly every chunkSize keys. It may be called from several
	// workers at once.
	OnProgress func(checked uint64)
}

// NewAddressScanner creates a scanner for the given network.
func NewAddressScanner(params *chaincfg.Params) *AddressScanner {
	return &AddressScanner{params: params, workers: runtime.NumCPU()}
}

// WithWorkers sets the number of parallel workers (0 = one per CPU core).
func (s *AddressScanner) WithWorkers(n int) *AddressScanner {
	s.workers = n
	return s
}

// WithProgress sets the progress callback.
func (s *AddressScanner) WithProgress(fn func(checked uint64)) *AddressScanner {
	s.OnProgress = fn
	return s
}

// Name returns the name of this searcher.
func (s *AddressScanner) Name() string {
	return fmt.Sprintf("LinearScan(workers=%d)", s.workers)
}

type chunk struct {
	start *big.Int
	count uint64
}

// Search walks the range looking for a key whose P2PKH address equals
// targetAddress. It returns nil when the range is exhausted without a match.
func (s *AddressScanner) Search(ctx context.Context, targetAddress string, rng bsgs.Range) (*bsgs.Result, error) {
	numWorkers := s.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan chunk, numWorkers*4)
	resultChan := make(chan *big.Int, 1)
	var checked atomic.Uint64

	// Carve the range into chunks.
	go func() {
		defer close(workChan)
		width := rng.Width()
		step := new(big.Int).SetUint64(chunkSize)
		for off := new(big.Int); off.Cmp(width) < 0; off.Add(off, step) {
			remaining := new(big.Int).Sub(width, off)
			count := uint64(chunkSize)
			if remaining.IsUint64() && remaining.Uint64() < chunkSize {
				count = remaining.Uint64()
			}
			start := new(big.Int).Add(rng.Start, off)
			select {
			case <-ctx.Done():
				return
			case workChan <- chunk{start: start, count: count}:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, targetAddress, workChan, resultChan, &checked, cancel)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case key := <-resultChan:
		cancel()
		wg.Wait()
		return &bsgs.Result{Key: key, Steps: checked.Load()}, nil
	case <-done:
		select {
		case key := <-resultChan:
			return &bsgs.Result{Key: key, Steps: checked.Load()}, nil
		default:
		}
		return nil, ctx.Err()
	}
}

// worker derives and compares addresses for each chunk it receives.
func (s *AddressScanner) worker(ctx context.Context, targetAddress string, workChan <-chan chunk, resultChan chan<- *big.Int, checked *atomic.Uint64, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-workChan:
			if !ok {
				return
			}
			key := new(big.Int).Set(c.start)
			one := big.NewInt(1)
			for i := uint64(0); i < c.count; i++ {
				address, err := keyenc.DeriveAddress(key, s.params)
				if err == nil && address == targetAddress {
					select {
					case resultChan <- new(big.Int).Set(key):
					default:
					}
					cancel()
					return
				}
				key.Add(key, one)
			}
			if n := checked.Add(c.count); s.OnProgress != nil {
				s.OnProgress(n)
			}
		}
	}
}
