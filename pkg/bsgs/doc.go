// Package bsgs implements the Baby-step Giant-step discrete-logarithm search
// over secp256k1, for recovering a private key that is known to lie in a
// bounded range.
//
// Given a target point Q = k*G and an inclusive range [start, end], the
// solver finds k with O(sqrt(width)) group operations and O(sqrt(width))
// memory instead of the O(width) of a linear scan.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/bsgs-keyfinder/pkg/bsgs"
//
//	curve := bsgs.Secp256k1()
//	solver := bsgs.NewBSGS(curve)
//
//	rng, _ := bsgs.ParseRangeHex("80000", "fffff")
//	result, err := solver.Solve(ctx, target, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result == nil {
//	    fmt.Println("key is not in the range")
//	} else {
//	    fmt.Printf("found key: %x\n", result.Key)
//	}
//
// # Parallel Search
//
// Giant steps are independent, so the loop can be sharded across workers
// while they share one read-only baby-step table:
//
//	solver := bsgs.NewBSGS(curve).WithWorkers(runtime.NumCPU())
//
// # Custom Solvers
//
// Implement the Solver interface to plug a different search (for example a
// linear scan) into the keyfinder client:
//
//	type MySolver struct{}
//
//	func (s *MySolver) Solve(ctx context.Context, target bsgs.Point, rng bsgs.Range) (*bsgs.Result, error) {
//	    // Your search logic
//	}
//
//	func (s *MySolver) Name() string {
//	    return "MySolver"
//	}
package bsgs
