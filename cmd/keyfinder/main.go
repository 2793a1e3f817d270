package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/mahdiidarabi/bsgs-keyfinder/internal/scan"
	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/bsgs"
	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/keyenc"
	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/keyfinder"
)

func main() {
	var (
		pubKey   = flag.String("pubkey", "", "Target public key in hex (compressed or uncompressed)")
		address  = flag.String("address", "", "Target address for verification (required with -linear)")
		start    = flag.String("start", "", "Range start in hex (inclusive)")
		end      = flag.String("end", "", "Range end in hex (inclusive)")
		workers  = flag.Int("workers", 1, "Number of parallel workers (0 = one per CPU core)")
		linear   = flag.Bool("linear", false, "Linear address scan instead of BSGS (no public key needed)")
		testnet  = flag.Bool("testnet", false, "Use testnet address and WIF encoding")
		progress = flag.Bool("progress", true, "Show a progress bar")
	)
	flag.Parse()

	if *start == "" || *end == "" {
		fmt.Fprintf(os.Stderr, "Error: -start and -end are required\n")
		flag.Usage()
		os.Exit(1)
	}

	params := &chaincfg.MainNetParams
	if *testnet {
		params = &chaincfg.TestNet3Params
	}

	// Ctrl-C aborts the search loop cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	if *linear {
		runLinear(ctx, params, *address, *start, *end, *workers, *progress, startTime)
		return
	}
	runBSGS(ctx, params, *pubKey, *address, *start, *end, *workers, *progress, startTime)
}

func runBSGS(ctx context.Context, params *chaincfg.Params, pubKey, address, start, end string, workers int, progress bool, startTime time.Time) {
	if pubKey == "" {
		fmt.Fprintf(os.Stderr, "Error: -pubkey is required (or use -linear with -address)\n")
		flag.Usage()
		os.Exit(1)
	}

	solver := bsgs.NewBSGS(bsgs.Secp256k1()).WithWorkers(workers)
	if progress {
		// The callback runs on every worker goroutine; the bar is created
		// once and progressbar itself is safe for concurrent Set64 calls.
		var once sync.Once
		var bar *progressbar.ProgressBar
		solver.WithProgress(func(done, total uint64) {
			once.Do(func() {
				bar = progressbar.NewOptions64(int64(total),
					progressbar.OptionSetDescription("giant steps"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionThrottle(100*time.Millisecond),
				)
			})
			_ = bar.Set64(int64(done))
		})
	}

	client := keyfinder.NewClient().WithSolver(solver).WithNetwork(params)

	fmt.Printf("Searching range [%s, %s] with %s...\n", start, end, solver.Name())
	match, err := client.Find(ctx, pubKey, address, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if match == nil {
		color.Yellow("Private key not found in the range.")
		reportRate(0, startTime)
		return
	}

	color.Green("[+] Private key found!")
	fmt.Printf("    Private key: %064x\n", match.PrivateKey)
	fmt.Printf("    WIF:         %s\n", match.WIF)
	fmt.Printf("    Public key:  %s\n", match.PublicKey)
	fmt.Printf("    Address:     %s\n", match.Address)
	if address != "" && !match.AddressVerified {
		color.Red("    ✗ Derived address does not match the target address %q — the supplied public key and address are inconsistent", address)
	} else if address != "" {
		color.Green("    ✓ Address verified")
	}
	reportRate(match.Steps, startTime)
}

func runLinear(ctx context.Context, params *chaincfg.Params, address, start, end string, workers int, progress bool, startTime time.Time) {
	if address == "" {
		fmt.Fprintf(os.Stderr, "Error: -address is required with -linear\n")
		flag.Usage()
		os.Exit(1)
	}

	rng, err := bsgs.ParseRangeHex(start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scanner := scan.NewAddressScanner(params).WithWorkers(workers)
	if progress {
		scanner.WithProgress(func(checked uint64) {
			fmt.Fprintf(os.Stderr, "  Keys checked: %d, elapsed: %.2fs\r", checked, time.Since(startTime).Seconds())
		})
	}

	fmt.Printf("Scanning range [%s, %s] with %s...\n", start, end, scanner.Name())
	result, err := scanner.Search(ctx, address, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if result == nil {
		color.Yellow("Private key not found in the range.")
		reportRate(0, startTime)
		return
	}

	color.Green("[+] Private key found!")
	fmt.Printf("    Private key: %064x\n", result.Key)
	if wif, err := keyenc.DeriveWIF(result.Key, params); err == nil {
		fmt.Printf("    WIF:         %s\n", wif)
	}
	fmt.Printf("    Address:     %s\n", address)
	reportRate(result.Steps, startTime)
}

// reportRate prints the original tool's closing stats: total time and
// attempts per second.
func reportRate(steps uint64, startTime time.Time) {
	elapsed := time.Since(startTime)
	fmt.Printf("Total time: %.2f seconds\n", elapsed.Seconds())
	if steps > 0 && elapsed > 0 {
		fmt.Printf("Attempts per second: %.0f\n", float64(steps)/elapsed.Seconds())
	}
}
