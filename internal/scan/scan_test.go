package scan

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/bsgs"
	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/keyenc"
)

func rangeAround(t *testing.T, key int64, radius int64) bsgs.Range {
	t.Helper()
	rng, err := bsgs.NewRange(big.NewInt(key-radius), big.NewInt(key+radius))
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	return rng
}

func TestAddressScannerFinds(t *testing.T) {
	params := &chaincfg.MainNetParams
	key := big.NewInt(0x85f3)

	address, err := keyenc.DeriveAddress(key, params)
	if err != nil {
		t.Fatalf("DeriveAddress failed: %v", err)
	}

	for _, workers := range []int{1, 4} {
		scanner := NewAddressScanner(params).WithWorkers(workers)
		result, err := scanner.Search(context.Background(), address, rangeAround(t, 0x85f3, 300))
		if err != nil {
			t.Fatalf("%s failed: %v", scanner.Name(), err)
		}
		if result == nil {
			t.Fatalf("%s missed the key", scanner.Name())
		}
		if result.Key.Cmp(key) != 0 {
			t.Errorf("%s found %x, want 85f3", scanner.Name(), result.Key)
		}
	}
}

func TestAddressScannerNotFound(t *testing.T) {
	params := &chaincfg.MainNetParams

	// Address of a key that is well outside the scanned range.
	address, err := keyenc.DeriveAddress(big.NewInt(0xffffff), params)
	if err != nil {
		t.Fatalf("DeriveAddress failed: %v", err)
	}

	scanner := NewAddressScanner(params).WithWorkers(2)
	result, err := scanner.Search(context.Background(), address, rangeAround(t, 0x85f3, 200))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result != nil {
		t.Errorf("expected a miss, got key %x", result.Key)
	}
}

func TestAddressScannerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewAddressScanner(&chaincfg.MainNetParams)
	_, err := scanner.Search(ctx, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", rangeAround(t, 0x85f3, 5000))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAddressScannerProgress(t *testing.T) {
	params := &chaincfg.MainNetParams
	address, err := keyenc.DeriveAddress(big.NewInt(0xffffff), params)
	if err != nil {
		t.Fatalf("DeriveAddress failed: %v", err)
	}

	var last uint64
	scanner := NewAddressScanner(params).WithWorkers(1).WithProgress(func(checked uint64) {
		last = checked
	})

	rng := rangeAround(t, 0x9000, 100) // 201 keys
	if _, err := scanner.Search(context.Background(), address, rng); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if want := rng.Width().Uint64(); last != want {
		t.Errorf("progress reported %d keys checked, want %d", last, want)
	}
}
