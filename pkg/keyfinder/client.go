// Package keyfinder is the thin orchestration layer over the bsgs solver:
// it decodes a target public key, runs the range search, and turns a found
// scalar back into address and WIF form for verification.
package keyfinder

import (
	"context"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/bsgs"
	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/keyenc"
)

// Match is a recovered private key together with its derived encodings.
type Match struct {
	PrivateKey *big.Int
	WIF        string
	PublicKey  string // compressed, hex
	Address    string // derived P2PKH address

	// AddressVerified is false when the derived address differs from the
	// target address the caller supplied. That means the target public key
	// and target address were inconsistent inputs; the key still solves the
	// discrete log for the public key.
	AddressVerified bool

	Steps uint64
}

// Client provides the high-level search API.
type Client struct {
	solver bsgs.Solver
	params *chaincfg.Params
}

// NewClient creates a client with the sequential BSGS solver on mainnet.
func NewClient() *Client {
	return &Client{
		solver: bsgs.NewBSGS(bsgs.Secp256k1()),
		params: &chaincfg.MainNetParams,
	}
}

// WithSolver sets a custom solver.
func (c *Client) WithSolver(solver bsgs.Solver) *Client {
	c.solver = solver
	return c
}

// WithNetwork sets the network parameters used for address and WIF encoding.
func (c *Client) WithNetwork(params *chaincfg.Params) *Client {
	c.params = params
	return c
}

// Find searches the inclusive hex range [startHex, endHex] for the private
// key behind pubKeyHex.
//
// A nil Match with a nil error means the key is not in the range. When a key
// is found, its address is derived and compared (case-sensitively) against
// targetAddress; a mismatch is reported through Match.AddressVerified, never
// silently dropped.
func (c *Client) Find(ctx context.Context, pubKeyHex, targetAddress, startHex, endHex string) (*Match, error) {
	target, err := keyenc.DecodePublicKey(pubKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode target public key: %w", err)
	}

	rng, err := bsgs.ParseRangeHex(startHex, endHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search range: %w", err)
	}

	result, err := c.solver.Solve(ctx, target, rng)
	if err != nil {
		return nil, fmt.Errorf("solver %s failed: %w", c.solver.Name(), err)
	}
	if result == nil {
		return nil, nil
	}

	wif, err := keyenc.DeriveWIF(result.Key, c.params)
	if err != nil {
		return nil, fmt.Errorf("failed to derive WIF: %w", err)
	}
	pubHex, err := keyenc.DerivePublicKeyHex(result.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	address, err := keyenc.DeriveAddress(result.Key, c.params)
	if err != nil {
		return nil, fmt.Errorf("failed to derive address: %w", err)
	}

	return &Match{
		PrivateKey:      result.Key,
		WIF:             wif,
		PublicKey:       pubHex,
		Address:         address,
		AddressVerified: address == targetAddress,
		Steps:           result.Steps,
	}, nil
}
