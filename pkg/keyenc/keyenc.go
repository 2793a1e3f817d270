// Package keyenc converts between the search domain (scalars and curve
// points) and Bitcoin key material: compressed/uncompressed public keys,
// base58check P2PKH addresses, and WIF. The bsgs package stays free of any
// encoding concerns; this package is its only bridge to them.
package keyenc

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/bsgs-keyfinder/pkg/bsgs"
)

// DecodePublicKey parses a hex public key (compressed 02/03 or uncompressed
// 04 form, 0x prefix tolerated) into a curve point. Wrong length, an unknown
// prefix byte, or coordinates off the curve all yield a FormatError.
func DecodePublicKey(pubKeyHex string) (bsgs.Point, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(pubKeyHex, "0x"), "0X"))
	if err != nil {
		return bsgs.Point{}, bsgs.NewFormatError("public key", "not valid hex", err)
	}

	// ParsePubKey checks length, prefix byte and curve membership.
	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return bsgs.Point{}, bsgs.NewFormatError("public key", "not a valid secp256k1 point", err)
	}

	// 0x04 || X (32 bytes) || Y (32 bytes)
	unc := pub.SerializeUncompressed()
	x := new(big.Int).SetBytes(unc[1:33])
	y := new(big.Int).SetBytes(unc[33:])
	return bsgs.Secp256k1().NewPoint(x, y), nil
}

// DeriveAddress returns the P2PKH address of the private key k on the given
// network: compressed public key, Hash160, base58check.
func DeriveAddress(k *big.Int, params *chaincfg.Params) (string, error) {
	priv, err := privKeyFromScalar(k)
	if err != nil {
		return "", err
	}
	pubKeyHash := btcutil.Hash160(priv.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, params)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

// DeriveWIF returns the compressed-key WIF encoding of the private key k.
func DeriveWIF(k *big.Int, params *chaincfg.Params) (string, error) {
	priv, err := privKeyFromScalar(k)
	if err != nil {
		return "", err
	}
	wif, err := btcutil.NewWIF(priv, params, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// DerivePublicKeyHex returns the compressed public key of k as lowercase hex.
func DerivePublicKeyHex(k *big.Int) (string, error) {
	priv, err := privKeyFromScalar(k)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(priv.PubKey().SerializeCompressed()), nil
}

// privKeyFromScalar converts a scalar into a secp256k1 private key, padded
// to the fixed 32-byte width. Scalars outside [1, N-1] are not private keys.
func privKeyFromScalar(k *big.Int) (*btcec.PrivateKey, error) {
	if k.Sign() <= 0 || k.Cmp(bsgs.Secp256k1().N) >= 0 {
		return nil, &bsgs.DomainError{Op: "derive", Reason: "scalar outside the private key range [1, N-1]"}
	}
	var buf [32]byte
	k.FillBytes(buf[:])
	priv, _ := btcec.PrivKeyFromBytes(buf[:])
	return priv, nil
}
