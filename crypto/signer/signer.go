// Package signer wraps a secp256k1 private key for EigenDA authentication:
// account-address derivation and the two domain-specific signing operations
// the disperser requires (blob-key signatures and payment-state-request
// signatures).
package signer

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Layr-Labs/eigenda-client-go/types"
)

// Signer is an ECDSA private key used to authenticate dispersal requests
// and payment-state queries. A Signer is immutable once constructed and is
// safe for concurrent use.
type Signer ecdsa.PrivateKey

// New wraps an existing ECDSA private key.
func New(key *ecdsa.PrivateKey) *Signer {
	return (*Signer)(key)
}

// NewFromHex builds a Signer from a hex-encoded 32-byte private key. A
// leading "0x"/"0X" is stripped, matching the EIGENDA_PRIVATE_KEY
// convention.
func NewFromHex(hexKey string) (*Signer, error) {
	key, err := ethcrypto.HexToECDSA(trimHex(hexKey))
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	return (*Signer)(key), nil
}

func trimHex(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func (s *Signer) ecdsaKey() *ecdsa.PrivateKey {
	return (*ecdsa.PrivateKey)(s)
}

// AccountID returns the account address derived from the signer's public
// key: keccak256(uncompressed_pubkey[1:])[12:].
func (s *Signer) AccountID() common.Address {
	return ethcrypto.PubkeyToAddress(s.ecdsaKey().PublicKey)
}

// SignBlobKey signs a 32-byte blob key and returns a 65-byte (r, s, v)
// signature with the recovery byte normalized to {0, 1}. go-ethereum's
// Sign already returns the 0/1 convention; the normalization makes the
// invariant explicit and keeps the call site symmetrical with
// SignPaymentStateRequest.
func (s *Signer) SignBlobKey(blobKey [32]byte) ([65]byte, error) {
	sig, err := ethcrypto.Sign(blobKey[:], s.ecdsaKey())
	if err != nil {
		return [65]byte{}, fmt.Errorf("sign blob key: %w", err)
	}
	return normalizeRecovery(sig)
}

// SignPaymentStateRequest signs a GetPaymentState(ForAllQuorums) request.
// The digest is SHA256(Keccak256(length_prefix(address) || be_u64(timestamp_ns))),
// a double hash that is part of the wire protocol: diverging from it
// makes the server return an authentication failure with no other
// indication of what went wrong.
func (s *Signer) SignPaymentStateRequest(account common.Address, timestampNs int64) ([65]byte, error) {
	digest := PaymentStateRequestDigest(account, timestampNs)
	sig, err := ethcrypto.Sign(digest[:], s.ecdsaKey())
	if err != nil {
		return [65]byte{}, fmt.Errorf("sign payment state request: %w", err)
	}
	return normalizeRecovery(sig)
}

// PaymentStateRequestDigest computes the digest signed by
// SignPaymentStateRequest, exposed so callers can verify a signature
// independently of signing one.
func PaymentStateRequestDigest(account common.Address, timestampNs int64) [32]byte {
	msg := make([]byte, 0, 1+len(account)+8)
	msg = append(msg, byte(len(account)))
	msg = append(msg, account.Bytes()...)
	msg = appendBigEndianU64(msg, uint64(timestampNs))

	inner := ethcrypto.Keccak256(msg)
	return sha256.Sum256(inner)
}

func appendBigEndianU64(dst []byte, v uint64) []byte {
	var b [8]byte
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return append(dst, b[:]...)
}

// normalizeRecovery subtracts go-ethereum's Ethereum-convention recovery
// byte (27/28) down to the wire convention (0/1) if needed; go-ethereum's
// Sign already returns 0/1, but callers that feed in externally produced
// signatures may not, so this is enforced at the boundary.
func normalizeRecovery(sig []byte) ([65]byte, error) {
	var out [65]byte
	if len(sig) != 65 {
		return out, fmt.Errorf("unexpected signature length %d", len(sig))
	}
	copy(out[:], sig)
	if out[64] >= 27 {
		out[64] -= 27
	}
	if out[64] > 1 {
		return out, fmt.Errorf("invalid recovery byte %d", out[64])
	}
	return out, nil
}

// RecoverAccountID recovers the signer address from a blob-key signature,
// accepting either the 0/1 or 27/28 recovery-byte convention.
func RecoverAccountID(blobKey [32]byte, sig [65]byte) (common.Address, error) {
	s := sig
	if s[64] >= 27 {
		s[64] -= 27
	}
	pub, err := ethcrypto.SigToPub(blobKey[:], s[:])
	if err != nil {
		return common.Address{}, fmt.Errorf("recover pubkey: %w", err)
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// HexPrivateKey returns the hex-encoded private key bytes.
func (s *Signer) HexPrivateKey() types.HexBytes {
	return types.HexBytes(ethcrypto.FromECDSA(s.ecdsaKey()))
}
