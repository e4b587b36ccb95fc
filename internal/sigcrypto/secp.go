// Package sigcrypto wraps the secp256k1 library behind the harness's
// Signer contract. The primitives themselves are the collaborator's;
// nothing here is benchmark logic.
package sigcrypto

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"sigbench/internal/core"
)

// Secp256k1 signs and verifies ECDSA over secp256k1 with 32-byte
// digests. All methods are safe for concurrent use.
type Secp256k1 struct{}

func New() Secp256k1 {
	return Secp256k1{}
}

func (Secp256k1) GenerateKeypair() (core.SecretKey, core.PublicKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("generating secp256k1 key: %w", err)
	}
	return priv, priv.PubKey(), nil
}

func (Secp256k1) Sign(msg []byte, key core.SecretKey) (core.Signature, error) {
	priv, ok := key.(*btcec.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("secp256k1: unexpected secret key type %T", key)
	}
	return ecdsa.Sign(priv, msg), nil
}

func (Secp256k1) Verify(msg []byte, sig core.Signature, key core.PublicKey) bool {
	s, ok := sig.(*ecdsa.Signature)
	if !ok {
		return false
	}
	pub, ok := key.(*btcec.PublicKey)
	if !ok {
		return false
	}
	return s.Verify(msg, pub)
}
