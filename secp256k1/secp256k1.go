// Package secp256k1 allows to use a Multisig with ECDSA signatures over the
// secp256k1 curve. It implements the relevant multisig interfaces: PublicKey,
// SecretKey, Signature and Constructor. The curve arithmetic, RFC 6979 signing
// and DER encoding come from the btcsuite/btcd/btcec package.
//
// Messages are 32-byte digests signed as is: this package never hashes.
package secp256k1

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"io"
	"math/big"

	"github.com/ConsenSys/multisig"
	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

// DigestSize is the size of the messages this scheme signs.
const DigestSize = multisig.MessageSize

// ErrDigestSize is returned when signing or verifying anything else than a
// DigestSize message.
var ErrDigestSize = errors.New("secp256k1: message must be a 32-byte digest")

// ErrHighS is returned when verifying a signature whose S is above half the
// curve order. Only the low-S form of a signature is accepted.
var ErrHighS = errors.New("secp256k1: non-canonical high-S signature")

var halfOrder = new(big.Int).Rsh(btcec.S256().N, 1)

// Constructor implements the multisig.Constructor interface
type Constructor struct{}

// NewConstructor returns a multisig.Constructor capable of creating empty
// ECDSA signatures and empty public keys.
func NewConstructor() *Constructor {
	return &Constructor{}
}

// Signature implements the multisig.Constructor interface
func (c *Constructor) Signature() multisig.Signature {
	return new(Signature)
}

// PublicKey implements the multisig.Constructor interface
func (c *Constructor) PublicKey() multisig.PublicKey {
	return new(PublicKey)
}

// SecretKey returns an empty secret key ready to be unmarshalled.
func (c *Constructor) SecretKey() multisig.SecretKey {
	return new(SecretKey)
}

// KeyPair returns a fresh key pair generated from r.
func (c *Constructor) KeyPair(r io.Reader) (multisig.SecretKey, multisig.PublicKey, error) {
	sk, err := NewSecretKey(r)
	if err != nil {
		return nil, nil, err
	}
	return sk, sk.PublicKey(), nil
}

// PublicKey is a point on secp256k1.
type PublicKey struct {
	p *btcec.PublicKey
}

// String returns the hex of the compressed point.
func (p *PublicKey) String() string {
	if p.p == nil {
		return "<nil>"
	}
	return hex.EncodeToString(p.p.SerializeCompressed())
}

// VerifySignature checks the ECDSA signature sig over the digest msg.
func (p *PublicKey) VerifySignature(msg []byte, sig multisig.Signature) error {
	s, ok := sig.(*Signature)
	if !ok {
		return errors.Errorf("secp256k1: not an ECDSA signature: %T", sig)
	}
	if p.p == nil || s.s == nil {
		return errors.New("secp256k1: empty key or signature")
	}
	if len(msg) != DigestSize {
		return ErrDigestSize
	}
	if s.s.S.Cmp(halfOrder) > 0 {
		return ErrHighS
	}
	if !s.s.Verify(msg, p.p) {
		return errors.New("secp256k1: signature invalid")
	}
	return nil
}

// MarshalBinary returns the 33-byte compressed point.
func (p *PublicKey) MarshalBinary() ([]byte, error) {
	if p.p == nil {
		return nil, errors.New("secp256k1: public key can't marshal if nil")
	}
	return p.p.SerializeCompressed(), nil
}

// UnmarshalBinary reads a compressed, uncompressed or hybrid point.
func (p *PublicKey) UnmarshalBinary(buff []byte) error {
	pub, err := btcec.ParsePubKey(buff, btcec.S256())
	if err != nil {
		return errors.Wrap(err, "secp256k1: public key can't unmarshal")
	}
	p.p = pub
	return nil
}

// SecretKey is a secp256k1 private scalar.
type SecretKey struct {
	s *btcec.PrivateKey
}

// NewSecretKey returns a new secret key generated from the given reader, or
// from crypto/rand if nil.
func NewSecretKey(reader io.Reader) (*SecretKey, error) {
	if reader == nil {
		reader = rand.Reader
	}
	k, err := ecdsa.GenerateKey(btcec.S256(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1: key generation")
	}
	return &SecretKey{s: (*btcec.PrivateKey)(k)}, nil
}

// PublicKey returns the public point of this key.
func (s *SecretKey) PublicKey() multisig.PublicKey {
	return &PublicKey{p: s.s.PubKey()}
}

// Sign returns a deterministic (RFC 6979) ECDSA signature over the digest
// msg. The reader is not used.
func (s *SecretKey) Sign(msg []byte, reader io.Reader) (multisig.Signature, error) {
	if s.s == nil {
		return nil, errors.New("secp256k1: empty secret key")
	}
	if len(msg) != DigestSize {
		return nil, ErrDigestSize
	}
	sig, err := s.s.Sign(msg)
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1: signing")
	}
	return &Signature{s: sig}, nil
}

// MarshalBinary returns the 32-byte big-endian scalar.
func (s *SecretKey) MarshalBinary() ([]byte, error) {
	if s.s == nil {
		return nil, errors.New("secp256k1: secret key can't marshal if nil")
	}
	return s.s.Serialize(), nil
}

// UnmarshalBinary reads a 32-byte big-endian scalar.
func (s *SecretKey) UnmarshalBinary(buff []byte) error {
	if len(buff) != btcec.PrivKeyBytesLen {
		return errors.Errorf("secp256k1: secret key must be %d bytes, got %d", btcec.PrivKeyBytesLen, len(buff))
	}
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), buff)
	if priv.D.Sign() == 0 || priv.D.Cmp(btcec.S256().N) >= 0 {
		return errors.New("secp256k1: secret key out of range")
	}
	s.s = priv
	return nil
}

// Signature is a DER encoded ECDSA signature.
type Signature struct {
	s *btcec.Signature
}

// MarshalBinary returns the DER encoding of the signature.
func (s *Signature) MarshalBinary() ([]byte, error) {
	if s.s == nil {
		return nil, errors.New("secp256k1: signature can't marshal if nil")
	}
	return s.s.Serialize(), nil
}

// UnmarshalBinary reads a strict DER encoded signature.
func (s *Signature) UnmarshalBinary(buff []byte) error {
	sig, err := btcec.ParseDERSignature(buff, btcec.S256())
	if err != nil {
		return errors.Wrap(err, "secp256k1: signature can't unmarshal")
	}
	s.s = sig
	return nil
}

func (s *Signature) String() string {
	buff, err := s.MarshalBinary()
	if err != nil {
		return "<nil>"
	}
	return hex.EncodeToString(buff)
}
