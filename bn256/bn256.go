// Package bn256 allows to use a Multisig with the BLS signature scheme over
// the BN256 groups. It implements the relevant multisig interfaces: PublicKey,
// SecretKey, Signature and Constructor. The BN256 implementations comes from
// the cloudflare/bn256 package.
package bn256

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"math/big"

	"github.com/ConsenSys/multisig"
	"github.com/cloudflare/bn256"
	"github.com/pkg/errors"
)

// Hash is the hash function used to hash the message prior to signing
var Hash = sha256.New

// G2Base is the base point specified for the G2 group. If one wants to use a
// different point, set this variable before using any public methods / structs
// of this package.
var G2Base *bn256.G2

func init() {
	G2Base = new(bn256.G2).ScalarBaseMult(big.NewInt(1))
}

// Constructor implements the multisig.Constructor interface
type Constructor struct{}

// NewConstructor returns a multisig.Constructor capable of creating empty BLS
// signature object and empty public keys.
func NewConstructor() *Constructor {
	return &Constructor{}
}

// Signature implements the multisig.Constructor interface
func (c *Constructor) Signature() multisig.Signature {
	return new(SigBLS)
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
	sk, pk, err := NewKeyPair(r)
	if err != nil {
		return nil, nil, err
	}
	return sk, pk, nil
}

// PublicKey holds the public key information = point in G2
type PublicKey struct {
	p *bn256.G2
}

func (p *PublicKey) String() string {
	buff, _ := p.MarshalBinary()
	s := sha256.Sum256(buff)
	return hex.EncodeToString(s[:])
}

// VerifySignature checks the given BLS signature bls on the message m using the
// public key p by verifying that the equality e(H(m), X) == e(H(m), x*B2) ==
// e(x*H(m), B2) == e(S, B2) holds where e is the pairing operation and B2 is
// the base point from curve G2.
func (p *PublicKey) VerifySignature(msg []byte, sig multisig.Signature) error {
	ms, ok := sig.(*SigBLS)
	if !ok {
		return errors.Errorf("bn256: not a BLS signature: %T", sig)
	}
	if p.p == nil || ms.e == nil {
		return errors.New("bn256: empty key or signature")
	}
	HM, err := hashedMessage(msg)
	if err != nil {
		return err
	}
	leftPair := bn256.Pair(HM, p.p).Marshal()
	rightPair := bn256.Pair(ms.e, G2Base).Marshal()
	if !bytes.Equal(leftPair, rightPair) {
		return errors.New("bn256: signature invalid")
	}
	return nil
}

// MarshalBinary returns the marshalled G2 point.
func (p *PublicKey) MarshalBinary() ([]byte, error) {
	if p.p == nil {
		return nil, errors.New("bn256: public key can't marshal if nil")
	}
	return p.p.Marshal(), nil
}

// UnmarshalBinary reads a G2 point.
func (p *PublicKey) UnmarshalBinary(buff []byte) error {
	p.p = new(bn256.G2)
	_, err := p.p.Unmarshal(buff)
	if err != nil {
		p.p = nil
		return errors.Wrap(err, "bn256: public key can't unmarshal")
	}
	return nil
}

// SecretKey holds the secret scalar and can return the corresponding public
// key. It can sign messages using the BLS signature scheme.
type SecretKey struct {
	s *big.Int
}

// NewKeyPair returns a new keypair generated from the given reader.
func NewKeyPair(reader io.Reader) (*SecretKey, *PublicKey, error) {
	if reader == nil {
		reader = rand.Reader
	}
	secret, public, err := bn256.RandomG2(reader)
	if err != nil {
		return nil, nil, err
	}
	return &SecretKey{s: secret}, &PublicKey{p: public}, nil
}

// PublicKey returns the point x*B2 of G2.
func (s *SecretKey) PublicKey() multisig.PublicKey {
	return &PublicKey{p: new(bn256.G2).ScalarBaseMult(s.s)}
}

// Sign creates a BLS signature S = x * H(m) on a message m using the private
// key x. The signature S is a point on curve G1. BLS is deterministic, the
// reader is not used.
func (s *SecretKey) Sign(msg []byte, reader io.Reader) (multisig.Signature, error) {
	if s.s == nil {
		return nil, errors.New("bn256: empty secret key")
	}
	hashed, err := hashedMessage(msg)
	if err != nil {
		return nil, err
	}
	p := new(bn256.G1).ScalarMult(hashed, s.s)
	return &SigBLS{p}, nil
}

// MarshalBinary returns the big-endian secret scalar.
func (s *SecretKey) MarshalBinary() ([]byte, error) {
	if s.s == nil {
		return nil, errors.New("bn256: secret key can't marshal if nil")
	}
	return s.s.Bytes(), nil
}

// UnmarshalBinary reads a big-endian secret scalar.
func (s *SecretKey) UnmarshalBinary(buff []byte) error {
	if len(buff) == 0 {
		return errors.New("bn256: empty secret key")
	}
	s.s = new(big.Int).SetBytes(buff)
	return nil
}

// SigBLS represents a BLS signature using the BN256 curves
type SigBLS struct {
	e *bn256.G1
}

// MarshalBinary implements the multisig.Signature interface
func (m *SigBLS) MarshalBinary() ([]byte, error) {
	if m.e == nil {
		return nil, errors.New("bn256: signature can't marshal if nil")
	}
	return m.e.Marshal(), nil
}

// UnmarshalBinary reads a G1 point.
func (m *SigBLS) UnmarshalBinary(b []byte) error {
	m.e = new(bn256.G1)
	_, err := m.e.Unmarshal(b)
	if err != nil {
		m.e = nil
		return errors.Wrap(err, "bn256: signature can't unmarshal")
	}
	return nil
}

func (m *SigBLS) String() string {
	if m.e == nil {
		return "<nil>"
	}
	return m.e.String()
}

// hashedMessage returns the message hashed to G1
// XXX: this should be fixed as to have a method that maps a message
// (potentially a digest) to a point WITHOUT knowing the corresponding scalar.
func hashedMessage(msg []byte) (*bn256.G1, error) {
	h := Hash()
	if _, err := h.Write(msg); err != nil {
		return nil, err
	}
	k := new(big.Int).SetBytes(h.Sum(nil))
	k.Mod(k, bn256.Order)
	return new(bn256.G1).ScalarBaseMult(k), nil
}
