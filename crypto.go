package multisig

import "io"

// PublicKey holds the method to verify a signature produced by the
// corresponding secret key.
type PublicKey interface {
	String() string
	// VerifySignature returns nil if sig is a valid signature over msg under
	// this public key. Any non-nil error means the signature is invalid, the
	// error only carries the reason.
	VerifySignature(msg []byte, sig Signature) error
}

// SecretKey holds methods to produce a valid signature that can be verified
// under the corresponding public key.
type SecretKey interface {
	PublicKey() PublicKey
	// Sign returns a signature over the given message and using the reader for
	// any randomness necessary, if any. The rand argument can be left nil.
	Sign(msg []byte, rand io.Reader) (Signature, error)
}

// Signature holds the method to pass to a binary representation. A signature
// does not embed any identity of its signer.
type Signature interface {
	MarshalBinary() ([]byte, error)
}

// Constructor returns empty values of a given signature scheme, ready to be
// filled with UnmarshalBinary. Hosts use it to parse keys and signatures
// coming from files or the wire.
type Constructor interface {
	Signature() Signature
	PublicKey() PublicKey
}
