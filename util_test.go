package multisig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// fakeKeys returns n fake public keys, key i only accepting signatures of
// signer i.
func fakeKeys(n int) []PublicKey {
	keys := make([]PublicKey, n)
	for i := 0; i < n; i++ {
		keys[i] = &fakePublic{id: i}
	}
	return keys
}

type fakePublic struct {
	id int
}

func (f *fakePublic) String() string {
	return fmt.Sprintf("public-%d", f.id)
}

func (f *fakePublic) VerifySignature(msg []byte, s Signature) error {
	fs, ok := s.(*fakeSig)
	if !ok {
		return errors.New("wrong signature type")
	}
	if fs.signer != f.id {
		return errors.New("wrong signer")
	}
	if !bytes.Equal(fs.msg, msg) {
		return errors.New("wrong message")
	}
	return nil
}

// panickingPublic simulates a primitive choking on a malformed signature.
type panickingPublic struct{}

func (p *panickingPublic) String() string { return "panicking" }
func (p *panickingPublic) VerifySignature([]byte, Signature) error {
	panic("malformed point")
}

type fakeSecret struct {
	id int
}

func (f *fakeSecret) PublicKey() PublicKey {
	return &fakePublic{id: f.id}
}

func (f *fakeSecret) Sign(msg []byte, rand io.Reader) (Signature, error) {
	m := make([]byte, len(msg))
	copy(m, msg)
	return &fakeSig{signer: f.id, msg: m}, nil
}

func fakeSecrets(n int) []SecretKey {
	keys := make([]SecretKey, n)
	for i := 0; i < n; i++ {
		keys[i] = &fakeSecret{id: i}
	}
	return keys
}

type fakeSig struct {
	signer int
	msg    []byte
}

func (f *fakeSig) MarshalBinary() ([]byte, error) {
	return append([]byte{byte(f.signer)}, f.msg...), nil
}

// foreignSig is a signature of a scheme no fake key understands.
type foreignSig struct{}

func (f *foreignSig) MarshalBinary() ([]byte, error) {
	return nil, nil
}

func fakeSign(signer int, msg Message) Signature {
	s, _ := (&fakeSecret{id: signer}).Sign(msg.Bytes(), nil)
	return s
}

var msg = HashMessage([]byte("Hello, multisig!"))
var otherMsg = HashMessage([]byte("Hello, multisig! Wrong"))
