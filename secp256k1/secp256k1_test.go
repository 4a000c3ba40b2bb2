package secp256k1

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/ConsenSys/multisig"
	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	msg := multisig.HashMessage([]byte("Hello, multisig!"))

	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)
	pk := sk.PublicKey()

	sig, err := sk.Sign(msg.Bytes(), nil)
	require.NoError(t, err)
	require.NoError(t, pk.VerifySignature(msg.Bytes(), sig))

	// RFC 6979 signatures are deterministic
	sig2, err := sk.Sign(msg.Bytes(), rand.Reader)
	require.NoError(t, err)
	b1, _ := sig.MarshalBinary()
	b2, _ := sig2.MarshalBinary()
	require.Equal(t, b1, b2)

	other := multisig.HashMessage([]byte("Hello, multisig! Wrong"))
	require.Error(t, pk.VerifySignature(other.Bytes(), sig))

	sk2, err := NewSecretKey(nil)
	require.NoError(t, err)
	require.Error(t, sk2.PublicKey().VerifySignature(msg.Bytes(), sig))
}

func TestDigestSize(t *testing.T) {
	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)
	_, err = sk.Sign([]byte("not a digest"), nil)
	require.Equal(t, ErrDigestSize, err)

	msg := multisig.HashMessage([]byte("digest"))
	sig, err := sk.Sign(msg.Bytes(), nil)
	require.NoError(t, err)
	require.Equal(t, ErrDigestSize, sk.PublicKey().VerifySignature(msg.Bytes()[:31], sig))
}

func TestVerifyForeignSignature(t *testing.T) {
	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)
	msg := multisig.HashMessage([]byte("foreign"))
	require.Error(t, sk.PublicKey().VerifySignature(msg.Bytes(), nil))
	require.Error(t, sk.PublicKey().VerifySignature(msg.Bytes(), new(Signature)))
	require.Error(t, new(PublicKey).VerifySignature(msg.Bytes(), new(Signature)))
}

func TestMarshalling(t *testing.T) {
	cons := NewConstructor()
	sk, pk, err := cons.KeyPair(rand.Reader)
	require.NoError(t, err)
	msg := multisig.HashMessage([]byte("marshal me"))
	sig, err := sk.Sign(msg.Bytes(), nil)
	require.NoError(t, err)

	buff, err := sig.MarshalBinary()
	require.NoError(t, err)
	sig2 := cons.Signature().(*Signature)
	require.NoError(t, sig2.UnmarshalBinary(buff))
	require.NoError(t, pk.VerifySignature(msg.Bytes(), sig2))
	require.Error(t, sig2.UnmarshalBinary([]byte{0x30, 0x01}))

	pkBuff, err := pk.(*PublicKey).MarshalBinary()
	require.NoError(t, err)
	require.Len(t, pkBuff, 33)
	pk2 := cons.PublicKey().(*PublicKey)
	require.NoError(t, pk2.UnmarshalBinary(pkBuff))
	require.Equal(t, pk.String(), pk2.String())
	require.Error(t, pk2.UnmarshalBinary(bytes.Repeat([]byte{0xff}, 33)))

	skBuff, err := sk.(*SecretKey).MarshalBinary()
	require.NoError(t, err)
	sk2 := cons.SecretKey().(*SecretKey)
	require.NoError(t, sk2.UnmarshalBinary(skBuff))
	require.Equal(t, pk.String(), sk2.PublicKey().String())
	require.Error(t, sk2.UnmarshalBinary(skBuff[:10]))
	require.Error(t, sk2.UnmarshalBinary(make([]byte, 32)))

	_, err = new(Signature).MarshalBinary()
	require.Error(t, err)
	require.Equal(t, "<nil>", new(Signature).String())
}

func TestMultisigScenarios(t *testing.T) {
	keys := make([]multisig.SecretKey, 3)
	for i := range keys {
		sk, err := NewSecretKey(rand.Reader)
		require.NoError(t, err)
		keys[i] = sk
	}
	test := multisig.NewTest(keys)
	for _, s := range multisig.Scenarios() {
		t.Run(s.Name, func(t *testing.T) {
			require.Equal(t, s.Expected, test.Run(s, &multisig.Config{Logger: multisig.NopLogger}))
		})
	}
}

func TestVerifyHighS(t *testing.T) {
	sk, err := NewSecretKey(rand.Reader)
	require.NoError(t, err)
	pk := sk.PublicKey()
	msg := multisig.HashMessage([]byte("malleable"))
	sig, err := sk.Sign(msg.Bytes(), nil)
	require.NoError(t, err)
	low := sig.(*Signature).s
	require.True(t, low.S.Cmp(halfOrder) <= 0)

	// same curve equation, S mirrored to the upper half
	highS := new(big.Int).Sub(btcec.S256().N, low.S)
	high := &Signature{s: &btcec.Signature{R: low.R, S: highS}}
	require.True(t, high.s.Verify(msg.Bytes(), pk.(*PublicKey).p))
	require.Equal(t, ErrHighS, pk.VerifySignature(msg.Bytes(), high))

	require.NoError(t, pk.VerifySignature(msg.Bytes(), sig))
}
