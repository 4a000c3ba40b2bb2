package bn256

import (
	"crypto/rand"
	"testing"

	"github.com/ConsenSys/multisig"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	reader := rand.Reader
	msg := multisig.HashMessage([]byte("Get Funky Tonight"))

	sk, pk, err := NewKeyPair(reader)
	require.NoError(t, err)

	sig, err := sk.Sign(msg.Bytes(), nil)
	require.NoError(t, err)

	require.NoError(t, pk.VerifySignature(msg.Bytes(), sig))
	require.Equal(t, pk.String(), sk.PublicKey().String())

	other := multisig.HashMessage([]byte("Get Funky Tomorrow"))
	require.Error(t, pk.VerifySignature(other.Bytes(), sig))

	_, pk2, err := NewKeyPair(reader)
	require.NoError(t, err)
	require.NotEqual(t, pk.String(), pk2.String())
	require.Error(t, pk2.VerifySignature(msg.Bytes(), sig))
}

func TestVerifyForeignSignature(t *testing.T) {
	_, pk, err := NewKeyPair(nil)
	require.NoError(t, err)
	msg := multisig.HashMessage([]byte("foreign"))
	require.Error(t, pk.VerifySignature(msg.Bytes(), nil))
	require.Error(t, pk.VerifySignature(msg.Bytes(), new(SigBLS)))
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
	sig2 := cons.Signature().(*SigBLS)
	require.NoError(t, sig2.UnmarshalBinary(buff))
	require.NoError(t, pk.VerifySignature(msg.Bytes(), sig2))
	require.Error(t, sig2.UnmarshalBinary([]byte{1, 2, 3}))

	pkBuff, err := pk.(*PublicKey).MarshalBinary()
	require.NoError(t, err)
	pk2 := cons.PublicKey().(*PublicKey)
	require.NoError(t, pk2.UnmarshalBinary(pkBuff))
	require.NoError(t, pk2.VerifySignature(msg.Bytes(), sig))

	pk3 := cons.PublicKey().(*PublicKey)
	require.Error(t, pk3.UnmarshalBinary([]byte{1, 2, 3}))
	require.Nil(t, pk3.p)
	_, err = pk3.MarshalBinary()
	require.Error(t, err)

	skBuff, err := sk.(*SecretKey).MarshalBinary()
	require.NoError(t, err)
	sk2 := cons.SecretKey().(*SecretKey)
	require.NoError(t, sk2.UnmarshalBinary(skBuff))
	require.Equal(t, pk.String(), sk2.PublicKey().String())
	require.Error(t, sk2.UnmarshalBinary(nil))
}

func TestMultisigScenarios(t *testing.T) {
	keys := make([]multisig.SecretKey, 3)
	for i := range keys {
		sk, _, err := NewKeyPair(rand.Reader)
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
