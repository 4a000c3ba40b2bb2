package multisig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportMultisig(t *testing.T) {
	r := NewReportMultisig(New(fakeKeys(3), 2, &Config{Logger: NopLogger}))

	// fast reject
	require.False(t, r.Verify(msg))

	r.AddSignature(fakeSign(0, msg))
	r.AddSignature(fakeSign(2, msg))
	// second one is invalid at position 1
	require.False(t, r.Verify(msg))

	r2 := NewReportMultisig(New(fakeKeys(3), 2, &Config{Logger: NopLogger}))
	r2.AddSignature(fakeSign(0, msg))
	r2.AddSignature(fakeSign(1, msg))
	require.True(t, r2.Verify(msg))
	require.True(t, r2.VerifyReport(msg).Accepted)

	require.Equal(t, map[string]float64{
		"verifications": 2,
		"accepted":      0,
		"rejected":      2,
		"fastRejected":  1,
		"invalidSigs":   1,
	}, r.Values())
	require.Equal(t, 2.0, r2.Values()["accepted"])
	require.Equal(t, 0.0, r2.Values()["invalidSigs"])
}
