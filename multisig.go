package multisig

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Multisig collects signatures over a single message and decides whether at
// least a threshold of them are valid under an ordered list of public keys.
//
// Signatures carry no signer identity: the i-th collected signature is always
// checked against the i-th public key, and only the first threshold collected
// signatures are ever examined. Signers must therefore submit in the order of
// the key list.
//
// Multisig is thread-safe: AddSignature can be called concurrently with Verify.
type Multisig struct {
	sync.RWMutex
	// Config holding parameters to the Multisig
	c *Config
	// ordered list of authorized public keys, immutable
	keys []PublicKey
	// collected signatures in insertion order, append-only
	sigs []Signature
	// minimum number of valid signatures required
	threshold int
	logger    Logger
}

// New returns a Multisig over the given public keys and threshold, holding no
// signatures. The first config in the slice is taken if not nil. Otherwise,
// the default config generated by DefaultConfig() is used.
//
// New accepts any threshold and any key list. A threshold lower than 1 makes
// Verify accept any message, a threshold greater than the number of keys makes
// it reject any message. Use CheckThreshold to detect those cases.
func New(keys []PublicKey, threshold int, conf ...*Config) *Multisig {
	var config *Config
	if len(conf) > 0 && conf[0] != nil {
		config = mergeWithDefault(conf[0])
	} else {
		config = DefaultConfig()
	}
	ks := make([]PublicKey, len(keys))
	copy(ks, keys)
	return &Multisig{
		c:         config,
		keys:      ks,
		threshold: threshold,
		logger:    config.Logger.With("multisig", fmt.Sprintf("%d-of-%d", threshold, len(ks))),
	}
}

// AddSignature appends the signature to the collected ones. No verification
// happens here, nor any deduplication.
func (m *Multisig) AddSignature(sig Signature) {
	m.Lock()
	defer m.Unlock()
	m.sigs = append(m.sigs, sig)
}

// Verify returns true if at least threshold of the first threshold collected
// signatures verify over msg under the public key at the same position.
// Signatures collected beyond the threshold are never consulted.
func (m *Multisig) Verify(msg Message) bool {
	return m.VerifyReport(msg).Accepted
}

// Verification is the detailed outcome of a verification.
type Verification struct {
	// BitSet has one bit per public key, set for each position whose
	// signature verified.
	BitSet
	// Examined is the number of signatures checked.
	Examined int
	// Threshold is the threshold of the Multisig.
	Threshold int
	// Accepted is true if enough signatures were valid.
	Accepted bool
}

// Valid returns the number of valid signatures found.
func (v *Verification) Valid() int {
	return v.Cardinality()
}

func (v *Verification) String() string {
	return fmt.Sprintf("accepted=%v valid=%d/%d examined=%d positions=%s",
		v.Accepted, v.Valid(), v.Threshold, v.Examined, v.BitSet.String())
}

// VerifyReport runs the same decision as Verify and returns its details.
func (m *Multisig) VerifyReport(msg Message) *Verification {
	m.RLock()
	defer m.RUnlock()
	v := &Verification{
		BitSet:    m.c.NewBitSet(len(m.keys)),
		Threshold: m.threshold,
	}
	if len(m.sigs) < m.threshold {
		// not enough signatures collected yet
		return v
	}

	for i := 0; i < m.threshold; i++ {
		v.Examined++
		if i >= len(m.keys) {
			m.logger.Debug("pos", i, "invalid", "no public key at this position")
			continue
		}
		if err := verifyPair(m.keys[i], msg, m.sigs[i]); err != nil {
			m.logger.Debug("pos", i, "invalid", err)
			continue
		}
		v.Set(i, true)
	}
	v.Accepted = v.Valid() >= m.threshold
	return v
}

// verifyPair turns any failure of the signature primitive, including a panic on
// a malformed value, into an error.
func verifyPair(pub PublicKey, msg Message, sig Signature) (err error) {
	if sig == nil {
		return errors.New("nil signature")
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("signature primitive panicked: %v", r)
		}
	}()
	return pub.VerifySignature(msg.Bytes(), sig)
}

// CheckThreshold returns an error if the threshold is outside [1, number of
// public keys] or if there are no public keys at all.
func (m *Multisig) CheckThreshold() error {
	switch {
	case len(m.keys) == 0:
		return ErrNoPublicKeys
	case m.threshold < 1:
		return ErrThresholdTooLow
	case m.threshold > len(m.keys):
		return ErrThresholdTooHigh
	}
	return nil
}

// Threshold returns the number of valid signatures required.
func (m *Multisig) Threshold() int {
	return m.threshold
}

// Len returns the number of signatures collected so far.
func (m *Multisig) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sigs)
}

// PublicKeys returns a copy of the ordered public keys.
func (m *Multisig) PublicKeys() []PublicKey {
	ks := make([]PublicKey, len(m.keys))
	copy(ks, m.keys)
	return ks
}

// Signatures returns a copy of the collected signatures in insertion order.
func (m *Multisig) Signatures() []Signature {
	m.RLock()
	defer m.RUnlock()
	sigs := make([]Signature, len(m.sigs))
	copy(sigs, m.sigs)
	return sigs
}

func (m *Multisig) String() string {
	return fmt.Sprintf("multisig %d-of-%d (%d collected)", m.threshold, len(m.keys), m.Len())
}
