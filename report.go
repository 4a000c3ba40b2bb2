package multisig

import "sync/atomic"

// ReportMultisig holds a Multisig but counts the outcome of every
// verification going through it, so hosts can issue some stats.
type ReportMultisig struct {
	// counters first, 64-bit atomic access needs them aligned
	verifications uint64
	accepted      uint64
	rejected      uint64
	fastRejected  uint64
	invalidSigs   uint64
	*Multisig
}

// NewReportMultisig returns a Multisig that can report some statistics about
// its verifications.
func NewReportMultisig(m *Multisig) *ReportMultisig {
	return &ReportMultisig{Multisig: m}
}

// Verify behaves as Multisig.Verify and records the outcome.
func (r *ReportMultisig) Verify(msg Message) bool {
	return r.VerifyReport(msg).Accepted
}

// VerifyReport behaves as Multisig.VerifyReport and records the outcome.
func (r *ReportMultisig) VerifyReport(msg Message) *Verification {
	v := r.Multisig.VerifyReport(msg)
	atomic.AddUint64(&r.verifications, 1)
	if v.Accepted {
		atomic.AddUint64(&r.accepted, 1)
	} else {
		atomic.AddUint64(&r.rejected, 1)
	}
	if v.Examined == 0 && !v.Accepted {
		atomic.AddUint64(&r.fastRejected, 1)
	}
	atomic.AddUint64(&r.invalidSigs, uint64(v.Examined-v.Valid()))
	return v
}

// Values returns the counters by name.
func (r *ReportMultisig) Values() map[string]float64 {
	return map[string]float64{
		"verifications": float64(atomic.LoadUint64(&r.verifications)),
		"accepted":      float64(atomic.LoadUint64(&r.accepted)),
		"rejected":      float64(atomic.LoadUint64(&r.rejected)),
		"fastRejected":  float64(atomic.LoadUint64(&r.fastRejected)),
		"invalidSigs":   float64(atomic.LoadUint64(&r.invalidSigs)),
	}
}
