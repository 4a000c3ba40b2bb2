package multisig

import (
	"crypto/rand"
	"fmt"
)

// Test is a struct implementing some useful functionality to test specific
// signature schemes against a Multisig. It holds a list of secret keys whose
// public keys, in the same order, are the authorized keys.
type Test struct {
	secrets []SecretKey
	pubs    []PublicKey
}

// NewTest returns a Test over the given secret keys.
func NewTest(keys []SecretKey) *Test {
	pubs := make([]PublicKey, len(keys))
	for i, k := range keys {
		pubs[i] = k.PublicKey()
	}
	return &Test{secrets: keys, pubs: pubs}
}

// PublicKeys returns the first n public keys.
func (t *Test) PublicKeys(n int) []PublicKey {
	return t.pubs[:n]
}

// Sign returns the signature over msg of the i-th secret key. It panics if
// signing fails.
func (t *Test) Sign(i int, msg Message) Signature {
	sig, err := t.secrets[i].Sign(msg.Bytes(), rand.Reader)
	if err != nil {
		panic(fmt.Sprintf("test: signer %d failed: %s", i, err))
	}
	return sig
}

// Submission is a signature produced by the signer at index Signer over the
// content Content.
type Submission struct {
	Signer  int
	Content string
}

// Scenario describes a Multisig built from the first Keys test keys, fed with
// the given submissions in order, and verified over Content.
type Scenario struct {
	Name        string
	Keys        int
	Threshold   int
	Submissions []Submission
	Content     string
	Expected    bool
}

// Build returns the Multisig described by the scenario.
func (t *Test) Build(s Scenario, conf ...*Config) *Multisig {
	m := New(t.PublicKeys(s.Keys), s.Threshold, conf...)
	for _, sub := range s.Submissions {
		m.AddSignature(t.Sign(sub.Signer, HashMessage([]byte(sub.Content))))
	}
	return m
}

// Run builds the scenario and returns the outcome of its verification.
func (t *Test) Run(s Scenario, conf ...*Config) bool {
	return t.Build(s, conf...).Verify(HashMessage([]byte(s.Content)))
}

// Scenarios returns the scenarios every signature scheme must satisfy. They
// need at least three test keys.
func Scenarios() []Scenario {
	const m = "Hello, multisig!"
	const other = "Hello, multisig! Wrong"
	var s = func(subs ...Submission) []Submission { return subs }
	return []Scenario{
		{"two of three", 3, 2, s(Submission{0, m}, Submission{1, m}), m, true},
		{"one of two required", 3, 2, s(Submission{0, m}), m, false},
		{"extra signature", 3, 2, s(Submission{0, m}, Submission{1, m}, Submission{2, m}), m, true},
		{"second over other message", 2, 2, s(Submission{0, m}, Submission{1, other}), m, false},
		{"verified over other message", 2, 2, s(Submission{0, m}, Submission{1, other}), other, false},
		{"out of order signers", 3, 2, s(Submission{1, m}, Submission{0, m}), m, false},
		{"invalid trailing signature", 3, 2, s(Submission{0, m}, Submission{1, m}, Submission{0, other}), m, true},
		{"valid trailing signature", 3, 2, s(Submission{0, m}, Submission{0, m}, Submission{2, m}), m, false},
		{"all of three", 3, 3, s(Submission{0, m}, Submission{1, m}, Submission{2, m}), m, true},
		{"threshold above keys", 2, 3, s(Submission{0, m}, Submission{1, m}, Submission{2, m}), m, false},
		{"zero threshold", 3, 0, s(), m, true},
	}
}
