package main

import (
	"encoding/hex"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ConsenSys/multisig"
	"github.com/ConsenSys/multisig/keys"
	"github.com/pkg/errors"
)

// Policy is read from a TOML encoded file and describes one verification:
// who may sign, how many must, what they signed and what was submitted.
type Policy struct {
	// private fields do not get marshalled
	path string
	// which signature scheme the keys and signatures use
	// Possible values are "secp256k1" (default) "bn256"
	Scheme string
	// minimum number of valid signatures
	Threshold int
	// CSV key file, relative to the policy file
	Keys string
	// signed content, hashed with SHA-256
	Message string
	// hex digest used instead of Message if set
	Digest string
	// hex signatures in submission order
	Signatures []string
}

// LoadPolicy reads the policy at the given path.
func LoadPolicy(path string) (*Policy, error) {
	p := &Policy{path: path}
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, errors.Wrapf(err, "policy %s", path)
	}
	return p, nil
}

// KeysPath returns the path of the key file.
func (p *Policy) KeysPath() string {
	if p.Keys == "" || filepath.IsAbs(p.Keys) {
		return p.Keys
	}
	return filepath.Join(filepath.Dir(p.path), p.Keys)
}

// Build returns the message and the Multisig holding the policy's keys and
// signatures. A signature that can't be decoded is still added, as an empty
// signature, so it keeps its position and counts as invalid.
func (p *Policy) Build(logger multisig.Logger) (multisig.Message, *multisig.Multisig, error) {
	msg, err := messageFrom(p.Message, p.Digest)
	if err != nil {
		return msg, nil, err
	}
	scheme, err := schemeByName(p.Scheme)
	if err != nil {
		return msg, nil, err
	}
	records, err := keys.NewCSVParser().Read(p.KeysPath())
	if err != nil {
		return msg, nil, err
	}
	pubs, err := keys.PublicKeys(records, scheme)
	if err != nil {
		return msg, nil, err
	}
	m := multisig.New(pubs, p.Threshold, &multisig.Config{Logger: logger})
	for i, s := range p.Signatures {
		sig := scheme.Signature()
		if err := decodeSignature(sig, s); err != nil {
			logger.Warn("signature", i, "undecodable", err)
		}
		m.AddSignature(sig)
	}
	return msg, m, nil
}

func decodeSignature(sig multisig.Signature, s string) error {
	buff, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	u, ok := sig.(keys.Marshallable)
	if !ok {
		return errors.Errorf("signature %T can't unmarshal", sig)
	}
	return u.UnmarshalBinary(buff)
}
