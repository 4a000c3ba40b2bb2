package multisig

import "github.com/pkg/errors"

var (
	// ErrInvalidDigest is returned when a digest is not MessageSize bytes.
	ErrInvalidDigest = errors.New("multisig: digest must be 32 bytes")
	// ErrNoPublicKeys is returned by CheckThreshold for an empty key list.
	ErrNoPublicKeys = errors.New("multisig: no public keys")
	// ErrThresholdTooLow is returned by CheckThreshold when the threshold is
	// below 1. Such a Multisig accepts any message.
	ErrThresholdTooLow = errors.New("multisig: threshold must be at least 1")
	// ErrThresholdTooHigh is returned by CheckThreshold when the threshold is
	// above the number of public keys. Such a Multisig rejects any message.
	ErrThresholdTooHigh = errors.New("multisig: threshold exceeds the number of public keys")
)
