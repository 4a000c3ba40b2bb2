package multisig

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// MessageSize is the size in bytes of a Message.
const MessageSize = 32

// Message is the digest every signature of a Multisig is checked against. It
// is the output of a collision-resistant hash applied by the caller over the
// signed content.
type Message [MessageSize]byte

// NewMessage returns the Message holding the given digest. The digest must be
// exactly MessageSize bytes long.
func NewMessage(digest []byte) (Message, error) {
	var m Message
	if len(digest) != MessageSize {
		return m, errors.Wrapf(ErrInvalidDigest, "got %d bytes", len(digest))
	}
	copy(m[:], digest)
	return m, nil
}

// HashMessage returns the SHA-256 digest of content as a Message.
func HashMessage(content []byte) Message {
	return Message(sha256.Sum256(content))
}

// Bytes returns the digest as a slice.
func (m Message) Bytes() []byte {
	return m[:]
}

func (m Message) String() string {
	return hex.EncodeToString(m[:])
}
