package multisig

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/willf/bitset"
)

// BitSet is a fixed-length bitset. A Multisig uses it to record which public
// key positions produced a valid signature during a verification.
type BitSet interface {
	// BitLength returns the fixed size of this BitSet
	BitLength() int
	// Cardinality returns the number of '1''s set
	Cardinality() int
	// Set the bit at the given index to 1 or 0 depending on the given boolean.
	// If the index is out of bound, implementations MUST not change the bitset.
	Set(int, bool)
	// Get returns the status of the i-th bit in this bitset. Implementations
	// must return false if the index is out of bounds.
	Get(int) bool
	// String returns the bits as a string of '0' and '1', index 0 first.
	String() string
	// MarshalBinary returns the binary representation of the BitSet. Lengths
	// above math.MaxUint16 can't be marshalled.
	MarshalBinary() ([]byte, error)
	// UnmarshalBinary fills the bitset from the given buffer.
	UnmarshalBinary([]byte) error
}

// implementation of a BitSet using the wilff library.
type wilffBitset struct {
	b *bitset.BitSet
	l int
}

// NewWilffBitset returns a BitSet implemented using the wilff's bitset library.
func NewWilffBitset(length int) BitSet {
	if length < 0 {
		length = 0
	}
	return &wilffBitset{
		b: bitset.New(uint(length)),
		l: length,
	}
}

func (w *wilffBitset) BitLength() int {
	return w.l
}

func (w *wilffBitset) Cardinality() int {
	return int(w.b.Count())
}

func (w *wilffBitset) Set(idx int, status bool) {
	if !w.inBound(idx) {
		// do nothing if out of bounds
		return
	}
	w.b = w.b.SetTo(uint(idx), status)
}

func (w *wilffBitset) Get(idx int) bool {
	if !w.inBound(idx) {
		return false
	}
	return w.b.Test(uint(idx))
}

func (w *wilffBitset) String() string {
	var s strings.Builder
	for i := 0; i < w.l; i++ {
		if w.Get(i) {
			s.WriteByte('1')
		} else {
			s.WriteByte('0')
		}
	}
	return s.String()
}

func (w *wilffBitset) inBound(idx int) bool {
	return !(idx < 0 || idx >= w.l)
}

// marshal the size first and then the bitset
func (w *wilffBitset) MarshalBinary() ([]byte, error) {
	if w.l > math.MaxUint16 {
		return nil, errors.Errorf("bitset: length %d too large to marshal", w.l)
	}
	var b bytes.Buffer
	err := binary.Write(&b, binary.BigEndian, uint16(w.l))
	if err != nil {
		return nil, err
	}
	buff, err := w.b.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b.Write(buff)
	return b.Bytes(), nil
}

func (w *wilffBitset) UnmarshalBinary(buff []byte) error {
	var b = bytes.NewBuffer(buff)
	var length uint16
	err := binary.Read(b, binary.BigEndian, &length)
	if err != nil {
		return err
	}

	bs := new(bitset.BitSet)
	if err := bs.UnmarshalBinary(b.Bytes()); err != nil {
		return err
	}
	w.b = bs
	w.l = int(length)
	return nil
}
