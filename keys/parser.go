// Package keys reads and writes the ordered key lists a Multisig is built
// from.
package keys

import (
	"bufio"
	"encoding/csv"
	"encoding/hex"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/ConsenSys/multisig"
	"github.com/pkg/errors"
)

// Marshallable represents an interface that can marshal and unmarshals itself
type Marshallable interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(buff []byte) error
}

// Scheme is what a signature scheme must implement to have its keys stored
// and loaded by this package.
type Scheme interface {
	multisig.Constructor
	SecretKey() multisig.SecretKey
	KeyPair(r io.Reader) (multisig.SecretKey, multisig.PublicKey, error)
}

// Record is one entry of a key list. Private is empty in files only meant to
// verify.
type Record struct {
	// Index is the position of the key in the Multisig.
	Index   int
	Private string
	Public  string
}

// Parser is an interface that can read / write key records.
type Parser interface {
	// Read all Records from a given URI, sorted by index.
	Read(uri string) ([]*Record, error)
	// Write all records to an URI.
	Write(uri string, records []*Record) error
}

// NewRecord returns the record of a key pair at the given index. A nil secret
// key gives a public-only record.
func NewRecord(idx int, sk multisig.SecretKey, pk multisig.PublicKey) (*Record, error) {
	pm, ok := pk.(Marshallable)
	if !ok {
		return nil, errors.Errorf("key %d: public key %T can't marshal", idx, pk)
	}
	pub, err := pm.MarshalBinary()
	if err != nil {
		return nil, errors.Wrapf(err, "key %d: public key", idx)
	}
	r := &Record{Index: idx, Public: hex.EncodeToString(pub)}
	if sk != nil {
		sm, ok := sk.(Marshallable)
		if !ok {
			return nil, errors.Errorf("key %d: secret key %T can't marshal", idx, sk)
		}
		priv, err := sm.MarshalBinary()
		if err != nil {
			return nil, errors.Wrapf(err, "key %d: secret key", idx)
		}
		r.Private = hex.EncodeToString(priv)
	}
	return r, nil
}

// PublicKey decodes the public key of the record.
func (r *Record) PublicKey(c multisig.Constructor) (multisig.PublicKey, error) {
	buff, err := hex.DecodeString(r.Public)
	if err != nil {
		return nil, errors.Wrapf(err, "key %d: public key hex", r.Index)
	}
	pk := c.PublicKey()
	m, ok := pk.(Marshallable)
	if !ok {
		return nil, errors.Errorf("key %d: public key %T can't unmarshal", r.Index, pk)
	}
	if err := m.UnmarshalBinary(buff); err != nil {
		return nil, errors.Wrapf(err, "key %d", r.Index)
	}
	return pk, nil
}

// SecretKey decodes the secret key of the record.
func (r *Record) SecretKey(s Scheme) (multisig.SecretKey, error) {
	if r.Private == "" {
		return nil, errors.Errorf("key %d: no secret key", r.Index)
	}
	buff, err := hex.DecodeString(r.Private)
	if err != nil {
		return nil, errors.Wrapf(err, "key %d: secret key hex", r.Index)
	}
	sk := s.SecretKey()
	m, ok := sk.(Marshallable)
	if !ok {
		return nil, errors.Errorf("key %d: secret key %T can't unmarshal", r.Index, sk)
	}
	if err := m.UnmarshalBinary(buff); err != nil {
		return nil, errors.Wrapf(err, "key %d", r.Index)
	}
	return sk, nil
}

// PublicKeys decodes the public keys of all records, in order.
func PublicKeys(records []*Record, c multisig.Constructor) ([]multisig.PublicKey, error) {
	pubs := make([]multisig.PublicKey, len(records))
	for i, r := range records {
		pk, err := r.PublicKey(c)
		if err != nil {
			return nil, err
		}
		pubs[i] = pk
	}
	return pubs, nil
}

// Generate returns n fresh records of the given scheme, indexed from 0.
func Generate(s Scheme, n int, r io.Reader) ([]*Record, error) {
	records := make([]*Record, n)
	for i := 0; i < n; i++ {
		sk, pk, err := s.KeyPair(r)
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", i)
		}
		records[i], err = NewRecord(i, sk, pk)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

type csvParser struct{}

// NewCSVParser is a Parser that reads/writes to a CSV file with the columns
// index, secret key hex, public key hex.
func NewCSVParser() Parser {
	return &csvParser{}
}

// Read implements Parser. Indexes must form the sequence 0..n-1, in any order
// in the file.
func (c *csvParser) Read(uri string) ([]*Record, error) {
	file, err := os.Open(uri)
	if err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	defer file.Close()

	csvReader := csv.NewReader(bufio.NewReader(file))
	csvReader.FieldsPerRecord = 3
	var records []*Record
	for {
		line, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "keys: %s", uri)
		}
		i, err := strconv.Atoi(line[0])
		if err != nil {
			return nil, errors.Wrapf(err, "keys: %s: index", uri)
		}
		records = append(records, &Record{Index: i, Private: line[1], Public: line[2]})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Index < records[j].Index })
	for i, r := range records {
		if r.Index != i {
			return nil, errors.Errorf("keys: %s: missing or duplicate index %d", uri, i)
		}
	}
	return records, nil
}

func (c *csvParser) Write(uri string, records []*Record) error {
	file, err := os.Create(uri)
	if err != nil {
		return errors.Wrap(err, "keys")
	}
	defer file.Close()
	w := csv.NewWriter(file)
	for _, record := range records {
		line := []string{strconv.Itoa(record.Index), record.Private, record.Public}
		if err := w.Write(line); err != nil {
			return errors.Wrapf(err, "keys: %s", uri)
		}
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "keys: %s", uri)
}
