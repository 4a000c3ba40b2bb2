package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/ConsenSys/multisig"
	"github.com/ConsenSys/multisig/keys"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var signOpts struct {
	scheme  string
	keys    string
	index   int
	message string
	digest  string
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "sign a message with the key at the given index and print the hex signature",
	Args:  noExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSign(os.Stdout, signOpts.scheme, signOpts.keys, signOpts.index, signOpts.message, signOpts.digest)
	},
}

func init() {
	f := signCmd.Flags()
	f.StringVar(&signOpts.scheme, "scheme", DefaultScheme, "signature scheme")
	f.StringVarP(&signOpts.keys, "keys", "k", "keys.csv", "key pairs file")
	f.IntVarP(&signOpts.index, "index", "i", 0, "index of the signing key")
	f.StringVarP(&signOpts.message, "message", "m", "", "message to sign, hashed with SHA-256")
	f.StringVar(&signOpts.digest, "digest", "", "hex digest to sign, instead of --message")
}

// messageFrom returns the digest given in hex, or the SHA-256 of content.
func messageFrom(content, digest string) (multisig.Message, error) {
	if digest == "" {
		return multisig.HashMessage([]byte(content)), nil
	}
	buff, err := hex.DecodeString(digest)
	if err != nil {
		return multisig.Message{}, errors.Wrap(err, "digest")
	}
	return multisig.NewMessage(buff)
}

func runSign(w io.Writer, schemeName, keysFile string, index int, content, digest string) error {
	scheme, err := schemeByName(schemeName)
	if err != nil {
		return err
	}
	msg, err := messageFrom(content, digest)
	if err != nil {
		return err
	}
	records, err := keys.NewCSVParser().Read(keysFile)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return errors.Errorf("index %d out of range, %d keys", index, len(records))
	}
	sk, err := records[index].SecretKey(scheme)
	if err != nil {
		return err
	}
	sig, err := sk.Sign(msg.Bytes(), rand.Reader)
	if err != nil {
		return errors.Wrapf(err, "key %d", index)
	}
	buff, err := sig.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hex.EncodeToString(buff))
	return err
}
