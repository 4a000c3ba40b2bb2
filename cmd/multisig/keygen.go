package main

import (
	"crypto/rand"

	"github.com/ConsenSys/multisig/keys"
	"github.com/spf13/cobra"
)

var keygenOpts struct {
	scheme string
	count  int
	out    string
	public string
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "generate an ordered list of key pairs",
	Args:  noExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeygen(keygenOpts.scheme, keygenOpts.count, keygenOpts.out, keygenOpts.public)
	},
}

func init() {
	f := keygenCmd.Flags()
	f.StringVar(&keygenOpts.scheme, "scheme", DefaultScheme, "signature scheme")
	f.IntVarP(&keygenOpts.count, "count", "n", 3, "number of key pairs")
	f.StringVarP(&keygenOpts.out, "out", "o", "keys.csv", "file to write the key pairs to")
	f.StringVar(&keygenOpts.public, "public", "", "optional file to write the public keys only to")
}

// runKeygen writes count fresh key pairs to out and, if public is set, the
// same list without secret keys to public.
func runKeygen(schemeName string, count int, out, public string) error {
	scheme, err := schemeByName(schemeName)
	if err != nil {
		return err
	}
	records, err := keys.Generate(scheme, count, rand.Reader)
	if err != nil {
		return err
	}
	parser := keys.NewCSVParser()
	if err := parser.Write(out, records); err != nil {
		return err
	}
	logger().Info("keygen", out, "scheme", schemeName, "count", count)
	if public == "" {
		return nil
	}
	pubs := make([]*keys.Record, len(records))
	for i, r := range records {
		pubs[i] = &keys.Record{Index: r.Index, Public: r.Public}
	}
	return parser.Write(public, pubs)
}
