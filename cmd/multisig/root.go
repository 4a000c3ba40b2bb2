package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ConsenSys/multisig"
	"github.com/ConsenSys/multisig/bn256"
	"github.com/ConsenSys/multisig/keys"
	"github.com/ConsenSys/multisig/secp256k1"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:           "multisig",
	Short:         "threshold multi-signature tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.AddCommand(keygenCmd, signCmd, verifyCmd, benchCmd)
}

// schemes are the signature schemes selectable by name.
var schemes = map[string]keys.Scheme{
	"secp256k1": secp256k1.NewConstructor(),
	"bn256":     bn256.NewConstructor(),
}

// DefaultScheme is the scheme used when none is given.
const DefaultScheme = "secp256k1"

func schemeByName(name string) (keys.Scheme, error) {
	if name == "" {
		name = DefaultScheme
	}
	s, ok := schemes[name]
	if !ok {
		names := make([]string, 0, len(schemes))
		for n := range schemes {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, errors.Errorf("unknown scheme %q, valid values: %s", name, strings.Join(names, ", "))
	}
	return s, nil
}

func logger() multisig.Logger {
	if debug {
		return multisig.NewKitLogger(os.Stderr, level.AllowDebug())
	}
	return multisig.NewKitLogger(os.Stderr, level.AllowInfo())
}

// noExtraArgs makes sure every args has been processed
func noExtraArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown args `%v`", args)
	}
	return nil
}
