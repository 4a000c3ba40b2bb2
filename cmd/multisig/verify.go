package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ConsenSys/multisig"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// errRejected makes the command exit with status 1 without further logging.
var errRejected = errors.New("multisig rejected")

var verifyOpts struct {
	policy string
	strict bool
	report bool
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify the signatures of a policy file against its threshold",
	Args:  noExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := LoadPolicy(verifyOpts.policy)
		if err != nil {
			return err
		}
		return runVerify(os.Stdout, p, verifyOpts.strict, verifyOpts.report)
	},
}

func init() {
	f := verifyCmd.Flags()
	f.StringVarP(&verifyOpts.policy, "policy", "p", "policy.toml", "policy file")
	f.BoolVar(&verifyOpts.strict, "strict", false, "fail if the threshold is outside [1, number of keys]")
	f.BoolVar(&verifyOpts.report, "report", false, "print verification counters")
}

func runVerify(w io.Writer, p *Policy, strict, report bool) error {
	l := logger()
	msg, m, err := p.Build(l)
	if err != nil {
		return err
	}
	if err := m.CheckThreshold(); err != nil {
		if strict {
			return err
		}
		l.Warn("policy", p.path, "threshold", m.Threshold(), "anomaly", err)
	}

	r := multisig.NewReportMultisig(m)
	v := r.VerifyReport(msg)
	fmt.Fprintf(w, "message:    %s\n", msg)
	fmt.Fprintf(w, "%s\n", m)
	fmt.Fprintf(w, "valid:      %d (examined %d)\n", v.Valid(), v.Examined)
	fmt.Fprintf(w, "positions:  %s\n", v.BitSet)
	if report {
		buff, err := v.BitSet.MarshalBinary()
		if err != nil {
			return errors.Wrap(err, "positions")
		}
		fmt.Fprintf(w, "bitset=%x\n", buff)
		values := r.Values()
		names := make([]string, 0, len(values))
		for n := range values {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(w, "%s=%v\n", n, values[n])
		}
	}
	if !v.Accepted {
		fmt.Fprintln(w, "Multisig verification failed!")
		return errRejected
	}
	fmt.Fprintln(w, "Multisig verification succeeded!")
	return nil
}
