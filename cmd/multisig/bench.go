package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ConsenSys/multisig"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var benchOpts struct {
	scheme    string
	signers   int
	threshold int
	runs      int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "measure the time taken by a verification",
	Args:  noExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(os.Stdout, benchOpts.scheme, benchOpts.signers, benchOpts.threshold, benchOpts.runs)
	},
}

func init() {
	f := benchCmd.Flags()
	f.StringVar(&benchOpts.scheme, "scheme", DefaultScheme, "signature scheme")
	f.IntVarP(&benchOpts.signers, "signers", "n", 10, "number of public keys")
	f.IntVarP(&benchOpts.threshold, "threshold", "t", 7, "threshold of valid signatures")
	f.IntVarP(&benchOpts.runs, "runs", "r", 50, "number of verifications")
}

// BenchResult holds the statistics of the verification times, in
// milliseconds.
type BenchResult struct {
	Runs   int
	Mean   float64
	Median float64
	Stddev float64
	P99    float64
}

func (b *BenchResult) String() string {
	return fmt.Sprintf("runs=%d mean=%.3fms median=%.3fms stddev=%.3fms p99=%.3fms",
		b.Runs, b.Mean, b.Median, b.Stddev, b.P99)
}

func runBench(w io.Writer, schemeName string, signers, threshold, runs int) error {
	if threshold < 1 || threshold > signers {
		return errors.Errorf("threshold %d outside [1, %d]", threshold, signers)
	}
	if runs < 2 {
		return errors.Errorf("at least 2 runs needed, got %d", runs)
	}
	scheme, err := schemeByName(schemeName)
	if err != nil {
		return err
	}
	secrets := make([]multisig.SecretKey, signers)
	for i := range secrets {
		secrets[i], _, err = scheme.KeyPair(rand.Reader)
		if err != nil {
			return errors.Wrapf(err, "key %d", i)
		}
	}
	test := multisig.NewTest(secrets)
	msg := multisig.HashMessage([]byte("Everything that is beautiful and noble is the product of reason and calculation."))
	m := multisig.New(test.PublicKeys(signers), threshold, &multisig.Config{Logger: logger()})
	for i := 0; i < threshold; i++ {
		m.AddSignature(test.Sign(i, msg))
	}

	times := make(stats.Float64Data, runs)
	for i := 0; i < runs; i++ {
		start := time.Now()
		if !m.Verify(msg) {
			return errors.New("bench: verification unexpectedly failed")
		}
		times[i] = float64(time.Since(start)) / float64(time.Millisecond)
	}
	res, err := summarize(times)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %d-of-%d: %s\n", schemeName, threshold, signers, res)
	return err
}

func summarize(times stats.Float64Data) (*BenchResult, error) {
	res := &BenchResult{Runs: len(times)}
	var err error
	if res.Mean, err = stats.Mean(times); err != nil {
		return nil, errors.Wrap(err, "mean")
	}
	if res.Median, err = stats.Median(times); err != nil {
		return nil, errors.Wrap(err, "median")
	}
	if res.Stddev, err = stats.StandardDeviation(times); err != nil {
		return nil, errors.Wrap(err, "stddev")
	}
	if res.P99, err = stats.Percentile(times, 99); err != nil {
		return nil, errors.Wrap(err, "p99")
	}
	return res, nil
}
