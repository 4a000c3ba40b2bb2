// Command multisig generates keys, signs digests and verifies threshold
// multi-signatures from the command line.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errRejected {
			logger().Error("err", err)
		}
		os.Exit(1)
	}
}
