// Command teamfit-bench drives a running teamfit service with random
// candidate pools and verifies the formations it returns.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "teamfit-bench",
	Short: "Load and correctness harness for the teamfit service",
	Long: `teamfit-bench generates random candidate pools, posts them concurrently to
a running teamfit service and checks every /formations response: at most
three formations, highest score first, the requested team size, scores
within 0..100 and members drawn from the submitted pool.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
