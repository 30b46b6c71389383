package cli

import (
	"fmt"
	"runtime"

	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information for goTaxLedger, the Go version and the supported transaction types.`,
	// No configuration is needed to print a version
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "goTaxLedger version %s\n", rootCmd.Version)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Transaction types: %d\n", len(tx.SupportedTypes()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
