package cli

import (
	"fmt"
	"os"

	"github.com/LeJamon/goTaxLedger/internal/config"
	"github.com/LeJamon/goTaxLedger/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	debug      bool
	quiet      bool

	// Set by the root command before any subcommand runs
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taxledger",
	Short: "goTaxLedger - a token ledger with buy and sell tax",
	Long: `goTaxLedger is an in-memory token ledger that taxes transfers into and
out of liquidity pool addresses, limits how much a seller may sell per cycle
and distributes the withheld tax to beneficiary wallets.

The ledger is configured from a TOML or YAML file (--conf) and environment
variables prefixed with TAXLEDGER_.`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
}

// initConfig loads the configuration and builds the logger.
func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	opts := loaded.LoggingOptions()
	if debug {
		opts.Level = "debug"
	}
	opts.Quiet = quiet
	l, err := logging.New(opts)
	if err != nil {
		return err
	}

	cfg, logger = loaded, l
	logger.Debug("configuration loaded",
		zap.String("path", cfg.GetConfigPath()),
		zap.String("symbol", cfg.Token.Symbol),
	)
	return nil
}
