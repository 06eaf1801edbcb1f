// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/statement-parser/internal/common"
	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input       string
	Output      string
	Institution string
	AccountType string
	Patterns    string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-parser",
		Short: "A CLI tool to parse bank and credit-card statements into CSV.",
		Long: `statement-parser extracts transactions from PDF or plain-text bank
statements and writes them to CSV. Institution-specific dialects are used
when the statement is recognized, with a generic fallback otherwise.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-parser!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()
			logging.SetLogger(logging.NewLogrusAdapterFromLogger(Log))

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Institution, "institution", "b", "", "Institution name (HSBC, AMEX, NatWest, Barclays); detected from the text when omitted")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.AccountType, "account-type", "t", "debit_card", "Account type (debit_card or credit_card)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Patterns, "patterns", "", "Pattern registry directory (defaults to configuration)")
}
