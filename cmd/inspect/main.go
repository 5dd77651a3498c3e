package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"inspection-report/internal/remote"
	"inspection-report/internal/session"
)

var (
	// Global flags
	verbose        bool
	endpoint       string
	spreadsheetURL string
	sessionPath    string
	timeout        time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Fill in and submit item inspection reports (물품검수조서)",
	Long: `inspect fills in an item inspection report, previews it and submits it
to the storage service. It also manages the signed-in user and lists,
prints and deletes stored reports.

The service endpoint comes from --endpoint or INSPECT_ENDPOINT.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", os.Getenv("INSPECT_ENDPOINT"), "Storage service endpoint")
	rootCmd.PersistentFlags().StringVar(&spreadsheetURL, "spreadsheet-url", os.Getenv("INSPECT_SPREADSHEET_URL"), "Shared spreadsheet link shown when a report has no own document")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session-file", "", "Session file (default <config dir>/inspect/session.json)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(listCmd, printCmd, deleteCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() (*remote.Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("no endpoint configured: set --endpoint or INSPECT_ENDPOINT")
	}
	return remote.NewClient(endpoint, spreadsheetURL,
		remote.WithHTTPClient(&http.Client{Timeout: timeout}),
		remote.WithLogger(logger),
	), nil
}

func sessionStore() (*session.FileStore, error) {
	path := sessionPath
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return session.NewFileStore(path), nil
}

func loadSession() (*session.Session, error) {
	fs, err := sessionStore()
	if err != nil {
		return nil, err
	}
	return fs.Load()
}
