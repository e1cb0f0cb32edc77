package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// EnvAdminPassword — переменная окружения с паролем оператора.
const EnvAdminPassword = "KARAOKE_ADMIN_PASSWORD"

// NewRootCmd собирает корневую команду karaoke со всеми подкомандами.
func NewRootCmd(version string) *cobra.Command {
	var apiURL string
	var jsonOutput bool
	var adminPassword string

	rootCmd := &cobra.Command{
		Use:           "karaoke",
		Short:         "Karaoke CLI — song requests and a fair queue",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&adminPassword, "admin-password", os.Getenv(EnvAdminPassword),
		"Admin password (default from "+EnvAdminPassword+")")

	clientFn := func() *Client { return NewClient(apiURL, adminPassword) }
	outputFn := func() *Output { return NewOutput(jsonOutput, rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()) }

	rootCmd.AddCommand(
		NewSongCmd(clientFn, outputFn),
		NewQueueCmd(clientFn, outputFn),
		NewTurnsCmd(clientFn, outputFn),
		NewLoginCmd(clientFn, outputFn),
	)

	return rootCmd
}
