package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// NewLoginCmd создаёт команду проверки пароля оператора.
func NewLoginCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the admin password",
		Long: "Check the admin password given by --admin-password or KARAOKE_ADMIN_PASSWORD.\n" +
			"Admin commands send the same password with every request.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			if client.adminPassword == "" {
				return errors.New("admin password is not set: use --admin-password or KARAOKE_ADMIN_PASSWORD")
			}

			if err := client.Login(); err != nil {
				return err
			}

			outputFn().Success("Password accepted")
			return nil
		},
	}
}
