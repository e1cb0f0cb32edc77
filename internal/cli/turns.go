package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewTurnsCmd создаёт группу команд для лимита песен за ход.
func NewTurnsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turns",
		Short: "Show or change songs per turn (admin)",
	}

	cmd.AddCommand(
		newTurnsShowCmd(clientFn, outputFn),
		newTurnsSetCmd(clientFn, outputFn),
	)

	return cmd
}

func newTurnsShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current turn limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := clientFn().GetConfig()
			if err != nil {
				return err
			}

			outputFn().Details(configFields(cfg), cfg)
			return nil
		},
	}
}

func newTurnsSetCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "set N",
		Short: "Set how many songs a singer gets per round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid turn limit %q: must be an integer", args[0])
			}

			cfg, err := clientFn().SetTurnLimit(limit)
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Turn limit set to %d", cfg.TurnLimit))
			out.Details(configFields(cfg), cfg)
			return nil
		},
	}
}

func configFields(c *ConfigResponse) [][2]string {
	return [][2]string{
		{"Songs per turn", strconv.Itoa(c.TurnLimit)},
		{"Allowed", fmt.Sprintf("%d..%d", c.MinTurnLimit, c.MaxTurnLimit)},
		{"Updated", c.UpdatedAt},
	}
}
