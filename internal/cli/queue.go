package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewQueueCmd создаёт команду просмотра очереди.
func NewQueueCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the organized queue (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			lineup, err := client.Queue()
			if err != nil {
				return err
			}

			headers := []string{"#", "ROUND", "SINGER", "TITLE", "ARTIST", "ID"}
			rows := make([][]string, len(lineup.Entries))
			for i, e := range lineup.Entries {
				rows[i] = []string{
					strconv.Itoa(e.Position),
					strconv.Itoa(e.Round),
					e.Singer,
					e.Song.Title,
					e.Song.Artist,
					e.Song.ID,
				}
			}

			out.Print(headers, rows, lineup)
			if lineup.Total == 0 {
				out.Success("Queue is empty")
			} else {
				out.Success(fmt.Sprintf("%d songs, %d rounds, %d per turn", lineup.Total, lineup.Rounds, lineup.TurnLimit))
			}
			return nil
		},
	}
}
