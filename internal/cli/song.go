package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSongCmd создаёт группу команд для работы с заявками.
func NewSongCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "song",
		Short: "Request and manage songs",
	}

	cmd.AddCommand(
		newSongRequestCmd(clientFn, outputFn),
		newSongListCmd(clientFn, outputFn),
		newSongShowCmd(clientFn, outputFn),
		newSongDoneCmd(clientFn, outputFn),
	)

	return cmd
}

func newSongRequestCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var req CreateSongRequest

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request a song",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			song, err := client.RequestSong(req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Song requested: %s", song.ID))
			out.Details(songFields(song), song)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Song title (required)")
	cmd.Flags().StringVar(&req.Artist, "artist", "", "Artist (required)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "Singer first name (required)")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Singer last name (required)")
	cmd.Flags().StringVar(&req.Description, "note", "", "Dedication or note for the host")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("artist")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")

	return cmd
}

func newSongListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List songs in request order (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			songs, err := clientFn().ListSongs()
			if err != nil {
				return err
			}

			headers := []string{"ID", "SINGER", "TITLE", "ARTIST", "REQUESTED"}
			rows := make([][]string, len(songs))
			for i, s := range songs {
				rows[i] = []string{s.ID, s.FirstName + " " + s.LastName, s.Title, s.Artist, s.CreatedAt}
			}

			outputFn().Print(headers, rows, songs)
			return nil
		},
	}
}

func newSongShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show song details (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song, err := clientFn().GetSong(args[0])
			if err != nil {
				return err
			}

			outputFn().Details(songFields(song), song)
			return nil
		},
	}
}

func newSongDoneCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a song as performed and remove it from the queue (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientFn().DoneSong(args[0]); err != nil {
				return err
			}

			outputFn().Success(fmt.Sprintf("Song done: %s", args[0]))
			return nil
		},
	}
}

func songFields(s *SongResponse) [][2]string {
	return [][2]string{
		{"ID", s.ID},
		{"Title", s.Title},
		{"Artist", s.Artist},
		{"Singer", s.FirstName + " " + s.LastName},
		{"Note", s.Description},
		{"Requested", s.CreatedAt},
	}
}
