package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [hash]",
	Short: "Show full detail for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	detail, err := librarySvc.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting %s: %w", args[0], err)
	}

	cmd.Printf("Hash:      %s\n", detail.Hash)
	cmd.Printf("Name:      %s\n", detail.Name)
	cmd.Printf("Kind:      %s\n", detail.Kind)
	cmd.Printf("Size:      %d bytes\n", detail.Size)
	cmd.Printf("Status:    %s\n", detail.Status)
	cmd.Printf("Chunks:    %d\n", detail.ChunkCount)
	cmd.Printf("Stored:    %s\n", detail.StoragePath)
	cmd.Printf("Uploaded:  %s\n", detail.UploadedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("Last seen: %s\n", detail.LastSeenAt.Local().Format("2006-01-02 15:04:05"))

	if detail.Info.DurationSeconds > 0 {
		cmd.Printf("Duration:  %s\n", formatOffset(detail.Info.DurationSeconds))
	}
	if detail.Info.Width > 0 {
		cmd.Printf("Video:     %dx%d\n", detail.Info.Width, detail.Info.Height)
	}
	if detail.Info.SampleRate > 0 {
		cmd.Printf("Audio:     %d Hz\n", detail.Info.SampleRate)
	}
	if detail.Info.PageCount > 0 {
		cmd.Printf("Pages:     %d\n", detail.Info.PageCount)
	}
	if detail.Info.WordCount > 0 {
		cmd.Printf("Words:     %d\n", detail.Info.WordCount)
	}
	if detail.Diagnostic != "" {
		cmd.Printf("Note:      %s\n", detail.Diagnostic)
	}
	if detail.TextPreview != "" {
		cmd.Printf("\n%s\n", detail.TextPreview)
	}
	return nil
}
