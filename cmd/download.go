package cmd

import (
	"github.com/spf13/cobra"

	"fileshare/internal/app"
)

var downloadOutput string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <file-or-folder>",
	Short: "Download a stored file, or a folder as a zip archive",
	Long: `Download a stored file. Naming a top-level folder downloads it as
<folder>.zip. --output may be a directory or the file path to write.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := createContext()
		defer cancel()

		svc := createServices()
		dst, err := newBrowserApp(svc).Download(ctx, &app.DownloadOptions{
			Key:         args[0],
			Destination: downloadOutput,
		})
		if err != nil {
			return err
		}
		svc.console.ShowMessage("Saved to " + dst)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", ".", "directory or file to write to")
}
