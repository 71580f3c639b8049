package cmd

import (
	"github.com/spf13/cobra"

	"fileshare/internal/app"
)

var linkCopy bool

// linkCmd represents the link command
var linkCmd = &cobra.Command{
	Use:   "link <file-or-folder>",
	Short: "Print the download link of a file or folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := createContext()
		defer cancel()

		_, err := newBrowserApp(createServices()).Link(ctx, &app.LinkOptions{Key: args[0], Copy: linkCopy})
		return err
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().BoolVarP(&linkCopy, "copy", "c", false, "also copy the link to the clipboard")
}
