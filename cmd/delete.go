package cmd

import (
	"github.com/spf13/cobra"

	"fileshare/internal/app"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <file-or-folder>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored file or folder",
	Long: `Delete a stored file by path or name, or a whole top-level folder with
everything in it. You are asked to confirm unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := createContext()
		defer cancel()

		return newBrowserApp(createServices()).Delete(ctx, &app.DeleteOptions{Key: args[0], Yes: deleteYes})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")
}
