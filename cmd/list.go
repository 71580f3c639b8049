package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"fileshare/internal/app"
	"fileshare/internal/ui"
)

var listJSON bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored files",
	Long: `List the files stored on the server. Files uploaded as part of a folder are
collapsed into one row per top-level folder, listed before loose files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := createContext()
		defer cancel()

		return newBrowserApp(createServices()).List(ctx, &app.ListOptions{JSON: listJSON})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the listing as JSON")
}

// newBrowserApp wires a browser application from the shared services
func newBrowserApp(svc *services) *app.BrowserApp {
	return app.NewBrowserApp(app.BrowserDeps{
		Reconciler: svc.reconciler,
		Deleter:    svc.deleter,
		Downloader: svc.downloader,
		NewView: func() ui.TransferView {
			return ui.NewDownloadProgress(os.Stderr, ui.IsTerminal())
		},
		Confirmer: svc.console,
		Clipboard: ui.SystemClipboard{},
		Notifier:  svc.notifier,
		Out:       os.Stdout,
		Logger:    logger,
	})
}
