package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fileshare/internal/app"
	"fileshare/internal/coordinator"
	"fileshare/internal/selection"
	"fileshare/internal/transport"
	"fileshare/internal/ui"
)

type UploadFlags struct {
	Folder    string
	FilesFrom string
	OnFailure string
}

var uploadFlags UploadFlags

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload files or a folder",
	Long: `Upload files to the server one at a time. This will:

1. Check the selection (dropped folders are rejected, use --folder)
2. Upload each file in order with live progress
3. Print a summary once every file has been handled

Files given as arguments are treated as dropped items. Use --files-from to
read a picked list of files (one per line, "-" for stdin), or --folder to
upload a whole directory keeping its relative paths.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateUploadFlags(&uploadFlags, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUploaderApp(&uploadFlags, args)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVar(&uploadFlags.Folder, "folder", "", "upload every file under this directory")
	uploadCmd.Flags().StringVar(&uploadFlags.FilesFrom, "files-from", "", "read file paths from this file, one per line (- for stdin)")
	uploadCmd.Flags().StringVar(&uploadFlags.OnFailure, "on-failure", "", "continue or halt after a failed file")

	viper.BindPFlag("upload.on_failure", uploadCmd.Flags().Lookup("on-failure"))
}

// validateUploadFlags ensures exactly one selection source is given
func validateUploadFlags(flags *UploadFlags, args []string) error {
	sources := 0
	if flags.Folder != "" {
		sources++
	}
	if flags.FilesFrom != "" {
		sources++
	}
	if len(args) > 0 {
		sources++
	}
	switch {
	case sources == 0:
		return errors.New("nothing to upload: pass files, --files-from or --folder")
	case sources > 1:
		return errors.New("files, --files-from and --folder cannot be combined")
	}
	return nil
}

// selectionFromFlags maps the flags onto a selection source and its paths
func selectionFromFlags(flags *UploadFlags, args []string) (*app.UploaderOptions, error) {
	switch {
	case flags.Folder != "":
		return &app.UploaderOptions{Source: selection.SourceFolderPicker, Paths: []string{flags.Folder}}, nil
	case flags.FilesFrom != "":
		paths, err := readPathList(flags.FilesFrom)
		if err != nil {
			return nil, err
		}
		return &app.UploaderOptions{Source: selection.SourcePicker, Paths: paths}, nil
	default:
		return &app.UploaderOptions{Source: selection.SourceDrop, Paths: args}, nil
	}
}

func readPathList(name string) ([]string, error) {
	f := os.Stdin
	if name != "-" {
		opened, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open file list: %w", err)
		}
		defer opened.Close()
		f = opened
	}

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file list: %w", err)
	}
	return paths, nil
}

// runUploaderApp creates and runs the uploader application
func runUploaderApp(flags *UploadFlags, args []string) error {
	ctx, cancel := createContext()
	defer cancel()

	opts, err := selectionFromFlags(flags, args)
	if err != nil {
		return err
	}

	svc := createServices()
	channel := transport.NewHTTPChannel(svc.client, svc.files, cfg.Upload.ProgressInterval, logger)
	coord := coordinator.New(channel, coordinator.OptionsFromConfig(cfg.Upload), logger)
	classifier := selection.NewClassifier(svc.files, svc.notifier)
	view := ui.NewUploadProgress(os.Stderr, ui.IsTerminal())

	uploaderApp := app.NewUploaderApp(classifier, coord, view, logger)
	_, err = uploaderApp.Run(ctx, opts)
	if errors.Is(err, selection.ErrFolderDropRejected) {
		svc.console.ShowHint("hint: fileshare upload --folder <dir>")
	}
	return err
}
