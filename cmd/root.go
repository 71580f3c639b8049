package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fileshare/internal/config"
	"fileshare/internal/deletion"
	"fileshare/internal/file"
	"fileshare/internal/listing"
	"fileshare/internal/logging"
	"fileshare/internal/notify"
	"fileshare/internal/remote"
	"fileshare/internal/ui"
)

var (
	cfg     *config.Config
	logger  *logging.Logger
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fileshare",
	Short: "Upload, browse and download files on a fileshare server",
	Long: `fileshare is a command line client for a fileshare server.

Files are uploaded one at a time with live progress, and the stored
inventory can be listed, downloaded, linked or deleted.

Usage:
  Upload files:     fileshare upload a.txt b.txt
  Upload a folder:  fileshare upload --folder ./photos
  List the store:   fileshare list
  Download:         fileshare download photos --output ~/Downloads
  Copy a link:      fileshare link notes.txt --copy
  Delete:           fileshare delete notes.txt`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initConfig()

		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger = logging.New(os.Stderr, cfg.Log.Format, level)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("file", used).Msg("Using config file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fileshare.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("server", "", "server base URL, overrides the configured origin")

	viper.BindPFlag("server.base_url", rootCmd.PersistentFlags().Lookup("server"))

	viper.SetEnvPrefix("FILESHARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}

		// Search config in home directory with name ".fileshare" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fileshare")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: could not read config file: %v\n", err)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// createContext creates a context that cancels on interrupt signals
func createContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// services holds the wired application services
type services struct {
	files      file.Service
	client     *remote.Client
	console    *ui.ConsoleUI
	notifier   notify.Sink
	reconciler *listing.Reconciler
	deleter    *deletion.Coordinator
	downloader *remote.Downloader
}

// createServices creates and wires up all the application services
func createServices() *services {
	files := file.NewFileService()
	console := ui.NewConsoleUI()

	var notifier notify.Sink = console
	if cfg.Log.Format == "json" {
		notifier = notify.MultiSink{console, notify.NewLogSink(logger)}
	}

	client := remote.NewClient(cfg.BaseURL(), logger)
	client.SetTimeout(cfg.Server.Timeout)
	reconciler := listing.NewReconciler(client, client.Links(), notifier, logger)

	return &services{
		files:      files,
		client:     client,
		console:    console,
		notifier:   notifier,
		reconciler: reconciler,
		deleter:    deletion.NewCoordinator(client, reconciler, notifier, logger),
		downloader: remote.NewDownloader(cfg.Download, files, logger),
	}
}
