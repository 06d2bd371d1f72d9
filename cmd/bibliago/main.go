package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dvega-dev/bibliago/internal/app"
	"github.com/dvega-dev/bibliago/internal/bible"
	"github.com/dvega-dev/bibliago/internal/cache"
	"github.com/dvega-dev/bibliago/internal/config"
	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/fetcher"
	"github.com/dvega-dev/bibliago/internal/server"
	"github.com/dvega-dev/bibliago/internal/utils"
	"github.com/dvega-dev/bibliago/pkg/version"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibliago",
	Short: "Offline-first Bible reader cache",
	Long: `Bibliago reads Bible chapters from a remote text service and keeps
translations available offline in a local store. Chapters already stored
locally are served without network access; translations marked for
download are persisted as they are read.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bibliago/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL of the text service")
	rootCmd.PersistentFlags().String("data-dir", "", "Local store directory")
	rootCmd.PersistentFlags().String("catalog", "", "Local YAML catalog file (skips catalog endpoints)")
	rootCmd.PersistentFlags().IntP("concurrency", "j", 4, "Concurrent chapter downloads")
	rootCmd.PersistentFlags().Int("max-retries", 0, "Transport-level retries for transient errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("api.max_retries", rootCmd.PersistentFlags().Lookup("max-retries"))
	_ = viper.BindPFlag("store.directory", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("catalog.file", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("concurrency.workers", rootCmd.PersistentFlags().Lookup("concurrency"))

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	highlightCmd.AddCommand(highlightAddCmd)
	highlightCmd.AddCommand(highlightRmCmd)
	highlightCmd.AddCommand(highlightListCmd)

	readCmd.Flags().String("bible-version", "NVI", "Translation to read")
	downloadCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
	highlightAddCmd.Flags().String("bible-version", "NVI", "Translation")
	highlightAddCmd.Flags().String("color", "#ffe082", "Highlight color")
	highlightAddCmd.Flags().String("text", "", "Verse text snapshot")
	highlightRmCmd.Flags().String("bible-version", "NVI", "Translation")
	highlightListCmd.Flags().String("book", "", "Only highlights in this book")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// appContext bundles the wired dependency stack for one command run
type appContext struct {
	cfg    *config.Config
	logger *utils.Logger
	orch   *app.Orchestrator
	close  func()
}

// buildApp wires the full stack: store, fetcher, service clients and
// orchestrator. The returned close function releases the store and client.
func buildApp() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	store, err := cache.NewStore(cache.Options{
		Directory: cfg.Store.Directory,
		InMemory:  cfg.Store.InMemory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	chapters, err := cache.NewChapterStore(store)
	if err != nil {
		store.Close()
		return nil, err
	}

	client, err := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	var catalog domain.CatalogService
	if cfg.Catalog.File != "" {
		catalog, err = bible.LoadCatalogFile(cfg.Catalog.File)
		if err != nil {
			store.Close()
			return nil, err
		}
	} else {
		catalog = bible.NewCatalog(cfg.API.BaseURL, client, logger)
	}

	orch, err := app.New(app.Options{
		Chapters:   chapters,
		Downloads:  cache.NewDownloadTracker(store),
		Highlights: cache.NewHighlightStore(store),
		Service:    bible.NewService(cfg.API.BaseURL, client, logger),
		Catalog:    catalog,
		Logger:     logger,
		Workers:    cfg.Concurrency.Workers,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &appContext{
		cfg:    cfg,
		logger: logger,
		orch:   orch,
		close: func() {
			_ = client.Close()
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close local store")
			}
		},
	}, nil
}

// signalContext returns a context canceled on SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local JSON API for a front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		srv := server.NewServer(appCtx.orch, appCtx.cfg.Server.Addr, appCtx.logger)
		return srv.Start(ctx)
	},
}
