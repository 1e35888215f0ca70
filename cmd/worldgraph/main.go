// Package main provides the worldgraph binary entry point.
// Worldgraph maintains typed narrative entities and the labeled
// relationships between them, infers the inverses a relation registry
// implies, and serializes worlds as YAML, JSON, or RDF.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/worldgraph/commands"
	"github.com/c360studio/worldgraph/config"
	"github.com/c360studio/worldgraph/lore"
	"github.com/c360studio/worldgraph/publish"
	"github.com/c360studio/worldgraph/source"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "worldgraph"
)

var (
	cfgFile  string
	logLevel string
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worldgraph",
		Short: "Typed narrative knowledge graph engine",
		Long: `Worldgraph maintains typed narrative entities and the labeled
relationships between them, infers the inverse relationships its
relation registry implies, and serializes worlds as YAML, JSON, or RDF.

Run it without arguments for the interactive shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), cfg, logger)
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		loadCmd(),
		enrichCmd(),
		validateCmd(),
		exportCmd(),
		publishCmd(),
		watchCmd(),
		loreCmd(),
		configCmd(),
		versionCmd(),
	)
	return cmd
}

// setup resolves the layered configuration and installs the default
// logger. A --log-level flag overrides the configured level.
func setup() (*config.Config, *slog.Logger, error) {
	loader := config.NewLoader(newLogger("info", "text"))
	cfg, err := loader.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger := newLogger(level, cfg.Log.Format)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newLogger(level, format string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func runShell(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app := NewApp(cfg, logger)
	printBanner()
	return app.RunREPL(ctx)
}

func printBanner() {
	fmt.Printf("%s v%s - narrative knowledge graph shell\n", appName, Version)
	fmt.Println(`Type "help" for commands, "quit" to leave.`)
}

// loadWorld builds a world from the named files, or from the configured
// data directory when none are given.
func loadWorld(cfg *config.Config, files []string, dataDir string) (*App, []string, error) {
	app := NewApp(cfg, slog.Default())
	paths := files
	if len(paths) == 0 {
		dir := cfg.Data.Dir
		if dataDir != "" {
			dir = dataDir
		}
		found, err := source.NewFinder(dir, cfg.Data.Patterns...).Find()
		if err != nil {
			return nil, nil, err
		}
		paths = found
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no world documents found; pass files or --data")
	}
	for _, path := range paths {
		if err := app.LoadFile(path); err != nil {
			return nil, nil, err
		}
	}
	return app, paths, nil
}

// expandGlobs resolves ** glob arguments to file paths. Plain paths
// pass through untouched so a missing file still fails at load time
// with its own name.
func expandGlobs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func loadCmd() *cobra.Command {
	var enrich bool
	cmd := &cobra.Command{
		Use:   "load <files|globs...>",
		Short: "Parse and load world documents, reporting the first failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			paths, err := expandGlobs(args)
			if err != nil {
				return err
			}
			app := NewApp(cfg, slog.Default())
			for _, path := range paths {
				if err := app.LoadFile(path); err != nil {
					return err
				}
			}
			fmt.Printf("loaded %d entities and %d relationships from %d files\n",
				app.world.EntityCount(), app.world.RelationshipCount(), len(paths))
			if enrich {
				added, err := app.world.Enrich()
				if err != nil {
					return err
				}
				fmt.Printf("%d relationships derived\n", len(added))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&enrich, "enrich", false, "Run inverse closure after loading")
	return cmd
}

func enrichCmd() *cobra.Command {
	var dataDir, output string
	cmd := &cobra.Command{
		Use:   "enrich [files...]",
		Short: "Add the inverse relationships the registry implies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			app, _, err := loadWorld(cfg, args, dataDir)
			if err != nil {
				return err
			}
			added, err := app.world.Enrich()
			if err != nil {
				return err
			}
			for _, edge := range added {
				fmt.Printf("added %s -[%s]-> %s\n", edge.Source, edge.Label, edge.Target)
			}
			fmt.Printf("%d relationships derived\n", len(added))
			if output != "" {
				if err := source.WriteFile(output, app.world.Export()); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory to load (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the enriched world document to this file")
	return cmd
}

func validateCmd() *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Report relationships whose inverse is missing or mislabeled",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			app, _, err := loadWorld(cfg, args, dataDir)
			if err != nil {
				return err
			}
			report := app.world.Validate()
			if report.Clean() {
				fmt.Println("world is closed under its inverse rules")
				return nil
			}
			for _, missing := range report.Missing {
				fmt.Println(missing.String())
			}
			for _, mismatch := range report.Mismatches {
				fmt.Println(mismatch.String())
			}
			return fmt.Errorf("%d findings", report.Total())
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory to load (default from config)")
	return cmd
}

func exportCmd() *cobra.Command {
	var dataDir, format, output string
	cmd := &cobra.Command{
		Use:   "export [files...]",
		Short: "Serialize the world as YAML, JSON, Turtle, N-Triples, or JSON-LD",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			app, _, err := loadWorld(cfg, args, dataDir)
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Export.Format
			}
			if format == "" {
				format = "yaml"
			}
			if output == "" {
				output = cfg.Export.Output
			}
			cmdArgs := []string{format}
			if output != "" {
				cmdArgs = append(cmdArgs, output)
			}
			exporter, _ := commands.Lookup("export")
			out, err := exporter.Execute(cmd.Context(), app.Env(), cmdArgs)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory to load (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml, json, turtle, ntriples, jsonld")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func publishCmd() *cobra.Command {
	var dataDir, natsURL, subject string
	cmd := &cobra.Command{
		Use:   "publish [files...]",
		Short: "Publish world entities to the graph ingest stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			app, _, err := loadWorld(cfg, args, dataDir)
			if err != nil {
				return err
			}

			url := cfg.NATS.URL
			if env := os.Getenv("NATS_URL"); env != "" {
				url = env
			}
			if natsURL != "" {
				url = natsURL
			}
			if url == "" {
				url = "nats://localhost:4222"
			}
			subj := cfg.NATS.Subject
			if subject != "" {
				subj = subject
			}

			ctx := cmd.Context()
			client, err := connectToNATS(ctx, url, logger)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			publisher := publish.New(client, publish.WithSubject(subj))
			count, err := publisher.PublishWorld(ctx, app.world)
			if err != nil {
				return err
			}
			fmt.Printf("published %d entities to %s\n", count, url)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory to load (default from config)")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (overrides config and NATS_URL)")
	cmd.Flags().StringVar(&subject, "subject", "", "Publish subject (default "+publish.IngestSubject+")")
	return cmd
}

func watchCmd() *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload and enrich the world as its documents change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			dir := cfg.Data.Dir
			if dataDir != "" {
				dir = dataDir
			}
			ctx := cmd.Context()

			var publisher *publish.Publisher
			if cfg.NATS.Enabled {
				client, err := connectToNATS(ctx, cfg.NATS.URL, logger)
				if err != nil {
					return err
				}
				defer client.Close(ctx)
				publisher = publish.New(client, publish.WithSubject(cfg.NATS.Subject))
			}

			reload := func() {
				app := NewApp(cfg, logger)
				paths, err := source.NewFinder(dir, cfg.Data.Patterns...).Find()
				if err != nil {
					logger.Error("find world documents", "error", err)
					return
				}
				for _, path := range paths {
					if err := app.LoadFile(path); err != nil {
						logger.Error("load world document", "error", err)
						return
					}
				}
				added, err := app.world.Enrich()
				if err != nil {
					logger.Error("enrich world", "error", err)
					return
				}
				logger.Info("world reloaded",
					"files", len(paths),
					"entities", app.world.EntityCount(),
					"relationships", app.world.RelationshipCount(),
					"derived", len(added))
				if publisher != nil {
					count, err := publisher.PublishWorld(ctx, app.world)
					if err != nil {
						logger.Error("publish world", "error", err)
						return
					}
					logger.Info("world published", "entities", count)
				}
			}

			watcher, err := source.NewWatcher(source.WatcherConfig{
				Dir:           dir,
				DebounceDelay: cfg.Data.Watch.GetDebounce(),
				Logger:        logger,
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Stop()

			// Seed content hashes so the initial load does not re-fire
			// for files that are merely touched.
			if paths, err := source.NewFinder(dir, cfg.Data.Patterns...).Find(); err == nil {
				watcher.Prime(paths)
			}

			if err := watcher.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			logger.Info("watching data directory", "dir", dir)

			reload()

			for {
				select {
				case <-ctx.Done():
					logger.Info("watch stopped")
					return nil
				case event := <-watcher.Events():
					logger.Debug("world document changed",
						"path", event.Path, "op", string(event.Operation))
					reload()
				}
			}
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory to watch (default from config)")
	return cmd
}

func loreCmd() *cobra.Command {
	var dataDir, output string
	cmd := &cobra.Command{
		Use:   "lore <entity> <url|file> [files...]",
		Short: "Import an entity's description from a lore page",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			app, _, err := loadWorld(cfg, args[2:], dataDir)
			if err != nil {
				return err
			}

			fetcher := lore.NewFetcher(cfg.Lore.GetTimeout(), cfg.Lore.UserAgent, cfg.Lore.GetMaxContentSize())
			importer := lore.NewImporter(fetcher, logger)
			result, err := importer.Import(cmd.Context(), app.world, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("imported %q (%d chars) into %s\n", result.Title, len(result.Markdown), args[0])

			if output != "" {
				if err := source.WriteFile(output, app.world.Export()); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory to load (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the updated world document to this file")
	return cmd
}

func configCmd() *cobra.Command {
	var initConfig bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and where it came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(newLogger("warn", "text"))
			if initConfig {
				if err := loader.EnsureUserConfig(); err != nil {
					return err
				}
			}
			cfg, err := loader.Load(cfgFile)
			if err != nil {
				return err
			}
			for _, src := range loader.DescribeSources() {
				fmt.Printf("# source: %s\n", src)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&initConfig, "init", false, "Write a default user config if none exists")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func connectToNATS(ctx context.Context, url string, logger *slog.Logger) (*natsclient.Client, error) {
	logger.Info("connecting to NATS", "url", url)
	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, url)
	}
	logger.Info("connected to NATS", "url", url)
	return client, nil
}

// wrapNATSError points at the usual fix when the server is unreachable.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.
Start one, or set NATS_URL (or --nats-url) to point at your server.`, err, url)
	}
	return fmt.Errorf("NATS connection failed: %w", err)
}
