package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mwfilter/internal/cache"
	"mwfilter/internal/charset"
	"mwfilter/internal/config"
	"mwfilter/internal/filewalker"
	"mwfilter/internal/parser"
	"mwfilter/internal/resolver"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	_ = setupLogging(os.Stderr, "info")

	if err := NewRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with defaults taken from cfg.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	logLevel := cfg.LogLevel

	rootCmd := &cobra.Command{
		Use:   "mwfilter",
		Short: "Translation filter for book markup and dialogue script files",
		Long: `Extracts translatable text from book markup (inline <tags>) and dialogue
scripts (Choice, MessageBox and Say statements) and writes the files back with
every non-translatable byte preserved and CRLF line endings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr(), logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(pipeCmd(cfg))
	rootCmd.AddCommand(extractCmd(cfg))
	rootCmd.AddCommand(translateCmd(cfg))

	return rootCmd
}

func setupLogging(w io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// filterOptions are the file-association flags shared by every command.
type filterOptions struct {
	bookExts   []string
	scriptExts []string
}

func (o *filterOptions) register(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringSliceVar(&o.bookExts, "book-ext", cfg.BookExtensions, "File extensions handled as book markup")
	cmd.Flags().StringSliceVar(&o.scriptExts, "script-ext", cfg.ScriptExtensions, "File extensions handled as dialogue script")
}

func (o *filterOptions) walker() *filewalker.Walker {
	return filewalker.NewWalker(
		parser.NewBookFilter(o.bookExts...),
		parser.NewScriptFilter(o.scriptExts...),
	)
}

// resolverOptions select where translations come from.
type resolverOptions struct {
	glossary    string
	databaseURL string
}

func (o *resolverOptions) register(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&o.glossary, "glossary", "", "Glossary file (.tsv or .json) mapping source text to translations")
	cmd.Flags().StringVar(&o.databaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL translation memory (read-only)")
}

// build assembles the resolver chain: glossary first, then translation
// memory, then the source text itself. The returned cleanup must be called.
func (o *resolverOptions) build(ctx context.Context) (resolver.Resolver, func(), error) {
	var lookups []resolver.Lookup
	cleanup := func() {}

	if o.glossary != "" {
		g, err := resolver.LoadGlossary(o.glossary)
		if err != nil {
			return nil, cleanup, err
		}
		log.Info().Str("path", o.glossary).Int("entries", len(g)).Msg("Loaded glossary")
		lookups = append(lookups, g)
	}

	if o.databaseURL != "" {
		pool, err := cache.Connect(ctx, o.databaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = pool.Close
		log.Info().Msg("Connected to PostgreSQL")

		translationCache := cache.NewTranslationCache(cache.NewPGStore(pool))
		if err := translationCache.Preload(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to preload cache")
		}
		lookups = append(lookups, translationCache.Lookup(ctx))
	}

	return resolver.Chain(lookups...), cleanup, nil
}

// encodingOptions are the host-configurable source and target encodings.
type encodingOptions struct {
	source string
	target string
}

func (o *encodingOptions) register(cmd *cobra.Command, cfg *config.Config) {
	help := "one of " + strings.Join(charset.Names(), ", ")
	cmd.Flags().StringVar(&o.source, "source-encoding", cfg.SourceEncoding, "Source file encoding, "+help)
	cmd.Flags().StringVar(&o.target, "target-encoding", cfg.TargetEncoding, "Target file encoding, "+help)
}

func (o *encodingOptions) validate() error {
	if _, err := charset.Lookup(o.source); err != nil {
		return fmt.Errorf("source encoding: %w", err)
	}
	if _, err := charset.Lookup(o.target); err != nil {
		return fmt.Errorf("target encoding: %w", err)
	}
	return nil
}
