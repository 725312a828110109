package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mwfilter/internal/charset"
	"mwfilter/internal/config"
	"mwfilter/internal/filewalker"
	"mwfilter/internal/parser"
	"mwfilter/internal/resolver"
	"mwfilter/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// fileStats summarises one translated file.
type fileStats struct {
	output     string
	fragments  int
	translated int
}

func translateCmd(cfg *config.Config) *cobra.Command {
	var (
		workers   int
		filters   filterOptions
		resolvers resolverOptions
		encodings encodingOptions
	)

	cmd := &cobra.Command{
		Use:   "translate <input-dir> <output-dir>",
		Short: "Rewrite every book and script file with translated fragments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext(cmd.Context())
			defer cancel()

			if err := encodings.validate(); err != nil {
				return err
			}

			base, cleanup, err := resolvers.build(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			return runTranslate(ctx, filters.walker(), base, args[0], args[1], encodings, workers)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", cfg.WorkerCount, "Number of files processed concurrently")
	filters.register(cmd, cfg)
	resolvers.register(cmd, cfg)
	encodings.register(cmd, cfg)

	return cmd
}

// runTranslate mirrors inputDir into outputDir. Each file is filtered line
// by line on its own worker; files share only the read-only resolver.
func runTranslate(ctx context.Context, w *filewalker.Walker, base resolver.Resolver, inputDir, outputDir string, enc encodingOptions, workers int) error {
	entries, err := w.Walk(inputDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	inputAbs, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	outputAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if err := os.MkdirAll(outputAbs, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	log.Info().Int("files", len(entries)).Msg("Starting translation")

	pool := worker.NewPool[filewalker.FileEntry, fileStats](workers,
		func(ctx context.Context, entry filewalker.FileEntry) (fileStats, error) {
			if err := ctx.Err(); err != nil {
				return fileStats{}, err
			}
			relPath, err := filepath.Rel(inputAbs, entry.Path)
			if err != nil {
				return fileStats{}, fmt.Errorf("compute relative path: %w", err)
			}
			return translateFile(entry, filepath.Join(outputAbs, relPath), base, enc)
		},
	)

	failed := 0
	for _, task := range pool.Execute(ctx, entries) {
		if task.Err != nil {
			failed++
			log.Error().Err(task.Err).Str("file", task.Input.Path).Msg("Translate failed")
			continue
		}
		log.Info().
			Str("input", task.Input.Path).
			Str("output", task.Result.output).
			Int("fragments", task.Result.fragments).
			Int("translated", task.Result.translated).
			Msg("File translated")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(entries))
	}

	log.Info().
		Int("files", len(entries)).
		Str("output", outputDir).
		Msg("Translation complete")
	return nil
}

func translateFile(entry filewalker.FileEntry, outPath string, base resolver.Resolver, enc encodingOptions) (fileStats, error) {
	src, err := os.Open(entry.Path)
	if err != nil {
		return fileStats{}, fmt.Errorf("open input file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fileStats{}, fmt.Errorf("create output directory: %w", err)
	}
	dst, err := os.Create(outPath)
	if err != nil {
		return fileStats{}, fmt.Errorf("create output file: %w", err)
	}
	defer dst.Close()

	in, err := charset.NewReader(src, enc.source)
	if err != nil {
		return fileStats{}, err
	}
	out, err := charset.NewWriter(dst, enc.target)
	if err != nil {
		return fileStats{}, err
	}

	counter := resolver.NewCounter(base)
	if err := parser.Process(entry.Filter, in, out, counter); err != nil {
		return fileStats{}, err
	}
	if err := out.Close(); err != nil {
		return fileStats{}, fmt.Errorf("encode output: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fileStats{}, fmt.Errorf("close output file: %w", err)
	}

	return fileStats{
		output:     outPath,
		fragments:  counter.Calls(),
		translated: counter.Changed(),
	}, nil
}
