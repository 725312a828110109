package cli

import (
	"fmt"

	"mwfilter/internal/charset"
	"mwfilter/internal/config"
	"mwfilter/internal/parser"
	"mwfilter/internal/resolver"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func pipeCmd(cfg *config.Config) *cobra.Command {
	var (
		format    string
		filters   filterOptions
		resolvers resolverOptions
		encodings encodingOptions
	)

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Filter stdin to stdout as book or script format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext(cmd.Context())
			defer cancel()

			f, err := filterByFormat(format, filters)
			if err != nil {
				return err
			}
			if err := encodings.validate(); err != nil {
				return err
			}

			base, cleanup, err := resolvers.build(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			in, err := charset.NewReader(cmd.InOrStdin(), encodings.source)
			if err != nil {
				return err
			}
			out, err := charset.NewWriter(cmd.OutOrStdout(), encodings.target)
			if err != nil {
				return err
			}

			counter := resolver.NewCounter(base)
			if err := parser.Process(f, in, out, counter); err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("encode output: %w", err)
			}

			log.Debug().
				Str("format", f.Format()).
				Int("fragments", counter.Calls()).
				Int("translated", counter.Changed()).
				Msg("Pipe complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: book or script")
	_ = cmd.MarkFlagRequired("format")
	filters.register(cmd, cfg)
	resolvers.register(cmd, cfg)
	encodings.register(cmd, cfg)

	return cmd
}

func filterByFormat(format string, opts filterOptions) (parser.Filter, error) {
	switch format {
	case "book":
		return parser.NewBookFilter(opts.bookExts...), nil
	case "script":
		return parser.NewScriptFilter(opts.scriptExts...), nil
	default:
		return nil, fmt.Errorf("unknown format %q: want book or script", format)
	}
}
