package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mwfilter/internal/charset"
	"mwfilter/internal/config"
	"mwfilter/internal/filewalker"
	"mwfilter/internal/parser"
	"mwfilter/internal/textutil"
	"mwfilter/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// extractRecord is one translatable fragment in an extraction listing.
type extractRecord struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Format  string `json:"format"`
	Keyword string `json:"keyword,omitempty"`
	Text    string `json:"text"`
	Prev    string `json:"prev,omitempty"`
	Next    string `json:"next,omitempty"`
}

func extractCmd(cfg *config.Config) *cobra.Command {
	var (
		exportFormat string
		outputPath   string
		workers      int
		filters      filterOptions
		encodings    encodingOptions
	)

	cmd := &cobra.Command{
		Use:   "extract <directory>",
		Short: "List every translatable fragment found under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext(cmd.Context())
			defer cancel()

			if err := encodings.validate(); err != nil {
				return err
			}

			records, err := runExtract(ctx, filters.walker(), args[0], encodings.source, workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			switch exportFormat {
			case "json":
				err = writeRecordsJSON(out, records)
			case "tsv":
				err = writeRecordsTSV(out, records)
			default:
				return fmt.Errorf("unknown export format %q: want tsv or json", exportFormat)
			}
			if err != nil {
				return err
			}

			log.Info().Int("fragments", len(records)).Str("format", exportFormat).Msg("Extraction complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&exportFormat, "export", "tsv", "Export format: tsv or json")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file (default stdout)")
	cmd.Flags().IntVar(&workers, "workers", cfg.WorkerCount, "Number of files parsed concurrently")
	filters.register(cmd, cfg)
	encodings.register(cmd, cfg)

	return cmd
}

// runExtract parses every supported file under root and flattens the results
// in discovery order. Paths are reported relative to root.
func runExtract(ctx context.Context, w *filewalker.Walker, root, encoding string, workers int) ([]extractRecord, error) {
	entries, err := w.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("walk input directory: %w", err)
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	parsePool := worker.NewPool[filewalker.FileEntry, *parser.ParseResult](workers,
		func(ctx context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return parseDecoded(entry, encoding)
		},
	)

	var records []extractRecord
	for _, pr := range parsePool.Execute(ctx, entries) {
		if pr.Err != nil {
			return nil, fmt.Errorf("parse %s: %w", pr.Input.Path, pr.Err)
		}

		rel, err := filepath.Rel(rootAbs, pr.Input.Path)
		if err != nil {
			rel = pr.Input.Path
		}
		rel = filepath.ToSlash(rel)

		for _, et := range pr.Result.Texts {
			records = append(records, extractRecord{
				File:    rel,
				Line:    et.Line,
				Column:  et.Column,
				Format:  pr.Result.FileType,
				Keyword: et.Context["keyword"],
				Text:    et.Text,
				Prev:    et.Prev,
				Next:    et.Next,
			})
		}

		log.Debug().Str("file", rel).Int("fragments", len(pr.Result.Texts)).Msg("Parsed file")
	}

	return records, nil
}

func parseDecoded(entry filewalker.FileEntry, encoding string) (*parser.ParseResult, error) {
	f, err := os.Open(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s file: %w", entry.Filter.Format(), err)
	}
	defer f.Close()

	in, err := charset.NewReader(f, encoding)
	if err != nil {
		return nil, err
	}
	return parser.ParseReader(entry.Filter, in, entry.Path)
}

func writeRecordsTSV(w io.Writer, records []extractRecord) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "file\tline\tcolumn\tformat\tkeyword\tsource_text\tprev\tnext")
	for _, r := range records {
		fmt.Fprintln(bw, strings.Join([]string{
			r.File,
			strconv.Itoa(r.Line),
			strconv.Itoa(r.Column),
			r.Format,
			r.Keyword,
			textutil.EscapeTSV(r.Text),
			textutil.EscapeTSV(r.Prev),
			textutil.EscapeTSV(r.Next),
		}, "\t"))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write TSV: %w", err)
	}
	return nil
}

func writeRecordsJSON(w io.Writer, records []extractRecord) error {
	if records == nil {
		records = []extractRecord{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
