package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/reader"
	"github.com/baditaflorin/go_document_similarity/internal/config"
	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/core/kgram"
	"github.com/baditaflorin/go_document_similarity/internal/core/overlap"
)

type compareOutput struct {
	File1           string   `json:"file1"`
	File2           string   `json:"file2"`
	Algorithm       string   `json:"algorithm"`
	CountingMode    string   `json:"counting_mode"`
	Similarity      float64  `json:"similarity"`
	Passed          bool     `json:"passed"`
	KGramSize       int      `json:"k,omitempty"`
	KGramSimilarity *float64 `json:"kgram_similarity,omitempty"`
	ElapsedSeconds  float64  `json:"elapsed_seconds"`
}

func newCompareCommand(cli *CLI) *cobra.Command {
	var withKGram, asJSON bool

	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two documents of the same format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			registry := reader.NewRegistry()
			if err := registry.ValidatePair(args[0], args[1]); err != nil {
				return err
			}
			text1, err := registry.Read(args[0])
			if err != nil {
				return err
			}
			text2, err := registry.Read(args[1])
			if err != nil {
				return err
			}

			calc, err := overlap.NewCalculator(overlap.SimilarityConfig{
				Algorithm: cli.cfg.Algorithm,
				Mode:      cli.cfg.CountingMode,
				Threshold: cli.cfg.Threshold,
			}, cli.logger, cli.normalizer)
			if err != nil {
				return err
			}
			res, err := calc.Compute(cmd.Context(), text1, text2)
			if err != nil {
				return err
			}

			out := compareOutput{
				File1:        args[0],
				File2:        args[1],
				Algorithm:    string(res.Algorithm),
				CountingMode: string(cli.cfg.CountingMode),
				Similarity:   res.Score,
				Passed:       res.Passed,
			}

			if withKGram {
				kcalc, err := kgram.NewCalculator(kgram.SimilarityConfig{
					Size:      cli.cfg.KGram.Size,
					Normalize: cli.cfg.KGram.Normalize,
					Threshold: cli.cfg.Threshold,
				}, cli.logger, cli.normalizer)
				if err != nil {
					return err
				}
				kres, err := kcalc.Compute(cmd.Context(), text1, text2)
				if err != nil {
					return err
				}
				out.KGramSize = cli.cfg.KGram.Size
				out.KGramSimilarity = &kres.Score
			}
			out.ElapsedSeconds = time.Since(start).Seconds()

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			verdict := color.GreenString("pass")
			if !out.Passed {
				verdict = color.YellowString("below threshold")
			}
			fmt.Fprintf(w, "Similarity: %.2f%% (%s, %s)\n", out.Similarity, out.Algorithm, verdict)
			if out.KGramSimilarity != nil {
				fmt.Fprintf(w, "K-gram similarity (k=%d): %.2f%%\n", out.KGramSize, *out.KGramSimilarity)
			}
			fmt.Fprintf(w, "Execution time: %f seconds\n", out.ElapsedSeconds)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("algorithm", "a", string(domain.KMP), "pattern matcher: KMP or BM")
	flags.String("mode", string(domain.SubstringCounting), "counting mode: substring or token")
	flags.Float64("threshold", 70, "pass threshold in percent")
	flags.BoolVar(&withKGram, "kgram", false, "also report k-gram Jaccard similarity")
	flags.Int("k", kgram.DefaultSize, "k-gram size")
	flags.BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cli.v.BindPFlag(config.KeyAlgorithm, flags.Lookup("algorithm"))
	_ = cli.v.BindPFlag(config.KeyCountingMode, flags.Lookup("mode"))
	_ = cli.v.BindPFlag(config.KeyThreshold, flags.Lookup("threshold"))
	_ = cli.v.BindPFlag(config.KeyKGramSize, flags.Lookup("k"))

	return cmd
}
