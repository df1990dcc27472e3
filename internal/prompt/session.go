// Package prompt implements the line-mode comparison dialogue: two filenames resolved under a
// documents directory, an algorithm name, then the similarity and the time it took.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/reader"
	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
	"github.com/baditaflorin/go_document_similarity/internal/core/kgram"
	"github.com/baditaflorin/go_document_similarity/internal/core/overlap"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// Prompts shown to the user.
const (
	FirstFilePrompt  = "Enter first document filename: "
	SecondFilePrompt = "Enter second document filename: "
	AlgorithmPrompt  = "Enter the algorithm to use ('KMP' or 'BM'): "
)

// Diagnostics printed instead of a result.
const (
	MsgMissingFile          = "One or both of the files do not exist."
	MsgMismatchedFormats    = "Both files must be of the same format."
	MsgUnsupportedFormat    = "Unsupported file format."
	MsgUnsupportedAlgorithm = "Unsupported algorithm. Choose 'KMP' or 'BM'."
)

// LineReader is the part of *readline.Instance the session needs.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Options configures a session.
type Options struct {
	DocumentsDir string
	CountingMode domain.CountingMode
	// KGramSize > 0 also prints the k-gram Jaccard similarity.
	KGramSize  int
	Logger     ports.Logger
	Normalizer ports.Normalizer
	Registry   *reader.Registry
}

// Session runs one comparison dialogue.
type Session struct {
	in   LineReader
	out  io.Writer
	opts Options
	warn *color.Color
	ok   *color.Color
}

// NewSession creates a session reading from in and writing to out.
func NewSession(in LineReader, out io.Writer, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Normalizer == nil {
		opts.Normalizer = normalizer.NewDefaultNormalizer()
	}
	if opts.Registry == nil {
		opts.Registry = reader.NewRegistry()
	}
	return &Session{
		in:   in,
		out:  out,
		opts: opts,
		warn: color.New(color.FgYellow),
		ok:   color.New(color.FgGreen, color.Bold),
	}
}

// Run asks for the inputs and prints either a diagnostic or the result. Input ending early
// (EOF or interrupt) ends the session without error.
func (s *Session) Run(ctx context.Context) error {
	answers := make([]string, 0, 3)
	for _, p := range []string{FirstFilePrompt, SecondFilePrompt, AlgorithmPrompt} {
		s.in.SetPrompt(p)
		line, err := s.in.Readline()
		if err != nil {
			s.opts.Logger.Debug("Prompt input ended", "error", err)
			return nil
		}
		answers = append(answers, strings.TrimSpace(line))
	}

	path1 := filepath.Join(s.opts.DocumentsDir, answers[0])
	path2 := filepath.Join(s.opts.DocumentsDir, answers[1])
	fmt.Fprintln(s.out)

	if err := s.opts.Registry.ValidatePair(path1, path2); err != nil {
		s.diagnose(err)
		return nil
	}
	algorithm, err := domain.ParseAlgorithm(answers[2])
	if err != nil {
		s.diagnose(err)
		return nil
	}

	start := time.Now()
	if err := s.compare(ctx, path1, path2, algorithm); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.diagnose(err)
		return nil
	}
	fmt.Fprintf(s.out, "\nExecution time: %f seconds\n\n", time.Since(start).Seconds())
	return nil
}

func (s *Session) compare(ctx context.Context, path1, path2 string, algorithm domain.Algorithm) error {
	text1, err := s.opts.Registry.Read(path1)
	if err != nil {
		return err
	}
	text2, err := s.opts.Registry.Read(path2)
	if err != nil {
		return err
	}

	cfg := overlap.DefaultConfig()
	cfg.Algorithm = algorithm
	if s.opts.CountingMode != "" {
		cfg.Mode = s.opts.CountingMode
	}
	calc, err := overlap.NewCalculator(cfg, s.opts.Logger, s.opts.Normalizer)
	if err != nil {
		return err
	}
	result, err := calc.Compute(ctx, text1, text2)
	if err != nil {
		return err
	}
	s.ok.Fprintf(s.out, "Similarity: %.2f%%\n", result.Score)

	if s.opts.KGramSize > 0 {
		kcfg := kgram.DefaultConfig()
		kcfg.Size = s.opts.KGramSize
		kcalc, err := kgram.NewCalculator(kcfg, s.opts.Logger, s.opts.Normalizer)
		if err != nil {
			return err
		}
		kres, err := kcalc.Compute(ctx, text1, text2)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "K-gram similarity (k=%d): %.2f%%\n", kcfg.Size, kres.Score)
	}
	return nil
}

func (s *Session) diagnose(err error) {
	s.opts.Logger.Debug("Comparison rejected", "error", err)
	s.warn.Fprintln(s.out, Diagnostic(err))
}

// Diagnostic maps an error to the one-line message shown to the user.
func Diagnostic(err error) string {
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		return MsgMissingFile
	case errors.Is(err, domain.ErrMismatchedFormats):
		return MsgMismatchedFormats
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return MsgUnsupportedFormat
	case errors.Is(err, domain.ErrUnsupportedAlgorithm):
		return MsgUnsupportedAlgorithm
	}
	return fmt.Sprintf("Error: %v", err)
}
