package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_document_similarity/internal/prompt"
)

func newPromptCommand(cli *CLI) *cobra.Command {
	var withKGram bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for two filenames and an algorithm, then compare",
		Long: `Ask for two filenames and an algorithm, then compare the documents.

Filenames are resolved under documents_dir ("test" unless set in the config
file or DOCSIM_DOCUMENTS_DIR).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdin:           readline.NewCancelableStdin(os.Stdin),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize readline: %w", err)
			}
			defer rl.Close()

			opts := prompt.Options{
				DocumentsDir: cli.cfg.DocumentsDir,
				CountingMode: cli.cfg.CountingMode,
				Logger:       cli.logger,
				Normalizer:   cli.normalizer,
			}
			if withKGram {
				opts.KGramSize = cli.cfg.KGram.Size
			}
			return prompt.NewSession(rl, cmd.OutOrStdout(), opts).Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&withKGram, "kgram", false, "also report k-gram Jaccard similarity")
	return cmd
}
