package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/baditaflorin/go_document_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_document_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_document_similarity/internal/config"
	"github.com/baditaflorin/go_document_similarity/internal/ports"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// CLI holds state shared by the subcommands.
type CLI struct {
	v          *viper.Viper
	configPath string
	cfg        config.Config
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	cli := &CLI{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "docsim",
		Short: "Compare documents by word overlap",
		Long: `docsim scores how similar two documents are.

Every unique word of each document is counted by exact substring search
(Knuth-Morris-Pratt or Boyer-Moore) and the two frequency maps are compared
as sum(min) / sum(max). Plain text, .docx and .pdf files are supported.

Examples:
  docsim compare a.txt b.txt
  docsim compare a.pdf b.pdf --algorithm BM --kgram --json
  docsim prompt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cli.logger != nil {
				return cli.logger.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cli.configPath, "config", "", "config file (default: ./docsim.yaml or $HOME/.config/docsim/docsim.yaml)")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.BoolP("verbose", "v", false, "log computation steps to stderr")
	_ = cli.v.BindPFlag(config.KeyLogJSON, flags.Lookup("log-json"))
	_ = cli.v.BindPFlag(config.KeyLogVerbose, flags.Lookup("verbose"))

	rootCmd.AddCommand(
		newCompareCommand(cli),
		newPromptCommand(cli),
		newVersionCommand(),
	)
	return rootCmd
}

func (cli *CLI) initialize() error {
	if err := config.ReadFile(cli.v, cli.configPath); err != nil {
		return err
	}
	cfg, err := config.Load(cli.v)
	if err != nil {
		return err
	}
	cli.cfg = cfg

	normType, err := normalizer.ParseNormalizerType(cfg.Normalizer)
	if err != nil {
		return err
	}
	cli.normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normType)

	switch {
	case cfg.Log.Verbose || cfg.Log.File != "":
		cli.logger, err = logger.NewWithOptions(logger.Options{
			Output:     os.Stderr,
			FilePath:   cfg.Log.File,
			JSONFormat: cfg.Log.JSON,
		})
		if err != nil {
			return err
		}
	default:
		cli.logger = logger.NewNop()
	}
	return nil
}
