package main

import (
	"fmt"

	"github.com/spf13/cobra"

	transcript "github.com/ieee0824/transcript-text"
	"github.com/ieee0824/transcript-text/config"
	"github.com/ieee0824/transcript-text/internal/logger"
	"github.com/ieee0824/transcript-text/lexicon"
	"github.com/ieee0824/transcript-text/textutil"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath  string
	logLevel    string
	symbolsPath string
	cfg         *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "transcript",
		Short: "Reconstruct words from speech decoder tokens",
		Long: `transcript turns the token stream of a streaming speech decoder into
displayable words, merging letters and accented fragments that the
vocabulary splits apart, and parses numeric fields found in text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Logging.Level = a.logLevel
			}
			if a.symbolsPath != "" {
				cfg.Reconstruct.Symbols = a.symbolsPath
			}
			a.cfg = cfg

			l := logger.Init(cfg.Logging)
			textutil.SetLogger(l)
			cmd.SetContext(logger.WithContext(cmd.Context(), l))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.symbolsPath, "symbols", "", "Path to the token symbol table (tokens.txt)")

	root.AddCommand(
		newMergeCmd(a),
		newParseCmd(a),
		newFollowCmd(a),
		newWERCmd(),
		newVersionCmd(),
	)
	return root
}

// reconstructor builds a Reconstructor from the loaded configuration.
// The symbol table is only loaded when needSymbols is set.
func (a *app) reconstructor(cmd *cobra.Command, needSymbols bool) (*transcript.Reconstructor, error) {
	rc := a.cfg.Reconstruct
	opts := []transcript.Option{
		transcript.WithLogger(logger.Get(cmd.Context())),
		transcript.WithFrameShift(float32(rc.FrameShift)),
		transcript.WithTimeOffset(float32(rc.TimeOffset)),
		transcript.WithMetrics(true),
	}
	if needSymbols {
		if rc.Symbols == "" {
			return nil, fmt.Errorf("a symbol table is required: use --symbols or reconstruct.symbols")
		}
		st, err := lexicon.LoadSymbolTableFile(rc.Symbols)
		if err != nil {
			return nil, fmt.Errorf("load symbol table: %w", err)
		}
		st.WordBoundary = rc.WordBoundary
		logger.Get(cmd.Context()).Debugw("symbol table loaded", "path", rc.Symbols, "symbols", st.Len())
		opts = append(opts, transcript.WithSymbolTable(st))
	}
	return transcript.NewReconstructor(opts...), nil
}
