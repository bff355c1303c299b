package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/CaliLuke/go-sparql/vocabgen"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "vocabgen",
		Short:         "Generate Go constants from RDF vocabulary files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	cmd.AddCommand(newGenerateCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	return cmd
}

func newGenerateCommand(root *rootOptions) *cobra.Command {
	cfg := vocabgen.DefaultConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate <file.vocab>",
		Short: "Generate Go source for a vocabulary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			v, err := vocabgen.ParseVocabularyFile(path)
			if err != nil {
				return err
			}
			root.logger.Debug("parsed vocabulary",
				zap.String("file", path),
				zap.Int("namespaces", len(v.Namespaces)))

			cfg.Source = filepath.Base(path)
			if out == "" {
				return vocabgen.Render(cmd.OutOrStdout(), v, cfg)
			}
			return writeFile(out, func(w io.Writer) error {
				return vocabgen.Render(w, v, cfg)
			})
		},
		PostRun: func(cmd *cobra.Command, args []string) {
			if out != "" {
				root.logger.Info("wrote generated code", zap.String("file", out))
			}
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "output Go file (default: stdout)")
	f.StringVar(&cfg.PackageName, "pkg", cfg.PackageName, "package name for generated code")
	f.StringVar(&cfg.ModulePath, "ast-import", cfg.ModulePath, "import path of the ast package")
	f.BoolVar(&cfg.UseAcronyms, "acronyms", cfg.UseAcronyms, "apply Go naming conventions for acronyms (URI, URL, etc.)")
	f.BoolVar(&cfg.SkipDeprecated, "skip-deprecated", cfg.SkipDeprecated, "leave deprecated terms out")
	f.BoolVar(&cfg.Prefixes, "prefixes", cfg.Prefixes, "emit a Prefixes map for the file's namespaces")
	return cmd
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.vocab>...",
		Short: "Parse and validate vocabulary files without generating code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs error
			for _, path := range args {
				v, err := vocabgen.ParseVocabularyFile(path)
				if err == nil {
					err = v.Validate()
				}
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				root.logger.Debug("vocabulary ok", zap.String("file", path))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			return errs
		},
	}
}

// writeFile renders into path, removing the file again if rendering fails.
func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return render(f)
}
