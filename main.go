package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version string = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "lc [PATH]",
		Short: "lc counts lines and bytes across a directory tree.",
		Long: `lc walks a directory tree in parallel and reports the total number of
lines and bytes of every file below it. With --display it also prints the
tree with per-file statistics, files before directories, each sorted by name.

PATH may be a local directory or a git URL, which is cloned to a temporary
directory first. Without PATH the current directory is counted.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, used, err := loadConfig(viper.New(), cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			if used != "" {
				log.Debug("using config file", "path", used)
			}
			if len(args) > 0 {
				cfg.Path = args[0]
			}
			return run(cmd, cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/lc/config.toml)")

	flags.StringP("path", "p", "", "Directory or git URL to count (default is the current directory)")
	flags.BoolP("display", "d", false, "Display the file tree with per-file counts")
	flags.Bool("hidden", false, "Show hidden files and directories in the tree (they are always counted)")
	flags.BoolP("gitignore", "g", false, "Skip entries listed in the .gitignore of their directory")
	flags.Bool("no-bytes", false, "Don't report byte counts")
	flags.IntP("threads", "t", 0, "Number of goroutines walking subdirectories (0 for auto, 1 for sequential)")

	flags.Bool("tokens", false, "Count model tokens in every file")
	flags.String("tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	flags.String("model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	flags.String("tokenizer-file", "", "Path to local tokenizer file")

	flags.BoolP("languages", "l", false, "Break the totals down by language")
	flags.BoolP("clipboard", "c", false, "Copy the report to the clipboard")
	flags.Bool("interactive", false, "Pick the directory to count with a fuzzy finder")
	flags.StringP("format", "o", "box", "Report format: box or yaml")
	flags.Bool("no-color", false, "Disable colored tree output")
	flags.String("log-level", "warn", "Log verbosity: debug, info, warn or error")

	return cmd
}

// run counts the configured root and prints the tree (when asked) and the report.
func run(cmd *cobra.Command, cfg Config, log *slog.Logger) error {
	osFs := afero.NewOsFs()
	out := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())

	root, cleanup, err := resolveRoot(cfg, osFs, cmd.ErrOrStderr(), log)
	if err != nil {
		if errors.Is(err, errSelectionAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Interactive selection aborted.")
			return nil
		}
		return err
	}
	defer cleanup()

	var tokenizer Tokenizer
	if cfg.Tokens {
		tokenizer, err = newTokenizer(TokenizerOptions{
			Type:  cfg.Tokenizer,
			Model: cfg.Model,
			File:  cfg.TokenizerFile,
		}, log)
		if err != nil {
			return fmt.Errorf("error initializing tokenizer: %w", err)
		}
		defer tokenizer.Close()
	}

	walker := NewWalker(WalkOptions{
		Fs:        osFs,
		Threads:   cfg.Threads,
		Gitignore: cfg.Gitignore,
		Tokenizer: tokenizer,
		Logger:    log,
	})

	start := time.Now()
	var (
		total Measurement
		langs []LanguageStat
	)
	if cfg.Display || cfg.Languages {
		tree, err := walker.Walk(root)
		if err != nil {
			return err
		}
		if cfg.Display {
			renderer := NewTreeRenderer(RenderOptions{
				ShowHidden: cfg.Hidden,
				NoBytes:    cfg.NoBytes,
				Tokens:     cfg.Tokens,
				NoColor:    cfg.NoColor,
			})
			if _, err := renderer.Render(out, tree); err != nil {
				return err
			}
		}
		if cfg.Languages {
			langs = LanguageBreakdown(tree)
		}
		total = tree.Measurement
	} else {
		total, err = walker.Aggregate(root)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	report, err := newReport(root, total, langs, elapsed, cfg).Format(cfg.Format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, report); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	if cfg.Clipboard {
		if err := copyToClipboard(report); err != nil {
			log.Warn("could not copy report", "error", err)
		}
	}
	return nil
}

// resolveRoot picks the directory to count and returns a cleanup func for
// anything created along the way, such as a git clone.
func resolveRoot(cfg Config, fsys afero.Fs, progress io.Writer, log *slog.Logger) (string, func(), error) {
	noop := func() {}

	path := cfg.Path
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", noop, fmt.Errorf("error resolving current directory: %w", err)
		}
		path = cwd
		if cfg.Interactive {
			path, err = runInteractiveFinder(fsys, cwd)
			if err != nil {
				return "", noop, err
			}
		}
	}

	if isGitURL(path) {
		dir, err := cloneGitRepo(path, progress, log)
		if err != nil {
			return "", noop, err
		}
		return dir, func() {
			if err := os.RemoveAll(dir); err != nil {
				log.Warn("could not remove temporary clone", "dir", dir, "error", err)
			}
		}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", noop, fmt.Errorf("error resolving path %s: %w", path, err)
	}
	return abs, noop, nil
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}
