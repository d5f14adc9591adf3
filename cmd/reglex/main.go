// Command reglex reads a %%-sectioned spec file (spec.md §4.1) and writes
// the generated Go lexer source it describes (spec.md §6). Flag/arg
// parsing follows opal-lang-opal/cli/main.go's spf13/cobra usage, the
// pack's nearest precedent for a Go CLI front-end to a source-
// transforming tool.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reglex-gen/reglex/driver"
	"github.com/reglex-gen/reglex/reglexerr"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		output  string
		debug   bool
		showVer bool
	)

	root := &cobra.Command{
		Use:           "reglex [input]",
		Short:         "Generate a Go lexer from a reglex spec file",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			if showVer {
				fmt.Fprintln(stdout, "reglex", version)
				return nil
			}

			logger := newLogger(stderr, debug)

			inputPath := "-"
			if len(posArgs) == 1 {
				inputPath = posArgs[0]
			}
			src, err := readInput(inputPath, stdin)
			if err != nil {
				return reglexerr.Wrap(err, fmt.Sprintf("reading %s", inputPath))
			}
			logger.Debug("read spec file", "path", inputPath, "bytes", len(src))

			opts := driver.DefaultOptions()
			generated, err := driver.Generate(src, opts)
			if err != nil {
				return err
			}
			logger.Debug("generated lexer source", "bytes", len(generated))

			return writeOutput(output, generated, stdout)
		},
	}

	root.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	root.Flags().BoolVarP(&debug, "debug", "d", false, "log debug details (input and output sizes) to stderr")
	root.Flags().BoolVarP(&showVer, "version", "v", false, "print the version and exit")
	root.SetOut(stdout)
	root.SetErr(stderr)
	// cobra reads os.Args when given nil, so nil means "no arguments" here.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newLogger(stderr io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
