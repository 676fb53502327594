// Package main provides the CLI entry point for vtree, a tool that parses
// YAML or JSON input into an in-memory value tree, optionally runs an ops
// pipeline script against it, and emits the result back as YAML or JSON.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/log"
	"github.com/macropower/vtree/profile"
	"github.com/macropower/vtree/script"
	"github.com/macropower/vtree/value"
	"github.com/macropower/vtree/version"
	"github.com/macropower/vtree/yamlio"
)

var (
	// ErrReadInput indicates a failure reading or parsing input.
	ErrReadInput = errors.New("reading input")
	// ErrWriteOutput indicates a failure rendering or writing output.
	ErrWriteOutput = errors.New("writing output")
)

type runFlags struct {
	output string
	format string
}

func main() {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()
	scriptCfg := script.NewConfig()
	flags := &runFlags{}

	prof := profCfg.NewProfiler()

	rootCmd := &cobra.Command{
		Use:   "vtree [flags] <file.yaml|file.json|-> [file2 ...]",
		Short: "Parse, transform, and emit YAML/JSON value trees",
		Long: `vtree parses YAML or JSON input into an in-memory value tree, optionally
runs an ops pipeline script (-s) against it, and emits the result back as
YAML or JSON.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := log.NewHandlerFromStrings(os.Stderr, logCfg.Level, logCfg.Format)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return prof.Start()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(scriptCfg, flags, args)
		},
	}

	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "-",
		"output file path (- for stdout)")
	rootCmd.Flags().StringVar(&flags.format, "format", "yaml",
		"output format, one of: yaml, json")

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())
	scriptCfg.RegisterFlags(rootCmd.Flags())

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		profCfg.RegisterCompletions,
		scriptCfg.RegisterCompletions,
	} {
		if err := register(rootCmd); err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()

	stopErr := prof.Stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if stopErr != nil {
		fmt.Fprintf(os.Stderr, "stop profiling: %v\n", stopErr)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := version.Version
			if v == "" {
				v = "dev"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "vtree %s (%s, %s/%s, revision %s)\n",
				v, version.GoVersion, version.GoOS, version.GoArch, version.Revision)

			return nil
		},
	}
}

func run(scriptCfg *script.Config, flags *runFlags, args []string) error {
	b := builder.New(builder.WithDedup())

	parser := yamlio.NewParser()
	decoder := yamlio.NewDecoder()

	parseOpts := yamlio.ParseOptions{MultiDocument: scriptCfg.MultiDoc}

	var docs []value.V

	for _, arg := range args {
		data, err := readInput(arg)
		if err != nil {
			return err
		}

		parsed, err := parser.ParseDocuments(data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}

		for _, doc := range parsed {
			v, err := decoder.Decode(b, doc, parseOpts)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrReadInput, err)
			}

			docs = append(docs, v)
		}
	}

	if scriptCfg.File != "" {
		result, err := runScript(b, scriptCfg, docs)
		if err != nil {
			return err
		}

		docs = []value.V{result}
	}

	mode := yamlio.ModeYAML
	if flags.format == "json" {
		mode = yamlio.ModeJSON
	}

	emitter := yamlio.NewEmitter()

	out, err := emitter.Emit(b, docs, yamlio.EmitOptions{Mode: mode})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return writeOutput(flags.output, []byte(out))
}

func runScript(b *builder.Builder, scriptCfg *script.Config, docs []value.V) (value.V, error) {
	data, err := readInput(scriptCfg.File)
	if err != nil {
		return value.Invalid, err
	}

	doc, err := script.LoadDocument(data)
	if err != nil {
		return value.Invalid, err
	}

	input := value.Invalid

	switch len(docs) {
	case 0:
	case 1:
		input = docs[0]
	default:
		input = b.Sequence(docs)
	}

	pipeline := scriptCfg.NewPipeline()

	return pipeline.Run(b, doc, input)
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // Output path from CLI flag is expected.
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
