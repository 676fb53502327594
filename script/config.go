package script

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for pipeline configuration, following
// magicschema.Flags: callers can rename flags while keeping sensible
// defaults.
type Flags struct {
	File     string
	MultiDoc string
}

// Config holds CLI flag values for running a script Document, mirroring
// magicschema.Config's RegisterFlags/NewGenerator split.
type Config struct {
	Flags    Flags
	Registry *Registry
	File     string
	MultiDoc bool
}

// NewConfig returns a new Config with default flag names and a fresh
// NewRegistry.
func NewConfig() *Config {
	return &Config{
		Flags:    Flags{File: "script", MultiDoc: "multi-doc"},
		Registry: NewRegistry(),
	}
}

// RegisterFlags adds pipeline flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.File, c.Flags.File, "s", "",
		"ops pipeline script file (YAML or JSON, - for stdin)")
	flags.BoolVar(&c.MultiDoc, c.Flags.MultiDoc, false,
		"treat PARSE input as a multi-document stream")
}

// RegisterCompletions registers shell completions for pipeline flags.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc(c.Flags.File,
		cobra.FixedCompletions(nil, cobra.ShellCompDirectiveDefault))
}

// NewPipeline creates a Pipeline using this Config's Registry.
func (c *Config) NewPipeline(opts ...Option) *Pipeline {
	return NewPipeline(append([]Option{WithRegistry(c.Registry)}, opts...)...)
}
