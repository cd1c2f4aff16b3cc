/*
Copyright 2020 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
	"github.com/gabemorgannn/ContextFreeGrammar/cmd/cli"
	"github.com/gabemorgannn/ContextFreeGrammar/cmd/membership"
)

var outputFormats = sets.NewString("text", "json", "yaml")

// CFGTestOptions provides information required to run a membership test
type CFGTestOptions struct {
	args  []string
	flags cli.CFGTestFlags
	genericclioptions.IOStreams
}

// NewCFGTestOptions provides an instance of CFGTestOptions with default values
func NewCFGTestOptions(streams genericclioptions.IOStreams) *CFGTestOptions {
	return &CFGTestOptions{
		flags: cli.CFGTestFlags{
			Output:      "text",
			Epsilon:     grammar.DefaultEpsilon,
			ShowGrammar: true,
			Workers:     runtime.NumCPU(),
		},
		IOStreams: streams,
	}
}

type RootCFGTestCmd struct {
	*cobra.Command
	options *CFGTestOptions
}

func addFlags(flags *pflag.FlagSet, options *CFGTestOptions) {
	flags.StringVarP(&options.flags.Output, "output", "o", options.flags.Output, "Output format for results, one of text|json|yaml")
	flags.StringVar(&options.flags.Epsilon, "epsilon", options.flags.Epsilon, "the symbol that stands for the empty string in grammar rules")
	flags.BoolVarP(&options.flags.Interactive, "interactive", "i", options.flags.Interactive, "if true, reads candidates from an interactive prompt")
	flags.BoolVar(&options.flags.ShowGrammar, "show-grammar", options.flags.ShowGrammar, "if true, prints the parsed grammar before testing")
	flags.IntVarP(&options.flags.Workers, "workers", "w", options.flags.Workers, "maximum number of candidates tested concurrently")
	flags.BoolVar(&options.flags.Summary, "summary", options.flags.Summary, "if true, prints accept/reject totals to stderr")
	flags.StringVar(&options.flags.MetricsFile, "metrics-file", options.flags.MetricsFile, "if specified, writes run statistics in the Prometheus text format to this file")
	flags.BoolVar(&options.flags.NoColor, "no-color", options.flags.NoColor, "if true, never colorize output")
}

// NewCmdCFGTest provides a cobra command wrapping CFGTestOptions
func NewCmdCFGTest(streams genericclioptions.IOStreams) *RootCFGTestCmd {
	o := NewCFGTestOptions(streams)
	cmd := &cobra.Command{
		Use:   "cfgtest GRAMMAR_FILE [INPUT_FILE] [options]",
		Short: "Test strings for membership in the language of a CNF grammar",
		Example: `
cfgtest grammar.cfg inputs.txt                 # test every line of inputs.txt, prints Accept/Reject per line
cfgtest grammar.yaml - < inputs.txt -ojson     # read candidates from stdin, print json
cfgtest grammar.cfg -i                         # for interactive mode
`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,

		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Complete(c, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(c)
		},
	}
	root := &RootCFGTestCmd{Command: cmd, options: o}

	addFlags(cmd.Flags(), o)

	return root
}

// Complete fills in the grammar and input files from the arguments
func (o *CFGTestOptions) Complete(cmd *cobra.Command, args []string) error {
	o.args = args
	if len(args) > 0 {
		o.flags.GrammarFile = args[0]
	}
	if len(args) > 1 {
		o.flags.InputFile = args[1]
	}
	return nil
}

// Validate ensures that all required arguments and flag values are provided
func (o *CFGTestOptions) Validate() error {
	if o.flags.GrammarFile == "" {
		return fmt.Errorf("a grammar file is required")
	}
	if !outputFormats.Has(o.flags.Output) {
		return fmt.Errorf("unsupported output format %q, must be one of %v", o.flags.Output, outputFormats.List())
	}
	if o.flags.Epsilon == "" {
		return fmt.Errorf("--epsilon must not be empty")
	}
	if o.flags.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", o.flags.Workers)
	}
	if o.flags.Interactive && o.flags.InputFile != "" {
		return fmt.Errorf("an input file cannot be combined with --interactive")
	}
	return nil
}

func (o *CFGTestOptions) Run(cmd *cobra.Command) error {
	mc := membership.MembershipCommand{
		CFGTestCommand: cli.CFGTestCommand{Streams: o.IOStreams},
	}
	return mc.Run(cmd.Context(), o.flags)
}
