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

package cli

import (
	"fmt"

	"github.com/fatih/color"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

// CFGTestFlags holds everything set on the command line.
type CFGTestFlags struct {
	GrammarFile string
	InputFile   string
	Output      string
	Epsilon     string
	Interactive bool
	ShowGrammar bool
	Workers     int
	Summary     bool
	MetricsFile string
	NoColor     bool
}

// CFGTestCommand carries what the subcommands need from the root command.
type CFGTestCommand struct {
	Streams genericclioptions.IOStreams
}

var yellow = color.New(color.FgYellow).SprintFunc()

func (c CFGTestCommand) Fprintf(format string, a ...interface{}) {
	fmt.Fprintf(c.Streams.Out, format, a...)
}

// Warnf writes a warning to the error stream.
func (c CFGTestCommand) Warnf(format string, a ...interface{}) {
	fmt.Fprint(c.Streams.ErrOut, yellow("warning: ", fmt.Sprintf(format, a...)), "\n")
}
