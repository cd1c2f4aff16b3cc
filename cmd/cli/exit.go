/*
Copyright 2019 The Kubernetes Authors.

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
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

var (
	exitStrings = sets.NewString("q", "quit", "exit", ":q", ":quit")
)

// IsExit reports whether qs asks the interactive prompt to stop. Surrounding
// whitespace is ignored, so a blank line is a candidate (the empty string),
// not an exit.
func IsExit(qs string) bool {
	qs = strings.TrimSpace(qs)
	if qs == "" {
		return false
	}
	return exitStrings.Has(qs)
}

// ExitWords lists the words IsExit accepts, sorted.
func ExitWords() []string {
	return exitStrings.List()
}
