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
package debug

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Debug loggers write into this directory when it is set, and discard
// everything otherwise. debug.log is opened at init.
const logDirEnv = "CFGTEST_DEBUG_LOG_DIRECTORY"

var (
	mu        sync.Mutex
	openFiles []*os.File
)

func discardLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

// NewDebugLogger opens name inside the debug directory for appending. The
// boolean is false when the logger discards its output, either because the
// directory isn't set or because the file could not be opened.
func NewDebugLogger(name string) (*log.Logger, bool) {
	dir := os.Getenv(logDirEnv)
	if dir == "" {
		return discardLogger(), false
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return discardLogger(), false
	}
	mu.Lock()
	openFiles = append(openFiles, f)
	mu.Unlock()

	lgr := log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	lgr.Printf("%v opened by pid %d\n", name, os.Getpid())
	return lgr, true
}

// Teardown closes the files behind every logger returned so far. Those
// loggers drop whatever is written to them afterwards.
func Teardown() {
	mu.Lock()
	defer mu.Unlock()
	for _, f := range openFiles {
		f.Close()
	}
	openFiles = nil
}
