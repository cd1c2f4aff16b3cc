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

import "log"

var (
	debugLogger  *log.Logger
	debugEnabled bool
)

func init() {
	debugLogger, debugEnabled = NewDebugLogger("debug.log")
}

// Enabled reports whether debug.log is being written. Callers use it to skip
// rendering expensive messages nobody will read.
func Enabled() bool {
	return debugEnabled
}

func Debugf(format string, v ...interface{}) {
	debugLogger.Printf(format, v...)
}

func Debugln(v ...interface{}) {
	debugLogger.Println(v...)
}
