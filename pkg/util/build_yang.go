// Copyright 2020 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"github.com/schemaforge/yangkit/pkg/yang"
	"github.com/schemaforge/yangkit/pkg/yangentry"
)

// ProcessModules takes a list of modules, and a path specification and
// runs the yang parser against them, returning a map of module name to
// yang.Entry pointer for the top level modules that are to be parsed
// by the struct generation. It is a thin, older-named alias for
// yangentry.Parse kept for callers already depending on this name.
func ProcessModules(yangf, path []string) (map[string]*yang.Entry, []error) {
	return yangentry.Parse(yangf, path)
}
