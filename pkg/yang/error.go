// Copyright 2015 Google Inc.
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

package yang

import (
	"fmt"
	"strconv"
	"strings"
)

// Code enumerates the loader's failure taxonomy (spec.md §4.6). It
// replaces the thread-local "last error" record the original design
// used with an explicit, threaded error value per spec.md §9's design
// note.
type Code string

// The failure taxonomy's codes, grouped as lexical, structural,
// semantic, and integration errors.
const (
	// Lexical
	CodeUnexpectedChar      Code = "UnexpectedChar"
	CodeUnterminatedString  Code = "UnterminatedString"
	CodeBadEscape           Code = "BadEscape"

	// Structural
	CodeDuplicateStatement       Code = "DuplicateStatement"
	CodeMissingRequiredChild     Code = "MissingRequiredChild"
	CodeUnexpectedStatement      Code = "UnexpectedStatementInContext"

	// Semantic
	CodeDuplicateIdentifier  Code = "DuplicateIdentifier"
	CodeUnknownPrefix        Code = "UnknownPrefix"
	CodeUnresolvedReference  Code = "UnresolvedReference"
	CodeCircularLeafref      Code = "CircularLeafref"
	CodeInvalidRange         Code = "InvalidRange"
	CodeBitPositionOverflow  Code = "BitPositionOverflow"
	CodeEnumValueOverflow    Code = "EnumValueOverflow"
	CodeMandatoryWithDefault Code = "MandatoryWithDefault"

	// Integration
	CodeConflictingImplementedRevision Code = "ConflictingImplementedRevision"
	CodeDeviationOfOwnModule           Code = "DeviationOfOwnModule"
	CodeNotSupportedRemovesKey         Code = "NotSupportedRemovesKey"

	// Internal covers invariant violations that should never occur
	// given a correct implementation; see spec.md §7.
	CodeInternal Code = "Internal"
)

// Error is the structured form of a loader failure: {code, message,
// path}, plus the LoadID of the parseModule/parseSubmodule call that
// produced it, for correlating with logs and metrics.
type Error struct {
	Code    Code
	Message string
	Path    string // optional node or data breadcrumb
	LoadID  string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// classifyParseError maps a Parse/lex failure to its specific Code by
// matching the message lex.go's Errorf/ErrorfAt call sites actually
// produce (parse.go's Parse collapses them all into one combined
// error string, so this is the only place that can tell them apart),
// falling back to the generic CodeUnexpectedChar for anything else
// the lexer/parser rejects.
func classifyParseError(err error) Code {
	msg := err.Error()
	switch {
	case strings.Contains(msg, `missing closing '`), strings.Contains(msg, `missing closing "`):
		return CodeUnterminatedString
	case strings.Contains(msg, "invalid escape sequence"):
		return CodeBadEscape
	default:
		return CodeUnexpectedChar
	}
}

// classifyBuildError maps a BuildAST failure to its specific Code.
// ast.go's reflection-driven statement builder reports a repeated
// single-valued substatement (e.g. two "type" clauses on one node) as
// "<keyword>: already set" - a structural error distinct from an
// outright unrecognized statement.
func classifyBuildError(err error) Code {
	if strings.Contains(err.Error(), "already set") {
		return CodeDuplicateStatement
	}
	return CodeUnexpectedStatement
}

// classifyResolveError maps a resolver-pass failure (modules.go's
// Process, by way of types.go's range/bit/enum validation and
// modules.go's FindModuleByPrefix) to its specific Code by matching
// the message those call sites actually produce, falling back to the
// generic CodeUnresolvedReference.
func classifyResolveError(err error) Code {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such prefix"), strings.Contains(msg, "unknown prefix"):
		return CodeUnknownPrefix
	case strings.Contains(msg, "bad range"), strings.Contains(msg, "bad length"),
		strings.Contains(msg, "range not sorted"), strings.Contains(msg, "overlapping ranges"),
		strings.Contains(msg, "range boundaries out of order"), strings.Contains(msg, "negative length"):
		return CodeInvalidRange
	case strings.Contains(msg, "too large (maximum is "+strconv.Itoa(MaxBitfieldSize-1)+")"):
		return CodeBitPositionOverflow
	case strings.Contains(msg, "too large (maximum is "), strings.Contains(msg, "must specify a value since previous enum"):
		return CodeEnumValueOverflow
	default:
		return CodeUnresolvedReference
	}
}
