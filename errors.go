// Copyright 2026 OmniConvert Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package omniconvert

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedPairError is returned when no strategy chain exists for a
// (category, source, target) combination. It is a client-side error and is
// never retried.
type UnsupportedPairError struct {
	SourceExt string
	Target    string
	Category  Category
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("unsupported conversion pair %s -> %s (category %s)",
		e.SourceExt, e.Target, e.Category)
}

// CollaboratorError wraps a failed collaborator invocation together with the
// user-facing message the boundary should expose for it.
type CollaboratorError struct {
	Message string
	Err     error
}

func (e *CollaboratorError) Error() string {
	if e.Err != nil {
		return e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Message
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// ResourceError is a filesystem-level failure (missing input, unwritable
// output). It short-circuits the remaining fallback chain: every strategy
// would fail the same way.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ConversionError is returned when every strategy in a non-empty chain was
// attempted and failed.
type ConversionError struct {
	Attempts []StrategyAttempt
}

func (e *ConversionError) Error() string {
	if len(e.Attempts) == 0 {
		return "conversion failed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "conversion failed after %d attempt(s):", len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "\n  %s: %v", a.Strategy, a.Err)
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error {
	if len(e.Attempts) > 0 {
		return e.Attempts[len(e.Attempts)-1].Err
	}
	return nil
}

// IsUnsupportedPair reports whether the error is an UnsupportedPairError.
func IsUnsupportedPair(err error) bool {
	var target *UnsupportedPairError
	return errors.As(err, &target)
}

// IsResourceFailure reports whether the error is a ResourceError.
func IsResourceFailure(err error) bool {
	var target *ResourceError
	return errors.As(err, &target)
}
