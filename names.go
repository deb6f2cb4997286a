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
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Custom names are URL-safe: no spaces allowed.
	reUnsafeCustom = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	// Derived names keep spaces so the download stays recognizable.
	// The asymmetry with custom names is intentional and load-bearing
	// for compatibility with existing clients.
	reUnsafeDerived = regexp.MustCompile(`[^a-zA-Z0-9_\- ]`)
)

// fallbackBaseName is used when sanitization leaves nothing behind.
const fallbackBaseName = "file"

// ResolveBaseName derives the output file's base name. A non-empty custom
// name wins over the name derived from originalName; both are sanitized, each
// with its own character class. The result is never empty.
func ResolveBaseName(originalName, customName string) string {
	if custom := strings.TrimSpace(customName); custom != "" {
		base := reUnsafeCustom.ReplaceAllString(custom, "_")
		if base == "" {
			return fallbackBaseName
		}
		return base
	}

	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	base = reUnsafeDerived.ReplaceAllString(base, "_")
	if strings.TrimSpace(base) == "" {
		return fallbackBaseName
	}
	return base
}
