// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import "errors"

var (
	// ErrMalformedArchive reports a structurally invalid binary archive:
	// a truncated header or table, or a table entry whose unmasked
	// offset/length points outside the archive. It is fatal for the
	// affected file only.
	ErrMalformedArchive = errors.New("malformed archive")

	// ErrMissingLanguage reports a JSON record that carries neither the
	// requested language nor the en_US fallback.
	ErrMissingLanguage = errors.New("language not found")
)
