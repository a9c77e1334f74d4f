// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import "fmt"

// Diagnostics collects recoverable warnings emitted while transcoding:
// unknown characters or codes, incomplete escapes, unmatched brackets.
// Each codec call appends to the collector it is given; the caller decides
// where the warnings go. A nil *Diagnostics discards all warnings.
//
// A Diagnostics value is not safe for concurrent use. Callers running
// conversions in parallel should give each conversion its own collector.
type Diagnostics struct {
	warnings []string
}

// Warnf records one warning.
func (d *Diagnostics) Warnf(format string, args ...any) {
	if d == nil {
		return
	}
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the recorded warnings in emission order.
func (d *Diagnostics) Warnings() []string {
	if d == nil {
		return nil
	}
	return d.warnings
}

// Len returns the number of recorded warnings.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.warnings)
}
