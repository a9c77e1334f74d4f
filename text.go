// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"fmt"
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// keyLinePrefix introduces the archive key in canonical text files.
const keyLinePrefix = "// Key: "

// WriteText renders the archive as UTF-8 text, one message per line in
// index order with a trailing newline. Canonical output opens with the
// key comment line; the legacy syntax has no way to carry the key.
func WriteText(a *Archive, format Format) []byte {
	var sb strings.Builder
	if format != FormatLegacy {
		fmt.Fprintf(&sb, "%s0x%04X\n", keyLinePrefix, a.Key)
	}
	for _, message := range a.Messages {
		sb.WriteString(message)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// ReadText parses a text file back into an archive. A line starting with
// keyLinePrefix sets the key; other //-prefixed lines are comments and
// dropped; every remaining line is one message.
func ReadText(data []byte) *Archive {
	a := &Archive{}

	lines := strings.Split(string(stripBOM(data)), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		if rest, ok := strings.CutPrefix(line, keyLinePrefix); ok {
			a.Key = uint16(parseNumber(strings.TrimSpace(rest)))
			continue
		}
		if strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "//") {
			continue
		}
		a.Messages = append(a.Messages, line)
	}

	return a
}

// stripBOM removes a leading UTF-8 byte order mark, which some editors
// prepend to text and JSON files.
func stripBOM(data []byte) []byte {
	out, _, err := transform.Bytes(xunicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return data
	}
	return out
}
