// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"fmt"
	"strconv"
	"strings"
)

// Format selects the textual surface syntax for commands, trainer names
// and the text-file key line.
type Format int

const (
	// FormatCanonical is the editor syntax: explicit special bytes,
	// closed trainer-name tags, and a key comment line in text files.
	FormatCanonical Format = iota

	// FormatLegacy matches the reference tool "msgenc": whitespace
	// between command name and first value, zero special bytes omitted,
	// unterminated trainer names, no key line.
	FormatLegacy
)

// trainerNamePrefix opens a canonical trainer name; the name runs to the
// closing brace.
const trainerNamePrefix = "TRAINER_NAME:"

// trainerNameLegacy opens a legacy trainer name; the name runs to the end
// of the message.
const trainerNameLegacy = "TRNAME"

// DecodeMessage converts one decrypted code sequence into text. Unknown
// codes degrade to \xNNNN placeholders with a warning; decoding never
// fails. Code units after the terminator are ignored with a warning.
func DecodeMessage(cm *Charmap, codes []uint16, format Format, diag *Diagnostics) string {
	var sb strings.Builder
	i := 0

scan:
	for i < len(codes) {
		code := codes[i]
		switch {
		case code == codeTerminator:
			break scan

		case code == codeCommand:
			text, skip := decodeCommand(cm, codes[i:], format, diag)
			sb.WriteString(text)
			i += skip

		case code == codeTrainerName:
			text, skip := decodeTrainerName(cm, codes[i:], format)
			sb.WriteString(text)
			i += skip

		default:
			if segment, ok := cm.decode[code]; ok {
				sb.WriteString(segment)
			} else {
				diag.Warnf("unknown character code 0x%04X at code unit %d", code, i)
				fmt.Fprintf(&sb, `\x%04X`, code)
			}
			i++
		}
	}

	if i+1 < len(codes) {
		diag.Warnf("ignoring %d code units after message terminator", len(codes)-(i+1))
	}

	return sb.String()
}

// EncodeMessage converts message text into a code sequence ending with
// the terminator. Unencodable input degrades to null codes with a
// warning; encoding never fails, so batch jobs always finish.
func EncodeMessage(cm *Charmap, text string, format Format, diag *Diagnostics) []uint16 {
	var codes []uint16
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		ch := runes[i]

		// Mapped single characters win over any syntax character.
		if code, ok := cm.encode[string(ch)]; ok {
			codes = append(codes, code)
			i++
			continue
		}

		switch ch {
		case '[':
			code, next := encodeAlias(cm, runes, i, diag)
			codes = append(codes, code)
			i = next

		case '\\':
			code, next := encodeEscape(cm, runes, i, diag)
			codes = append(codes, code)
			i = next

		case '{':
			end := i + 1
			for end < len(runes) && runes[end] != '}' {
				end++
			}
			if end == len(runes) {
				diag.Warnf("unmatched '{' in text, inserting null code")
				codes = append(codes, 0)
				i = end
				continue
			}
			body := string(runes[i+1 : end])
			i = end + 1

			switch {
			case body == "":
				diag.Warnf("empty command {}, inserting null code")
				codes = append(codes, 0)
			case strings.HasPrefix(body, trainerNamePrefix):
				codes = append(codes, encodeTrainerName(cm, body[len(trainerNamePrefix):], diag)...)
			case format == FormatLegacy && strings.HasPrefix(body, trainerNameLegacy):
				// The legacy block has no closing tag; the rest of the
				// message is the name.
				codes = append(codes, encodeTrainerName(cm, string(runes[i:]), diag)...)
				i = len(runes)
			case format == FormatLegacy:
				codes = append(codes, encodeCommandLegacy(cm, body, diag)...)
			default:
				codes = append(codes, encodeCommand(cm, body, diag)...)
			}

		default:
			diag.Warnf("unknown character %q, inserting null code", ch)
			codes = append(codes, 0)
			i++
		}
	}

	return append(codes, codeTerminator)
}

// encodeAlias scans a bracket-wrapped alias starting at runes[start] and
// returns its code and the next scan position.
func encodeAlias(cm *Charmap, runes []rune, start int, diag *Diagnostics) (uint16, int) {
	end := start + 1
	for end < len(runes) && runes[end] != ']' {
		end++
	}
	if end == len(runes) {
		diag.Warnf("unmatched '[' in text, inserting null code")
		return 0, end
	}

	alias := string(runes[start : end+1])
	if code, ok := cm.encode[alias]; ok {
		return code, end + 1
	}
	diag.Warnf("unknown alias %q, inserting null code", alias)
	return 0, end + 1
}

// encodeEscape scans a backslash escape starting at runes[start]: either
// \xNNNN with exactly four hex digits, or a two-character named escape
// present in the charmap.
func encodeEscape(cm *Charmap, runes []rune, start int, diag *Diagnostics) (uint16, int) {
	if start+1 >= len(runes) {
		diag.Warnf("incomplete escape sequence at end of text, inserting null code")
		return 0, start + 1
	}

	if runes[start+1] == 'x' {
		digits := runes[start+2:]
		if len(digits) > 4 {
			digits = digits[:4]
		}
		next := start + 2 + len(digits)
		if len(digits) < 4 {
			diag.Warnf("incomplete hex escape sequence, inserting null code")
			return 0, next
		}
		code, err := strconv.ParseUint(string(digits), 16, 16)
		if err != nil {
			diag.Warnf("invalid escape sequence \\x%s, inserting null code", string(digits))
			return 0, next
		}
		return uint16(code), next
	}

	escape := `\` + string(runes[start+1])
	if code, ok := cm.encode[escape]; ok {
		return code, start + 2
	}
	diag.Warnf("unknown escape sequence %q, inserting null code", escape)
	return 0, start + 2
}
