// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"fmt"
	"strconv"
	"strings"
)

// An inline command is stored as codeCommand, the raw command code, a
// parameter count, and that many parameter code units. Some command codes
// are families addressed by their high byte, with the low byte carrying a
// per-instance "special" value; see Charmap.lookupCommand.
//
// The two textual syntaxes differ only in separators and in when the
// special byte appears:
//
//	canonical: {NAME, special, p0, p1}   special always present
//	legacy:    {NAME special, p0, p1}    special omitted when zero

// stringVarPrefix marks the command family whose legacy syntax folds its
// leading value into the command code's low byte.
const stringVarPrefix = "STRVAR_"

// decodeCommand renders the command block starting at slice[0] (the
// codeCommand marker) and reports how many code units it spans. A block
// cut short by the end of the message degrades to literal hex escapes.
func decodeCommand(cm *Charmap, slice []uint16, format Format, diag *Diagnostics) (string, int) {
	if len(slice) < 2 {
		diag.Warnf("stray command code 0x%04X with no following data", codeCommand)
		return `\xFFFE`, 1
	}
	raw := slice[1]

	if len(slice) < 3 {
		diag.Warnf("command code 0x%04X with no parameter count", raw)
		return fmt.Sprintf(`\xFFFE\x%04X`, raw), 2
	}
	paramCount := int(slice[2])
	skip := 3 + paramCount

	if len(slice) < skip {
		diag.Warnf("command code 0x%04X expects %d parameters, found %d", raw, paramCount, len(slice)-3)
		return fmt.Sprintf(`\xFFFE\x%04X\x%04X`, raw, slice[2]), skip
	}
	params := slice[3:skip]

	name, special, known := cm.lookupCommand(raw)
	if !known {
		diag.Warnf("unknown command code 0x%04X", raw)
		name = fmt.Sprintf("0x%04X", raw)
	}

	return renderCommand(name, special, params, format), skip
}

func renderCommand(name string, special uint16, params []uint16, format Format) string {
	values := make([]string, 0, len(params)+1)
	if format != FormatLegacy || special != 0 {
		values = append(values, strconv.Itoa(int(special)))
	}
	for _, p := range params {
		values = append(values, strconv.Itoa(int(p)))
	}

	if format == FormatLegacy {
		// The reference tool separates the name from the first value
		// with a space, and keeps the space even with no values.
		return fmt.Sprintf("{%s %s}", name, strings.Join(values, ", "))
	}
	return fmt.Sprintf("{%s, %s}", name, strings.Join(values, ", "))
}

// encodeCommand parses the canonical comma-separated command body (the
// text between braces) into code units.
func encodeCommand(cm *Charmap, body string, diag *Diagnostics) []uint16 {
	parts := strings.Split(body, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// A name and the special byte are the required minimum.
	if len(parts) < 2 {
		diag.Warnf("invalid command %q, inserting null code", body)
		return []uint16{0}
	}

	code := resolveCommandName(cm, parts[0], diag)
	code |= uint16(parseNumber(parts[1]))

	out := make([]uint16, 0, len(parts)+1)
	out = append(out, codeCommand, code, uint16(len(parts)-2))
	for _, p := range parts[2:] {
		out = append(out, uint16(parseNumber(p)))
	}
	return out
}

// encodeCommandLegacy parses the legacy command body: the name is
// separated from the values by whitespace, the values by commas, and a
// leading value is folded into the code only for the string-variable
// family.
func encodeCommandLegacy(cm *Charmap, body string, diag *Diagnostics) []uint16 {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		diag.Warnf("invalid command %q, inserting null code", body)
		return []uint16{0}
	}
	name := fields[0]

	var parts []string
	for _, field := range fields[1:] {
		for _, s := range strings.Split(field, ",") {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
	}

	code := resolveCommandName(cm, name, diag)

	params := parts
	if len(parts) > 0 && strings.HasPrefix(name, stringVarPrefix) {
		code |= uint16(parseNumber(parts[0]))
		params = parts[1:]
	}

	out := make([]uint16, 0, len(params)+3)
	out = append(out, codeCommand, code, uint16(len(params)))
	for _, p := range params {
		out = append(out, uint16(parseNumber(p)))
	}
	return out
}

// resolveCommandName reverse-looks-up a command name, falling back to
// parsing it as a literal number with a warning.
func resolveCommandName(cm *Charmap, name string, diag *Diagnostics) uint16 {
	if code, ok := cm.commandCode(name); ok {
		return code
	}
	code := uint16(parseNumber(name))
	diag.Warnf("unknown command name %q, using code 0x%04X", name, code)
	return code
}

// parseNumber parses a 0x-prefixed hex or decimal value, yielding 0 when
// the text is not a number.
func parseNumber(s string) uint32 {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		v, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return 0
		}
		return uint32(v)
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
