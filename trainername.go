// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"fmt"
	"strings"
)

// Trainer names are stored as 9-bit character codes packed into 16-bit
// words. Each word carries 15 usable bits; the top bit stays 0 except
// where the terminator pattern reaches into it. A 9-bit value of
// trainerTerminator ends the stream. When the packed codes end exactly on
// a word boundary no in-block terminator is written: the message's outer
// 0xFFFF terminator doubles as one, since its low 9 bits are all set.

// decodeTrainerName renders the trainer name block starting at slice[0]
// (the codeTrainerName marker) and reports how many code units it spans.
// In the legacy syntax the block has no closing brace and runs to the end
// of the message.
func decodeTrainerName(cm *Charmap, slice []uint16, format Format) (string, int) {
	var sb strings.Builder
	if format == FormatLegacy {
		sb.WriteString("{TRNAME}")
	} else {
		sb.WriteString("{TRAINER_NAME:")
	}

	bit := uint(0)
	index := 1
	consumed := 1

	for index < len(slice) {
		code := (slice[index] >> bit) & trainerTerminator
		bit += 9

		if bit >= 15 {
			bit -= 15
			index++
			consumed++
			if bit != 0 && index < len(slice) {
				code |= (slice[index] << (9 - bit)) & trainerTerminator
			}
		}

		if code == trainerTerminator {
			break
		}

		if segment, ok := cm.decode[code]; ok {
			sb.WriteString(segment)
		} else {
			fmt.Fprintf(&sb, "0x%04X", code)
		}
	}

	if format != FormatLegacy {
		sb.WriteString("}")
	}

	// 1 for the marker plus every word the bit cursor touched.
	return sb.String(), 1 + consumed
}

// encodeTrainerName packs name into 9-bit codes behind a codeTrainerName
// marker. Characters without a mapping degrade to the null code.
func encodeTrainerName(cm *Charmap, name string, diag *Diagnostics) []uint16 {
	codes := []uint16{codeTrainerName}

	bit := uint(0)
	var current uint16

	for _, ch := range name {
		code, ok := cm.encode[string(ch)]
		if !ok {
			diag.Warnf("unknown character %q in trainer name, using null code", ch)
			code = 0
		}

		current |= (code & trainerTerminator) << bit
		bit += 9

		if bit >= 15 {
			codes = append(codes, current&0x7FFF)
			bit -= 15
			current = (code >> (9 - bit)) & trainerTerminator
		}
	}

	if bit > 0 {
		current |= 0xFFFF << bit
		codes = append(codes, current&0x7FFF)
	}

	return codes
}
