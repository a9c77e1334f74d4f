// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/binary"
	"fmt"
)

// EncodeArchive builds the binary form of an archive: header, masked
// table, then the encrypted bodies laid out contiguously in message
// order. The output is canonical; an original archive with gaps between
// bodies decodes to the same Archive but round-trips to this packed
// layout.
func EncodeArchive(cm *Charmap, a *Archive, format Format, diag *Diagnostics) ([]byte, error) {
	if len(a.Messages) > 0xFFFF {
		return nil, fmt.Errorf("too many messages: %d", len(a.Messages))
	}

	h := &rawHeader{
		Key:   a.Key,
		Table: make([]rawTableEntry, len(a.Messages)),
	}

	var bodies []uint16
	offset := uint32(headerSize + len(a.Messages)*tableEntrySize)

	for i, message := range a.Messages {
		codes := EncodeMessage(cm, message, format, diag)
		cryptMessageBody(codes, uint16(i+1))

		mask := tableEntryMask(uint32(i+1), a.Key)
		h.Table[i] = rawTableEntry{
			Offset: offset ^ mask,
			Length: uint32(len(codes)) ^ mask,
		}

		offset += uint32(len(codes) * 2)
		bodies = append(bodies, codes...)
	}

	out, err := packHeader(h)
	if err != nil {
		return nil, err
	}
	for _, code := range bodies {
		out = binary.LittleEndian.AppendUint16(out, code)
	}
	return out, nil
}
