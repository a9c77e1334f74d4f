// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/binary"
	"fmt"
)

// Archive is a decoded message archive: the global key and the messages
// in table order. The order is load-bearing; the position of a message is
// an input to both keystreams.
type Archive struct {
	Key      uint16
	Messages []string
}

// DecodeArchive parses a binary message archive, unmasking the table,
// decrypting each body and transcoding it to text. Table entries are
// bounds-checked after unmasking; an entry reaching past the end of the
// archive fails with ErrMalformedArchive.
func DecodeArchive(cm *Charmap, data []byte, format Format, diag *Diagnostics) (*Archive, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	messages := make([]string, 0, len(h.Table))
	for i, entry := range h.Table {
		mask := tableEntryMask(uint32(i+1), h.Key)
		offset := entry.Offset ^ mask
		length := entry.Length ^ mask

		// Never trust file-provided offsets: length counts u16 units.
		end := uint64(offset) + uint64(length)*2
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("%w: message %d body ends at byte %d, archive has %d",
				ErrMalformedArchive, i+1, end, len(data))
		}

		codes := make([]uint16, length)
		for j := range codes {
			codes[j] = binary.LittleEndian.Uint16(data[int(offset)+j*2:])
		}
		cryptMessageBody(codes, uint16(i+1))

		messages = append(messages, DecodeMessage(cm, codes, format, diag))
	}

	return &Archive{Key: h.Key, Messages: messages}, nil
}
