// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"
)

// Binary layout constants. All values are little-endian.
const (
	// codeTerminator ends every message body.
	codeTerminator = 0xFFFF

	// codeCommand introduces an inline command block.
	codeCommand = 0xFFFE

	// codeTrainerName introduces a bit-packed trainer name block.
	codeTrainerName = 0xF100

	// trainerTerminator ends the 9-bit stream inside a trainer name
	// block. The low 9 bits of codeTerminator equal it, so an outer
	// terminator also stops the stream.
	trainerTerminator = 0x1FF

	headerSize     = 4 // u16 message count + u16 key
	tableEntrySize = 8 // u32 masked offset + u32 masked length
)

// rawTableEntry is one masked message table entry as stored on disk.
// Offset is a byte offset from the start of the archive; Length counts
// 16-bit code units, not bytes.
type rawTableEntry struct {
	Offset uint32
	Length uint32
}

// rawHeader is the archive prologue: the header pair followed by the
// masked message table.
type rawHeader struct {
	MessageCount uint16 `struct:"uint16,sizeof=Table"`
	Key          uint16
	Table        []rawTableEntry
}

// parseHeader unpacks the header and masked table, validating that the
// archive is long enough to hold them.
func parseHeader(data []byte) (*rawHeader, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a header", ErrMalformedArchive, len(data))
	}

	count := int(binary.LittleEndian.Uint16(data[0:2]))
	tableEnd := headerSize + count*tableEntrySize
	if len(data) < tableEnd {
		return nil, fmt.Errorf("%w: table of %d entries needs %d bytes, archive has %d",
			ErrMalformedArchive, count, tableEnd, len(data))
	}

	h := &rawHeader{}
	if err := restruct.Unpack(data[:tableEnd], binary.LittleEndian, h); err != nil {
		return nil, fmt.Errorf("%w: unpack header: %v", ErrMalformedArchive, err)
	}
	return h, nil
}

// packHeader serializes the header and masked table.
func packHeader(h *rawHeader) ([]byte, error) {
	data, err := restruct.Pack(binary.LittleEndian, h)
	if err != nil {
		return nil, fmt.Errorf("pack header: %w", err)
	}
	return data, nil
}
