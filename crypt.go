// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

// The archive obfuscates its table and message bodies with two simple
// XOR keystreams, both keyed by the archive's 16-bit key and the 1-based
// message position. XOR makes each stream its own inverse, so the same
// functions serve both directions. This is obfuscation native to the
// format, not a security boundary; offsets and lengths still have to be
// bounds-checked after unmasking.

// tableEntryMask returns the 32-bit mask XORed over both the offset and
// length of the table entry at 1-based position index.
func tableEntryMask(index uint32, key uint16) uint32 {
	local := (765 * index * uint32(key)) & 0xFFFF
	return local | local<<16
}

// cryptMessageBody XORs the message body in place with the running
// keystream for the 1-based message position index.
func cryptMessageBody(codes []uint16, index uint16) {
	key := uint16(uint32(index) * 596947)
	for i := range codes {
		codes[i] ^= key
		key += 18749
	}
}
