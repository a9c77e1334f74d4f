// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableEntryMaskKnownValue(t *testing.T) {
	// 765 * 1 * 1 = 0x02FD, duplicated into both halves.
	assert.Equal(t, uint32(0x02FD02FD), tableEntryMask(1, 1))
	assert.Equal(t, uint32(0), tableEntryMask(1, 0))
}

func TestTableEntryMaskInvolutive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		index := uint32(rng.Intn(0x10000)) + 1
		key := uint16(rng.Intn(0x10000))
		entry := rawTableEntry{Offset: rng.Uint32(), Length: rng.Uint32()}

		mask := tableEntryMask(index, key)
		masked := rawTableEntry{Offset: entry.Offset ^ mask, Length: entry.Length ^ mask}
		unmasked := rawTableEntry{Offset: masked.Offset ^ mask, Length: masked.Length ^ mask}

		require.Equal(t, entry, unmasked, "index=%d key=%d", index, key)
	}
}

func TestCryptMessageBodyKnownKeystream(t *testing.T) {
	// Position 1: initial key 596947 mod 65536 = 0x1BD3, step 18749.
	codes := []uint16{0x0000, 0x0000, 0x0000}
	cryptMessageBody(codes, 1)
	assert.Equal(t, []uint16{0x1BD3, 0x6510, 0xAE4D}, codes)
}

func TestCryptMessageBodyInvolutive(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 200; trial++ {
		index := uint16(rng.Intn(0x10000))
		codes := make([]uint16, rng.Intn(64))
		for i := range codes {
			codes[i] = uint16(rng.Intn(0x10000))
		}
		original := append([]uint16{}, codes...)

		cryptMessageBody(codes, index)
		cryptMessageBody(codes, index)
		require.Equal(t, original, codes, "index=%d", index)
	}
}
