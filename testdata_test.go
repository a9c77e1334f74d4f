// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

// testCharmap builds a small in-memory charmap shared by the codec tests.
// Letters and digits sit at their ASCII codes, which keeps them inside
// the 9-bit range trainer names require.
func testCharmap() *Charmap {
	cm := &Charmap{
		encode:   make(map[string]uint16),
		decode:   make(map[uint16]string),
		commands: make(map[uint16]string),
		names:    make(map[string]uint16),
	}

	for ch := 'A'; ch <= 'Z'; ch++ {
		cm.encode[string(ch)] = uint16(ch)
		cm.decode[uint16(ch)] = string(ch)
	}
	for ch := 'a'; ch <= 'z'; ch++ {
		cm.encode[string(ch)] = uint16(ch)
		cm.decode[uint16(ch)] = string(ch)
	}
	for ch := '0'; ch <= '9'; ch++ {
		cm.encode[string(ch)] = uint16(ch)
		cm.decode[uint16(ch)] = string(ch)
	}
	cm.encode[" "] = 0x0020
	cm.decode[0x0020] = " "
	cm.encode["!"] = 0x0021
	cm.decode[0x0021] = "!"

	// Named escapes render as literal two-character sequences.
	cm.encode[`\n`] = 0xE000
	cm.decode[0xE000] = `\n`
	cm.encode[`\r`] = 0xE001
	cm.decode[0xE001] = `\r`
	cm.encode[`\f`] = 0xE002
	cm.decode[0xE002] = `\f`

	cm.encode["[PKMN]"] = 0x01E0
	cm.decode[0x01E0] = "[PKMN]"

	for code, name := range map[uint16]string{
		0x0100: "TRAINER",
		0x1200: "MOVE",
		0x2000: "STRVAR_1",
	} {
		cm.commands[code] = name
		cm.names[name] = code
	}

	return cm
}
