// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCharmapXML = `<?xml version="1.0" encoding="UTF-8"?>
<charmap>
  <header>
    <description>test charmap</description>
    <version>1</version>
  </header>
  <entry code="0041" kind="char">A</entry>
  <entry code="0042" kind="char">B</entry>
  <entry code="E000" kind="char">\n</entry>
  <entry code="01E0" kind="alias">[PKMN]</entry>
  <entry code="1200" kind="command">MOVE</entry>
  <entry code="2000" kind="command">STRVAR_1</entry>
</charmap>
`

func TestParseCharmap(t *testing.T) {
	diag := &Diagnostics{}
	cm, err := ParseCharmap([]byte(sampleCharmapXML), diag)
	require.NoError(t, err)
	assert.Zero(t, diag.Len(), "warnings: %v", diag.Warnings())

	assert.Equal(t, uint16(0x0041), cm.encode["A"])
	assert.Equal(t, "B", cm.decode[0x0042])
	assert.Equal(t, uint16(0xE000), cm.encode[`\n`])

	// Aliases encode but never decode as characters.
	assert.Equal(t, uint16(0x01E0), cm.encode["[PKMN]"])
	_, ok := cm.decode[0x01E0]
	assert.False(t, ok)

	code, ok := cm.commandCode("MOVE")
	require.True(t, ok)
	assert.Equal(t, uint16(0x1200), code)
}

func TestParseCharmapStripsBOM(t *testing.T) {
	data := append([]byte("\xEF\xBB\xBF"), sampleCharmapXML...)
	_, err := ParseCharmap(data, nil)
	require.NoError(t, err)
}

func TestParseCharmapDuplicateFirstWins(t *testing.T) {
	xml := `<charmap>
  <entry code="0041" kind="char">A</entry>
  <entry code="0041" kind="char">B</entry>
  <entry code="0050" kind="char">A</entry>
</charmap>`

	diag := &Diagnostics{}
	cm, err := ParseCharmap([]byte(xml), diag)
	require.NoError(t, err)

	// Both the duplicate code and the duplicate segment warn, and the
	// first entry wins in both directions.
	assert.Equal(t, 2, diag.Len())
	assert.Equal(t, "A", cm.decode[0x0041])
	assert.Equal(t, uint16(0x0041), cm.encode["A"])
}

func TestParseCharmapErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"not XML", `{"code": 65}`},
		{"bad code", `<charmap><entry code="ZZZZ" kind="char">A</entry></charmap>`},
		{"empty segment", `<charmap><entry code="0041" kind="char"></entry></charmap>`},
		{"multi-char segment", `<charmap><entry code="0041" kind="char">AB</entry></charmap>`},
		{"broken alias", `<charmap><entry code="0041" kind="alias">[PK[MN]</entry></charmap>`},
		{"unnamed command", `<charmap><entry code="0100" kind="command"></entry></charmap>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCharmap([]byte(tt.xml), nil)
			assert.Error(t, err)
		})
	}
}

func TestParseCharmapUnknownKind(t *testing.T) {
	xml := `<charmap><entry code="0041" kind="sticker">A</entry></charmap>`

	diag := &Diagnostics{}
	cm, err := ParseCharmap([]byte(xml), diag)
	require.NoError(t, err)
	assert.Equal(t, 1, diag.Len())
	assert.Empty(t, cm.encode)
}

func TestValidateSegment(t *testing.T) {
	for _, s := range []string{"A", "é", "[PKMN]", "[X]", `\n`, `\x`} {
		assert.NoError(t, validateSegment(s), "segment %q", s)
	}
	for _, s := range []string{"", "AB", "[unclosed", "[a][b]", `\abc`} {
		assert.Error(t, validateSegment(s), "segment %q", s)
	}
}

func TestLoadCharmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charmap.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCharmapXML), 0644))

	cm, err := LoadCharmap(path, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0041), cm.encode["A"])
}

func TestLoadCharmapMissingFile(t *testing.T) {
	_, err := LoadCharmap(filepath.Join(t.TempDir(), "nope.xml"), nil)
	assert.Error(t, err)
}

func TestLookupCommand(t *testing.T) {
	cm := testCharmap()

	name, special, known := cm.lookupCommand(0x1200)
	require.True(t, known)
	assert.Equal(t, "MOVE", name)
	assert.Equal(t, uint16(0), special)

	name, special, known = cm.lookupCommand(0x1234)
	require.True(t, known)
	assert.Equal(t, "MOVE", name)
	assert.Equal(t, uint16(0x34), special)

	_, _, known = cm.lookupCommand(0x9999)
	assert.False(t, known)
}
