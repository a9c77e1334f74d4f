// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONLayout(t *testing.T) {
	a := &Archive{Key: 5, Messages: []string{"Hi"}}

	out, err := WriteJSON(a, "test", "en_US", nil)
	require.NoError(t, err)

	want := `{
  "key": 5,
  "messages": [
    {
      "id": "msg_test_00000",
      "en_US": "Hi"
    }
  ]
}
`
	assert.Equal(t, want, string(out))
}

func TestWriteJSONSplitsLines(t *testing.T) {
	a := &Archive{Key: 0, Messages: []string{`One\nTwo\fThree`}}

	out, err := WriteJSON(a, "x", "en_US", nil)
	require.NoError(t, err)

	back, err := ReadJSON(out, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []string{`One\nTwo\fThree`}, back.Messages)

	// The split is visible in the document itself.
	assert.Contains(t, string(out), `"One\\n",`)
}

func TestWriteJSONIdempotent(t *testing.T) {
	a := &Archive{Key: 0x0101, Messages: []string{"First", `Two\nlines`}}

	first, err := WriteJSON(a, "story", "en_US", nil)
	require.NoError(t, err)

	second, err := WriteJSON(a, "story", "en_US", first)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestWriteJSONMergesLanguages(t *testing.T) {
	english := &Archive{Key: 7, Messages: []string{"Hello", "Bye"}}
	german := &Archive{Key: 7, Messages: []string{"Hallo", "Tschau"}}

	out, err := WriteJSON(english, "greet", "en_US", nil)
	require.NoError(t, err)
	out, err = WriteJSON(german, "greet", "de_DE", out)
	require.NoError(t, err)

	en, err := ReadJSON(out, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "Bye"}, en.Messages)

	de, err := ReadJSON(out, "de_DE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hallo", "Tschau"}, de.Messages)
}

func TestWriteJSONOverwritesCurrentLanguageOnly(t *testing.T) {
	v1 := &Archive{Key: 1, Messages: []string{"Old"}}
	v2 := &Archive{Key: 1, Messages: []string{"New"}}

	out, err := WriteJSON(v1, "a", "en_US", nil)
	require.NoError(t, err)
	out, err = WriteJSON(v1, "a", "de_DE", out)
	require.NoError(t, err)
	out, err = WriteJSON(v2, "a", "en_US", out)
	require.NoError(t, err)

	en, err := ReadJSON(out, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []string{"New"}, en.Messages)

	de, err := ReadJSON(out, "de_DE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Old"}, de.Messages)
}

func TestWriteJSONKeepsOrphanedRecords(t *testing.T) {
	// When the archive shrinks, records for the vanished ids stay at the
	// end of the document in their prior order.
	big := &Archive{Key: 2, Messages: []string{"One", "Two", "Three"}}
	small := &Archive{Key: 2, Messages: []string{"Uno"}}

	out, err := WriteJSON(big, "a", "en_US", nil)
	require.NoError(t, err)
	out, err = WriteJSON(small, "a", "de_DE", out)
	require.NoError(t, err)

	en, err := ReadJSON(out, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two", "Three"}, en.Messages)

	de, err := ReadJSON(out, "de_DE")
	require.NoError(t, err)
	// Records 1 and 2 carry no de_DE content and fall back to en_US.
	assert.Equal(t, []string{"Uno", "Two", "Three"}, de.Messages)
}

func TestWriteJSONIgnoresCorruptExisting(t *testing.T) {
	a := &Archive{Key: 3, Messages: []string{"Hi"}}

	out, err := WriteJSON(a, "b", "en_US", []byte("not json at all"))
	require.NoError(t, err)

	back, err := ReadJSON(out, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi"}, back.Messages)
}

func TestReadJSONFallback(t *testing.T) {
	doc := []byte(`{
  "key": 9,
  "messages": [
    {"id": "msg_a_00000", "en_US": "Hello", "de_DE": "Hallo"}
  ]
}`)

	a, err := ReadJSON(doc, "fr_FR")
	require.NoError(t, err)
	assert.Equal(t, uint16(9), a.Key)
	assert.Equal(t, []string{"Hello"}, a.Messages)
}

func TestReadJSONMissingLanguage(t *testing.T) {
	doc := []byte(`{
  "key": 0,
  "messages": [
    {"id": "msg_a_00000", "ja_JP": "こんにちは"}
  ]
}`)

	_, err := ReadJSON(doc, "de_DE")
	require.ErrorIs(t, err, ErrMissingLanguage)
	assert.Contains(t, err.Error(), "msg_a_00000")
}

func TestReadJSONArrayContent(t *testing.T) {
	doc := []byte(`{
  "key": 0,
  "messages": [
    {"id": "msg_a_00000", "en_US": ["Line\\n", "Two"]}
  ]
}`)

	a, err := ReadJSON(doc, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []string{`Line\nTwo`}, a.Messages)
}

func TestReadJSONBOM(t *testing.T) {
	doc := append([]byte("\xEF\xBB\xBF"), `{"key": 1, "messages": []}`...)
	a, err := ReadJSON(doc, "en_US")
	require.NoError(t, err)
	assert.Equal(t, uint16(1), a.Key)
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON([]byte("{"), "en_US")
	assert.Error(t, err)
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		lines   []string
		multi   bool
	}{
		{"plain", "Hello", []string{"Hello"}, false},
		{"empty", "", []string{""}, false},
		{"two lines", `One\nTwo`, []string{`One\n`, "Two"}, true},
		{"trailing marker", `Only\n`, []string{`Only\n`}, false},
		{"all markers", `A\rB\fC`, []string{`A\r`, `B\f`, "C"}, true},
		{"double backslash", `A\\nB`, []string{`A\\n`, "B"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMessage(tt.message)
			assert.Equal(t, tt.lines, got.lines)
			assert.Equal(t, tt.multi, got.multi)
		})
	}
}
