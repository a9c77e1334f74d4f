// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// fallbackLanguage is consulted when a record lacks the requested
// language.
const fallbackLanguage = "en_US"

// jsonArchive is the translation document written next to each archive:
//
//	{
//	  "key": 1234,
//	  "messages": [
//	    {"id": "msg_name_00000", "en_US": "...", "de_DE": ["...", "..."]}
//	  ]
//	}
type jsonArchive struct {
	Key      uint16        `json:"key"`
	Messages []jsonMessage `json:"messages"`
}

// jsonMessage is one record: a derived id plus per-language content.
type jsonMessage struct {
	ID    string
	Langs map[string]messageText
}

// MarshalJSON writes the id first and the languages in sorted order, so
// repeated runs produce byte-identical files.
func (m jsonMessage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)

	idJSON, err := json.Marshal(m.ID)
	if err != nil {
		return nil, err
	}
	buf.Write(idJSON)

	langs := make([]string, 0, len(m.Langs))
	for lang := range m.Langs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		key, err := json.Marshal(lang)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.Langs[lang])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *jsonMessage) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if idRaw, ok := raw["id"]; ok {
		if err := json.Unmarshal(idRaw, &m.ID); err != nil {
			return fmt.Errorf("message id: %w", err)
		}
		delete(raw, "id")
	}

	m.Langs = make(map[string]messageText, len(raw))
	for lang, value := range raw {
		var content messageText
		if err := json.Unmarshal(value, &content); err != nil {
			return fmt.Errorf("message %q, language %q: %w", m.ID, lang, err)
		}
		m.Langs[lang] = content
	}
	return nil
}

// messageText is one language's content: either the whole message as a
// string, or the message split into lines after each \n, \r, \f marker.
// The markers are escape text, part of the message, not control
// characters; joining the lines reconstructs the message exactly.
type messageText struct {
	lines []string
	multi bool
}

func (m messageText) MarshalJSON() ([]byte, error) {
	if !m.multi {
		return json.Marshal(m.join())
	}
	return json.Marshal(m.lines)
}

func (m *messageText) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = messageText{lines: []string{single}}
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("content must be a string or an array of strings: %w", err)
	}
	*m = messageText{lines: lines, multi: true}
	return nil
}

func (m messageText) join() string {
	return strings.Join(m.lines, "")
}

// splitMessage breaks a message into lines right after each two-character
// \n, \r or \f marker. A message that yields a single line stays a plain
// string.
func splitMessage(message string) messageText {
	var lines []string
	var current strings.Builder
	var prev rune

	for _, ch := range message {
		current.WriteRune(ch)
		if prev == '\\' && (ch == 'n' || ch == 'r' || ch == 'f') {
			lines = append(lines, current.String())
			current.Reset()
			prev = 0
			continue
		}
		prev = ch
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	if len(lines) <= 1 {
		return messageText{lines: []string{message}}
	}
	return messageText{lines: lines, multi: true}
}

// messageID derives the stable record id for the message at index.
func messageID(archiveName string, index int) string {
	return fmt.Sprintf("msg_%s_%05d", archiveName, index)
}

// WriteJSON renders the archive as a translation document for one
// language. Records already present in existing (a previous version of
// the same file, may be nil) keep their other languages; records whose
// ids no longer appear in the archive are preserved at the end, in their
// prior order, so a reshuffled archive cannot drop another run's data.
func WriteJSON(a *Archive, archiveName, lang string, existing []byte) ([]byte, error) {
	var prior []jsonMessage
	if len(existing) > 0 {
		var doc jsonArchive
		if err := json.Unmarshal(stripBOM(existing), &doc); err == nil {
			prior = doc.Messages
		}
	}
	priorByID := make(map[string]jsonMessage, len(prior))
	for _, m := range prior {
		if _, dup := priorByID[m.ID]; !dup {
			priorByID[m.ID] = m
		}
	}

	out := jsonArchive{
		Key:      a.Key,
		Messages: make([]jsonMessage, 0, len(a.Messages)),
	}
	seen := make(map[string]bool, len(a.Messages))

	for i, message := range a.Messages {
		id := messageID(archiveName, i)
		seen[id] = true

		record, ok := priorByID[id]
		if !ok {
			record = jsonMessage{ID: id, Langs: make(map[string]messageText, 1)}
		}
		record.Langs[lang] = splitMessage(message)
		out.Messages = append(out.Messages, record)
	}

	// Keep records from other runs whose ids vanished from the archive.
	for _, m := range prior {
		if !seen[m.ID] {
			seen[m.ID] = true
			out.Messages = append(out.Messages, m)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadJSON parses a translation document and selects one language per
// record, falling back to en_US. A record carrying neither fails with
// ErrMissingLanguage.
func ReadJSON(data []byte, lang string) (*Archive, error) {
	var doc jsonArchive
	if err := json.Unmarshal(stripBOM(data), &doc); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	a := &Archive{
		Key:      doc.Key,
		Messages: make([]string, 0, len(doc.Messages)),
	}
	for _, m := range doc.Messages {
		content, ok := m.Langs[lang]
		if !ok {
			content, ok = m.Langs[fallbackLanguage]
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q in message %s", ErrMissingLanguage, lang, m.ID)
		}
		a.Messages = append(a.Messages, content.join())
	}
	return a, nil
}
