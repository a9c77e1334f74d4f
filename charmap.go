// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package msgdata

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Charmap holds the three mappings between text segments, 16-bit codes
// and command names. It is built once and never mutated afterwards, so a
// single Charmap can be shared across concurrent conversions.
type Charmap struct {
	encode   map[string]uint16 // text segment -> code
	decode   map[uint16]string // code -> text segment (characters only)
	commands map[uint16]string // code -> command name
	names    map[string]uint16 // command name -> code
}

// charmapXML mirrors the charmap file layout:
//
//	<charmap>
//	  <header><description>...</description><version>...</version></header>
//	  <entry code="0041" kind="char">A</entry>
//	  <entry code="E001" kind="alias">[PKMN]</entry>
//	  <entry code="0100" kind="command">STRVAR_1</entry>
//	</charmap>
type charmapXML struct {
	XMLName xml.Name `xml:"charmap"`
	Header  struct {
		Description string `xml:"description"`
		Version     string `xml:"version"`
	} `xml:"header"`
	Entries []charmapEntryXML `xml:"entry"`
}

type charmapEntryXML struct {
	Code    string `xml:"code,attr"`
	Kind    string `xml:"kind,attr"`
	Content string `xml:",chardata"`
}

// LoadCharmap reads and parses a charmap file.
func LoadCharmap(path string, diag *Diagnostics) (*Charmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read charmap: %w", err)
	}
	cm, err := ParseCharmap(data, diag)
	if err != nil {
		return nil, fmt.Errorf("parse charmap %s: %w", path, err)
	}
	return cm, nil
}

// ParseCharmap builds a Charmap from charmap XML. Duplicate keys resolve
// first-write-wins with a warning; a char or alias whose text is neither
// a single character, a bracket-wrapped run, nor a two-character escape
// is rejected.
func ParseCharmap(data []byte, diag *Diagnostics) (*Charmap, error) {
	var doc charmapXML
	if err := xml.Unmarshal(stripBOM(data), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal XML: %w", err)
	}

	cm := &Charmap{
		encode:   make(map[string]uint16, len(doc.Entries)),
		decode:   make(map[uint16]string, len(doc.Entries)),
		commands: make(map[uint16]string),
		names:    make(map[string]uint16),
	}

	for _, e := range doc.Entries {
		code64, err := strconv.ParseUint(strings.TrimSpace(e.Code), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("entry code %q: %w", e.Code, err)
		}
		code := uint16(code64)

		switch e.Kind {
		case "char":
			if err := validateSegment(e.Content); err != nil {
				return nil, fmt.Errorf("char entry %04X: %w", code, err)
			}
			cm.addEncode(e.Content, code, diag)
			cm.addDecode(code, e.Content, diag)
		case "alias":
			if err := validateSegment(e.Content); err != nil {
				return nil, fmt.Errorf("alias entry %04X: %w", code, err)
			}
			cm.addEncode(e.Content, code, diag)
		case "command":
			if e.Content == "" {
				return nil, fmt.Errorf("command entry %04X has no name", code)
			}
			if _, dup := cm.commands[code]; dup {
				diag.Warnf("duplicate command code 0x%04X, keeping %q", code, cm.commands[code])
				continue
			}
			cm.commands[code] = e.Content
			if _, dup := cm.names[e.Content]; !dup {
				cm.names[e.Content] = code
			}
		default:
			diag.Warnf("unknown entry kind %q for code 0x%04X", e.Kind, code)
		}
	}

	return cm, nil
}

// validateSegment enforces the shape of encodable text segments: exactly
// one character, a full bracket-wrapped alias run, or a two-character
// backslash escape.
func validateSegment(s string) error {
	if s == "" {
		return fmt.Errorf("empty text segment")
	}
	if utf8.RuneCountInString(s) == 1 {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") || strings.ContainsAny(s[1:len(s)-1], "[]") {
			return fmt.Errorf("alias %q is not a single bracket run", s)
		}
		return nil
	}
	if strings.HasPrefix(s, `\`) && utf8.RuneCountInString(s) == 2 {
		return nil
	}
	return fmt.Errorf("multi-character segment %q must be bracket-wrapped", s)
}

func (cm *Charmap) addEncode(segment string, code uint16, diag *Diagnostics) {
	if prior, dup := cm.encode[segment]; dup {
		diag.Warnf("duplicate text segment %q, keeping code 0x%04X over 0x%04X", segment, prior, code)
		return
	}
	cm.encode[segment] = code
}

func (cm *Charmap) addDecode(code uint16, segment string, diag *Diagnostics) {
	if prior, dup := cm.decode[code]; dup {
		diag.Warnf("duplicate character code 0x%04X, keeping %q over %q", code, prior, segment)
		return
	}
	cm.decode[code] = segment
}

// lookupCommand resolves a raw command code. An exact match wins; failing
// that, a match on the high byte alone treats the low byte as the
// instance-specific special value. known is false when neither form is
// mapped.
func (cm *Charmap) lookupCommand(raw uint16) (name string, special uint16, known bool) {
	if name, ok := cm.commands[raw]; ok {
		return name, 0, true
	}
	if name, ok := cm.commands[raw&0xFF00]; ok {
		return name, raw & 0x00FF, true
	}
	return "", 0, false
}

// commandCode reverse-looks-up a command name.
func (cm *Charmap) commandCode(name string) (uint16, bool) {
	code, ok := cm.names[name]
	return code, ok
}
