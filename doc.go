// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

/*
Package msgdata converts binary message archives, as used by the handheld
games' text engine, to and from human-editable text and JSON.

An archive holds an obfuscated table of messages sharing one 16-bit key.
Each message is a sequence of 16-bit code units: character and alias
codes, inline command blocks, and bit-packed trainer names. The table and
the bodies are XOR-masked with keystreams derived from the key and the
message position, so message order is part of the format.

# Basic Usage

Decoding an archive to text:

	diag := &msgdata.Diagnostics{}
	cm, err := msgdata.LoadCharmap("charmap.xml", diag)
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile("0100")
	if err != nil {
		log.Fatal(err)
	}
	archive, err := msgdata.DecodeArchive(cm, data, msgdata.FormatCanonical, diag)
	if err != nil {
		log.Fatal(err)
	}
	os.WriteFile("0100.txt", msgdata.WriteText(archive, msgdata.FormatCanonical), 0644)

Encoding is the mirror image: ReadText or ReadJSON, then EncodeArchive.

# Surface Syntaxes

Two textual syntaxes are supported. FormatCanonical is the editor syntax:
commands as {NAME, special, p0, p1} with the special byte always present,
trainer names as {TRAINER_NAME:name}, and a "// Key: 0xXXXX" comment line
carrying the archive key. FormatLegacy reproduces the conventions of the
reference tool "msgenc": {NAME special, p0, p1} with zero special bytes
omitted, {TRNAME} blocks that run to the end of the message, and no key
line.

# Diagnostics

Transcoding never fails on bad text: unknown characters, aliases and
escapes degrade to placeholder codes, unknown code units to \xNNNN
escapes, each with a warning recorded in the Diagnostics collector passed
to the call. Only structural damage to a binary archive (truncated
header, table entry pointing outside the file) is an error.

# Limitations

  - A legacy {TRNAME} block consumes the rest of its message; text after
    such a block in legacy input cannot be expressed.
  - Encoded output is always contiguous. An archive with gaps between
    message bodies decodes fine but does not round-trip byte-identically.
*/
package msgdata
