// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/suprsokr/go-msgdata"
	"github.com/suprsokr/go-msgdata/batch"
)

var decodeOpts struct {
	charmap    string
	archives   []string
	archiveDir string
	texts      []string
	textDir    string
	json       bool
	lang       string
	newer      bool
	msgenc     bool
	workers    int
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode binary message archives to text or JSON",
	Long: `Decode binary message archives to editable text files, or to JSON
translation documents holding one column per language. Output names are
derived from the archive name: archive 0100 becomes 0100.txt or
0100.json.`,
	RunE: runDecode,
}

func init() {
	f := decodeCmd.Flags()
	f.StringVarP(&decodeOpts.charmap, "charmap", "m", "", "charmap XML file (required)")
	f.StringSliceVarP(&decodeOpts.archives, "archive", "b", nil, "archive file to decode (repeatable)")
	f.StringVarP(&decodeOpts.archiveDir, "archive-dir", "a", "", "decode every file in this directory")
	f.StringSliceVarP(&decodeOpts.texts, "txt", "t", nil, "output file, one per --archive")
	f.StringVarP(&decodeOpts.textDir, "text-dir", "d", "", "directory for derived output names")
	f.BoolVarP(&decodeOpts.json, "json", "j", false, "write JSON translation documents")
	f.StringVarP(&decodeOpts.lang, "lang", "l", "en_US", "language column for JSON documents")
	f.BoolVarP(&decodeOpts.newer, "newer", "n", false, "skip pairs whose output is up to date")
	f.BoolVar(&decodeOpts.msgenc, "msgenc", false, "use the legacy msgenc text syntax")
	f.IntVar(&decodeOpts.workers, "workers", 0, "concurrent conversions (0 = one per CPU)")
	decodeCmd.MarkFlagRequired("charmap")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	if decodeOpts.archiveDir != "" && len(decodeOpts.texts) > 0 {
		return errors.New("--txt cannot be combined with --archive-dir, use --text-dir")
	}

	diag := &msgdata.Diagnostics{}
	cm, err := msgdata.LoadCharmap(decodeOpts.charmap, diag)
	if err != nil {
		return err
	}
	warnCharmap(decodeOpts.charmap, diag)

	inputs, err := collectInputs(decodeOpts.archives, decodeOpts.archiveDir)
	if err != nil {
		return err
	}

	ext := ".txt"
	if decodeOpts.json {
		ext = ".json"
	}
	pairs, err := buildPairs(inputs, decodeOpts.texts, decodeOpts.textDir, func(in string) string {
		return stem(in) + ext
	})
	if err != nil {
		return err
	}

	return report(batch.Run(cm, batch.Decode, pairs, batch.Options{
		JSON:        decodeOpts.json,
		Lang:        decodeOpts.lang,
		Legacy:      decodeOpts.msgenc,
		OnlyIfNewer: decodeOpts.newer,
		Workers:     decodeOpts.workers,
	}))
}
