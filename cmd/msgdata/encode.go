// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/suprsokr/go-msgdata"
	"github.com/suprsokr/go-msgdata/batch"
)

var encodeOpts struct {
	charmap    string
	texts      []string
	textDir    string
	archives   []string
	archiveDir string
	json       bool
	lang       string
	newer      bool
	msgenc     bool
	workers    int
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode text or JSON back into binary message archives",
	Long: `Encode text files or JSON translation documents back into binary
message archives. Output names are derived by stripping the input
extension: 0100.txt becomes archive 0100.`,
	RunE: runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.StringVarP(&encodeOpts.charmap, "charmap", "m", "", "charmap XML file (required)")
	f.StringSliceVarP(&encodeOpts.texts, "txt", "t", nil, "text or JSON file to encode (repeatable)")
	f.StringVarP(&encodeOpts.textDir, "text-dir", "d", "", "encode every file in this directory")
	f.StringSliceVarP(&encodeOpts.archives, "archive", "b", nil, "output archive, one per --txt")
	f.StringVarP(&encodeOpts.archiveDir, "archive-dir", "a", "", "directory for derived archive names")
	f.BoolVarP(&encodeOpts.json, "json", "j", false, "read JSON translation documents")
	f.StringVarP(&encodeOpts.lang, "lang", "l", "en_US", "language column for JSON documents")
	f.BoolVarP(&encodeOpts.newer, "newer", "n", false, "skip pairs whose output is up to date")
	f.BoolVar(&encodeOpts.msgenc, "msgenc", false, "use the legacy msgenc text syntax")
	f.IntVar(&encodeOpts.workers, "workers", 0, "concurrent conversions (0 = one per CPU)")
	encodeCmd.MarkFlagRequired("charmap")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	if encodeOpts.textDir != "" && len(encodeOpts.archives) > 0 {
		return errors.New("--archive cannot be combined with --text-dir, use --archive-dir")
	}

	diag := &msgdata.Diagnostics{}
	cm, err := msgdata.LoadCharmap(encodeOpts.charmap, diag)
	if err != nil {
		return err
	}
	warnCharmap(encodeOpts.charmap, diag)

	inputs, err := collectInputs(encodeOpts.texts, encodeOpts.textDir)
	if err != nil {
		return err
	}

	pairs, err := buildPairs(inputs, encodeOpts.archives, encodeOpts.archiveDir, stem)
	if err != nil {
		return err
	}

	return report(batch.Run(cm, batch.Encode, pairs, batch.Options{
		JSON:        encodeOpts.json,
		Lang:        encodeOpts.lang,
		Legacy:      encodeOpts.msgenc,
		OnlyIfNewer: encodeOpts.newer,
		Workers:     encodeOpts.workers,
	}))
}

// warnCharmap surfaces charmap parse warnings once, before the run.
func warnCharmap(path string, diag *msgdata.Diagnostics) {
	for _, w := range diag.Warnings() {
		glog.Warningf("%s: %s", path, w)
	}
}
