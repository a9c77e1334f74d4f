// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Package batch converts many archive/text file pairs concurrently. Each
// pair is independent; a failure in one never stops the others.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/suprsokr/go-msgdata"
)

// Direction selects which side of a pair is the binary archive.
type Direction int

const (
	// Decode reads binary archives and writes text or JSON.
	Decode Direction = iota

	// Encode reads text or JSON and writes binary archives.
	Encode
)

// Options control a batch run.
type Options struct {
	// JSON selects the JSON translation document serializer instead of
	// plain text.
	JSON bool

	// Lang is the language column used for JSON documents.
	Lang string

	// Legacy selects the legacy "msgenc" text syntax.
	Legacy bool

	// OnlyIfNewer skips pairs whose output is at least as new as the
	// input. After a conversion the input is stamped with the output's
	// mtime, so the next run sees the pair as current.
	OnlyIfNewer bool

	// Workers caps the number of concurrent conversions. Zero means one
	// per CPU.
	Workers int
}

// Pair is one input/output file pair.
type Pair struct {
	Input  string
	Output string
}

// Result reports the outcome of converting one pair.
type Result struct {
	Pair     Pair
	Err      error
	Warnings []string
	Skipped  bool
}

// Run converts every pair and returns one result per pair, in pair
// order. The charmap is shared; it is never mutated after parsing.
func Run(cm *msgdata.Charmap, dir Direction, pairs []Pair, opts Options) []Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}

	results := make([]Result, len(pairs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = convert(cm, dir, pairs[i], opts)
			}
		}()
	}
	for i := range pairs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

// Failed summarizes a run, returning nil when every pair converted or
// was skipped.
func Failed(results []Result) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d conversions failed", failed, len(results))
}

func convert(cm *msgdata.Charmap, dir Direction, pair Pair, opts Options) Result {
	result := Result{Pair: pair}

	srcInfo, err := os.Stat(pair.Input)
	if err != nil {
		result.Err = fmt.Errorf("stat input: %w", err)
		return result
	}
	if opts.OnlyIfNewer && upToDate(srcInfo, pair.Output) {
		glog.V(1).Infof("skipping %s, output is up to date", pair.Input)
		result.Skipped = true
		return result
	}

	diag := &msgdata.Diagnostics{}
	switch dir {
	case Decode:
		result.Err = decodePair(cm, pair, opts, diag)
	case Encode:
		result.Err = encodePair(cm, pair, opts, diag)
	default:
		result.Err = fmt.Errorf("unknown direction %d", dir)
	}
	result.Warnings = diag.Warnings()

	if result.Err == nil && opts.OnlyIfNewer {
		propagateTimestamp(pair.Input, pair.Output)
	}
	return result
}

// upToDate reports whether output exists and is at least as new as the
// input.
func upToDate(src os.FileInfo, output string) bool {
	dst, err := os.Stat(output)
	if err != nil {
		return false
	}
	return !src.ModTime().After(dst.ModTime())
}

// propagateTimestamp stamps the input with the freshly written output's
// mtime, so the next up-to-date check sees the pair as current.
func propagateTimestamp(input, output string) {
	dst, err := os.Stat(output)
	if err != nil {
		glog.Warningf("cannot stat %s: %v", output, err)
		return
	}
	if err := os.Chtimes(input, time.Now(), dst.ModTime()); err != nil {
		glog.Warningf("cannot set mtime of %s: %v", input, err)
	}
}

func decodePair(cm *msgdata.Charmap, pair Pair, opts Options, diag *msgdata.Diagnostics) error {
	glog.V(1).Infof("decoding %s -> %s", pair.Input, pair.Output)

	data, err := os.ReadFile(pair.Input)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	archive, err := msgdata.DecodeArchive(cm, data, format(opts), diag)
	if err != nil {
		return fmt.Errorf("decode %s: %w", pair.Input, err)
	}

	var out []byte
	if opts.JSON {
		// Merge into the existing document so other languages survive.
		existing, err := os.ReadFile(pair.Output)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read existing output: %w", err)
		}
		out, err = msgdata.WriteJSON(archive, archiveName(pair.Input), opts.Lang, existing)
		if err != nil {
			return fmt.Errorf("render %s: %w", pair.Output, err)
		}
	} else {
		out = msgdata.WriteText(archive, format(opts))
	}

	if err := os.WriteFile(pair.Output, out, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func encodePair(cm *msgdata.Charmap, pair Pair, opts Options, diag *msgdata.Diagnostics) error {
	glog.V(1).Infof("encoding %s -> %s", pair.Input, pair.Output)

	data, err := os.ReadFile(pair.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var archive *msgdata.Archive
	if opts.JSON {
		archive, err = msgdata.ReadJSON(data, opts.Lang)
		if err != nil {
			return fmt.Errorf("parse %s: %w", pair.Input, err)
		}
	} else {
		archive = msgdata.ReadText(data)
	}

	out, err := msgdata.EncodeArchive(cm, archive, format(opts), diag)
	if err != nil {
		return fmt.Errorf("encode %s: %w", pair.Input, err)
	}
	if err := os.WriteFile(pair.Output, out, 0644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

func format(opts Options) msgdata.Format {
	if opts.Legacy {
		return msgdata.FormatLegacy
	}
	return msgdata.FormatCanonical
}

// archiveName derives the JSON record id stem from the archive path.
func archiveName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
