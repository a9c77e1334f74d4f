// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	goflag "flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/suprsokr/go-msgdata/batch"
)

var rootCmd = &cobra.Command{
	Use:           "msgdata",
	Short:         "Convert message archives to and from text and JSON",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// glog registers its flags (-v, -logtostderr, ...) on the standard
	// flag set.
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
}

// collectInputs merges explicitly listed files with the contents of an
// optional input directory, in directory order.
func collectInputs(files []string, dir string) ([]string, error) {
	inputs := append([]string(nil), files...)
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read input directory: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				inputs = append(inputs, filepath.Join(dir, e.Name()))
			}
		}
	}
	if len(inputs) == 0 {
		return nil, errors.New("no input files given")
	}
	return inputs, nil
}

// buildPairs matches inputs with outputs: either an explicit output list
// of the same length, or a derived name per input, placed in outDir or
// next to the input.
func buildPairs(inputs, outputs []string, outDir string, name func(string) string) ([]batch.Pair, error) {
	if len(outputs) > 0 {
		if outDir != "" {
			return nil, errors.New("give either output files or an output directory, not both")
		}
		if len(outputs) != len(inputs) {
			return nil, fmt.Errorf("%d inputs but %d outputs", len(inputs), len(outputs))
		}
		pairs := make([]batch.Pair, len(inputs))
		for i := range inputs {
			pairs[i] = batch.Pair{Input: inputs[i], Output: outputs[i]}
		}
		return pairs, nil
	}

	pairs := make([]batch.Pair, len(inputs))
	for i, in := range inputs {
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(in)
		}
		pairs[i] = batch.Pair{Input: in, Output: filepath.Join(dir, name(in))}
	}
	return pairs, nil
}

// stem strips the directory and extension from a path.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// report logs every warning and failure and returns the run's overall
// outcome.
func report(results []batch.Result) error {
	for _, r := range results {
		for _, w := range r.Warnings {
			glog.Warningf("%s: %s", r.Pair.Input, w)
		}
		if r.Err != nil {
			glog.Errorf("%s: %v", r.Pair.Input, r.Err)
		}
	}
	return batch.Failed(results)
}
