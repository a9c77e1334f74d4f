// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Command msgdata converts binary message archives to and from editable
// text and JSON translation documents.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
)

func main() {
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}
