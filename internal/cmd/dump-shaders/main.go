// Copyright 2025 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// dump-shaders writes the pipelines' WGSL programs to a directory, so they
// can be validated offline, e.g. with naga.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"honnef.co/go/bounce/renderer"
)

func main() {
	var (
		out     string
		verbose bool
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-v] -out <dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&out, "out", "./out", "Path to output `directory`")
	flag.BoolVar(&verbose, "v", false, "Be verbose")
	flag.Parse()

	if len(flag.Args()) != 0 {
		flag.Usage()
		os.Exit(2)
	}

	dief := func(f string, v ...any) {
		fmt.Fprintf(os.Stderr, f, v...)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}

	if err := os.MkdirAll(out, 0777); err != nil {
		dief("Couldn't create output directory: %s", err)
	}

	for _, shader := range []renderer.RenderShader{renderer.RectanglePipeline, renderer.CirclePipeline} {
		name := filepath.Join(out, shader.Name+".wgsl")
		if verbose {
			fmt.Fprintf(os.Stderr, "writing %s\n", name)
		}
		src := strings.TrimLeft(shader.WGSL, "\n")
		if err := os.WriteFile(name, []byte(src), 0666); err != nil {
			dief("Couldn't write %s: %s", name, err)
		}
	}
}
