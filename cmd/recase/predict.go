package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hazyhaar/recase/pkg/recaser"
)

func cmdPredict(args []string) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	read := fs.String("read", "", "trained model file")
	input := fs.String("input", "", "tokenized input text, one sentence per line (default stdin)")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)

	logger := newLogger(*verbose)

	if *read == "" {
		fmt.Fprintln(os.Stderr, "Usage: recase predict --read <model> [--input <file>]")
		os.Exit(1)
	}

	m, err := recaser.Read(*read, logger)
	if err != nil {
		fatal(logger, "load model", err)
	}

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			fatal(logger, "open input", err)
		}
		defer f.Close()
		in = f
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			fmt.Fprintln(out)
			continue
		}
		restored, err := m.Restore(tokens)
		if err != nil {
			fatal(logger, "restore", err)
		}
		fmt.Fprintln(out, strings.Join(restored, " "))
	}
	if err := scanner.Err(); err != nil {
		fatal(logger, "read input", err)
	}
}
