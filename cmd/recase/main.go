package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hazyhaar/recase/pkg/corpus"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "train":
		cmdTrain(os.Args[2:])
	case "predict":
		cmdPredict(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "corpus":
		cmdCorpus(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: recase <command>

Commands:
  train    Train a case restoration model from tokenized text
  predict  Restore casing of tokenized text with a trained model
  serve    Serve a trained model over HTTP or MCP
  corpus   List and fetch training corpora
`)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// readSentences loads a corpus from either a plain text file or a
// manifest-described corpus directory.
func readSentences(path string) ([][]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return corpus.ReadAll(path)
	}
	c, err := corpus.Open(path)
	if err != nil {
		return nil, err
	}
	var sentences [][]string
	err = c.EachSentence(func(tokens []string) error {
		sentences = append(sentences, append([]string(nil), tokens...))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sentences, nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
