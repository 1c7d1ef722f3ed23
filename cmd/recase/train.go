package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hazyhaar/recase/pkg/recaser"
)

func cmdTrain(args []string) {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	trainPath := fs.String("train", "", "training corpus (text file or corpus directory)")
	devPath := fs.String("dev", "", "optional development corpus for held-out accuracy")
	epochs := fs.Int("epochs", 5, "number of training epochs")
	seed := fs.Int64("seed", 0, "shuffle seed")
	write := fs.String("write", "", "output model file")
	verbose := fs.Bool("v", false, "log per-epoch accuracies")
	fs.Parse(args)

	logger := newLogger(*verbose)

	if *trainPath == "" || *write == "" {
		fmt.Fprintln(os.Stderr, "Usage: recase train --train <corpus> --write <model> [--dev <corpus>] [--epochs N] [--seed N]")
		os.Exit(1)
	}

	trainSentences, err := readSentences(*trainPath)
	if err != nil {
		fatal(logger, "read training corpus", err)
	}

	m := recaser.New(logger)

	// Prepare records mixed-case patterns as a side effect, so only the
	// training corpus goes through it.
	train := make([]recaser.Sentence, 0, len(trainSentences))
	for _, tokens := range trainSentences {
		train = append(train, m.Prepare(tokens))
	}

	var dev []recaser.Sentence
	if *devPath != "" {
		devSentences, err := readSentences(*devPath)
		if err != nil {
			fatal(logger, "read development corpus", err)
		}
		dev = make([]recaser.Sentence, 0, len(devSentences))
		for _, tokens := range devSentences {
			dev = append(dev, m.PrepareEval(tokens))
		}
	}

	stats, err := m.Fit(train, dev, recaser.TrainConfig{Epochs: *epochs, Seed: *seed})
	if err != nil {
		fatal(logger, "training failed", err)
	}

	final := stats[len(stats)-1]
	fmt.Printf("trained %d epochs, resubstitution accuracy %.4f\n", final.Epoch, final.TrainAccuracy)
	if final.HasDev {
		fmt.Printf("development accuracy %.4f\n", final.DevAccuracy)
	}

	if err := m.Write(*write); err != nil {
		fatal(logger, "write model", err)
	}
	logger.Info("model written", "path", *write)
}
