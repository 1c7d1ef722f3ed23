package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/recase/pkg/corpus"
)

func cmdCorpus(args []string) {
	fs := flag.NewFlagSet("corpus", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to fetch (e.g. leipzig-eng-news)")
	all := fs.Bool("all", false, "fetch all registered sources")
	setURL := fs.String("set-url", "", "override the source URL for --source")
	outputDir := fs.String("output-dir", "corpora", "output directory for corpora")
	fs.Parse(args)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	sdb, err := corpus.OpenSourceDB(filepath.Join(*outputDir, "sources.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open sources.db: %v\n", err)
		os.Exit(1)
	}
	defer sdb.Close()

	if err := sdb.Seed(corpus.All()); err != nil {
		fmt.Fprintf(os.Stderr, "seed sources: %v\n", err)
		os.Exit(1)
	}

	if *setURL != "" {
		if *source == "" {
			fmt.Fprintln(os.Stderr, "--set-url requires --source")
			os.Exit(1)
		}
		if err := sdb.SetURL(*source, *setURL); err != nil {
			fmt.Fprintf(os.Stderr, "set url: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[%s] source URL updated\n", *source)
		return
	}

	if !*all && *source == "" {
		listSources(sdb)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	if *all {
		for _, a := range corpus.All() {
			fetchOne(ctx, sdb, a, *outputDir)
		}
		return
	}

	a, err := corpus.Get(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\nAvailable sources:\n", err)
		for _, a := range corpus.All() {
			fmt.Fprintf(os.Stderr, "  %s\n", a.ID())
		}
		os.Exit(1)
	}
	if !fetchOne(ctx, sdb, a, *outputDir) {
		os.Exit(1)
	}
}

func listSources(sdb *corpus.SourceDB) {
	fmt.Println("Available corpus sources:")
	fmt.Println()
	sources, _ := sdb.ListSources()
	for _, src := range sources {
		status := ""
		if src.LastStatus != nil {
			status = fmt.Sprintf("  [%d]", *src.LastStatus)
		}
		fmt.Printf("  %-20s  %s  (-> %s)%s\n", src.AdapterID, src.Description, src.CorpusID, status)
	}
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  recase corpus --source <id> [--output-dir <dir>]")
	fmt.Println("  recase corpus --all [--output-dir <dir>]")
	fmt.Println("  recase corpus --source <id> --set-url <url>")
}

func fetchOne(ctx context.Context, sdb *corpus.SourceDB, a corpus.Adapter, outputDir string) bool {
	url, err := sdb.GetURL(a.ID())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] ERROR (url): %v\n", a.ID(), err)
		return false
	}
	fmt.Printf("[%s] fetching...\n", a.ID())
	if err := a.Fetch(ctx, url, outputDir); err != nil {
		sdb.RecordFetch(a.ID(), 500, err.Error())
		fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
		return false
	}
	sdb.RecordFetch(a.ID(), 200, "")
	fmt.Printf("[%s] OK -> %s/%s/\n", a.ID(), outputDir, a.CorpusID())
	return true
}
