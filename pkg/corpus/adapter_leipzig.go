package corpus

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	Register(&leipzigAdapter{
		id:       "leipzig-eng-news",
		corpusID: "eng-news",
		desc:     "Leipzig Corpora Collection, English news sentences",
		url:      "https://downloads.wortschatz-leipzig.de/corpora/eng_news_2024_100K.tar.gz",
	})
	Register(&leipzigAdapter{
		id:       "leipzig-deu-news",
		corpusID: "deu-news",
		desc:     "Leipzig Corpora Collection, German news sentences",
		url:      "https://downloads.wortschatz-leipzig.de/corpora/deu_news_2024_100K.tar.gz",
	})
}

// leipzigAdapter fetches a Leipzig Corpora Collection sentence archive.
// The *-sentences.txt member uses the format "<number>\t<sentence>".
type leipzigAdapter struct {
	id       string
	corpusID string
	desc     string
	url      string
}

func (a *leipzigAdapter) ID() string          { return a.id }
func (a *leipzigAdapter) CorpusID() string    { return a.corpusID }
func (a *leipzigAdapter) Description() string { return a.desc }
func (a *leipzigAdapter) DefaultURL() string  { return a.url }
func (a *leipzigAdapter) License() string     { return "CC BY 4.0" }

func (a *leipzigAdapter) Fetch(ctx context.Context, sourceURL, outputDir string) error {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	archive := filepath.Join(dlDir, "corpus.tar.gz")
	if err := downloadFile(ctx, sourceURL, archive); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	files, err := untarGz(archive, dlDir)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	var sentencesFile string
	for _, f := range files {
		if strings.HasSuffix(filepath.Base(f), "-sentences.txt") {
			sentencesFile = f
			break
		}
	}
	if sentencesFile == "" {
		return fmt.Errorf("no *-sentences.txt member in %s", sourceURL)
	}

	in, err := os.Open(sentencesFile)
	if err != nil {
		return fmt.Errorf("open sentences file: %w", err)
	}
	defer in.Close()

	var sentences [][]string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; sc.Scan(); lineno++ {
		line := sc.Text()
		_, text, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("%s:%d: malformed record: missing tab", filepath.Base(sentencesFile), lineno)
		}
		tokens := strings.Fields(text)
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read sentences file: %w", err)
	}

	return materialize(outputDir, a, sourceURL, sentences)
}
