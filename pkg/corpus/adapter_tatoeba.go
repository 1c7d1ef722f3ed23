package corpus

import (
	"bufio"
	"compress/bzip2"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	Register(&tatoebaAdapter{
		id:       "tatoeba-eng",
		corpusID: "eng-tatoeba",
		desc:     "Tatoeba English example sentences",
		lang:     "eng",
		url:      "https://downloads.tatoeba.org/exports/per_language/eng/eng_sentences.tsv.bz2",
	})
}

// tatoebaAdapter fetches a Tatoeba per-language sentence export. Each line
// is "<id>\t<lang>\t<text>", bzip2-compressed.
type tatoebaAdapter struct {
	id       string
	corpusID string
	desc     string
	lang     string
	url      string
}

func (a *tatoebaAdapter) ID() string          { return a.id }
func (a *tatoebaAdapter) CorpusID() string    { return a.corpusID }
func (a *tatoebaAdapter) Description() string { return a.desc }
func (a *tatoebaAdapter) DefaultURL() string  { return a.url }
func (a *tatoebaAdapter) License() string     { return "CC BY 2.0 FR" }

func (a *tatoebaAdapter) Fetch(ctx context.Context, sourceURL, outputDir string) error {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	archive := filepath.Join(dlDir, "sentences.tsv.bz2")
	if err := downloadFile(ctx, sourceURL, archive); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	in, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer in.Close()

	var sentences [][]string
	sc := bufio.NewScanner(bzip2.NewReader(in))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; sc.Scan(); lineno++ {
		parts := strings.SplitN(sc.Text(), "\t", 3)
		if len(parts) != 3 {
			return fmt.Errorf("sentences.tsv:%d: malformed record: want 3 fields, got %d", lineno, len(parts))
		}
		if parts[1] != a.lang {
			continue
		}
		tokens := strings.Fields(parts[2])
		if len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read sentence export: %w", err)
	}

	return materialize(outputDir, a, sourceURL, sentences)
}
