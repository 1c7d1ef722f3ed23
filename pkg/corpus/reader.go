// Package corpus reads tokenized training corpora and manages their
// download sources. A corpus is a text file of one sentence per line,
// whitespace-tokenized, optionally described by a manifest.yaml that
// declares its provenance and encoding.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// Manifest describes a corpus: where it came from and how to read it.
type Manifest struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
	SourceURL   string `yaml:"source_url" json:"source_url,omitempty"`
	License     string `yaml:"license" json:"license"`
	DataFile    string `yaml:"data_file" json:"data_file"`
	Encoding    string `yaml:"encoding" json:"encoding,omitempty"`
	Sentences   int    `yaml:"sentences" json:"sentences,omitempty"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.DataFile == "" {
		m.DataFile = "sentences.txt"
	}
	return &m, nil
}

// WriteManifest writes a Manifest as YAML to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}

// eachSentence streams whitespace-tokenized sentences from r. Blank lines
// are skipped. A line that is not valid UTF-8 is a malformed record and
// aborts the scan; silently dropping supervision would corrupt accuracy
// accounting downstream.
func eachSentence(r io.Reader, name string, fn func(tokens []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; sc.Scan(); lineno++ {
		line := sc.Text()
		if !utf8.ValidString(line) {
			return fmt.Errorf("%s:%d: malformed record: invalid UTF-8", name, lineno)
		}
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if err := fn(tokens); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// EachSentence streams sentences from a plain UTF-8 text file. Every call
// re-opens the file and streams from the start; there is no shared cursor,
// so repeated passes (one per training epoch) are independent.
func EachSentence(path string, fn func(tokens []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return eachSentence(f, filepath.Base(path), fn)
}

// Corpus is a manifest-described corpus directory.
type Corpus struct {
	dir      string
	Manifest *Manifest
}

// Open loads the manifest of a corpus directory.
func Open(dir string) (*Corpus, error) {
	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}
	return &Corpus{dir: dir, Manifest: m}, nil
}

// EachSentence streams the corpus's sentences, transcoding a non-UTF-8
// encoding declared in the manifest. Restartable like the package-level
// EachSentence.
func (c *Corpus) EachSentence(fn func(tokens []string) error) error {
	path := filepath.Join(c.dir, c.Manifest.DataFile)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus %s: %w", c.Manifest.ID, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if enc := c.Manifest.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return fmt.Errorf("corpus %s: unsupported encoding %q: %w", c.Manifest.ID, enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}
	return eachSentence(reader, c.Manifest.DataFile, fn)
}

// ReadAll collects every sentence into memory, for training loops that
// shuffle between epochs.
func ReadAll(path string) ([][]string, error) {
	var sentences [][]string
	err := EachSentence(path, func(tokens []string) error {
		sentences = append(sentences, append([]string(nil), tokens...))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sentences, nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
