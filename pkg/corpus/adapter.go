package corpus

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Adapter downloads a public sentence corpus, normalizes it to the
// one-sentence-per-line format, and writes sentences.txt + manifest.yaml
// into a subdirectory of outputDir named after CorpusID.
type Adapter interface {
	// ID is the unique identifier of this adapter (e.g. "leipzig-eng-news").
	ID() string
	// CorpusID is the target corpus directory name (e.g. "eng-news").
	CorpusID() string
	// Description is human-readable.
	Description() string
	// DefaultURL seeds the source database.
	DefaultURL() string
	// License identifies the source's license.
	License() string
	// Fetch downloads from sourceURL and materializes the corpus.
	Fetch(ctx context.Context, sourceURL, outputDir string) error
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown corpus source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// downloadFile downloads url to dest with retries and a generous timeout;
// corpus archives can run to hundreds of megabytes.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 30 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// untarGz extracts a .tar.gz archive into destDir (flattened) and returns
// the extracted file paths.
func untarGz(src, destDir string) ([]string, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	defer gz.Close()

	var paths []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(hdr.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", destPath, err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return nil, fmt.Errorf("extract %s: %w", hdr.Name, err)
		}
		out.Close()
		paths = append(paths, destPath)
	}
	return paths, nil
}

// writeSentences writes sentences one per line, tokens space-joined, and
// returns the sentence count.
func writeSentences(path string, sentences [][]string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	for _, tokens := range sentences {
		if len(tokens) == 0 {
			continue
		}
		for i, tok := range tokens {
			if i > 0 {
				if _, err := io.WriteString(f, " "); err != nil {
					return n, err
				}
			}
			if _, err := io.WriteString(f, tok); err != nil {
				return n, err
			}
		}
		if _, err := io.WriteString(f, "\n"); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// materialize writes the corpus directory: sentences.txt plus manifest.
func materialize(outputDir string, a Adapter, sourceURL string, sentences [][]string) error {
	dir := filepath.Join(outputDir, a.CorpusID())
	if err := ensureDir(dir); err != nil {
		return err
	}
	n, err := writeSentences(filepath.Join(dir, "sentences.txt"), sentences)
	if err != nil {
		return fmt.Errorf("write sentences: %w", err)
	}
	return WriteManifest(dir, &Manifest{
		ID:          a.CorpusID(),
		Description: a.Description(),
		SourceURL:   sourceURL,
		License:     a.License(),
		DataFile:    "sentences.txt",
		Sentences:   n,
	})
}
