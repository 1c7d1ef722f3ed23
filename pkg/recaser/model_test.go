package recaser

import (
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hazyhaar/recase/pkg/caseclass"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func prepareAll(m *Model, sentences [][]string) []Sentence {
	out := make([]Sentence, len(sentences))
	for i, tokens := range sentences {
		out[i] = m.Prepare(tokens)
	}
	return out
}

func TestPrepare(t *testing.T) {
	m := New(discard())
	s := m.Prepare([]string{"The", "iPhone", "SAT", "at", "212"})

	want := []caseclass.TokenCase{
		caseclass.TokenTitle,
		caseclass.TokenMixed,
		caseclass.TokenUpper,
		caseclass.TokenLower,
		caseclass.TokenDC,
	}
	if !reflect.DeepEqual(s.Tags, want) {
		t.Errorf("Tags = %v, want %v", s.Tags, want)
	}
	if len(s.Vectors) != len(s.Tags) {
		t.Errorf("vectors/tags length mismatch: %d vs %d", len(s.Vectors), len(s.Tags))
	}

	// The MIXED token's pattern was recorded under its folded form.
	if _, ok := m.PatternFor("iphone"); !ok {
		t.Error("expected pattern for \"iphone\"")
	}
}

func TestPrepareEval_DoesNotRecordPatterns(t *testing.T) {
	m := New(discard())
	m.PrepareEval([]string{"iPhone"})
	if _, ok := m.PatternFor("iphone"); ok {
		t.Error("PrepareEval must not populate the pattern table")
	}
}

func TestFitAndRestore(t *testing.T) {
	m := New(discard())
	corpus := [][]string{
		{"The", "Cat", "Sat"},
		{"a", "DOG", "ran"},
		{"The", "iPhone", "rang"},
	}
	train := prepareAll(m, corpus)

	stats, err := m.Fit(train, nil, TrainConfig{Epochs: 20, Seed: 0})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if len(stats) != 20 {
		t.Fatalf("stats = %d epochs, want 20", len(stats))
	}
	// A memorizable corpus should end at perfect resubstitution accuracy.
	if last := stats[len(stats)-1].TrainAccuracy; last != 1.0 {
		t.Errorf("final resubstitution accuracy = %.4f, want 1.0", last)
	}

	for _, tokens := range corpus {
		folded := make([]string, len(tokens))
		for i, tok := range tokens {
			folded[i] = caseclass.Fold(tok)
		}
		restored, err := m.Restore(folded)
		if err != nil {
			t.Fatalf("Restore(%v): %v", folded, err)
		}
		if !reflect.DeepEqual(restored, tokens) {
			t.Errorf("Restore(%v) = %v, want %v", folded, restored, tokens)
		}
	}
}

func TestFit_Deterministic(t *testing.T) {
	corpus := [][]string{
		{"The", "Cat", "Sat"},
		{"a", "DOG", "ran"},
	}
	run := func() []EpochStats {
		m := New(discard())
		stats, err := m.Fit(prepareAll(m, corpus), nil, TrainConfig{Epochs: 5, Seed: 13})
		if err != nil {
			t.Fatalf("Fit: %v", err)
		}
		return stats
	}
	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("accuracy sequences differ across runs: %v vs %v", a, b)
	}
}

func TestFit_DevAccuracy(t *testing.T) {
	m := New(discard())
	train := prepareAll(m, [][]string{
		{"The", "Cat", "Sat"},
		{"a", "DOG", "ran"},
	})
	dev := []Sentence{m.PrepareEval([]string{"The", "dog", "sat"})}

	stats, err := m.Fit(train, dev, TrainConfig{Epochs: 3, Seed: 0})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for _, st := range stats {
		if !st.HasDev {
			t.Fatalf("epoch %d missing dev accuracy", st.Epoch)
		}
		if st.DevAccuracy < 0 || st.DevAccuracy > 1 {
			t.Errorf("epoch %d: dev accuracy %f out of range", st.Epoch, st.DevAccuracy)
		}
	}
}

func TestFit_EmptyCorpus(t *testing.T) {
	m := New(discard())
	if _, err := m.Fit(nil, nil, TrainConfig{Epochs: 1, Seed: 0}); err == nil {
		t.Error("expected error for empty training corpus")
	}
}

func TestRestore_MixedFallback(t *testing.T) {
	m := New(discard())
	// Train a corpus where every sentence is MIXED so the prediction for an
	// unseen token is MIXED too.
	corpus := [][]string{
		{"iFoo", "iBar"},
		{"iBaz", "iFoo"},
	}
	if _, err := m.Fit(prepareAll(m, corpus), nil, TrainConfig{Epochs: 20, Seed: 0}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Known folded form restores its stored spelling.
	restored, err := m.Restore([]string{"ifoo", "ibar"})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(restored, []string{"iFoo", "iBar"}) {
		t.Errorf("Restore = %v, want [iFoo iBar]", restored)
	}

	// An unseen token under a MIXED prediction lowercases.
	tags := m.Tag([]string{"iqux", "ifoo"})
	if tags[0] == caseclass.TokenMixed {
		restored, err := m.Restore([]string{"iqux", "ifoo"})
		if err != nil {
			t.Fatalf("Restore: %v", err)
		}
		if restored[0] != "iqux" {
			t.Errorf("unseen mixed token restored to %q, want iqux", restored[0])
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := New(discard())
	corpus := [][]string{
		{"The", "iPhone", "rang"},
		{"a", "DOG", "ran"},
	}
	if _, err := m.Fit(prepareAll(m, corpus), nil, TrainConfig{Epochs: 20, Seed: 0}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.gob")
	if err := m.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	loaded, err := Read(path, discard())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	input := []string{"the", "iphone", "rang"}
	want, err := m.Restore(input)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, err := loaded.Restore(input)
	if err != nil {
		t.Fatalf("Restore after reload: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded Restore = %v, want %v", got, want)
	}

	info := loaded.Describe()
	if info.NumPatterns != 1 {
		t.Errorf("NumPatterns = %d, want 1", info.NumPatterns)
	}
	if !info.Averaged {
		t.Error("loaded model should be averaged")
	}
}

func TestRead_BadMetadataDegrades(t *testing.T) {
	m := New(discard())
	corpus := [][]string{{"The", "Cat"}}
	if _, err := m.Fit(prepareAll(m, corpus), nil, TrainConfig{Epochs: 2, Seed: 0}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Write the classifier with garbage metadata directly.
	path := filepath.Join(t.TempDir(), "model.gob")
	if err := m.classifier.Write(path, []byte("not a pattern table")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	loaded, err := Read(path, logger)
	if err != nil {
		t.Fatalf("Read should tolerate bad metadata, got %v", err)
	}
	if n := loaded.Describe().NumPatterns; n != 0 {
		t.Errorf("NumPatterns = %d, want 0 after metadata decode failure", n)
	}
	if !strings.Contains(buf.String(), "pattern table") {
		t.Errorf("expected a warning about the pattern table, log = %q", buf.String())
	}
}
