package perceptron

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestTrainLearnsSeparableData(t *testing.T) {
	m := New(2)

	examples := []struct {
		features []string
		label    int
	}{
		{[]string{"w=cat", "shape=lower"}, 0},
		{[]string{"w=dog", "shape=lower"}, 0},
		{[]string{"w=nasa", "shape=upper"}, 1},
		{[]string{"w=fbi", "shape=upper"}, 1},
	}

	for epoch := 0; epoch < 10; epoch++ {
		for _, ex := range examples {
			if _, err := m.Train(ex.features, ex.label); err != nil {
				t.Fatalf("Train: %v", err)
			}
		}
	}

	for _, ex := range examples {
		if got := m.Predict(ex.features); got != ex.label {
			t.Errorf("Predict(%v) = %d, want %d", ex.features, got, ex.label)
		}
	}
}

func TestTrainReportsCorrectness(t *testing.T) {
	m := New(3)

	// First example: all weights zero, argmax ties to label 0.
	correct, err := m.Train([]string{"f"}, 2)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if correct {
		t.Error("first prediction of label 2 should be wrong on a zero model")
	}

	// Immediately after the update the same example is classified right.
	correct, err = m.Train([]string{"f"}, 2)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if !correct {
		t.Error("expected correct prediction after one update")
	}
}

func TestTrainRejectsBadLabel(t *testing.T) {
	m := New(2)
	if _, err := m.Train([]string{"f"}, 5); err == nil {
		t.Error("expected error for out-of-range label")
	}
}

func TestPredictDeterministicTieBreak(t *testing.T) {
	m := New(4)
	// Zero model: every label scores 0, the lowest index must win.
	for i := 0; i < 5; i++ {
		if got := m.Predict([]string{"unseen"}); got != 0 {
			t.Fatalf("Predict on zero model = %d, want 0", got)
		}
	}
}

func TestAverageFreezesModel(t *testing.T) {
	m := New(2)
	m.Train([]string{"f"}, 1)
	m.Average()

	if !m.Averaged() {
		t.Error("Averaged() = false after Average")
	}
	if _, err := m.Train([]string{"f"}, 1); !errors.Is(err, ErrAveraged) {
		t.Errorf("Train after Average: err = %v, want ErrAveraged", err)
	}
	// Averaging again is a no-op, not an error.
	m.Average()
}

func TestAveragePreservesSeparation(t *testing.T) {
	m := New(2)
	examples := []struct {
		features []string
		label    int
	}{
		{[]string{"w=cat"}, 0},
		{[]string{"w=nasa"}, 1},
	}
	for epoch := 0; epoch < 20; epoch++ {
		for _, ex := range examples {
			m.Train(ex.features, ex.label)
		}
	}
	m.Average()
	for _, ex := range examples {
		if got := m.Predict(ex.features); got != ex.label {
			t.Errorf("after averaging: Predict(%v) = %d, want %d", ex.features, got, ex.label)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := New(3)
	m.Train([]string{"w=cat", "shape=lower"}, 1)
	m.Train([]string{"w=nasa"}, 2)
	m.Train([]string{"w=cat", "shape=lower"}, 1)
	m.Average()

	metadata := []byte("side-channel payload")
	path := filepath.Join(t.TempDir(), "model.gob")
	if err := m.Write(path, metadata); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, gotMeta, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(gotMeta) != string(metadata) {
		t.Errorf("metadata = %q, want %q", gotMeta, metadata)
	}
	if !loaded.Averaged() {
		t.Error("loaded model should be frozen")
	}
	if loaded.NumLabels() != 3 {
		t.Errorf("NumLabels = %d, want 3", loaded.NumLabels())
	}

	vectors := [][]string{
		{"w=cat", "shape=lower"},
		{"w=nasa"},
		{"w=unseen"},
	}
	for _, v := range vectors {
		if got, want := loaded.Predict(v), m.Predict(v); got != want {
			t.Errorf("Predict(%v) = %d after reload, want %d", v, got, want)
		}
	}
}

func TestWriteReadEmptyMetadata(t *testing.T) {
	m := New(2)
	m.Train([]string{"f"}, 1)
	m.Average()

	path := filepath.Join(t.TempDir(), "model.gob")
	if err := m.Write(path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, metadata, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(metadata) != 0 {
		t.Errorf("metadata = %q, want empty", metadata)
	}
}

func TestRead_FileNotFound(t *testing.T) {
	if _, _, err := Read("/nonexistent/model.gob"); err == nil {
		t.Error("expected error for missing file")
	}
}
