package perceptron

import (
	"encoding/gob"
	"fmt"
	"os"
)

// modelFile is the on-disk layout: finalized weights plus one opaque
// metadata blob supplied by the caller. The recaser stores its mixed-case
// pattern table there so the two always travel together.
type modelFile struct {
	NumLabels int
	Bias      []float64
	Table     map[string][]float64
	Metadata  []byte
}

// Write serializes the model and the caller's metadata to path. The model
// should be averaged first; writing mid-training weights is allowed but
// they will load as frozen.
func (m *Model) Write(path string, metadata []byte) error {
	file := modelFile{
		NumLabels: m.nlabels,
		Bias:      make([]float64, m.nlabels),
		Table:     make(map[string][]float64, len(m.table)),
		Metadata:  metadata,
	}
	for y, c := range m.bias {
		file.Bias[y] = c.weight
	}
	for f, row := range m.table {
		weights := make([]float64, m.nlabels)
		for y, c := range row {
			weights[y] = c.weight
		}
		file.Table[f] = weights
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer out.Close()
	if err := gob.NewEncoder(out).Encode(&file); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// Read deserializes a model written by Write, returning the model and the
// attached metadata blob. The metadata may be empty.
func Read(path string) (*Model, []byte, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open model file: %w", err)
	}
	defer in.Close()

	var file modelFile
	if err := gob.NewDecoder(in).Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("decode model: %w", err)
	}
	if file.NumLabels < 2 {
		return nil, nil, fmt.Errorf("decode model: bad label count %d", file.NumLabels)
	}

	m := New(file.NumLabels)
	m.averaged = true
	for y, w := range file.Bias {
		m.bias[y].weight = w
	}
	for f, weights := range file.Table {
		if len(weights) != file.NumLabels {
			return nil, nil, fmt.Errorf("decode model: feature %q has %d weights, want %d",
				f, len(weights), file.NumLabels)
		}
		row := make([]cell, file.NumLabels)
		for y, w := range weights {
			row[y].weight = w
		}
		m.table[f] = row
	}
	return m, file.Metadata, nil
}
