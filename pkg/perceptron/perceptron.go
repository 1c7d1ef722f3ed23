// Package perceptron implements a sparse averaged multinomial perceptron
// over string-identified features. It is the online linear classifier
// behind the recaser: one weight row per feature seen during training, a
// bias row, error-driven +1/-1 updates, and a delayed running average that
// replaces the working weights once training is done.
package perceptron

import (
	"errors"
	"fmt"
)

// cell is one weight with its delayed running average. The summed weight is
// only brought up to date when the cell is touched or finalized, so an
// update costs O(1) regardless of how long the cell sat untouched.
type cell struct {
	weight float64
	summed float64
	at     uint64
}

func (c *cell) freshen(now uint64) {
	c.summed += float64(now-c.at) * c.weight
	c.at = now
}

func (c *cell) update(tau float64, now uint64) {
	c.freshen(now)
	c.weight += tau
}

// Model is a multinomial perceptron. The zero value is not usable; call New.
type Model struct {
	nlabels  int
	time     uint64
	averaged bool
	bias     []cell
	table    map[string][]cell
}

// ErrAveraged is returned by Train on a model whose weights have already
// been averaged; an averaged model is frozen.
var ErrAveraged = errors.New("model already averaged")

// New creates an empty model over nlabels labels.
func New(nlabels int) *Model {
	if nlabels < 2 {
		panic(fmt.Sprintf("perceptron: nlabels = %d, want >= 2", nlabels))
	}
	return &Model{
		nlabels: nlabels,
		bias:    make([]cell, nlabels),
		table:   make(map[string][]cell),
	}
}

// NumLabels returns the size of the label set.
func (m *Model) NumLabels() int { return m.nlabels }

// NumFeatures returns the number of distinct features seen so far.
func (m *Model) NumFeatures() int { return len(m.table) }

// Averaged reports whether the weights have been finalized.
func (m *Model) Averaged() bool { return m.averaged }

// score sums the bias row and the rows of every known feature.
func (m *Model) score(features []string) []float64 {
	scores := make([]float64, m.nlabels)
	for y := range scores {
		scores[y] = m.bias[y].weight
	}
	for _, f := range features {
		row, ok := m.table[f]
		if !ok {
			continue
		}
		for y := range scores {
			scores[y] += row[y].weight
		}
	}
	return scores
}

// Predict returns the argmax label for a feature vector. Ties break toward
// the lowest label index, so prediction is deterministic. No side effects.
func (m *Model) Predict(features []string) int {
	scores := m.score(features)
	best := 0
	for y := 1; y < len(scores); y++ {
		if scores[y] > scores[best] {
			best = y
		}
	}
	return best
}

// Train runs one online update: predict, and on error promote the gold
// label and demote the prediction across the bias row and every feature
// row. It reports whether the prediction was already correct. Updates
// depend on the state left by the previous call, so training calls must not
// be reordered.
func (m *Model) Train(features []string, y int) (bool, error) {
	if m.averaged {
		return false, ErrAveraged
	}
	if y < 0 || y >= m.nlabels {
		return false, fmt.Errorf("label %d out of range [0,%d)", y, m.nlabels)
	}
	yhat := m.Predict(features)
	correct := yhat == y
	if !correct {
		m.bias[y].update(+1, m.time)
		m.bias[yhat].update(-1, m.time)
		for _, f := range features {
			row, ok := m.table[f]
			if !ok {
				row = make([]cell, m.nlabels)
				m.table[f] = row
			}
			row[y].update(+1, m.time)
			row[yhat].update(-1, m.time)
		}
	}
	m.time++
	return correct, nil
}

// Average replaces every working weight with its running average over the
// training clock, freezing the model. Averaging twice is a no-op.
func (m *Model) Average() {
	if m.averaged {
		return
	}
	m.averaged = true
	if m.time == 0 {
		return
	}
	finalize := func(c *cell) {
		c.freshen(m.time)
		c.weight = c.summed / float64(m.time)
	}
	for y := range m.bias {
		finalize(&m.bias[y])
	}
	for _, row := range m.table {
		for y := range row {
			finalize(&row[y])
		}
	}
}
