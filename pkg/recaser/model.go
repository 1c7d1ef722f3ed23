// Package recaser restores the original letter-casing of casefolded text.
// A Model pairs an averaged perceptron that predicts a per-token case label
// with a mixed-pattern table that recovers irregular spellings the labels
// cannot encode.
package recaser

import (
	"fmt"
	"log/slog"

	"github.com/hazyhaar/recase/pkg/caseclass"
	"github.com/hazyhaar/recase/pkg/perceptron"
)

// Model is a case restoration model. It owns its classifier and pattern
// table; the only classifier operations it relies on are train, predict,
// average, write, and read.
type Model struct {
	classifier *perceptron.Model
	table      caseclass.Table
	logger     *slog.Logger
}

// New creates an untrained model.
func New(logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		classifier: perceptron.New(caseclass.NumTokenCases),
		table:      make(caseclass.Table),
		logger:     logger,
	}
}

// Read loads a trained model from path. The pattern table is decoded from
// the model file's metadata; if the metadata cannot be decoded the model
// still loads with an empty table and a warning, which degrades MIXED
// restorations to the lowercase fallback.
func Read(path string, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	classifier, metadata, err := perceptron.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	table, err := caseclass.DecodeTable(metadata)
	if err != nil {
		logger.Warn("model metadata is not a valid pattern table; mixed-case tokens will lowercase",
			"path", path, "error", err)
		table = make(caseclass.Table)
	}
	return &Model{classifier: classifier, table: table, logger: logger}, nil
}

// Write serializes the model to path, attaching the pattern table as the
// model file's metadata so the two travel together.
func (m *Model) Write(path string) error {
	if err := m.classifier.Write(path, m.table.Encode()); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Sentence is one prepared training or evaluation example: feature vectors
// and gold labels, index-aligned per token.
type Sentence struct {
	Vectors [][]string
	Tags    []caseclass.TokenCase
}

// Prepare builds the training example for a sentence. Labels and patterns
// are computed from the untouched original spellings first — MIXED patterns
// are recorded in the table — and only then are tokens folded for feature
// extraction. The ordering matters: folding before classification would
// erase the very casing being learned.
func (m *Model) Prepare(tokens []string) Sentence {
	tags := make([]caseclass.TokenCase, len(tokens))
	for i, tok := range tokens {
		tags[i], _ = m.table.Observe(tok)
	}
	return Sentence{Vectors: ExtractFeatures(tokens), Tags: tags}
}

// PrepareEval is Prepare without recording patterns; held-out sentences
// must not leak spellings into the table.
func (m *Model) PrepareEval(tokens []string) Sentence {
	tags := make([]caseclass.TokenCase, len(tokens))
	for i, tok := range tokens {
		tags[i], _ = caseclass.ClassifyToken(tok)
	}
	return Sentence{Vectors: ExtractFeatures(tokens), Tags: tags}
}

// TrainSentence runs one online update per token and returns how many
// predictions were already correct.
func (m *Model) TrainSentence(s Sentence) (int, error) {
	correct := 0
	for i, vector := range s.Vectors {
		ok, err := m.classifier.Train(vector, int(s.Tags[i]))
		if err != nil {
			return correct, err
		}
		if ok {
			correct++
		}
	}
	return correct, nil
}

// EvaluateSentence counts correct predictions without learning.
func (m *Model) EvaluateSentence(s Sentence) int {
	correct := 0
	for i, vector := range s.Vectors {
		if m.classifier.Predict(vector) == int(s.Tags[i]) {
			correct++
		}
	}
	return correct
}

// Average finalizes the classifier weights. Call once, after all epochs.
func (m *Model) Average() {
	m.classifier.Average()
}

// Tag predicts a case label for each token of a sentence.
func (m *Model) Tag(tokens []string) []caseclass.TokenCase {
	vectors := ExtractFeatures(tokens)
	tags := make([]caseclass.TokenCase, len(vectors))
	for i, vector := range vectors {
		tags[i] = caseclass.TokenCase(m.classifier.Predict(vector))
	}
	return tags
}

// Restore re-cases a casefolded sentence: predict a label per token, look
// the folded form up in the pattern table for MIXED predictions, and apply.
// Tokens come back in order.
func (m *Model) Restore(tokens []string) ([]string, error) {
	tags := m.Tag(tokens)
	restored := make([]string, len(tokens))
	for i, tok := range tokens {
		folded := caseclass.Fold(tok)
		var pattern caseclass.Pattern
		if tags[i] == caseclass.TokenMixed {
			var ok bool
			pattern, ok = m.table.Lookup(folded)
			if !ok {
				m.logger.Debug("no stored pattern for mixed-case prediction, lowercasing", "token", folded)
			}
		}
		out, err := caseclass.ApplyToken(folded, tags[i], pattern)
		if err != nil {
			return nil, fmt.Errorf("restore token %d (%q): %w", i, tok, err)
		}
		restored[i] = out
	}
	return restored, nil
}

// Info describes a model for the API surface.
type Info struct {
	Labels      []string `json:"labels"`
	NumFeatures int      `json:"num_features"`
	NumPatterns int      `json:"num_patterns"`
	Averaged    bool     `json:"averaged"`
}

// Describe returns metadata about the model.
func (m *Model) Describe() Info {
	labels := make([]string, caseclass.NumTokenCases)
	for i := range labels {
		labels[i] = caseclass.TokenCase(i).String()
	}
	return Info{
		Labels:      labels,
		NumFeatures: m.classifier.NumFeatures(),
		NumPatterns: len(m.table),
		Averaged:    m.classifier.Averaged(),
	}
}

// PatternFor exposes the stored pattern for a casefolded token, for the
// classify endpoint.
func (m *Model) PatternFor(folded string) (caseclass.Pattern, bool) {
	return m.table.Lookup(folded)
}
