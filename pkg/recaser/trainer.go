package recaser

import (
	"fmt"
	"math/rand"
)

// TrainConfig controls the epoch loop.
type TrainConfig struct {
	Epochs int
	Seed   int64
}

// EpochStats reports accuracy for one epoch.
type EpochStats struct {
	Epoch         int
	TrainAccuracy float64
	DevAccuracy   float64
	HasDev        bool
}

func tokenCount(sentences []Sentence) int {
	n := 0
	for _, s := range sentences {
		n += len(s.Tags)
	}
	return n
}

// Fit trains over shuffled epochs and then averages the classifier once.
// The shuffle uses a private source seeded from cfg.Seed, so a fixed seed,
// corpus, and epoch count reproduce the same accuracy sequence. Dev
// sentences are scored after each epoch without shuffling or learning.
// Training is strictly sequential: each per-token update consumes the
// classifier state left by the previous one.
func (m *Model) Fit(train, dev []Sentence, cfg TrainConfig) ([]EpochStats, error) {
	if cfg.Epochs < 1 {
		return nil, fmt.Errorf("epochs = %d, want >= 1", cfg.Epochs)
	}
	trainSize := tokenCount(train)
	if trainSize == 0 {
		return nil, fmt.Errorf("empty training corpus")
	}
	devSize := tokenCount(dev)

	rng := rand.New(rand.NewSource(cfg.Seed))
	shuffled := make([]Sentence, len(train))
	copy(shuffled, train)

	stats := make([]EpochStats, 0, cfg.Epochs)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		correct := 0
		for _, s := range shuffled {
			c, err := m.TrainSentence(s)
			if err != nil {
				return stats, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			correct += c
		}

		st := EpochStats{
			Epoch:         epoch,
			TrainAccuracy: float64(correct) / float64(trainSize),
		}
		if devSize > 0 {
			devCorrect := 0
			for _, s := range dev {
				devCorrect += m.EvaluateSentence(s)
			}
			st.DevAccuracy = float64(devCorrect) / float64(devSize)
			st.HasDev = true
		}
		m.logger.Info("epoch complete",
			"epoch", epoch,
			"resubstitution_accuracy", fmt.Sprintf("%.4f", st.TrainAccuracy),
		)
		if st.HasDev {
			m.logger.Info("development accuracy",
				"epoch", epoch,
				"accuracy", fmt.Sprintf("%.4f", st.DevAccuracy),
			)
		}
		stats = append(stats, st)
	}

	m.logger.Info("averaging model")
	m.Average()
	return stats, nil
}
